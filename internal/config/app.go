// Package config holds the application-level configuration shared by the
// command-line entrypoints.
package config

import (
	"fmt"
	"os"
	"time"

	pkgconfig "summary-pad/pkg/config"
)

// Summarizer provider names.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoop   = "noop"
)

// History store driver names.
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// AppConfig holds the configuration for the summary-pad commands.
type AppConfig struct {
	// Provider selects the text summarization backend.
	// One of "openai", "claude", "noop". Default: "openai"
	Provider string

	// OpenAIAPIKey is the OpenAI credential. An empty key is not an
	// error at load time; text submissions fail with a missing-key
	// error instead, so document uploads and history operations keep
	// working without it.
	OpenAIAPIKey string

	// AnthropicAPIKey is the Claude credential.
	AnthropicAPIKey string

	// Store configures history persistence.
	Store StoreConfig

	// CopyConfirmTTL is how long a copy confirmation marker persists.
	// Default: 1.5s
	CopyConfirmTTL time.Duration
}

// StoreConfig selects and configures the history persistence driver.
type StoreConfig struct {
	// Driver is one of "file", "sqlite", "memory". Default: "file"
	Driver string

	// Path is the store location for the file and sqlite drivers.
	// Default: $HOME/.summary-pad/history.json (file) or
	// $HOME/.summary-pad/history.db (sqlite)
	Path string

	// Key is the storage key the history is persisted under.
	// Default: "summary"
	Key string
}

// Load reads the application configuration from environment variables.
// Unset variables fall back to defaults; only structurally invalid values
// make Load fail.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Provider:        pkgconfig.GetEnvString("SUMMARY_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		Store: StoreConfig{
			Driver: pkgconfig.GetEnvString("HISTORY_STORE_DRIVER", StoreDriverFile),
			Path:   os.Getenv("HISTORY_STORE_PATH"),
			Key:    pkgconfig.GetEnvString("HISTORY_STORE_KEY", "summary"),
		},
		CopyConfirmTTL: pkgconfig.GetEnvDuration("COPY_CONFIRM_TTL", 1500*time.Millisecond),
	}

	if cfg.Store.Path == "" {
		path, err := defaultStorePath(cfg.Store.Driver)
		if err != nil {
			return nil, err
		}
		cfg.Store.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural errors.
func (c *AppConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderNoop:
	default:
		return fmt.Errorf("invalid SUMMARY_PROVIDER %q: must be one of %q, %q, %q",
			c.Provider, ProviderOpenAI, ProviderClaude, ProviderNoop)
	}

	switch c.Store.Driver {
	case StoreDriverFile, StoreDriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("HISTORY_STORE_PATH is required for the %q driver", c.Store.Driver)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("invalid HISTORY_STORE_DRIVER %q: must be one of %q, %q, %q",
			c.Store.Driver, StoreDriverFile, StoreDriverSQLite, StoreDriverMemory)
	}

	if c.Store.Key == "" {
		return fmt.Errorf("HISTORY_STORE_KEY must not be empty")
	}
	if c.CopyConfirmTTL <= 0 {
		return fmt.Errorf("COPY_CONFIRM_TTL must be positive, got %s", c.CopyConfirmTTL)
	}
	return nil
}

func defaultStorePath(driver string) (string, error) {
	if driver == StoreDriverMemory {
		return "", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for default store path: %w", err)
	}

	name := "history.json"
	if driver == StoreDriverSQLite {
		name = "history.db"
	}
	return home + "/.summary-pad/" + name, nil
}
