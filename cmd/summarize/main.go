// Package main provides the CLI command for submitting text or a PDF
// document for summarization.
// Usage: summarize [--text "..."] [--file doc.pdf] [--output json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	appconfig "summary-pad/internal/config"
	"summary-pad/internal/history"
	"summary-pad/internal/infra/docsum"
	"summary-pad/internal/infra/summarizer"
	"summary-pad/internal/kvstore"
	"summary-pad/internal/observability/logging"
	summaryUC "summary-pad/internal/usecase/summary"
)

// RecordOutput represents the JSON output format for a summary record.
type RecordOutput struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func main() {
	var (
		text         string
		filePath     string
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&text, "text", "", "Text to summarize (reads stdin when empty and no file is given)")
	flag.StringVar(&filePath, "file", "", "PDF document to upload for summarization")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 120*time.Second, "Overall request timeout")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output format '%s' (must be 'text' or 'json')\n", outputFormat)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: summarize [--text \"...\"] [--file doc.pdf] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  summarize --text \"Long article text\"")
		fmt.Fprintln(os.Stderr, "  cat article.txt | summarize")
		fmt.Fprintln(os.Stderr, "  summarize --file report.pdf")
		fmt.Fprintln(os.Stderr, "  summarize --text \"...\" --output json")
		os.Exit(1)
	}

	// Optional .env for local development.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := appconfig.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	kv, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open history store", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			logger.Error("failed to close history store", slog.Any("error", closeErr))
		}
	}()

	store := history.NewStore(kv, cfg.Store.Key, logger)
	store.Load()
	merger := history.NewMerger(store, logger)

	textSummarizer, err := buildTextSummarizer(cfg)
	if err != nil {
		logger.Error("invalid summarizer configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid summarizer configuration: %v\n", err)
		os.Exit(1)
	}

	docConfig, err := docsum.LoadConfig()
	if err != nil {
		logger.Error("invalid document backend configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid document backend configuration: %v\n", err)
		os.Exit(1)
	}
	documents := docsum.NewClient(docConfig)

	orchestrator := summaryUC.NewOrchestrator(textSummarizer, documents, merger,
		summaryUC.WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var record RecordOutput
	if filePath != "" {
		record, err = submitDocument(ctx, orchestrator, filePath)
	} else {
		record, err = submitText(ctx, orchestrator, text)
	}
	if err != nil {
		logger.Error("summarization failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, userMessage(err, cfg.Provider))
		os.Exit(1)
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(record); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(record.Text)
}

func submitText(ctx context.Context, orchestrator *summaryUC.Orchestrator, text string) (RecordOutput, error) {
	if text == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return RecordOutput{}, fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}

	record, err := orchestrator.SubmitText(ctx, text)
	if err != nil {
		return RecordOutput{}, err
	}
	return RecordOutput{ID: record.ID, Text: record.Text}, nil
}

func submitDocument(ctx context.Context, orchestrator *summaryUC.Orchestrator, path string) (RecordOutput, error) {
	file, err := os.Open(path)
	if err != nil {
		return RecordOutput{}, fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	record, err := orchestrator.SubmitDocument(ctx, file)
	if err != nil {
		return RecordOutput{}, err
	}
	return RecordOutput{ID: record.ID, Text: record.Text}, nil
}

// userMessage maps pipeline errors to the messages shown on stderr.
// Quota exhaustion gets its own wording so it is not mistaken for a
// transient failure.
func userMessage(err error, provider string) string {
	switch {
	case errors.Is(err, summarizer.ErrQuotaExceeded):
		return "Error: The API quota is exhausted. Check your plan and billing details before retrying."
	case errors.Is(err, summaryUC.ErrAPIKeyMissing):
		if provider == appconfig.ProviderClaude {
			return "Error: ANTHROPIC_API_KEY is not set. Set it in the environment or a .env file."
		}
		return "Error: OPENAI_API_KEY is not set. Set it in the environment or a .env file."
	case errors.Is(err, summaryUC.ErrEmptyText):
		return "Error: Nothing to summarize. Pass --text, --file, or pipe text on stdin."
	case errors.Is(err, summaryUC.ErrRequestInFlight):
		return "Error: A summarization request is already in flight."
	default:
		return fmt.Sprintf("Error: Summarization failed: %v", err)
	}
}

// openStore opens the configured history persistence driver.
func openStore(cfg *appconfig.AppConfig) (kvstore.Store, error) {
	switch cfg.Store.Driver {
	case appconfig.StoreDriverSQLite:
		return kvstore.NewSQLite(cfg.Store.Path)
	case appconfig.StoreDriverMemory:
		return kvstore.NewMemory(), nil
	default:
		return kvstore.NewFile(cfg.Store.Path)
	}
}

// buildTextSummarizer builds the configured text summarization backend.
// A missing credential yields a nil summarizer; submissions then fail
// with a missing-key error without touching the network.
func buildTextSummarizer(cfg *appconfig.AppConfig) (summarizer.Summarizer, error) {
	switch cfg.Provider {
	case appconfig.ProviderClaude:
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return summarizer.NewClaude(cfg.AnthropicAPIKey), nil
	case appconfig.ProviderNoop:
		return summarizer.NewNoOp(), nil
	default:
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		openaiConfig, err := summarizer.LoadOpenAIConfig()
		if err != nil {
			return nil, err
		}
		return summarizer.NewOpenAI(cfg.OpenAIAPIKey, openaiConfig), nil
	}
}
