// Package main provides the CLI command for working with the summary
// history: listing records, copying a record's text to the clipboard,
// and deleting records.
// Usage: history [--copy ID] [--delete ID] [--output json]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	appconfig "summary-pad/internal/config"
	"summary-pad/internal/domain/entity"
	"summary-pad/internal/history"
	"summary-pad/internal/infra/clipboard"
	"summary-pad/internal/kvstore"
	"summary-pad/internal/observability/logging"
	"summary-pad/internal/usecase/interaction"
)

// RecordOutput represents the JSON output format for a history record.
type RecordOutput struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func main() {
	var (
		copyID       int64
		deleteID     int64
		outputFormat string
	)

	flag.Int64Var(&copyID, "copy", 0, "Copy the text of the record with this id to the clipboard")
	flag.Int64Var(&deleteID, "delete", 0, "Delete the record with this id")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output format '%s' (must be 'text' or 'json')\n", outputFormat)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: history [--copy ID] [--delete ID] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  history")
		fmt.Fprintln(os.Stderr, "  history --output json")
		fmt.Fprintln(os.Stderr, "  history --copy 1709294400000")
		fmt.Fprintln(os.Stderr, "  history --delete 1709294400000")
		os.Exit(1)
	}
	if copyID != 0 && deleteID != 0 {
		fmt.Fprintln(os.Stderr, "Error: --copy and --delete cannot be combined")
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

	controller := interaction.NewController(store, clipboard.NewSystem(),
		interaction.WithConfirmTTL(cfg.CopyConfirmTTL),
		interaction.WithLogger(logger))

	switch {
	case copyID != 0:
		if err := controller.Copy(copyID); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Error: No record with id %d\n", copyID)
			} else {
				fmt.Fprintf(os.Stderr, "Error: Copy failed: %v\n", err)
			}
			os.Exit(1)
		}
		fmt.Printf("Copied record %d to the clipboard.\n", copyID)

	case deleteID != 0:
		if err := controller.Delete(deleteID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Delete failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted record %d.\n", deleteID)

	default:
		listRecords(store.Records(), outputFormat)
	}
}

func listRecords(records []entity.SummaryRecord, outputFormat string) {
	if outputFormat == "json" {
		out := make([]RecordOutput, len(records))
		for i, record := range records {
			out[i] = RecordOutput{ID: record.ID, Text: record.Text}
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(records) == 0 {
		fmt.Println("No summaries yet.")
		return
	}
	for _, record := range records {
		fmt.Printf("%d\t%s\n", record.ID, record.Text)
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
