// Command obsfetch pulls station observations from the Synoptic API and
// writes them to a Parquet or CSV file, optionally archiving the result to
// object storage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kacper-wojtaszczyk/naqfc/internal/adapters/synoptic"
	"github.com/kacper-wojtaszczyk/naqfc/internal/config"
	"github.com/kacper-wojtaszczyk/naqfc/internal/exitcode"
	"github.com/kacper-wojtaszczyk/naqfc/internal/export"
	"github.com/kacper-wojtaszczyk/naqfc/internal/fetch"
	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
	"github.com/kacper-wojtaszczyk/naqfc/internal/storage"
)

// cliTimeLayout is the start/end format accepted on the command line.
const cliTimeLayout = "2006-01-02T15:04"

func main() {
	// Configure the global logger
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// Parse CLI flags
	stationsStr := flag.String("stations", "QV4,QRS,A3822,A1386", "Comma-separated station IDs")
	varsStr := flag.String("vars", "ozone_concentration,air_temp", "Comma-separated variable names")
	startStr := flag.String("start", "2023-02-21T00:00", "Window start (YYYY-MM-DDTHH:MM, UTC)")
	endStr := flag.String("end", "2023-02-28T23:59", "Window end (YYYY-MM-DDTHH:MM, UTC)")
	outPath := flag.String("out", "synoptic_data.parquet", "Output file (.parquet or .csv)")
	runIDStr := flag.String("run-id", "", "Run identifier (UUIDv7, generated when empty)")
	flag.Parse()

	start, err := time.ParseInLocation(cliTimeLayout, *startStr, time.UTC)
	if err != nil {
		slog.Error("invalid start time", "start", *startStr, "error", err)
		fmt.Fprintf(os.Stderr, "Usage: start must be in YYYY-MM-DDTHH:MM format\n")
		os.Exit(exitcode.ConfigError)
	}
	end, err := time.ParseInLocation(cliTimeLayout, *endStr, time.UTC)
	if err != nil {
		slog.Error("invalid end time", "end", *endStr, "error", err)
		fmt.Fprintf(os.Stderr, "Usage: end must be in YYYY-MM-DDTHH:MM format\n")
		os.Exit(exitcode.ConfigError)
	}

	runID := model.RunID(*runIDStr)
	if runID == "" {
		runID, err = model.NewRunID()
		if err != nil {
			slog.Error("failed to generate run-id", "error", err)
			os.Exit(exitcode.ConfigError)
		}
	}
	if err := runID.Validate(); err != nil {
		slog.Error("invalid run-id", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: run-id must be a UUIDv7\n")
		os.Exit(exitcode.ConfigError)
	}

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := synoptic.NewClient(cfg.SynopticBaseURL, cfg.SynopticToken)

	var archive fetch.ObjectStorage
	if cfg.ArchiveEnabled {
		minioCfg := storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		}
		minioClient, err := storage.NewMinIOClient(ctx, minioCfg)
		if err != nil {
			slog.Error("failed to initialize minio client", "error", err)
			os.Exit(exitcode.ConfigError)
		}
		archive = minioClient
	}

	svc := fetch.NewService(client, archive)

	req := fetch.Request{
		Stations:  splitList(*stationsStr),
		Variables: splitList(*varsStr),
		Start:     start,
		End:       end,
	}

	n, err := svc.Run(ctx, req, *outPath, runID)
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(exitCodeFor(err))
	}

	slog.Info("saved rows", "rows", n, "output", *outPath)
}

func exitCodeFor(err error) int {
	var clientErr *synoptic.ClientError
	switch {
	case errors.As(err, &clientErr):
		return exitcode.APIError
	case errors.Is(err, export.ErrUnsupportedExtension):
		return exitcode.DataError
	default:
		return exitcode.StorageError
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
