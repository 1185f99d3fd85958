package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kacper-wojtaszczyk/naqfc/internal/export"
	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
	"github.com/kacper-wojtaszczyk/naqfc/internal/storage"
)

// Request contains input parameters for an observation fetch.
type Request struct {
	Stations  []string
	Variables []string
	Start     time.Time
	End       time.Time
}

// Validate checks the request is complete and the window is ordered.
func (r Request) Validate() error {
	if len(r.Stations) == 0 {
		return fmt.Errorf("at least one station is required")
	}
	if len(r.Variables) == 0 {
		return fmt.Errorf("at least one variable is required")
	}
	if !r.End.After(r.Start) {
		return fmt.Errorf("end %s must be after start %s",
			r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}
	return nil
}

// Fetcher retrieves observation rows for a given request.
type Fetcher interface {
	TimeSeries(ctx context.Context, req Request) ([]model.Observation, error)
}

// ObjectStorage writes data streams to object storage.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data io.Reader) error
}

// Service orchestrates a fetch run: retrieve, write locally, optionally
// archive.
type Service struct {
	fetcher Fetcher
	archive ObjectStorage // nil disables archiving
}

func NewService(fetcher Fetcher, archive ObjectStorage) *Service {
	return &Service{fetcher: fetcher, archive: archive}
}

// Run executes a fetch and writes the rows to outPath (format chosen by
// extension). It returns the number of rows written.
func (s *Service) Run(ctx context.Context, req Request, outPath string, runID model.RunID) (int, error) {
	if err := runID.Validate(); err != nil {
		return 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	slog.DebugContext(ctx, "fetch started",
		"stations", req.Stations, "variables", req.Variables, "run_id", runID)

	rows, err := s.fetcher.TimeSeries(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}

	n, err := export.Write(outPath, rows)
	if err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}

	if s.archive != nil {
		if err := s.archiveFile(ctx, req, outPath, runID); err != nil {
			return n, fmt.Errorf("archive: %w", err)
		}
	}

	slog.InfoContext(ctx, "fetch complete", "rows", n, "output", outPath, "run_id", runID)
	return n, nil
}

func (s *Service) archiveFile(ctx context.Context, req Request, outPath string, runID model.RunID) error {
	f, err := os.Open(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	key := storage.ObjectKey{
		Source:    "synoptic",
		Dataset:   "timeseries",
		Date:      req.Start.UTC().Format("2006-01-02"),
		RunID:     runID,
		Extension: extension(outPath),
	}

	slog.DebugContext(ctx, "archiving output", "key", key.Key())
	return s.archive.Put(ctx, key.Key(), f)
}

func extension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return ext
}
