// Package export serializes observation rows to local files. The format is
// chosen by output extension, matching the retrieval workflow's convention.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
)

// ErrUnsupportedExtension is wrapped when the output path has an extension
// no writer handles.
var ErrUnsupportedExtension = fmt.Errorf("unsupported output extension")

var csvHeader = []string{"station", "variable", "observed_at", "value", "units"}

// Write serializes rows to path, picking the format from the extension
// (.parquet or .csv). It returns the number of rows written.
func Write(path string, rows []model.Observation) (int, error) {
	switch filepath.Ext(path) {
	case ".parquet":
		return writeParquet(path, rows)
	case ".csv":
		return writeCSV(path, rows)
	default:
		return 0, fmt.Errorf("%w: %q (want .parquet or .csv)", ErrUnsupportedExtension, filepath.Ext(path))
	}
}

func writeParquet(path string, rows []model.Observation) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	w := parquet.NewGenericWriter[model.Observation](f)
	n, err := w.Write(rows)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return n, nil
}

func writeCSV(path string, rows []model.Observation) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, row := range rows {
		record := []string{
			row.Station,
			row.Variable,
			row.ObservedAt.UTC().Format(time.RFC3339),
			strconv.FormatFloat(row.Value, 'f', -1, 64),
			row.Units,
		}
		if err := w.Write(record); err != nil {
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, err
	}
	return len(rows), nil
}
