package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Observation is a single station reading in long format. This is the row
// shape the Synoptic adapter produces and the export writers consume.
type Observation struct {
	Station    string    `parquet:"station"`
	Variable   string    `parquet:"variable"`
	ObservedAt time.Time `parquet:"observed_at,timestamp"`
	Value      float64   `parquet:"value"`
	Units      string    `parquet:"units"`
}

// RunID identifies a single fetch run. UUIDv7 so archived objects sort by
// creation time.
type RunID string

// NewRunID generates a fresh UUIDv7 run identifier.
func NewRunID() (RunID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run-id: %w", err)
	}
	return RunID(id.String()), nil
}

// Validate checks that the RunID is a valid UUIDv7.
func (r RunID) Validate() error {
	if r == "" {
		return fmt.Errorf("run-id cannot be empty")
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return fmt.Errorf("run-id must be a valid UUID: %w", err)
	}
	if id.Version() != uuid.Version(7) {
		return fmt.Errorf("run-id must be a UUIDv7, got v%d", id.Version())
	}
	return nil
}

// String returns the run ID as a string.
func (r RunID) String() string {
	return string(r)
}
