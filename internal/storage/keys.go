package storage

import (
	"fmt"

	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
)

type ObjectKey struct {
	Source    string // upstream service, e.g. "synoptic"
	Dataset   string // dataset within the service, e.g. "timeseries"
	Date      string // in YYYY-MM-DD format
	RunID     model.RunID
	Extension string
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("%s/%s/%s/%s.%s", k.Source, k.Dataset, k.Date, k.RunID, k.Extension)
}
