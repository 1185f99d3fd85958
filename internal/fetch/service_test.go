package fetch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kacper-wojtaszczyk/naqfc/internal/export"
	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
)

type stubFetcher struct {
	rows []model.Observation
	err  error
}

func (s stubFetcher) TimeSeries(ctx context.Context, req Request) ([]model.Observation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

type stubStorage struct {
	key  string
	data string
	err  error
}

func (s *stubStorage) Put(ctx context.Context, key string, data io.Reader) error {
	if s.err != nil {
		return s.err
	}
	s.key = key
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.data = string(b)
	return nil
}

const testRunID = model.RunID("01890c24-905b-7122-b170-b60814e6ee06")

func testRows() []model.Observation {
	return []model.Observation{
		{Station: "QV4", Variable: "ozone_concentration", ObservedAt: time.Date(2023, 2, 21, 0, 0, 0, 0, time.UTC), Value: 41.0, Units: "ppb"},
		{Station: "QRS", Variable: "air_temp", ObservedAt: time.Date(2023, 2, 21, 0, 0, 0, 0, time.UTC), Value: 12.3, Units: "Celsius"},
	}
}

func testReq() Request {
	return Request{
		Stations:  []string{"QV4", "QRS"},
		Variables: []string{"ozone_concentration", "air_temp"},
		Start:     time.Date(2023, 2, 21, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2023, 2, 28, 23, 59, 0, 0, time.UTC),
	}
}

func TestService_Run_Success(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "obs.csv")
	storage := &stubStorage{}
	svc := NewService(stubFetcher{rows: testRows()}, storage)

	n, err := svc.Run(context.Background(), testReq(), outPath, testRunID)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("Run() = %d rows, want 2", n)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	wantKey := "synoptic/timeseries/2023-02-21/01890c24-905b-7122-b170-b60814e6ee06.csv"
	if storage.key != wantKey {
		t.Fatalf("archive key = %s, want %s", storage.key, wantKey)
	}
	if !strings.Contains(storage.data, "QV4") {
		t.Fatalf("archived data does not contain written rows")
	}
}

func TestService_Run_NoArchive(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "obs.csv")
	svc := NewService(stubFetcher{rows: testRows()}, nil)

	if _, err := svc.Run(context.Background(), testReq(), outPath, testRunID); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestService_Run_FetchError(t *testing.T) {
	svc := NewService(stubFetcher{err: errors.New("fetch failed")}, &stubStorage{})

	_, err := svc.Run(context.Background(), testReq(), filepath.Join(t.TempDir(), "obs.csv"), testRunID)
	if err == nil || !strings.Contains(err.Error(), "fetch failed") {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestService_Run_ArchiveError(t *testing.T) {
	svc := NewService(stubFetcher{rows: testRows()}, &stubStorage{err: errors.New("store failed")})

	_, err := svc.Run(context.Background(), testReq(), filepath.Join(t.TempDir(), "obs.csv"), testRunID)
	if err == nil || !strings.Contains(err.Error(), "store failed") {
		t.Fatalf("expected archive error, got %v", err)
	}
}

func TestService_Run_UnsupportedExtension(t *testing.T) {
	svc := NewService(stubFetcher{rows: testRows()}, nil)

	_, err := svc.Run(context.Background(), testReq(), filepath.Join(t.TempDir(), "obs.json"), testRunID)
	if !errors.Is(err, export.ErrUnsupportedExtension) {
		t.Fatalf("expected ErrUnsupportedExtension, got %v", err)
	}
}

func TestService_Run_InvalidRunID(t *testing.T) {
	svc := NewService(stubFetcher{rows: testRows()}, nil)

	if _, err := svc.Run(context.Background(), testReq(), filepath.Join(t.TempDir(), "obs.csv"), model.RunID("not-a-uuid")); err == nil {
		t.Fatal("expected validation error for runID")
	}
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr bool
	}{
		{"valid", func(r *Request) {}, false},
		{"no stations", func(r *Request) { r.Stations = nil }, true},
		{"no variables", func(r *Request) { r.Variables = nil }, true},
		{"end before start", func(r *Request) { r.End = r.Start.Add(-time.Hour) }, true},
		{"end equals start", func(r *Request) { r.End = r.Start }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testReq()
			tt.mutate(&req)
			if err := req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
