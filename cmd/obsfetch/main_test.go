package main

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/kacper-wojtaszczyk/naqfc/internal/adapters/synoptic"
	"github.com/kacper-wojtaszczyk/naqfc/internal/exitcode"
	"github.com/kacper-wojtaszczyk/naqfc/internal/export"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"QV4,QRS,A3822,A1386", []string{"QV4", "QRS", "A3822", "A1386"}},
		{"QV4, QRS ", []string{"QV4", "QRS"}},
		{"QV4,,QRS", []string{"QV4", "QRS"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "API client error",
			err:  fmt.Errorf("fetch: %w", &synoptic.ClientError{Message: "boom"}),
			want: exitcode.APIError,
		},
		{
			name: "unsupported extension",
			err:  fmt.Errorf("write: %w", export.ErrUnsupportedExtension),
			want: exitcode.DataError,
		},
		{
			name: "anything else",
			err:  errors.New("disk full"),
			want: exitcode.StorageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
