package aqm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrNoSource is returned when none of a request's sources answer a HEAD
// probe.
var ErrNoSource = fmt.Errorf("no source available")

// DefaultProbeClient is used by Probe callers that do not bring their own
// client.
var DefaultProbeClient = &http.Client{Timeout: 15 * time.Second}

// FindAvailable probes all sources concurrently with HEAD requests and
// returns the first one, in the given priority order, that answers 200.
// Probe failures are availability signals, not errors; only a fully
// unavailable set fails, wrapping ErrNoSource.
func FindAvailable(ctx context.Context, client *http.Client, sources []Source) (Source, error) {
	if client == nil {
		client = DefaultProbeClient
	}
	if len(sources) == 0 {
		return Source{}, ErrNoSource
	}

	available := make([]bool, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			ok, err := head(ctx, client, src.URL)
			if err != nil {
				slog.DebugContext(ctx, "source probe failed", "backend", src.Backend, "error", err)
				return nil
			}
			available[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Source{}, err
	}

	for i, src := range sources {
		if available[i] {
			return src, nil
		}
	}
	return Source{}, fmt.Errorf("%w: probed %d sources", ErrNoSource, len(sources))
}

func head(ctx context.Context, client *http.Client, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
