// Command aqmsrc resolves NOAA AQM (NAQFC) query parameters to the remote
// GRIB2 source URLs on AWS and NOMADS.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kacper-wojtaszczyk/naqfc/internal/aqm"
	"github.com/kacper-wojtaszczyk/naqfc/internal/exitcode"
)

type options struct {
	date    time.Time
	domain  aqm.Domain
	product aqm.Product
	fxx     int
	raw     bool
	check   bool
}

func main() {
	// Configure the global logger
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// Parse CLI flags
	dateStr := flag.String("date", time.Now().UTC().Format("2006-01-02"), "Issue date (YYYY-MM-DD)")
	cycle := flag.Int("cycle", 12, "Issue cycle hour (AQM runs at 06 and 12)")
	domainStr := flag.String("domain", "conus", "Output domain (conus, alaska, hawaii)")
	productStr := flag.String("product", string(aqm.ProductMax8hrO3), "AQM product")
	fxx := flag.Int("fxx", 0, "Forecast hour (0-72)")
	raw := flag.Bool("raw", false, "Select raw model output instead of bias-corrected")
	check := flag.Bool("check", false, "Probe sources and print only the first available one")
	flag.Parse()

	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		slog.Error("invalid date format", "date", *dateStr, "error", err)
		fmt.Fprintf(os.Stderr, "Usage: date must be in YYYY-MM-DD format\n")
		os.Exit(exitcode.ConfigError)
	}
	domain, err := aqm.ParseDomain(*domainStr)
	if err != nil {
		slog.Error("invalid domain", "domain", *domainStr, "error", err)
		fmt.Fprintf(os.Stderr, "Usage: domain must be one of conus, alaska, hawaii\n")
		os.Exit(exitcode.ConfigError)
	}

	opts := options{
		date:    time.Date(date.Year(), date.Month(), date.Day(), *cycle, 0, 0, 0, time.UTC),
		domain:  domain,
		product: aqm.Product(*productStr),
		fxx:     *fxx,
		raw:     *raw,
		check:   *check,
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("application error", "error", err)
		switch {
		case errors.Is(err, aqm.ErrUnknownDomain), errors.Is(err, aqm.ErrUnsupportedProduct):
			os.Exit(exitcode.DataError)
		case errors.Is(err, aqm.ErrNoSource):
			os.Exit(exitcode.NetworkError)
		default:
			os.Exit(exitcode.DataError)
		}
	}
}

// run resolves the request and prints sources to out, one per line.
func run(ctx context.Context, opts options, out io.Writer) error {
	req := aqm.Request{
		Date:         opts.date,
		Domain:       opts.domain,
		Product:      opts.product,
		ForecastHour: opts.fxx,
		Uncorrected:  opts.raw,
	}

	sources, err := req.Sources()
	if err != nil {
		return err
	}

	if opts.check {
		src, err := aqm.FindAvailable(ctx, nil, sources)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "source available", "backend", src.Backend)
		fmt.Fprintf(out, "%s\t%s\n", src.Backend, src.URL)
		return nil
	}

	local, err := req.LocalFile()
	if err != nil {
		return err
	}
	for _, src := range sources {
		fmt.Fprintf(out, "%s\t%s\n", src.Backend, src.URL)
	}
	slog.InfoContext(ctx, "request resolved",
		"version", aqm.VersionFor(req.Date), "local_file", local)
	return nil
}
