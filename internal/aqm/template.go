// Source path templates for NOAA AQM (NAQFC) GRIB2 output.
//
// Data sources:
//   - AWS: https://registry.opendata.aws/noaa-nws-naqfc-pds/ (back to Jan 2020)
//   - NOMADS: https://nomads.ncep.noaa.gov/pub/data/nccf/com/aqm/prod/
package aqm

import (
	"fmt"
	"time"
)

// Product identifies an AQM output product.
type Product string

const (
	ProductMax8hrO3    Product = "max_8hr_o3"
	ProductAve1hrO3    Product = "ave_1hr_o3"
	ProductAve8hrO3    Product = "ave_8hr_o3"
	ProductMax1hrO3    Product = "max_1hr_o3"
	ProductAve24hrPM25 Product = "ave_24hr_pm25"
	ProductAve1hrPM25  Product = "ave_1hr_pm25"
	ProductMax1hrPM25  Product = "max_1hr_pm25"
)

// ErrUnsupportedProduct is wrapped when a product is not offered for the
// requested domain.
var ErrUnsupportedProduct = fmt.Errorf("unsupported AQM product")

var productDescriptions = map[Product]string{
	ProductMax8hrO3:    "Daily maximum 8-hour average ozone",
	ProductAve1hrO3:    "Hourly average ozone",
	ProductAve8hrO3:    "8-hour average ozone",
	ProductMax1hrO3:    "Daily maximum 1-hour ozone",
	ProductAve24hrPM25: "24-hour average PM2.5",
	ProductAve1hrPM25:  "Hourly average PM2.5",
	ProductMax1hrPM25:  "Daily maximum 1-hour PM2.5",
}

// Products offered per domain. CONUS carries the full set; the Alaska and
// Hawaii domains publish only the four core products.
var domainProducts = map[Domain][]Product{
	DomainCONUS: {
		ProductMax8hrO3, ProductAve1hrO3, ProductAve8hrO3, ProductMax1hrO3,
		ProductAve24hrPM25, ProductAve1hrPM25, ProductMax1hrPM25,
	},
	DomainAlaska: {ProductMax8hrO3, ProductAve1hrO3, ProductAve24hrPM25, ProductAve1hrPM25},
	DomainHawaii: {ProductMax8hrO3, ProductAve1hrO3, ProductAve24hrPM25, ProductAve1hrPM25},
}

// ProductsFor lists the products available on a domain, in canonical order.
func ProductsFor(d Domain) ([]Product, error) {
	ps, ok := domainProducts[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	return ps, nil
}

// Describe returns the human-readable description of a product.
func Describe(p Product) (string, error) {
	desc, ok := productDescriptions[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProduct, p)
	}
	return desc, nil
}

// MaxForecastHour is the AQM forecast length. Output files bundle all lead
// times, so the forecast hour never appears in a path; it only bounds what a
// caller may later subset.
const MaxForecastHour = 72

// Request holds the query parameters that select one AQM output file.
type Request struct {
	// Date is the model initialization time. AQM runs at the 06Z and 12Z
	// cycles; the hour is substituted into the cycle field of the path.
	Date time.Time
	// Domain selects the output grid.
	Domain Domain
	// Product selects the output variable.
	Product Product
	// ForecastHour is the requested lead time.
	ForecastHour int
	// Uncorrected selects the raw model output instead of the
	// bias-corrected product (the default).
	Uncorrected bool
}

// Source is one resolvable location of an AQM output file. Sources are
// probed in priority order (AWS first, NOMADS as fallback).
type Source struct {
	// Backend names the hosting service ("aws" or "nomads").
	Backend string
	// URL of the GRIB2 file.
	URL string
}

// IdxURL returns the URL of the wgrib2 inventory sidecar for this source.
func (s Source) IdxURL() string {
	return s.URL + ".idx"
}

// Validate checks that the request names a supported domain/product
// combination and a forecast hour within the model's range.
func (r Request) Validate() error {
	ps, ok := domainProducts[r.Domain]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDomain, r.Domain)
	}
	supported := false
	for _, p := range ps {
		if p == r.Product {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %q not available on domain %q", ErrUnsupportedProduct, r.Product, r.Domain)
	}
	if r.ForecastHour < 0 || r.ForecastHour > MaxForecastHour {
		return fmt.Errorf("forecast hour %d outside 0..%d", r.ForecastHour, MaxForecastHour)
	}
	return nil
}

// bcSuffix returns the bias-correction filename suffix.
func (r Request) bcSuffix() string {
	if r.Uncorrected {
		return ""
	}
	return "_bc"
}

// Sources resolves the request to its remote locations, in priority order.
// The result is a pure function of the request: no I/O, no caching.
//
// AWS publishes under {version}/CS/{date}/{cycle}/ with the issue date
// repeated in the filename; NOMADS keeps only the current production runs
// under aqm.{date}/ without the date in the filename.
func (r Request) Sources() ([]Source, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	version := VersionFor(r.Date)
	grid := grids[r.Domain]
	ymd := r.Date.UTC().Format("20060102")
	cycle := r.Date.UTC().Hour()

	awsFile := fmt.Sprintf("aqm.t%02dz.%s%s.%s.%s.grib2", cycle, r.Product, r.bcSuffix(), ymd, grid.ID)
	nomadsFile := fmt.Sprintf("aqm.t%02dz.%s%s.%s.grib2", cycle, r.Product, r.bcSuffix(), grid.ID)

	return []Source{
		{
			Backend: "aws",
			URL: fmt.Sprintf("https://noaa-nws-naqfc-pds.s3.amazonaws.com/%s/CS/%s/%02d/%s",
				version, ymd, cycle, awsFile),
		},
		{
			Backend: "nomads",
			URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/aqm/prod/aqm.%s/%s",
				ymd, nomadsFile),
		},
	}, nil
}

// LocalFile returns the canonical local filename for the request, matching
// the AWS filename (it carries the issue date, unlike the NOMADS one).
func (r Request) LocalFile() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	grid := grids[r.Domain]
	ymd := r.Date.UTC().Format("20060102")
	return fmt.Sprintf("aqm.t%02dz.%s%s.%s.%s.grib2",
		r.Date.UTC().Hour(), r.Product, r.bcSuffix(), ymd, grid.ID), nil
}
