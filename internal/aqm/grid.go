package aqm

import (
	"fmt"
	"strings"
)

// Domain identifies an AQM output domain.
type Domain string

const (
	DomainCONUS  Domain = "conus"
	DomainAlaska Domain = "alaska"
	DomainHawaii Domain = "hawaii"
)

// ErrUnknownDomain is wrapped by lookups that receive a domain not present in
// the grid table.
var ErrUnknownDomain = fmt.Errorf("unknown AQM domain")

// Grid describes the NCEP output grid for a domain.
type Grid struct {
	// ID is the NCEP grid number used in output filenames.
	ID string
	// Description of the model domain.
	Description string
	// ResolutionKM is the nominal grid spacing.
	ResolutionKM float64
	// NX, NY are the grid dimensions.
	NX, NY int
}

var grids = map[Domain]Grid{
	DomainCONUS: {
		ID:           "227",
		Description:  "NOAA Air Quality Model (CMAQ) - CONUS",
		ResolutionKM: 5.079,
		NX:           1473,
		NY:           1025,
	},
	DomainAlaska: {
		ID:           "198",
		Description:  "NOAA Air Quality Model (CMAQ) - Alaska",
		ResolutionKM: 5.953,
		NX:           825,
		NY:           553,
	},
	DomainHawaii: {
		ID:           "196",
		Description:  "NOAA Air Quality Model (CMAQ) - Hawaii",
		ResolutionKM: 2.5,
		NX:           321,
		NY:           225,
	},
}

// GridFor returns the grid metadata for a domain.
func GridFor(d Domain) (Grid, error) {
	g, ok := grids[d]
	if !ok {
		return Grid{}, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	return g, nil
}

// domainAliases maps the names used by the model templates and by NCEP
// (model name, grid number) onto domains.
var domainAliases = map[string]Domain{
	"conus":  DomainCONUS,
	"aqm":    DomainCONUS,
	"naqfc":  DomainCONUS,
	"cs":     DomainCONUS,
	"227":    DomainCONUS,
	"alaska": DomainAlaska,
	"aqm-ak": DomainAlaska,
	"ak":     DomainAlaska,
	"198":    DomainAlaska,
	"hawaii": DomainHawaii,
	"aqm-hi": DomainHawaii,
	"hi":     DomainHawaii,
	"196":    DomainHawaii,
}

// ParseDomain resolves a user-supplied domain name, accepting the canonical
// names plus common aliases and the NCEP grid numbers.
func ParseDomain(s string) (Domain, error) {
	d, ok := domainAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return d, nil
}
