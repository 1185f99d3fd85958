package aqm

import "time"

// Version tags the operational AQM release that produced a given cycle.
type Version string

const (
	VersionV5 Version = "AQMv5"
	VersionV6 Version = "AQMv6"
	VersionV7 Version = "AQMv7"
)

// Version cutover dates. AQMv6 went operational on 2021-07-20, AQMv7 on
// 2024-05-14.
var (
	v6Start = time.Date(2021, time.July, 20, 0, 0, 0, 0, time.UTC)
	v7Start = time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC)
)

// VersionFor returns the AQM version operational on the given issue date.
// Only the UTC calendar date matters; the cycle hour never moves a run
// across a version boundary. Every date resolves to a version, including
// dates before the model existed.
func VersionFor(t time.Time) Version {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case day.Before(v6Start):
		return VersionV5
	case day.Before(v7Start):
		return VersionV6
	default:
		return VersionV7
	}
}

// String returns the version tag as used in AWS bucket prefixes.
func (v Version) String() string {
	return string(v)
}
