package synoptic

import (
	"regexp"
	"sort"
	"time"

	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
)

// timeSeriesResponse is the raw Synoptic v2 stations/timeseries payload.
// OBSERVATIONS holds parallel arrays keyed by column name; value columns are
// suffixed with a sensor-set tag ("_set_1", "_set_1d" for derived).
type timeSeriesResponse struct {
	Stations []station         `json:"STATION"`
	Units    map[string]string `json:"UNITS"`
	Summary  summary           `json:"SUMMARY"`
}

type station struct {
	STID         string                `json:"STID"`
	Name         string                `json:"NAME"`
	Observations map[string]columnData `json:"OBSERVATIONS"`
}

type summary struct {
	ResponseCode    int    `json:"RESPONSE_CODE"`
	ResponseMessage string `json:"RESPONSE_MESSAGE"`
	NumberOfObjects int    `json:"NUMBER_OF_OBJECTS"`
}

// columnData is either the date_time string column or a numeric value
// column; both decode into it, with the unused half nil.
type columnData []any

// responseCodeOK is the summary code for a successful request.
const responseCodeOK = 1

// setSuffix strips the sensor-set tag from a value column name.
var setSuffix = regexp.MustCompile(`_set_\d+[a-z]?$`)

const dateTimeColumn = "date_time"

// flatten converts the column-oriented station payloads into long-format
// observation rows. Null readings are dropped. Rows come out ordered by
// station, then variable, then time, so repeated fetches serialize
// identically.
func (r *timeSeriesResponse) flatten() []model.Observation {
	var rows []model.Observation

	for _, st := range r.Stations {
		times := parseTimes(st.Observations[dateTimeColumn])
		if len(times) == 0 {
			continue
		}

		cols := make([]string, 0, len(st.Observations))
		for name := range st.Observations {
			if name != dateTimeColumn {
				cols = append(cols, name)
			}
		}
		sort.Strings(cols)

		for _, col := range cols {
			variable := setSuffix.ReplaceAllString(col, "")
			units := r.Units[variable]
			for i, raw := range st.Observations[col] {
				if i >= len(times) {
					break
				}
				if times[i].IsZero() {
					continue
				}
				v, ok := raw.(float64)
				if !ok {
					continue
				}
				rows = append(rows, model.Observation{
					Station:    st.STID,
					Variable:   variable,
					ObservedAt: times[i],
					Value:      v,
					Units:      units,
				})
			}
		}
	}

	return rows
}

// parseTimes keeps positional alignment with the value columns: an
// unparseable entry becomes the zero time so later readings still pair with
// their own timestamps.
func parseTimes(col columnData) []time.Time {
	times := make([]time.Time, len(col))
	for i, raw := range col {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			continue
		}
		times[i] = t.UTC()
	}
	return times
}
