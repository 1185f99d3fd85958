package synoptic

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeSeriesResponse_Flatten(t *testing.T) {
	body := `{
		"STATION": [
			{
				"STID": "A3822",
				"OBSERVATIONS": {
					"date_time": ["2023-02-21T00:00:00Z", "2023-02-21T01:00:00Z", "2023-02-21T02:00:00Z"],
					"pm_2_5_concentration_set_1": [8.1, null, 9.4],
					"air_temp_set_1d": [1.0, 2.0, 3.0]
				}
			},
			{
				"STID": "QRS",
				"OBSERVATIONS": {
					"date_time": ["2023-02-21T00:00:00Z"],
					"ozone_concentration_set_1": [38.0]
				}
			}
		],
		"UNITS": {"pm_2_5_concentration": "ug/m3", "air_temp": "Celsius", "ozone_concentration": "ppb"},
		"SUMMARY": {"RESPONSE_CODE": 1, "RESPONSE_MESSAGE": "OK"}
	}`

	var resp timeSeriesResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rows := resp.flatten()

	// 3 air_temp + 2 pm2.5 (one null dropped) + 1 ozone.
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}

	// Derived sensor-set suffix (_set_1d) is stripped too.
	first := rows[0]
	if first.Station != "A3822" || first.Variable != "air_temp" {
		t.Errorf("first row = %s/%s, want A3822/air_temp", first.Station, first.Variable)
	}
	if first.Units != "Celsius" {
		t.Errorf("air_temp units = %q, want Celsius", first.Units)
	}
	if !first.ObservedAt.Equal(time.Date(2023, 2, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first observed-at = %s", first.ObservedAt)
	}

	for _, row := range rows {
		if row.Variable == "pm_2_5_concentration" && row.Units != "ug/m3" {
			t.Errorf("pm2.5 units = %q", row.Units)
		}
	}

	last := rows[len(rows)-1]
	if last.Station != "QRS" || last.Variable != "ozone_concentration" || last.Value != 38.0 {
		t.Errorf("last row = %+v", last)
	}
}

func TestTimeSeriesResponse_Flatten_BadTimestampKeepsAlignment(t *testing.T) {
	resp := timeSeriesResponse{
		Units: map[string]string{"ozone_concentration": "ppb"},
		Stations: []station{
			{STID: "QV4", Observations: map[string]columnData{
				"date_time":                 {"2023-02-21T00:00:00Z", "garbage", "2023-02-21T02:00:00Z"},
				"ozone_concentration_set_1": {41.0, 42.0, 43.0},
			}},
		},
	}

	rows := resp.flatten()

	// The reading paired with the bad timestamp is dropped; its neighbours
	// keep their own timestamps.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Value != 41.0 || !rows[0].ObservedAt.Equal(time.Date(2023, 2, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].Value != 43.0 || !rows[1].ObservedAt.Equal(time.Date(2023, 2, 21, 2, 0, 0, 0, time.UTC)) {
		t.Errorf("second row misaligned: %+v", rows[1])
	}
}

func TestTimeSeriesResponse_Flatten_NoTimes(t *testing.T) {
	resp := timeSeriesResponse{
		Stations: []station{
			{STID: "QV4", Observations: map[string]columnData{
				"ozone_concentration_set_1": {41.0},
			}},
		},
	}

	if rows := resp.flatten(); len(rows) != 0 {
		t.Fatalf("expected no rows without a date_time column, got %d", len(rows))
	}
}

func TestTimeSeriesResponse_Flatten_Deterministic(t *testing.T) {
	resp := timeSeriesResponse{
		Units: map[string]string{"a": "x", "b": "y"},
		Stations: []station{
			{STID: "QV4", Observations: map[string]columnData{
				"date_time": {"2023-02-21T00:00:00Z"},
				"b_set_1":   {2.0},
				"a_set_1":   {1.0},
			}},
		},
	}

	first := resp.flatten()
	for i := 0; i < 10; i++ {
		again := resp.flatten()
		if len(again) != len(first) {
			t.Fatalf("row count changed between calls")
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("row order not deterministic: %+v vs %+v", again[j], first[j])
			}
		}
	}
	if first[0].Variable != "a" || first[1].Variable != "b" {
		t.Errorf("variables not sorted: %s, %s", first[0].Variable, first[1].Variable)
	}
}
