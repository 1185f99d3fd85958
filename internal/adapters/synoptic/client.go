package synoptic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kacper-wojtaszczyk/naqfc/internal/fetch"
	"github.com/kacper-wojtaszczyk/naqfc/internal/model"
)

// DefaultBaseURL is the production Synoptic API endpoint.
const DefaultBaseURL = "https://api.synopticdata.com/v2"

// apiTimeLayout is the start/end format the API expects (UTC, minute
// precision).
const apiTimeLayout = "200601021504"

// Client interacts with the Synoptic Mesonet API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new Synoptic API client. The token comes from a
// Synoptic account; rate limiting and quotas are enforced server-side.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// TimeSeries fetches station observations for the request window and returns
// them as long-format rows. Failures are surfaced as-is; there is no retry
// or recovery here.
func (c *Client) TimeSeries(ctx context.Context, req fetch.Request) ([]model.Observation, error) {
	slog.InfoContext(ctx, "requesting timeseries",
		"stations", strings.Join(req.Stations, ","),
		"variables", strings.Join(req.Variables, ","),
		"start", req.Start.UTC().Format(apiTimeLayout),
		"end", req.End.UTC().Format(apiTimeLayout))

	resp, err := c.apiGetTimeSeries(ctx, req)
	if err != nil {
		return nil, c.toClientError(err, "failed to fetch timeseries")
	}

	if resp.Summary.ResponseCode != responseCodeOK {
		return nil, c.toClientError(&responseError{
			Code:    resp.Summary.ResponseCode,
			Message: resp.Summary.ResponseMessage,
		}, "API rejected timeseries request")
	}

	rows := resp.flatten()
	slog.InfoContext(ctx, "timeseries fetched", "stations", len(resp.Stations), "rows", len(rows))
	return rows, nil
}

func (c *Client) apiGetTimeSeries(ctx context.Context, req fetch.Request) (*timeSeriesResponse, error) {
	q := url.Values{}
	q.Set("token", c.token)
	q.Set("stid", strings.Join(req.Stations, ","))
	q.Set("vars", strings.Join(req.Variables, ","))
	q.Set("start", req.Start.UTC().Format(apiTimeLayout))
	q.Set("end", req.End.UTC().Format(apiTimeLayout))
	q.Set("obtimezone", "UTC")

	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/stations/timeseries?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != 200 {
		return nil, &apiError{StatusCode: response.StatusCode, Message: "timeseries request failed"}
	}

	var ts timeSeriesResponse
	if err := json.NewDecoder(response.Body).Decode(&ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// toClientError wraps an internal error into a ClientError for external
// consumers.
func (c *Client) toClientError(err error, context string) error {
	if err == nil {
		return nil
	}
	return &ClientError{
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
