package synoptic

import "fmt"

// apiError represents an HTTP-level error from the Synoptic API.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("synoptic: %s (status %d)", e.Message, e.StatusCode)
}

// responseError represents an in-band error reported by the API summary
// (bad token, unknown station, no data in range).
type responseError struct {
	Code    int
	Message string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("synoptic: API response code %d: %s", e.Code, e.Message)
}

// ClientError wraps any failure for external consumers.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("synoptic client: %s", e.Message)
}
