package exitcode

// Exit codes for the CLIs.
// Orchestration can use these to decide retry strategy.
const (
	// Success - job completed successfully
	Success = 0

	// ConfigError - missing or invalid configuration
	// Don't retry: fix the config first
	ConfigError = 1

	// NetworkError - transient network failure (probe timeout, DNS, etc.)
	// Retry with backoff
	NetworkError = 2

	// APIError - remote API returned an error (rate limit, auth, bad request)
	// Check logs, may need manual intervention
	APIError = 3

	// StorageError - failed to write the output file or archive it
	// Retry with backoff
	StorageError = 4

	// DataError - unsupported product/domain/format combination
	// Don't retry: fix the request
	DataError = 5
)
