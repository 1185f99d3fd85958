package config

import (
	"fmt"
	"os"
)

// DefaultSynopticBaseURL is used when SYNOPTIC_BASE_URL is not set.
const DefaultSynopticBaseURL = "https://api.synopticdata.com/v2"

// Config holds application configuration.
type Config struct {
	SynopticToken   string
	SynopticBaseURL string

	// Archive settings. Archiving is enabled only when MINIO_ENDPOINT is
	// set; the remaining MinIO variables are then required.
	ArchiveEnabled bool
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from environment variables.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	config := Config{}
	config.SynopticToken = os.Getenv("SYNOPTIC_TOKEN")
	if config.SynopticToken == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "SYNOPTIC_TOKEN"}
	}
	config.SynopticBaseURL = os.Getenv("SYNOPTIC_BASE_URL")
	if config.SynopticBaseURL == "" {
		config.SynopticBaseURL = DefaultSynopticBaseURL
	}

	config.MinIOEndpoint = os.Getenv("MINIO_ENDPOINT")
	if config.MinIOEndpoint == "" {
		return &config, nil
	}

	config.ArchiveEnabled = true
	config.MinIOAccessKey = os.Getenv("MINIO_ACCESS_KEY")
	if config.MinIOAccessKey == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "MINIO_ACCESS_KEY"}
	}
	config.MinIOSecretKey = os.Getenv("MINIO_SECRET_KEY")
	if config.MinIOSecretKey == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "MINIO_SECRET_KEY"}
	}
	config.MinIOBucket = os.Getenv("MINIO_BUCKET")
	if config.MinIOBucket == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "MINIO_BUCKET"}
	}
	config.MinIOUseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	return &config, nil
}
