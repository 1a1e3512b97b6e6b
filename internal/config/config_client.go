package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the vault server base URL used by the client.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client local storage settings.
type ClientStorage struct {
	// CachePath is the SQLite file backing the offline note cache.
	CachePath string
	// LogPath is the client's log file path; empty means stderr.
	LogPath string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client local storage settings.
	Storage ClientStorage
	// Version is the client build version string.
	Version string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			CachePath: cfg.Storage.Local.CachePath,
			LogPath:   cfg.Storage.Local.LogPath,
		},
		Version: cfg.App.Version,
	}

	return clientCfg, clientCfg.validate()
}
