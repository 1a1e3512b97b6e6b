// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Server-side requirements (DSN, token sign key) are enforced in
// cmd/server, because the same merged config also backs the client, which
// legitimately runs without them.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidClientConfigs
	}

	if cfg.Storage.CachePath == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
