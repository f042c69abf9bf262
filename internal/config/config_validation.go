// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

package config

import "strings"

// placeholderPrefix marks credential values that were never filled in. The
// shipped example config uses "YOUR_API_KEY"-style sentinels for every field
// of the remote bundle.
const placeholderPrefix = "YOUR_"

// Validate reports whether the remote credential bundle is usable: every
// required field must be present and none may still hold an unresolved
// placeholder sentinel. Pure and total — it never fails, it only answers.
//
// The client uses the answer to pick its mode: false means local-only
// operation, not a configuration error.
func (r Remote) Validate() bool {
	required := []string{r.HTTPAddress, r.WSAddress, r.APIKey, r.ProjectID}
	for _, v := range required {
		v = strings.TrimSpace(v)
		if v == "" || strings.HasPrefix(v, placeholderPrefix) {
			return false
		}
	}

	return true
}

// validate checks the merged [StructuredConfig] after building. The shared
// config is intentionally permissive here: the server and client runtimes
// each validate the subset they actually require ([GetServerConfig],
// [ClientConfig.validate]).
func (cfg *StructuredConfig) validate() error {
	return nil
}

// validateServer checks the invariants the server runtime cannot start
// without: a database DSN, complete token settings, and a listen address.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	return nil
}
