// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [Config] satisfies the invariants
// spec.md §6 names: gateway_url is required, and ws_url (when present) must
// look like a WebSocket endpoint.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *Config) validate() error {
	if cfg.Gateway.URL == "" || cfg.Gateway.RequestTimeout == 0 {
		return ErrInvalidGatewayConfig
	}

	if cfg.Deliver.WSURL != "" &&
		!strings.HasPrefix(cfg.Deliver.WSURL, "ws://") &&
		!strings.HasPrefix(cfg.Deliver.WSURL, "wss://") {
		return ErrInvalidDeliverConfig
	}

	return nil
}
