// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Config is the top-level configuration container for the gateway client.
// It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file, in that precedence order.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Gateway holds the connection settings for the Fabric gateway RPCs.
	Gateway Gateway `envPrefix:"GATEWAY_"`

	// Deliver holds the WebSocket settings for the peer deliver stream.
	Deliver Deliver `envPrefix:"DELIVER_"`

	// TLS holds the CA certificate used to pin the gateway's TLS chain.
	TLS TLS `envPrefix:"TLS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Gateway holds the address and timeout settings for the Fabric gateway
// endpoint (the grpc-web / native gRPC transport), see spec.md §6
// "Configuration (client)".
type Gateway struct {
	// URL is the gateway endpoint, e.g. "peer0.org1.example.com:7051".
	// Required.
	// Env: GATEWAY_URL
	URL string `env:"URL"`

	// DialTimeout bounds how long the transport may spend establishing the
	// underlying connection.
	// Env: GATEWAY_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`

	// RequestTimeout bounds a single RPC (evaluate, endorse, submit,
	// commit-status). Streaming RPCs (chaincode events) are not bounded by
	// this value; they run until cancelled.
	// Env: GATEWAY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// UseWebTransport selects the grpc-web (HTTP/1.1, resty-based) transport
	// instead of native gRPC (HTTP/2).
	// Env: GATEWAY_USE_WEB_TRANSPORT
	UseWebTransport bool `env:"USE_WEB_TRANSPORT"`
}

// Deliver holds the WebSocket settings used by listenBlockEvents. Required
// only when block-event subscription is used.
type Deliver struct {
	// WSURL is the base WebSocket URL proxying the peer's DeliverFiltered
	// service, e.g. "wss://gateway.example.com/ws".
	// Env: DELIVER_WS_URL
	WSURL string `env:"WS_URL"`

	// DialTimeout bounds the WebSocket handshake.
	// Env: DELIVER_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`
}

// TLS holds the settings used to pin the gateway's certificate chain.
type TLS struct {
	// CACertPEM is the PEM-encoded CA certificate chain, inlined directly
	// rather than as a file path so the config can travel as a single JSON
	// document or environment variable.
	// Env: TLS_CA_CERT
	CACertPEM string `env:"CA_CERT"`
}

// GetConfig loads, merges, and validates the gateway client configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *Config or an error if any source fails to load
// or the final config fails validation.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
