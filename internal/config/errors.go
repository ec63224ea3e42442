package config

import "errors"

// Validation errors returned by [Config.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidGatewayConfig indicates a missing or invalid gateway
	// endpoint (for example, empty URL or zero request timeout).
	ErrInvalidGatewayConfig = errors.New("invalid gateway configuration")
	// ErrInvalidDeliverConfig indicates an invalid deliver/WebSocket
	// configuration (for example, a malformed ws_url).
	ErrInvalidDeliverConfig = errors.New("invalid deliver configuration")
)
