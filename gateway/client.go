// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"github.com/google/uuid"

	"github.com/rkhiriev/fabric-gateway-client/internal/logger"
	"github.com/rkhiriev/fabric-gateway-client/internal/signer"
)

// GatewayClient is the single public entry point of the transaction
// pipeline. It holds a Transport to the Fabric gateway and, optionally, a
// DeliverTransport for block-event subscriptions. Both are supplied by the
// caller; GatewayClient never dials anything itself.
type GatewayClient struct {
	transport        Transport
	deliverTransport DeliverTransport
	log              *logger.Logger
}

// Option configures a GatewayClient at construction time.
type Option func(*GatewayClient)

// WithDeliverTransport attaches the collaborator listenBlockEvents uses.
// Omitting it is fine for callers that never subscribe to block events.
func WithDeliverTransport(d DeliverTransport) Option {
	return func(c *GatewayClient) { c.deliverTransport = d }
}

// WithLogger overrides the default no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *GatewayClient) { c.log = l }
}

// New builds a GatewayClient around transport, per spec.md §4.5.
func New(transport Transport, opts ...Option) *GatewayClient {
	c := &GatewayClient{transport: transport, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newCorrelationID mirrors the teacher's per-request trace id: each of
// EvaluateTransaction, PrepareTransaction, SubmitSignedTransaction and
// CommitStatus calls this once and attaches the result to its logger, per
// SPEC_FULL.md §2.3. SubmitAndCommit gets one per stage from those calls;
// the event-stream listeners do not create one.
func newCorrelationID() string {
	return uuid.NewString()
}

// derSign runs message through identity's signing capability and
// normalizes the result to low-S DER, the only signature encoding the
// wire accepts.
func derSign(sign func([]byte) ([]byte, error), message []byte) ([]byte, error) {
	raw, err := sign(message)
	if err != nil {
		return nil, err
	}
	return signer.EncodeDER(raw)
}
