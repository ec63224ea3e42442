// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gateway is the single public entry point of the transaction
// pipeline: GatewayClient builds proposals and requests via
// internal/message, has the caller's custodian sign them, DER-normalizes
// the signature, and drives them through a Transport (the gateway RPCs)
// or a DeliverTransport (the peer's block-event WebSocket proxy).
//
// Grounded on the teacher's internal/service.Service, which holds an
// internal/adapter.ServerAdapter and orchestrates multi-step server calls
// the same way GatewayClient orchestrates prepare -> submit -> commitStatus
// over a Transport.
package gateway
