// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package message assembles the Fabric protobuf wire structures the gateway
// client sends and receives: serialized identities, transaction contexts,
// proposals, envelopes, seek-info requests, commit-status requests, and
// chaincode-events requests. Every builder here is a pure function of its
// inputs (aside from the random nonce and the current timestamp); none of
// them touch the network or the custodian.
//
// Grounded on the teacher's request-building layer
// (internal/adapter's ServerAdapter request constructors) and on SAGE-X's
// handshake client (pkg/agent/handshake/client.go), which shows the same
// "build a protobuf struct literal, marshal deterministically, hand the
// bytes to a signer" shape this package generalizes to Fabric's generated
// schemas from fabric-protos-go-apiv2.
package message

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// marshal wraps proto.MarshalOptions{Deterministic: true}.Marshal so every
// builder in this package produces byte-identical output for
// byte-identical input messages, which the tx-id determinism invariant and
// signature stability both depend on.
func marshal(m proto.Message) ([]byte, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("message: marshal %T: %w", m, err)
	}
	return b, nil
}

// txID computes hex(SHA-256(nonce || creatorBytes)), per spec.md §3 and the
// tx-id determinism invariant in spec.md §8.
func txID(nonce, creatorBytes []byte) string {
	h := sha256.New()
	h.Write(nonce)
	h.Write(creatorBytes)
	return hex.EncodeToString(h.Sum(nil))
}
