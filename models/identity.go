// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the value types shared across the gateway client:
// identities, transaction parameters, and the records produced by the
// transaction pipeline and the event streams.
package models

// AppIdentity is an immutable value object carrying the user's certificate
// plus a reference to the custodian's signing capability. sign must call
// back into the custodian that issued the identity; the private key itself
// never travels with an AppIdentity.
type AppIdentity struct {
	// MSPID identifies the Membership Service Provider the identity
	// belongs to, e.g. "Org1MSP".
	MSPID string

	// CertPEM is the PEM-encoded X.509 certificate for this identity.
	CertPEM string

	// Sign is the opaque signing capability. It must only be obtained from
	// a Custodian and must not be copied elsewhere; holding Sign is the only
	// way to request a signature, never the key itself.
	Sign SignFunc
}

// SignFunc produces a raw ECDSA P-256 signature (64 bytes, R||S) over the
// given message bytes. Implementations must hash with SHA-256 before
// signing. Callers run the result through the signer package to obtain the
// low-S, DER-encoded form Fabric accepts on the wire.
type SignFunc func(message []byte) ([]byte, error)
