// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"

	"github.com/rkhiriev/fabric-gateway-client/errs"
)

// Sign hashes message with SHA-256 and produces a raw 64-byte (R||S) ECDSA
// signature over the active key. It requires an unlocked key; otherwise it
// fails NotUnlocked. Callers run the result through the signer package for
// the low-S DER encoding Fabric requires on the wire.
//
// Sign is the only public operation permitted to touch c.key; it never
// returns the key itself, only a signature over caller-supplied bytes, and
// it is serialized by c.mu so at most one sign proceeds at a time per
// spec.md §5.
func (c *Custodian) Sign(message []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != slotUnlocked || c.key == nil {
		return nil, errs.New(errs.NotUnlocked, "no unlocked identity to sign with")
	}

	hash := sha256.Sum256(message)
	r, s, err := ecdsa.Sign(rand.Reader, c.key, hash[:])
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 64)
	r.FillBytes(raw[:32])
	s.FillBytes(raw[32:])
	return raw, nil
}
