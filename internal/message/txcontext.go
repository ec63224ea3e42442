// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/rkhiriev/fabric-gateway-client/models"
)

// nonceLen is 24 random bytes, per spec.md §3.
const nonceLen = 24

// TxContext generates a fresh nonce, computes creator_bytes as the
// serialized identity, and derives tx_id = hex(SHA-256(nonce ||
// creator_bytes)), per spec.md §4.3. A nonce is used exactly once: callers
// must request a fresh TxContext per transaction attempt, never reuse one.
func TxContext(mspID, certPEM string) (models.TransactionContext, error) {
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.TransactionContext{}, fmt.Errorf("message: generate nonce: %w", err)
	}

	creatorBytes, err := SerializedIdentity(mspID, certPEM)
	if err != nil {
		return models.TransactionContext{}, err
	}

	return models.TransactionContext{
		Nonce:        nonce,
		CreatorBytes: creatorBytes,
		TxID:         txID(nonce, creatorBytes),
		Timestamp:    time.Now(),
	}, nil
}
