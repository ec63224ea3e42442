// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"github.com/hyperledger/fabric-protos-go-apiv2/gateway"
)

// CommitStatusRequest builds the unsigned gateway.CommitStatusRequest for
// txID on channel, carrying creatorBytes as its identity, per spec.md §4.3.
// The caller signs the returned bytes and wraps them in a
// gateway.SignedCommitStatusRequest before calling CommitStatus.
func CommitStatusRequest(channel, txID string, creatorBytes []byte) ([]byte, error) {
	return marshal(&gateway.CommitStatusRequest{
		ChannelId:     channel,
		TransactionId: txID,
		Identity:      creatorBytes,
	})
}
