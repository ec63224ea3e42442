// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"github.com/hyperledger/fabric-protos-go-apiv2/orderer"
)

// ChaincodeEventsRequest builds the unsigned
// gateway.ChaincodeEventsRequest for a chaincode-events subscription on
// channel/chaincode, carrying creatorBytes as its identity, per spec.md
// §4.3. When afterTxID is non-empty the stream resumes just past that
// transaction; otherwise it starts at the chain's newest block. The caller
// signs the returned bytes and wraps them in a
// gateway.SignedChaincodeEventsRequest before calling ChaincodeEvents.
func ChaincodeEventsRequest(channel, chaincode string, creatorBytes []byte, afterTxID string) ([]byte, error) {
	start := &orderer.SeekPosition{Type: &orderer.SeekPosition_Newest{Newest: &orderer.SeekNewest{}}}

	return marshal(&gateway.ChaincodeEventsRequest{
		ChannelId:          channel,
		ChaincodeId:        chaincode,
		Identity:           creatorBytes,
		AfterTransactionId: afterTxID,
		StartPosition:      start,
	})
}
