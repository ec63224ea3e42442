// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"github.com/hyperledger/fabric-protos-go-apiv2/common"
	"github.com/hyperledger/fabric-protos-go-apiv2/orderer"

	"github.com/rkhiriev/fabric-gateway-client/models"
)

// maxBlockNumber is 2^53 - 1, the "continuous stream" stop position used
// for an open-ended deliver subscription, per spec.md §4.3.
const maxBlockNumber = (uint64(1) << 53) - 1

// SeekInfoEnvelopePayload builds the unsigned payload for a deliver-seek
// request: a DELIVER_SEEK_INFO channel header plus a SeekInfo body whose
// start position is the newest block (when start.Newest is set) or
// start.BlockNumber otherwise, always open-ended (stop = 2^53-1) and
// BLOCK_UNTIL_READY. The caller signs the returned bytes and wraps them
// with [Envelope] before sending the first WebSocket frame.
func SeekInfoEnvelopePayload(channel string, txCtx models.TransactionContext, start models.SeekStart) ([]byte, error) {
	header, err := proposalHeader(
		deliverSeekProposalParams(channel),
		txCtx,
		common.HeaderType_DELIVER_SEEK_INFO,
	)
	if err != nil {
		return nil, err
	}

	startPosition := &orderer.SeekPosition{Type: &orderer.SeekPosition_Newest{Newest: &orderer.SeekNewest{}}}
	if !start.Newest {
		startPosition = &orderer.SeekPosition{Type: &orderer.SeekPosition_Specified{
			Specified: &orderer.SeekSpecified{Number: start.BlockNumber},
		}}
	}

	seekInfoBytes, err := marshal(&orderer.SeekInfo{
		Start:    startPosition,
		Stop:     &orderer.SeekPosition{Type: &orderer.SeekPosition_Specified{Specified: &orderer.SeekSpecified{Number: maxBlockNumber}}},
		Behavior: orderer.SeekInfo_BLOCK_UNTIL_READY,
	})
	if err != nil {
		return nil, err
	}

	return marshal(&common.Payload{
		Header: header,
		Data:   seekInfoBytes,
	})
}

// deliverSeekProposalParams builds the minimal ProposalParams proposalHeader
// needs: a deliver-seek header carries no chaincode id, so the chaincode
// name is left empty.
func deliverSeekProposalParams(channel string) models.ProposalParams {
	return models.ProposalParams{ChannelName: channel}
}
