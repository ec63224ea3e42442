// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"github.com/hyperledger/fabric-protos-go-apiv2/common"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/rkhiriev/fabric-gateway-client/models"
)

// ProposalPayload wraps a ChaincodeInvocationSpec into a signable
// peer.Proposal, per spec.md §4.3. Args are serialized as
// [function_name_utf8, params.Args...]; the channel header uses
// ENDORSER_TRANSACTION, version 1, epoch 0, with the chaincode id carried
// in its extension. The chaincode type constant comes from
// peer.ChaincodeSpec_GOLANG, sourced from fabric-protos-go-apiv2 rather
// than hand-rolled, per spec.md §9.
func ProposalPayload(params models.ProposalParams, txCtx models.TransactionContext) ([]byte, error) {
	header, err := proposalHeader(params, txCtx, common.HeaderType_ENDORSER_TRANSACTION)
	if err != nil {
		return nil, err
	}
	headerBytes, err := marshal(header)
	if err != nil {
		return nil, err
	}

	args := make([][]byte, 0, len(params.Args)+1)
	args = append(args, []byte(params.FunctionName))
	for _, a := range params.Args {
		args = append(args, a.Value())
	}

	invocationSpec := &peer.ChaincodeInvocationSpec{
		ChaincodeSpec: &peer.ChaincodeSpec{
			Type:        peer.ChaincodeSpec_GOLANG,
			ChaincodeId: &peer.ChaincodeID{Name: params.ChaincodeName},
			Input:       &peer.ChaincodeInput{Args: args},
		},
	}
	invocationSpecBytes, err := marshal(invocationSpec)
	if err != nil {
		return nil, err
	}

	ccProposalPayload := &peer.ChaincodeProposalPayload{Input: invocationSpecBytes}
	ccProposalPayloadBytes, err := marshal(ccProposalPayload)
	if err != nil {
		return nil, err
	}

	proposal := &peer.Proposal{
		Header:  headerBytes,
		Payload: ccProposalPayloadBytes,
	}
	return marshal(proposal)
}

// proposalHeader builds a common.Header for headerType, carrying the
// chaincode id in the channel header's extension (spec.md §4.3). The
// caller marshals it when embedding it as bytes (peer.Proposal.Header) or
// passes it through directly when a structured field is needed
// (common.Payload.Header). The channel header's timestamp is txCtx's own
// Timestamp, not wall-clock time read here, so two headers built from the
// same context are byte-identical.
func proposalHeader(params models.ProposalParams, txCtx models.TransactionContext, headerType common.HeaderType) (*common.Header, error) {
	extension, err := marshal(&peer.ChaincodeHeaderExtension{
		ChaincodeId: &peer.ChaincodeID{Name: params.ChaincodeName},
	})
	if err != nil {
		return nil, err
	}

	channelHeaderBytes, err := marshal(&common.ChannelHeader{
		Type:      int32(headerType),
		Version:   1,
		Timestamp: timestamppb.New(txCtx.Timestamp),
		ChannelId: params.ChannelName,
		TxId:      txCtx.TxID,
		Epoch:     0,
		Extension: extension,
	})
	if err != nil {
		return nil, err
	}

	signatureHeaderBytes, err := marshal(&common.SignatureHeader{
		Creator: txCtx.CreatorBytes,
		Nonce:   txCtx.Nonce,
	})
	if err != nil {
		return nil, err
	}

	return &common.Header{
		ChannelHeader:   channelHeaderBytes,
		SignatureHeader: signatureHeaderBytes,
	}, nil
}
