// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"strconv"

	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/internal/message"
	"github.com/rkhiriev/fabric-gateway-client/internal/parser"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// PrepareTransaction endorses params and returns the tx_id plus the raw
// envelope payload submitSignedTransaction needs, per spec.md §4.5. It does
// not touch the ordering service.
func (c *GatewayClient) PrepareTransaction(ctx context.Context, params models.ProposalParams, identity models.AppIdentity) (models.PreparedTransaction, error) {
	cid := newCorrelationID()
	ctx, log := c.log.WithCorrelationID(ctx, cid)

	txCtx, err := message.TxContext(identity.MSPID, identity.CertPEM)
	if err != nil {
		return models.PreparedTransaction{}, errs.Wrap(errs.TransportFailure, "build transaction context", err)
	}

	proposalBytes, err := message.ProposalPayload(params, txCtx)
	if err != nil {
		return models.PreparedTransaction{}, errs.Wrap(errs.TransportFailure, "build proposal payload", err)
	}

	sig, err := derSign(identity.Sign, proposalBytes)
	if err != nil {
		return models.PreparedTransaction{}, errs.Wrap(errs.TransportFailure, "sign proposal", err)
	}

	resp, err := c.transport.Endorse(ctx, &fabricgw.EndorseRequest{
		TransactionId: txCtx.TxID,
		ChannelId:     params.ChannelName,
		ProposedTransaction: &peer.SignedProposal{
			ProposalBytes: proposalBytes,
			Signature:     sig,
		},
	})
	if err != nil {
		e := errs.FromGRPCStatus(err, "")
		log.Error().Err(e).Str("tx_id", txCtx.TxID).Msg("prepare: transport failure")
		return models.PreparedTransaction{}, e
	}

	result := resp.GetResult()
	log.Debug().Str("tx_id", txCtx.TxID).Msg("prepare: done")
	return models.PreparedTransaction{
		TxID:            txCtx.TxID,
		EnvelopePayload: resp.GetPreparedTransaction().GetPayload(),
		Simulation: models.EvaluatedTransaction{
			TxID:       txCtx.TxID,
			Status:     strconv.Itoa(int(result.GetStatus())),
			Message:    result.GetMessage(),
			ParsedData: parser.Parse(result.GetPayload()),
		},
	}, nil
}
