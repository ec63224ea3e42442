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

// EvaluateTransaction runs params against one peer's simulation and parses
// the result. The proposal is never sent to the ordering service, per
// spec.md §4.5.
func (c *GatewayClient) EvaluateTransaction(ctx context.Context, params models.ProposalParams, identity models.AppIdentity) (models.EvaluatedTransaction, error) {
	cid := newCorrelationID()
	ctx, log := c.log.WithCorrelationID(ctx, cid)
	log.Debug().Str("channel", params.ChannelName).Str("fn", params.FunctionName).Msg("evaluate: start")

	txCtx, err := message.TxContext(identity.MSPID, identity.CertPEM)
	if err != nil {
		return models.EvaluatedTransaction{}, errs.Wrap(errs.TransportFailure, "build transaction context", err)
	}

	proposalBytes, err := message.ProposalPayload(params, txCtx)
	if err != nil {
		return models.EvaluatedTransaction{}, errs.Wrap(errs.TransportFailure, "build proposal payload", err)
	}

	sig, err := derSign(identity.Sign, proposalBytes)
	if err != nil {
		return models.EvaluatedTransaction{}, errs.Wrap(errs.TransportFailure, "sign proposal", err)
	}

	resp, err := c.transport.Evaluate(ctx, &fabricgw.EvaluateRequest{
		TransactionId: txCtx.TxID,
		ChannelId:     params.ChannelName,
		ProposedTransaction: &peer.SignedProposal{
			ProposalBytes: proposalBytes,
			Signature:     sig,
		},
	})
	if err != nil {
		e := errs.FromGRPCStatus(err, "")
		log.Error().Err(e).Str("tx_id", txCtx.TxID).Msg("evaluate: transport failure")
		return models.EvaluatedTransaction{}, e
	}

	result := resp.GetResult()
	evaluated := models.EvaluatedTransaction{
		TxID:       txCtx.TxID,
		Status:     strconv.Itoa(int(result.GetStatus())),
		Message:    result.GetMessage(),
		ParsedData: parser.Parse(result.GetPayload()),
	}
	log.Debug().Str("tx_id", txCtx.TxID).Msg("evaluate: done")
	return evaluated, nil
}
