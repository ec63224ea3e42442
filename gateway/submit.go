// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"

	"github.com/hyperledger/fabric-protos-go-apiv2/common"
	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// SubmitSignedTransaction signs preparedPayload, wraps it in an envelope,
// and hands it to the ordering service. It returns as soon as the gateway
// accepts the transaction, before it commits, per spec.md §4.5.
func (c *GatewayClient) SubmitSignedTransaction(ctx context.Context, channel, txID string, preparedPayload []byte, identity models.AppIdentity) error {
	cid := newCorrelationID()
	ctx, log := c.log.WithCorrelationID(ctx, cid)

	sig, err := derSign(identity.Sign, preparedPayload)
	if err != nil {
		return errs.Wrap(errs.TransportFailure, "sign prepared payload", err)
	}

	_, err = c.transport.Submit(ctx, &fabricgw.SubmitRequest{
		TransactionId: txID,
		ChannelId:     channel,
		PreparedTransaction: &common.Envelope{
			Payload:   preparedPayload,
			Signature: sig,
		},
	})
	if err != nil {
		e := errs.FromGRPCStatus(err, "")
		log.Error().Err(e).Str("tx_id", txID).Msg("submit: transport failure")
		return e
	}

	log.Debug().Str("tx_id", txID).Msg("submit: accepted")
	return nil
}
