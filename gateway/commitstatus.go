// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"

	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/internal/message"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// CommitStatus asks the gateway for txID's validation outcome, per
// spec.md §4.5.1. The request bytes themselves, not a wrapping struct, are
// what get DER-signed: the gateway verifies the signature directly over
// the marshaled CommitStatusRequest.
func (c *GatewayClient) CommitStatus(ctx context.Context, channel, txID string, identity models.AppIdentity) (models.CommitStatus, error) {
	cid := newCorrelationID()
	ctx, log := c.log.WithCorrelationID(ctx, cid)

	creatorBytes, err := message.SerializedIdentity(identity.MSPID, identity.CertPEM)
	if err != nil {
		return models.CommitStatus{}, errs.Wrap(errs.TransportFailure, "serialize identity", err)
	}

	reqBytes, err := message.CommitStatusRequest(channel, txID, creatorBytes)
	if err != nil {
		return models.CommitStatus{}, errs.Wrap(errs.TransportFailure, "build commit-status request", err)
	}

	sig, err := derSign(identity.Sign, reqBytes)
	if err != nil {
		return models.CommitStatus{}, errs.Wrap(errs.TransportFailure, "sign commit-status request", err)
	}

	resp, err := c.transport.CommitStatus(ctx, &fabricgw.SignedCommitStatusRequest{
		Request:   reqBytes,
		Signature: sig,
	})
	if err != nil {
		e := errs.FromGRPCStatus(err, "")
		log.Error().Err(e).Str("tx_id", txID).Msg("commitStatus: transport failure")
		return models.CommitStatus{}, e
	}

	code := resp.GetResult()
	status := models.CommitStatus{
		Valid: code == peer.TxValidationCode_VALID,
		Code:  code.String(),
	}

	if !status.Valid {
		return status, errs.CommitFailedError(txID, status.Code)
	}
	log.Debug().Str("tx_id", txID).Msg("commitStatus: valid")
	return status, nil
}
