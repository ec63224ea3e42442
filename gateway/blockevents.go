// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"

	"github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"google.golang.org/protobuf/proto"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/internal/message"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// ListenBlockEvents opens a DELIVER_SEEK_INFO WebSocket subscription and
// returns a restartable, single-consumer, cancellable sequence of
// FilteredBlock, per spec.md §4.5. Status frames the peer sends (e.g. the
// subscription's initial SUCCESS acknowledgement) are logged and skipped,
// never surfaced to the caller.
func (c *GatewayClient) ListenBlockEvents(ctx context.Context, params models.ProposalParams, identity models.AppIdentity, start models.SeekStart) (<-chan models.FilteredBlock, <-chan error) {
	out := make(chan models.FilteredBlock)
	errOut := make(chan error, 1)

	if c.deliverTransport == nil {
		close(out)
		errOut <- errs.New(errs.TransportFailure, "no deliver transport configured")
		close(errOut)
		return out, errOut
	}

	txCtx, err := message.TxContext(identity.MSPID, identity.CertPEM)
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "build transaction context", err)
		close(errOut)
		return out, errOut
	}

	payload, err := message.SeekInfoEnvelopePayload(params.ChannelName, txCtx, start)
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "build seek-info payload", err)
		close(errOut)
		return out, errOut
	}

	sig, err := derSign(identity.Sign, payload)
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "sign seek-info payload", err)
		close(errOut)
		return out, errOut
	}

	envelope, err := message.Envelope(payload, sig)
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "build seek-info envelope", err)
		close(errOut)
		return out, errOut
	}

	frames, transportErrs := c.deliverTransport.OpenDeliverStream(ctx, params.ChannelName, envelope)
	go c.pumpBlockEvents(ctx, frames, transportErrs, out, errOut)
	return out, errOut
}

func (c *GatewayClient) pumpBlockEvents(
	ctx context.Context,
	frames <-chan []byte,
	transportErrs <-chan error,
	out chan<- models.FilteredBlock,
	errOut chan<- error,
) {
	defer close(out)
	defer close(errOut)

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-transportErrs:
			if !ok {
				return
			}
			if err != nil {
				errOut <- errs.Wrap(errs.StreamProtocolError, "deliver stream failed", err)
			}
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			block, skip, err := decodeDeliverFrame(frame)
			if err != nil {
				errOut <- errs.Wrap(errs.StreamProtocolError, "malformed deliver frame", err)
				return
			}
			if skip {
				c.log.Debug().Msg("deliver stream: status frame, skipping")
				continue
			}
			select {
			case out <- block:
			case <-ctx.Done():
				return
			}
		}
	}
}

// decodeDeliverFrame unmarshals one peer.DeliverResponse. skip is true for
// a status record, which carries no block data and is only a diagnostic.
func decodeDeliverFrame(frame []byte) (block models.FilteredBlock, skip bool, err error) {
	var resp peer.DeliverResponse
	if err := proto.Unmarshal(frame, &resp); err != nil {
		return models.FilteredBlock{}, false, err
	}

	filtered := resp.GetFilteredBlock()
	if filtered == nil {
		return models.FilteredBlock{}, true, nil
	}

	fb := models.FilteredBlock{
		ChannelID: filtered.GetChannelId(),
		Number:    filtered.GetNumber(),
	}
	for _, tx := range filtered.GetFilteredTransactions() {
		action := models.ChaincodeAction{
			TxID:           tx.GetTxid(),
			ValidationCode: tx.GetTxValidationCode().String(),
		}
		for _, ccAction := range tx.GetTransactionActions().GetChaincodeActions() {
			if ev := ccAction.GetChaincodeEvent(); ev != nil {
				action.ChaincodeName = ev.GetChaincodeId()
			}
		}
		fb.ChaincodeActions = append(fb.ChaincodeActions, action)
	}
	return fb, false, nil
}
