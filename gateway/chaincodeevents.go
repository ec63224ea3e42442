// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"

	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/internal/message"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// ListenChaincodeEvents opens a server-streaming subscription and returns a
// restartable, single-consumer, cancellable sequence of ChaincodeEventBatch,
// per spec.md §4.5. Cancelling ctx closes the stream cleanly: the returned
// channel is closed without an error value ever being sent for that case.
func (c *GatewayClient) ListenChaincodeEvents(ctx context.Context, params models.ProposalParams, identity models.AppIdentity) (<-chan models.ChaincodeEventBatch, <-chan error) {
	out := make(chan models.ChaincodeEventBatch)
	errOut := make(chan error, 1)

	creatorBytes, err := message.SerializedIdentity(identity.MSPID, identity.CertPEM)
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "serialize identity", err)
		close(errOut)
		return out, errOut
	}

	reqBytes, err := message.ChaincodeEventsRequest(params.ChannelName, params.ChaincodeName, creatorBytes, "")
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "build chaincode-events request", err)
		close(errOut)
		return out, errOut
	}

	sig, err := derSign(identity.Sign, reqBytes)
	if err != nil {
		close(out)
		errOut <- errs.Wrap(errs.TransportFailure, "sign chaincode-events request", err)
		close(errOut)
		return out, errOut
	}

	responses, transportErrs := c.transport.ChaincodeEvents(ctx, &fabricgw.SignedChaincodeEventsRequest{
		Request:   reqBytes,
		Signature: sig,
	})

	go c.pumpChaincodeEvents(ctx, responses, transportErrs, out, errOut)
	return out, errOut
}

// pumpChaincodeEvents is the streamWorker loop: it relays transport
// responses into the caller's channel until the stream ends, the transport
// reports an error, or ctx is cancelled, whichever comes first. Back-
// pressure is the consumer's: this goroutine blocks on out <- until the
// consumer reads, so a slow consumer stalls the upstream transport read,
// never an unbounded buffer.
func (c *GatewayClient) pumpChaincodeEvents(
	ctx context.Context,
	responses <-chan *fabricgw.ChaincodeEventsResponse,
	transportErrs <-chan error,
	out chan<- models.ChaincodeEventBatch,
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
				errOut <- errs.FromGRPCStatus(err, "")
			}
			return
		case resp, ok := <-responses:
			if !ok {
				return
			}
			batch := models.ChaincodeEventBatch{BlockNumber: uint64(resp.GetBlockNumber())}
			for _, ev := range resp.GetEvents() {
				batch.Events = append(batch.Events, models.ChaincodeEvent{
					TxID:          ev.GetTxId(),
					ChaincodeName: ev.GetChaincodeId(),
					EventName:     ev.GetEventName(),
					Payload:       ev.GetPayload(),
				})
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}
