// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"

	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
)

// Transport is the collaborator that actually reaches a Fabric gateway: one
// implementation speaks native gRPC over HTTP/2, another speaks grpc-web
// over HTTP/1.1. Both are thin: GatewayClient does all the proposal
// building, signing, and response parsing; Transport only carries already-
// built request/response messages across the wire.
//
// Per spec.md §2's Non-goals, the wire protocol each concrete
// implementation speaks (HTTP/2 framing, grpc-web length-prefixed framing)
// is an external concern; this interface is the contract GatewayClient
// actually depends on.
type Transport interface {
	// Evaluate runs a proposal against one peer's simulation only; its
	// result is never sent to the ordering service.
	Evaluate(ctx context.Context, req *fabricgw.EvaluateRequest) (*fabricgw.EvaluateResponse, error)

	// Endorse collects peer signatures over a proposal and returns the
	// envelope ready to submit.
	Endorse(ctx context.Context, req *fabricgw.EndorseRequest) (*fabricgw.EndorseResponse, error)

	// Submit sends a signed envelope to the ordering service.
	Submit(ctx context.Context, req *fabricgw.SubmitRequest) (*fabricgw.SubmitResponse, error)

	// CommitStatus polls (or, on a streaming transport, waits for) the
	// validation outcome of a previously submitted transaction.
	CommitStatus(ctx context.Context, req *fabricgw.SignedCommitStatusRequest) (*fabricgw.CommitStatusResponse, error)

	// ChaincodeEvents opens a server-streaming RPC and returns a channel of
	// responses plus a channel that carries at most one terminal error. Both
	// channels close when the stream ends, including on ctx cancellation;
	// cancellation itself is never sent on the error channel.
	ChaincodeEvents(ctx context.Context, req *fabricgw.SignedChaincodeEventsRequest) (<-chan *fabricgw.ChaincodeEventsResponse, <-chan error)
}

// DeliverTransport is the collaborator for listenBlockEvents: a single
// binary-framed WebSocket connection to the peer deliver proxy, per
// spec.md §4.5. The first frame sent is the signed DELIVER_SEEK_INFO
// envelope; every subsequent frame received is a marshaled
// peer.DeliverResponse.
type DeliverTransport interface {
	// OpenDeliverStream dials the deliver proxy for channel, sends
	// envelope as the first binary frame, and returns a channel of
	// subsequent frames plus a terminal error channel, mirroring
	// Transport.ChaincodeEvents's shape. Closing ctx closes the socket
	// with code 1000.
	OpenDeliverStream(ctx context.Context, channel string, envelope []byte) (<-chan []byte, <-chan error)
}
