// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"github.com/go-resty/resty/v2"
	"google.golang.org/protobuf/proto"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/internal/config"
)

// grpcWebServiceName is the fully-qualified gateway.proto service name
// grpc-web paths are built from, per the grpc-web convention
// "/<package>.<Service>/<Method>".
const grpcWebServiceName = "gateway.Gateway"

// grpcWebTransport implements Transport over HTTP/1.1 using resty, the
// teacher's own HTTP adapter library (internal/adapter's httpServerAdapter),
// generalized to speak single-message grpc-web framing against the Fabric
// gateway's proxy. It does not implement server-streaming grpc-web (trailer
// parsing, chunked frame boundaries): ChaincodeEvents on this transport is
// unsupported, matching the Non-goal that a full grpc-web stack is an
// external concern (spec.md §2).
type grpcWebTransport struct {
	client *resty.Client
}

// NewGRPCWebTransport builds a grpc-web Transport against cfg.Gateway.URL,
// mirroring the teacher's NewHTTPServerAdapter base-URL/timeout setup.
func NewGRPCWebTransport(cfg *config.Config) Transport {
	client := resty.New().
		SetBaseURL(cfg.Gateway.URL).
		SetTimeout(nonZeroOr(cfg.Gateway.RequestTimeout, 30*time.Second)).
		SetHeader("Content-Type", "application/grpc-web+proto")
	return &grpcWebTransport{client: client}
}

func (t *grpcWebTransport) call(ctx context.Context, method string, req, resp proto.Message) error {
	reqBytes, err := proto.Marshal(req)
	if err != nil {
		return fmt.Errorf("gateway: marshal %T: %w", req, err)
	}

	httpResp, err := t.client.R().
		SetContext(ctx).
		SetBody(frameGRPCWeb(reqBytes)).
		Post(fmt.Sprintf("/%s/%s", grpcWebServiceName, method))
	if err != nil {
		return errs.New(errs.TransportFailure, err.Error())
	}
	if httpResp.IsError() {
		return errs.FromHTTPStatus(httpResp.StatusCode(), string(httpResp.Body()))
	}

	body, err := deframeGRPCWeb(httpResp.Body())
	if err != nil {
		return errs.Wrap(errs.StreamProtocolError, "malformed grpc-web frame", err)
	}
	return proto.Unmarshal(body, resp)
}

func (t *grpcWebTransport) Evaluate(ctx context.Context, req *fabricgw.EvaluateRequest) (*fabricgw.EvaluateResponse, error) {
	resp := &fabricgw.EvaluateResponse{}
	return resp, t.call(ctx, "Evaluate", req, resp)
}

func (t *grpcWebTransport) Endorse(ctx context.Context, req *fabricgw.EndorseRequest) (*fabricgw.EndorseResponse, error) {
	resp := &fabricgw.EndorseResponse{}
	return resp, t.call(ctx, "Endorse", req, resp)
}

func (t *grpcWebTransport) Submit(ctx context.Context, req *fabricgw.SubmitRequest) (*fabricgw.SubmitResponse, error) {
	resp := &fabricgw.SubmitResponse{}
	return resp, t.call(ctx, "Submit", req, resp)
}

func (t *grpcWebTransport) CommitStatus(ctx context.Context, req *fabricgw.SignedCommitStatusRequest) (*fabricgw.CommitStatusResponse, error) {
	resp := &fabricgw.CommitStatusResponse{}
	return resp, t.call(ctx, "CommitStatus", req, resp)
}

func (t *grpcWebTransport) ChaincodeEvents(_ context.Context, _ *fabricgw.SignedChaincodeEventsRequest) (<-chan *fabricgw.ChaincodeEventsResponse, <-chan error) {
	out := make(chan *fabricgw.ChaincodeEventsResponse)
	errOut := make(chan error, 1)
	close(out)
	errOut <- fmt.Errorf("gateway: grpc-web transport does not support streaming RPCs, use the native transport")
	close(errOut)
	return out, errOut
}

// frameGRPCWeb wraps msg in the single-message grpc-web frame: a 1-byte
// flags field (0 for a data frame) followed by a 4-byte big-endian length.
func frameGRPCWeb(msg []byte) []byte {
	frame := make([]byte, 5+len(msg))
	binary.BigEndian.PutUint32(frame[1:5], uint32(len(msg)))
	copy(frame[5:], msg)
	return frame
}

// deframeGRPCWeb strips the 5-byte grpc-web frame header and returns the
// message bytes, ignoring any trailing trailer frame.
func deframeGRPCWeb(framed []byte) ([]byte, error) {
	if len(framed) < 5 {
		return nil, fmt.Errorf("frame too short: %d bytes", len(framed))
	}
	length := binary.BigEndian.Uint32(framed[1:5])
	if int(5+length) > len(framed) {
		return nil, fmt.Errorf("frame declares %d bytes, only %d available", length, len(framed)-5)
	}
	return framed[5 : 5+length], nil
}
