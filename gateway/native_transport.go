// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	fabricgw "github.com/hyperledger/fabric-protos-go-apiv2/gateway"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rkhiriev/fabric-gateway-client/internal/config"
)

// nativeTransport implements Transport over a native HTTP/2 gRPC
// connection, using the generated fabricgw.GatewayClient stub directly:
// the wire framing itself is grpc-go's concern, not this package's, per
// spec.md §2's transport-adapter Non-goal.
type nativeTransport struct {
	stub fabricgw.GatewayClient
	conn *grpc.ClientConn
}

// NewNativeTransport dials cfg.Gateway.URL over HTTP/2 gRPC, pinning
// cfg.TLS.CACertPEM when non-empty, mirroring the teacher's Adapter
// constructor that builds a TLS-aware HTTP client from StructuredConfig.
func NewNativeTransport(cfg *config.Config) (Transport, error) {
	creds, err := dialCredentials(cfg.TLS.CACertPEM)
	if err != nil {
		return nil, fmt.Errorf("gateway: build dial credentials: %w", err)
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), nonZeroOr(cfg.Gateway.DialTimeout, 10*time.Second))
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, cfg.Gateway.URL,
		grpc.WithTransportCredentials(creds),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("gateway: dial %s: %w", cfg.Gateway.URL, err)
	}

	return &nativeTransport{stub: fabricgw.NewGatewayClient(conn), conn: conn}, nil
}

// Close releases the underlying gRPC connection.
func (t *nativeTransport) Close() error { return t.conn.Close() }

func (t *nativeTransport) Evaluate(ctx context.Context, req *fabricgw.EvaluateRequest) (*fabricgw.EvaluateResponse, error) {
	return t.stub.Evaluate(ctx, req)
}

func (t *nativeTransport) Endorse(ctx context.Context, req *fabricgw.EndorseRequest) (*fabricgw.EndorseResponse, error) {
	return t.stub.Endorse(ctx, req)
}

func (t *nativeTransport) Submit(ctx context.Context, req *fabricgw.SubmitRequest) (*fabricgw.SubmitResponse, error) {
	return t.stub.Submit(ctx, req)
}

func (t *nativeTransport) CommitStatus(ctx context.Context, req *fabricgw.SignedCommitStatusRequest) (*fabricgw.CommitStatusResponse, error) {
	return t.stub.CommitStatus(ctx, req)
}

func (t *nativeTransport) ChaincodeEvents(ctx context.Context, req *fabricgw.SignedChaincodeEventsRequest) (<-chan *fabricgw.ChaincodeEventsResponse, <-chan error) {
	out := make(chan *fabricgw.ChaincodeEventsResponse)
	errOut := make(chan error, 1)

	stream, err := t.stub.ChaincodeEvents(ctx, req)
	if err != nil {
		close(out)
		errOut <- err
		close(errOut)
		return out, errOut
	}

	go func() {
		defer close(out)
		defer close(errOut)
		for {
			resp, err := stream.Recv()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				errOut <- err
				return
			}
			select {
			case out <- resp:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errOut
}

func dialCredentials(caCertPEM string) (credentials.TransportCredentials, error) {
	if caCertPEM == "" {
		return insecure.NewCredentials(), nil
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM([]byte(caCertPEM)) {
		return nil, fmt.Errorf("gateway: no valid certificates found in TLS.CACertPEM")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

func nonZeroOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
