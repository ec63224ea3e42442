// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rkhiriev/fabric-gateway-client/internal/config"
)

// websocketDeliverTransport implements DeliverTransport over a single
// binary-framed WebSocket connection, per spec.md §4.5: dial
// "wsBaseUrl?target=peer&hostname=host", send the envelope as the first
// frame, then relay every subsequent binary frame. Grounded on the
// teacher's resty-based Adapter dial/timeout conventions, generalized from
// HTTP to gorilla/websocket's Dialer.
type websocketDeliverTransport struct {
	baseURL     string
	dialTimeout time.Duration
}

// NewWebSocketDeliverTransport builds a DeliverTransport against
// cfg.Deliver.WSURL.
func NewWebSocketDeliverTransport(cfg *config.Config) DeliverTransport {
	return &websocketDeliverTransport{
		baseURL:     cfg.Deliver.WSURL,
		dialTimeout: nonZeroOr(cfg.Deliver.DialTimeout, 10*time.Second),
	}
}

func (t *websocketDeliverTransport) OpenDeliverStream(ctx context.Context, channel string, envelope []byte) (<-chan []byte, <-chan error) {
	out := make(chan []byte)
	errOut := make(chan error, 1)

	target, err := dialURL(t.baseURL)
	if err != nil {
		close(out)
		errOut <- err
		close(errOut)
		return out, errOut
	}

	dialer := &websocket.Dialer{HandshakeTimeout: t.dialTimeout}
	conn, _, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		close(out)
		errOut <- fmt.Errorf("gateway: dial deliver websocket: %w", err)
		close(errOut)
		return out, errOut
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, envelope); err != nil {
		_ = conn.Close()
		close(out)
		errOut <- fmt.Errorf("gateway: write deliver seek envelope: %w", err)
		close(errOut)
		return out, errOut
	}

	go t.pumpFrames(ctx, conn, out, errOut)
	return out, errOut
}

func (t *websocketDeliverTransport) pumpFrames(ctx context.Context, conn *websocket.Conn, out chan<- []byte, errOut chan<- error) {
	defer close(out)
	defer close(errOut)
	defer func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errOut <- fmt.Errorf("gateway: read deliver frame: %w", err)
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		select {
		case out <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// dialURL appends "target=peer&hostname=<local hostname>" to base, per
// spec.md §4.5's "wsBaseUrl?target=peer&hostname=host" convention.
func dialURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("gateway: parse deliver base URL: %w", err)
	}
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	q := u.Query()
	q.Set("target", "peer")
	q.Set("hostname", host)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
