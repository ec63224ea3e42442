package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-gateway-url gateway endpoint, e.g. peer0.org1.example.com:7051
//	-dial-timeout gateway dial timeout (e.g., "5s")
//	-request-timeout per-RPC timeout (e.g., "30s", "1m")
//	-web-transport use the grpc-web transport instead of native gRPC
//	-ws-url deliver stream WebSocket base URL
//	-tls-ca-cert PEM-encoded CA certificate chain
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var gatewayURL string
	var dialTimeout time.Duration
	var requestTimeout time.Duration
	var useWebTransport bool
	var deliverDialTimeout time.Duration
	var wsURL string
	var tlsCACert string
	var jsonConfigPath string

	flag.StringVar(&gatewayURL, "gateway-url", "", "Gateway endpoint")
	flag.DurationVar(&dialTimeout, "dial-timeout", 0, "Gateway dial timeout (e.g., 5s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Per-RPC timeout (e.g., 30s, 1m)")
	flag.BoolVar(&useWebTransport, "web-transport", false, "Use the grpc-web transport instead of native gRPC")
	flag.DurationVar(&deliverDialTimeout, "ws-dial-timeout", 0, "Deliver WebSocket dial timeout")
	flag.StringVar(&wsURL, "ws-url", "", "Deliver stream WebSocket base URL")
	flag.StringVar(&tlsCACert, "tls-ca-cert", "", "PEM-encoded CA certificate chain")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Gateway: Gateway{
			URL:             gatewayURL,
			DialTimeout:     dialTimeout,
			RequestTimeout:  requestTimeout,
			UseWebTransport: useWebTransport,
		},
		Deliver: Deliver{
			WSURL:       wsURL,
			DialTimeout: deliverDialTimeout,
		},
		TLS: TLS{
			CACertPEM: tlsCACert,
		},
		JSONFilePath: jsonConfigPath,
	}
}
