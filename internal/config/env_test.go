// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"GATEWAY_URL":              "peer0.org1.example.com:7051",
		"GATEWAY_DIAL_TIMEOUT":     "5s",
		"GATEWAY_REQUEST_TIMEOUT":  "30s",
		"GATEWAY_USE_WEB_TRANSPORT": "true",

		"DELIVER_WS_URL":       "wss://gateway.example.com/ws",
		"DELIVER_DIAL_TIMEOUT": "3s",

		"TLS_CA_CERT": "-----BEGIN CERTIFICATE-----\nMII...\n-----END CERTIFICATE-----",
	}
	setEnvVars(t, envVars)

	cfg := &Config{}
	err := parseEnv(cfg)

	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "peer0.org1.example.com:7051", cfg.Gateway.URL)
	assert.Equal(t, 5*time.Second, cfg.Gateway.DialTimeout)
	assert.Equal(t, 30*time.Second, cfg.Gateway.RequestTimeout)
	assert.True(t, cfg.Gateway.UseWebTransport)

	assert.Equal(t, "wss://gateway.example.com/ws", cfg.Deliver.WSURL)
	assert.Equal(t, 3*time.Second, cfg.Deliver.DialTimeout)

	assert.Contains(t, cfg.TLS.CACertPEM, "BEGIN CERTIFICATE")
}

func TestParseEnv_PartialFields(t *testing.T) {
	envVars := map[string]string{
		"GATEWAY_URL":          "localhost:7051",
		"GATEWAY_DIAL_TIMEOUT": "5s",
	}
	setEnvVars(t, envVars)

	cfg := &Config{}
	err := parseEnv(cfg)

	require.NoError(t, err)

	assert.Equal(t, "localhost:7051", cfg.Gateway.URL)
	assert.Equal(t, 5*time.Second, cfg.Gateway.DialTimeout)
	assert.Zero(t, cfg.Gateway.RequestTimeout)
	assert.False(t, cfg.Gateway.UseWebTransport)

	assert.Empty(t, cfg.Deliver.WSURL)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	clearEnvVars(t)

	cfg := &Config{}
	err := parseEnv(cfg)

	require.NoError(t, err)

	assert.Equal(t, "", cfg.JSONFilePath)
	assert.Equal(t, Gateway{}, cfg.Gateway)
	assert.Equal(t, Deliver{}, cfg.Deliver)
	assert.Equal(t, TLS{}, cfg.TLS)
}

func TestParseEnv_OnlyDeliver(t *testing.T) {
	envVars := map[string]string{
		"DELIVER_WS_URL": "wss://gateway.example.com/ws",
	}
	setEnvVars(t, envVars)

	cfg := &Config{}
	err := parseEnv(cfg)

	require.NoError(t, err)

	assert.Equal(t, "wss://gateway.example.com/ws", cfg.Deliver.WSURL)
	assert.Empty(t, cfg.Gateway.URL)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	envVars := map[string]string{
		"GATEWAY_DIAL_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	cfg := &Config{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envVars := map[string]string{
				"GATEWAY_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			cfg := &Config{}
			err := parseEnv(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Gateway.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"GATEWAY_URL",
		"GATEWAY_DIAL_TIMEOUT",
		"GATEWAY_REQUEST_TIMEOUT",
		"GATEWAY_USE_WEB_TRANSPORT",
		"DELIVER_WS_URL",
		"DELIVER_DIAL_TIMEOUT",
		"TLS_CA_CERT",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
