// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"

	"github.com/rkhiriev/fabric-gateway-client/errs"
)

// exportedIdentity is the JSON shape AEAD-sealed inside an exported blob.
// Key extraction from the custodian is permitted only through this
// consensual flow, per spec.md §4.1.
type exportedIdentity struct {
	Label         string `json:"label"`
	MSPID         string `json:"msp_id"`
	Certificate   string `json:"certificate"`
	PrivateKeyPEM string `json:"private_key_pem"`
}

// ExportIdentity serializes the active identity (plus the caller-supplied
// label) as JSON and AEAD-encrypts it under a key derived from password via
// PBKDF2. The result is an opaque base64 string suitable for offline
// storage or transfer; it must only ever be produced at the caller's
// explicit request.
func (c *Custodian) ExportIdentity(_ context.Context, label, password string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != slotUnlocked || c.key == nil {
		return "", errs.New(errs.NotUnlocked, "no unlocked identity to export")
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}

	keyBytes, err := x509.MarshalECPrivateKey(c.key)
	if err != nil {
		return "", fmt.Errorf("custodian: marshal private key: %w", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyBytes})

	plaintext, err := json.Marshal(exportedIdentity{
		Label:         label,
		MSPID:         c.mspID,
		Certificate:   c.certPEM,
		PrivateKeyPEM: string(keyPEM),
	})
	if err != nil {
		return "", fmt.Errorf("custodian: marshal exported identity: %w", err)
	}

	ciphertext, salt, iv, err := sealKeyPEM(plaintext, []byte(password))
	if err != nil {
		return "", err
	}

	blob := exportedBlob{Ciphertext: ciphertext, Salt: salt, IV: iv}
	encoded, err := json.Marshal(blob)
	if err != nil {
		return "", fmt.Errorf("custodian: marshal export blob: %w", err)
	}

	return base64.StdEncoding.EncodeToString(encoded), nil
}

// exportedBlob is the on-the-wire envelope returned by ExportIdentity: a
// base64-of-JSON wrapper around the AEAD ciphertext and its salt/iv.
type exportedBlob struct {
	Ciphertext []byte `json:"ciphertext"`
	Salt       []byte `json:"salt"`
	IV         []byte `json:"iv"`
}

// ImportExportedIdentity decrypts blob with a key derived from password,
// validates that certificate and private key material are present, and
// re-runs the createPasswordIdentity flow with the recovered material and
// the given password.
func (c *Custodian) ImportExportedIdentity(ctx context.Context, blob string, password string) (CreatedIdentity, error) {
	decoded, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return CreatedIdentity{}, errs.New(errs.InputInvalid, "exported identity is not valid base64")
	}

	var envelope exportedBlob
	if err := json.Unmarshal(decoded, &envelope); err != nil {
		return CreatedIdentity{}, errs.New(errs.InputInvalid, "exported identity is not valid JSON")
	}

	plaintext, err := unsealKeyPEM(envelope.Ciphertext, envelope.Salt, envelope.IV, []byte(password))
	if err != nil {
		return CreatedIdentity{}, err
	}

	var identity exportedIdentity
	if err := json.Unmarshal(plaintext, &identity); err != nil {
		return CreatedIdentity{}, errStoreCorrupt()
	}
	if identity.Certificate == "" || identity.PrivateKeyPEM == "" {
		return CreatedIdentity{}, errs.New(errs.InputInvalid, "exported identity is missing certificate or private key")
	}

	return c.CreatePasswordIdentity(ctx, identity.MSPID, identity.Certificate, identity.PrivateKeyPEM, password)
}
