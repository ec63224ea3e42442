// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// CreatedIdentity bundles the active identity with the recovery material
// generated alongside it.
type CreatedIdentity struct {
	Identity models.AppIdentity

	// RecoveryPhrase is the generated BIP-39 mnemonic. Empty when the
	// caller supplied their own password instead.
	RecoveryPhrase string

	// RecoveryShares are 5 base64-encoded Shamir shares (threshold 3) of
	// the secret, for offline recovery storage.
	RecoveryShares []string
}

// CreatePasswordIdentity seals certPEM/keyPEM under password (or a generated
// mnemonic if password is empty), persists the sealed record, and imports
// the key as the active identity. [Empty] -- createPassword --> [Unlocked].
func (c *Custodian) CreatePasswordIdentity(ctx context.Context, mspID, certPEM, keyPEM, password string) (CreatedIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := parseECDSAPrivateKeyPEM(keyPEM)
	if err != nil {
		return CreatedIdentity{}, err
	}

	secret, recoveryPhrase, err := resolveSecret(password)
	if err != nil {
		return CreatedIdentity{}, err
	}

	ciphertext, salt, iv, err := sealKeyPEM([]byte(keyPEM), secret)
	if err != nil {
		return CreatedIdentity{}, err
	}

	sealed := models.SealedIdentity{
		MSPID:           mspID,
		EncryptedKeyPEM: ciphertext,
		CertificatePEM:  certPEM,
		KDFSalt:         salt,
		AEADIV:          iv,
	}
	if err := c.writeSealed(ctx, sealed); err != nil {
		return CreatedIdentity{}, err
	}

	shares, err := splitSecretShares(secret)
	if err != nil {
		return CreatedIdentity{}, err
	}

	c.mspID = mspID
	c.certPEM = certPEM
	c.key = key
	c.state = slotUnlocked

	c.log.Info().Str("mspid", mspID).Msg("custodian: password identity created")

	return CreatedIdentity{
		Identity:       c.active(),
		RecoveryPhrase: recoveryPhrase,
		RecoveryShares: shares,
	}, nil
}

// parseECDSAPrivateKeyPEM decodes a PEM block holding an ECDSA private key
// in either SEC1 or PKCS8 form.
func parseECDSAPrivateKeyPEM(keyPEM string) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(keyPEM))
	if block == nil {
		return nil, errs.New(errs.InputInvalid, "private key is not valid PEM")
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errs.New(errs.InputInvalid, fmt.Sprintf("private key is not a valid ECDSA key: %v", err))
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errs.New(errs.InputInvalid, "private key is not an ECDSA key")
	}
	return key, nil
}
