// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// UnlockIdentity re-derives the wrapping key from password and the stored
// salt, decrypts the sealed private key, and imports it as the active
// identity. On authentication failure the slot is left untouched and a
// BadPassword error is returned. [Sealed] -- unlock(ok) --> [Unlocked];
// [Sealed] -- unlock(bad) --> [Sealed].
func (c *Custodian) UnlockIdentity(ctx context.Context, password string) (models.AppIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sealed, err := c.readSealed(ctx)
	if err != nil {
		return models.AppIdentity{}, err
	}
	if sealed.Empty() {
		return models.AppIdentity{}, errs.New(errs.NotUnlocked, "no sealed identity to unlock")
	}
	if !sealed.Complete() {
		return models.AppIdentity{}, errStoreCorrupt()
	}

	keyPEM, err := unsealKeyPEM(sealed.EncryptedKeyPEM, sealed.KDFSalt, sealed.AEADIV, []byte(password))
	if err != nil {
		return models.AppIdentity{}, err
	}

	key, err := parseECDSAPrivateKeyPEM(string(keyPEM))
	if err != nil {
		return models.AppIdentity{}, errStoreCorrupt()
	}

	c.mspID = sealed.MSPID
	c.certPEM = sealed.CertificatePEM
	c.key = key
	c.state = slotUnlocked

	c.log.Info().Msg("custodian: identity unlocked")

	return c.active(), nil
}
