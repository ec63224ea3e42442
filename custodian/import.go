// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"

	"github.com/rkhiriev/fabric-gateway-client/models"
)

// ImportIdentity imports certPEM/keyPEM directly as the active identity,
// bypassing sealed storage entirely. [Empty] -- import --> [Unlocked].
func (c *Custodian) ImportIdentity(_ context.Context, mspID, certPEM, keyPEM string) (models.AppIdentity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := parseECDSAPrivateKeyPEM(keyPEM)
	if err != nil {
		return models.AppIdentity{}, err
	}

	c.mspID = mspID
	c.certPEM = certPEM
	c.key = key
	c.state = slotUnlocked

	c.log.Info().Str("mspid", mspID).Msg("custodian: identity imported")

	return c.active(), nil
}
