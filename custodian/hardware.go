// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// hardwareUnlockState tracks an in-progress hardware-unlock ceremony. The
// ceremony itself (talking to an attestation authenticator) is a host
// responsibility and out of scope here; the custodian only stores the
// resulting credential id and accepts the ceremony's token as the
// password-slot unseal secret.
type hardwareUnlockState struct {
	credentialID string
}

// BeginHardwareUnlock starts a hardware-unlock ceremony: it returns the
// attestation-credential id the host should present to its hardware
// authenticator (e.g. a WebAuthn platform authenticator), generating and
// persisting a fresh one on first use. It fails InputInvalid if no hardware
// KeyStore was configured.
func (c *Custodian) BeginHardwareUnlock(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hwStore == nil {
		return "", errs.New(errs.InputInvalid, "no hardware slot configured")
	}

	existing, ok, err := c.hwStore.Get(ctx, keyHardwareCredential)
	if err != nil {
		return "", fmt.Errorf("custodian: read hardware credential id: %w", err)
	}
	if ok && len(existing) > 0 {
		credentialID := string(existing)
		c.hwPending = &hardwareUnlockState{credentialID: credentialID}
		return credentialID, nil
	}

	credentialID := uuid.NewString()
	if err := c.hwStore.Set(ctx, keyHardwareCredential, []byte(credentialID)); err != nil {
		return "", fmt.Errorf("custodian: persist hardware credential id: %w", err)
	}
	c.hwPending = &hardwareUnlockState{credentialID: credentialID}
	return credentialID, nil
}

// CompleteHardwareUnlock finishes a hardware-unlock ceremony begun with
// BeginHardwareUnlock: token is the secret the hardware authenticator
// released (or unwrapped), and it is used exactly as a password would be
// to unseal the password slot.
func (c *Custodian) CompleteHardwareUnlock(ctx context.Context, token string) (models.AppIdentity, error) {
	c.mu.Lock()
	if c.hwStore == nil {
		c.mu.Unlock()
		return models.AppIdentity{}, errs.New(errs.InputInvalid, "no hardware slot configured")
	}
	if c.hwPending == nil {
		c.mu.Unlock()
		return models.AppIdentity{}, errs.New(errs.InputInvalid, "no hardware-unlock ceremony in progress")
	}
	c.hwPending = nil
	c.mu.Unlock()

	return c.UnlockIdentity(ctx, token)
}
