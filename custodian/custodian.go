// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package custodian owns the private key, performs all signing, and mediates
// all persistence of sealed material. It is the only place in the gateway
// client permitted to hold ECDSA key material in memory.
//
// Grounded on the teacher's crypto.KeyChainService
// (internal/crypto/keychain.go): the same three-step "derive a wrapping key,
// AEAD-seal the secret, never let the secret escape the package" shape, with
// Argon2id swapped for the PBKDF2-HMAC-SHA256(250,000) derivation and the
// DEK/KEK hierarchy swapped for a single sealed ECDSA private key, per
// spec.md §4.1.
package custodian

import (
	"context"
	"crypto/ecdsa"
	"sync"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/internal/logger"
	"github.com/rkhiriev/fabric-gateway-client/keystore"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

// slotState is the password-identity slot's state, per the state diagram in
// spec.md §4.1.
type slotState int

const (
	slotEmpty slotState = iota
	slotSealed
	slotUnlocked
)

// Persisted-state key names, per spec.md §6 "Persisted state (KeyStore
// keys)".
const (
	keyEncryptedPrivateKey = "pbe-fabric-encrypted-private-key"
	keyUserCertificate     = "pbe-fabric-user-certificate"
	keyKDFSalt             = "pbe-fabric-key-derivation-salt"
	keyEncryptionIV        = "pbe-fabric-encryption-iv"
	keyHardwareCredential  = "hw-fabric-credential-id"

	// keyMSPID is a supplementary key beyond spec.md §6's minimal list: it
	// stores the MSP id in the clear (not secret) so UnlockIdentity can
	// rebuild a complete AppIdentity without the caller re-supplying it.
	keyMSPID = "pbe-fabric-msp-id"
)

// Custodian owns exactly one active password-based identity slot plus an
// optional hardware-attestation overlay that points back into it. All
// operations are serialized through mu: the underlying key handle is not
// assumed re-entrant, so at most one sign proceeds at a time, per spec.md §5.
type Custodian struct {
	mu sync.Mutex

	store   keystore.KeyStore
	hwStore keystore.KeyStore // may be nil if no hardware slot is configured

	log *logger.Logger

	state     slotState
	mspID     string
	certPEM   string
	key       *ecdsa.PrivateKey
	hwPending *hardwareUnlockState
}

// New constructs a Custodian backed by store for the password slot and
// hwStore for the hardware-attestation overlay. hwStore may be nil; the
// hardware slot operations then return InputInvalid.
func New(store keystore.KeyStore, hwStore keystore.KeyStore, log *logger.Logger) *Custodian {
	if log == nil {
		log = logger.Nop()
	}
	return &Custodian{store: store, hwStore: hwStore, log: log, state: slotEmpty}
}

// loadSlotState inspects the backing store to classify the slot as Empty or
// Sealed. It does not mutate c; callers hold mu.
func (c *Custodian) loadSlotState(ctx context.Context) (slotState, *models.SealedIdentity, error) {
	sealed, err := c.readSealed(ctx)
	if err != nil {
		return slotEmpty, nil, err
	}
	if sealed.Empty() {
		return slotEmpty, sealed, nil
	}
	if !sealed.Complete() {
		return slotEmpty, sealed, errStoreCorrupt()
	}
	return slotSealed, sealed, nil
}

// SlotState names the three states from the custodian's state diagram.
type SlotState string

const (
	SlotStateEmpty    SlotState = "Empty"
	SlotStateSealed   SlotState = "Sealed"
	SlotStateUnlocked SlotState = "Unlocked"
)

// State reports the password slot's current state without attempting to
// unlock it: Unlocked if a key is held in memory, otherwise Sealed or Empty
// depending on what is persisted.
func (c *Custodian) State(ctx context.Context) (SlotState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == slotUnlocked {
		return SlotStateUnlocked, nil
	}

	persisted, _, err := c.loadSlotState(ctx)
	if err != nil {
		if errs.IsKind(err, errs.StoreCorrupt) {
			return SlotStateSealed, err
		}
		return SlotStateEmpty, err
	}
	if persisted == slotSealed {
		return SlotStateSealed, nil
	}
	return SlotStateEmpty, nil
}

// active builds the public AppIdentity view of the currently unlocked key.
// Callers must hold mu and have already verified state == slotUnlocked.
func (c *Custodian) active() models.AppIdentity {
	return models.AppIdentity{
		MSPID:   c.mspID,
		CertPEM: c.certPEM,
		Sign:    c.Sign,
	}
}

// clearKey zeroes the in-memory key handle. Go's GC does not guarantee the
// backing bytes of a big.Int are scrubbed, but this still drops the only
// live reference so the key cannot be reached through the Custodian again.
func (c *Custodian) clearKey() {
	c.key = nil
	c.mspID = ""
	c.certPEM = ""
	c.state = slotEmpty
}
