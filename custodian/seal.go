// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/rkhiriev/fabric-gateway-client/errs"
	"github.com/rkhiriev/fabric-gateway-client/keystore"
	"github.com/rkhiriev/fabric-gateway-client/models"
)

const (
	kdfSaltLen      = 16
	aeadIVLen       = 12
	kdfIterations   = 250_000
	wrappingKeyLen  = 32 // 256 bits
)

// deriveWrappingKey derives a 256-bit key from secret and salt via
// PBKDF2-HMAC-SHA256 with exactly 250,000 iterations, per spec.md §4.1.
func deriveWrappingKey(secret []byte, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, kdfIterations, wrappingKeyLen, sha256.New)
}

// sealKeyPEM AEAD-encrypts keyPEM under a key derived from secret. It
// generates a fresh salt and IV and returns them alongside the ciphertext so
// the caller can persist all four SealedIdentity fields.
func sealKeyPEM(keyPEM []byte, secret []byte) (ciphertext, salt, iv []byte, err error) {
	salt = make([]byte, kdfSaltLen)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, nil, fmt.Errorf("custodian: generate salt: %w", err)
	}
	iv = make([]byte, aeadIVLen)
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, nil, fmt.Errorf("custodian: generate iv: %w", err)
	}

	wrappingKey := deriveWrappingKey(secret, salt)
	ciphertext, err = aeadSeal(wrappingKey, iv, keyPEM)
	if err != nil {
		return nil, nil, nil, err
	}
	return ciphertext, salt, iv, nil
}

// unsealKeyPEM re-derives the wrapping key from secret and salt and
// AEAD-decrypts ciphertext. A tag mismatch (wrong secret) surfaces as
// errs.BadPassword, never as a generic error: callers must be able to branch
// on this without inspecting the message.
func unsealKeyPEM(ciphertext, salt, iv, secret []byte) ([]byte, error) {
	wrappingKey := deriveWrappingKey(secret, salt)
	plaintext, err := aeadOpen(wrappingKey, iv, ciphertext)
	if err != nil {
		return nil, errs.New(errs.BadPassword, "incorrect password or corrupted sealed identity")
	}
	return plaintext, nil
}

// aeadSeal encrypts plaintext with AES-256-GCM under key and iv.
func aeadSeal(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("custodian: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("custodian: create gcm: %w", err)
	}
	return gcm.Seal(nil, iv, plaintext, nil), nil
}

// aeadOpen decrypts ciphertext with AES-256-GCM under key and iv. Any error
// here (wrong key, tampered ciphertext) is reported uniformly by the caller.
func aeadOpen(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("custodian: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("custodian: create gcm: %w", err)
	}
	return gcm.Open(nil, iv, ciphertext, nil)
}

// readSealed loads the five SealedIdentity fields from the backing store. A
// field that was never written reads back as a zero value, which is how
// loadSlotState tells Empty from partially-written StoreCorrupt.
func (c *Custodian) readSealed(ctx context.Context) (*models.SealedIdentity, error) {
	encKey, _, err := c.store.Get(ctx, keyEncryptedPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("custodian: read encrypted key: %w", err)
	}
	certBytes, _, err := c.store.Get(ctx, keyUserCertificate)
	if err != nil {
		return nil, fmt.Errorf("custodian: read certificate: %w", err)
	}
	salt, _, err := c.store.Get(ctx, keyKDFSalt)
	if err != nil {
		return nil, fmt.Errorf("custodian: read salt: %w", err)
	}
	iv, _, err := c.store.Get(ctx, keyEncryptionIV)
	if err != nil {
		return nil, fmt.Errorf("custodian: read iv: %w", err)
	}
	mspID, _, err := c.store.Get(ctx, keyMSPID)
	if err != nil {
		return nil, fmt.Errorf("custodian: read mspid: %w", err)
	}

	return &models.SealedIdentity{
		MSPID:           string(mspID),
		EncryptedKeyPEM: encKey,
		CertificatePEM:  string(certBytes),
		KDFSalt:         salt,
		AEADIV:          iv,
	}, nil
}

// writeSealed persists the SealedIdentity fields, preferring a single
// batched flush when the backing store supports it.
func (c *Custodian) writeSealed(ctx context.Context, sealed models.SealedIdentity) error {
	entries := map[string][]byte{
		keyEncryptedPrivateKey: sealed.EncryptedKeyPEM,
		keyUserCertificate:     []byte(sealed.CertificatePEM),
		keyKDFSalt:             sealed.KDFSalt,
		keyEncryptionIV:        sealed.AEADIV,
		keyMSPID:               []byte(sealed.MSPID),
	}

	if batch, ok := c.store.(keystore.BatchSetter); ok {
		if err := batch.SetMany(ctx, entries); err != nil {
			return fmt.Errorf("custodian: persist sealed identity: %w", err)
		}
		return nil
	}

	for key, value := range entries {
		if err := c.store.Set(ctx, key, value); err != nil {
			return fmt.Errorf("custodian: persist sealed identity: %w", err)
		}
	}
	return nil
}

// clearSealed deletes all persisted fields, returning the slot to Empty on
// disk.
func (c *Custodian) clearSealed(ctx context.Context) error {
	for _, key := range []string{keyEncryptedPrivateKey, keyUserCertificate, keyKDFSalt, keyEncryptionIV, keyMSPID} {
		if err := c.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("custodian: clear sealed identity: %w", err)
		}
	}
	return nil
}

func errStoreCorrupt() error {
	return errs.New(errs.StoreCorrupt, "sealed identity record is partially present")
}
