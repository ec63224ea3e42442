// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package custodian

import (
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/vault/shamir"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/tyler-smith/go-bip39"

	"github.com/rkhiriev/fabric-gateway-client/errs"
)

const (
	// minPasswordLen is the length floor from spec.md §4.1: a supplied
	// password shorter than this is rejected before strength is even
	// estimated.
	minPasswordLen = 8

	// minPasswordScore is "3 out of 4" on zxcvbn's 0-4 scale.
	minPasswordScore = 3

	// mnemonicEntropyBits is the BIP-39 entropy used when no password is
	// supplied, producing a 12-word mnemonic.
	mnemonicEntropyBits = 128

	shamirShares    = 5
	shamirThreshold = 3
)

// resolveSecret returns the secret to derive the wrapping key from: either
// the caller's password (validated) or a freshly generated BIP-39 mnemonic.
// It also returns the mnemonic/recovery phrase to hand back to the caller,
// which is empty when a password was supplied.
func resolveSecret(password string) (secret []byte, recoveryPhrase string, err error) {
	if password == "" {
		phrase, genErr := generateMnemonic()
		if genErr != nil {
			return nil, "", genErr
		}
		return []byte(phrase), phrase, nil
	}

	if err := validatePassword(password); err != nil {
		return nil, "", err
	}
	return []byte(password), "", nil
}

// validatePassword enforces the length floor and the "3 out of 4" strength
// estimate, per spec.md §4.1.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errs.New(errs.InputInvalid, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordScore {
		return errs.New(errs.InputInvalid, "password is too weak")
	}
	return nil
}

// generateMnemonic produces a BIP-39 mnemonic from 128 bits of entropy.
func generateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("custodian: generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("custodian: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// splitSecretShares splits secret into 5 Shamir shares with threshold 3 and
// returns them base64-encoded, per spec.md §4.1. Recombination is out of
// scope: the caller only ever hands these shares to the user for offline
// recovery storage.
func splitSecretShares(secret []byte) ([]string, error) {
	shares, err := shamir.Split(secret, shamirShares, shamirThreshold)
	if err != nil {
		return nil, fmt.Errorf("custodian: split secret: %w", err)
	}

	encoded := make([]string, len(shares))
	for i, share := range shares {
		encoded[i] = base64.StdEncoding.EncodeToString(share)
	}
	return encoded, nil
}
