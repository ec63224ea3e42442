// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SealedIdentity is the persisted form of a password-protected identity.
// The four AEAD-relevant fields are present together or absent together;
// partial presence is a StoreCorrupt condition. MSPID travels alongside
// them in the clear (it is not secret) so an unlock can rebuild a complete
// AppIdentity without requiring the caller to re-supply it.
type SealedIdentity struct {
	// MSPID identifies the Membership Service Provider the identity
	// belongs to, e.g. "Org1MSP".
	MSPID string

	// EncryptedKeyPEM is the AES-256-GCM ciphertext of the PEM private key
	// (nonce is AEADIV; tag is appended by the AEAD implementation).
	EncryptedKeyPEM []byte

	// CertificatePEM is the PEM certificate, stored in the clear: it is not
	// secret, only the private key is.
	CertificatePEM string

	// KDFSalt is the 16-byte salt used to derive the wrapping key via
	// PBKDF2-HMAC-SHA256.
	KDFSalt []byte

	// AEADIV is the 12-byte GCM nonce used for EncryptedKeyPEM.
	AEADIV []byte
}

// Complete reports whether all four AEAD-relevant fields of a SealedIdentity
// are present together, per the persisted-state invariant in spec.md §3.
func (s SealedIdentity) Complete() bool {
	return len(s.EncryptedKeyPEM) > 0 && s.CertificatePEM != "" &&
		len(s.KDFSalt) > 0 && len(s.AEADIV) > 0
}

// Empty reports whether all four AEAD-relevant fields are absent.
func (s SealedIdentity) Empty() bool {
	return len(s.EncryptedKeyPEM) == 0 && s.CertificatePEM == "" &&
		len(s.KDFSalt) == 0 && len(s.AEADIV) == 0
}
