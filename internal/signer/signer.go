// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package signer implements the only signature encoding the core accepts:
// low-S-normalized ASN.1 DER over a raw ECDSA P-256 (R||S) signature.
//
// Big-integer work is deliberately narrow, per spec.md §9 "Big-integer
// arithmetic for low-S": the only operation needed is comparing S against
// N/2 and computing N-S over the fixed 256-bit P-256 group order, so
// math/big is used directly rather than pulling in a general bignum
// dependency.
package signer

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
)

// rawSignatureLen is the length of the raw ECDSA P-256 signature the
// custodian produces: 32 bytes of R followed by 32 bytes of S.
const rawSignatureLen = 64

// halfOrder is N/2 for the P-256 group order, computed once.
var halfOrder = new(big.Int).Rsh(elliptic.P256().Params().N, 1)

// order is the P-256 group order N.
var order = elliptic.P256().Params().N

// EncodeDER normalizes raw to low-S and encodes it as the minimal ASN.1 DER
// SEQUENCE{INTEGER r, INTEGER s} Fabric requires on the wire. raw must be
// exactly 64 bytes: R (big-endian, 32 bytes) followed by S (big-endian, 32
// bytes).
func EncodeDER(raw []byte) ([]byte, error) {
	if len(raw) != rawSignatureLen {
		return nil, fmt.Errorf("signer: raw signature must be %d bytes, got %d", rawSignatureLen, len(raw))
	}

	r := new(big.Int).SetBytes(raw[:32])
	s := new(big.Int).SetBytes(raw[32:])

	s = normalizeLowS(s)

	rEnc := encodeInteger(r)
	sEnc := encodeInteger(s)

	body := make([]byte, 0, len(rEnc)+len(sEnc))
	body = append(body, rEnc...)
	body = append(body, sEnc...)

	return wrapSequence(body), nil
}

// normalizeLowS replaces s with N-s whenever s is in the upper half of the
// group order, per spec.md §4.2 step 1. The result always satisfies
// s <= N/2.
func normalizeLowS(s *big.Int) *big.Int {
	if s.Cmp(halfOrder) > 0 {
		return new(big.Int).Sub(order, s)
	}
	return s
}

// encodeInteger produces the minimal two's-complement-positive ASN.1
// INTEGER encoding for a non-negative value, per spec.md §4.2 step 2:
// strip leading 0x00 bytes while the next byte's high bit is clear, then
// prepend a single 0x00 if the resulting leading byte's high bit is set.
func encodeInteger(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}

	// Strip leading zero bytes, but never strip the last remaining byte.
	for len(b) > 1 && b[0] == 0x00 && b[1]&0x80 == 0 {
		b = b[1:]
	}

	if b[0]&0x80 != 0 {
		padded := make([]byte, len(b)+1)
		copy(padded[1:], b)
		b = padded
	}

	header := []byte{0x02, byte(len(b))}
	return append(header, b...)
}

// wrapSequence wraps body in a DER SEQUENCE tag, assuming body's length
// fits a single-byte length (always true here: two P-256 INTEGERs never
// exceed 33 bytes each).
func wrapSequence(body []byte) []byte {
	header := []byte{0x30, byte(len(body))}
	return append(header, body...)
}
