// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package parser decodes the raw payload bytes a peer returns from an
// evaluate or endorse simulation into the best-effort structure
// EvaluatedTransaction.ParsedData carries: JSON when the payload is JSON,
// a plain string when it's UTF-8 but not JSON, and a "(binary) 0x<hex>"
// marker when it isn't even valid UTF-8. It never returns an error: every
// input, however malformed, has a well-defined parsed form, per spec.md
// §4.4.
package parser

import (
	"encoding/hex"
	"encoding/json"
	"unicode/utf8"
)

// Parse decodes payload per spec.md §4.4:
//  1. Decode as UTF-8. If that fails, return "(binary) 0x<hex>".
//  2. If the UTF-8 string parses as JSON, return the parsed structure.
//  3. Otherwise, return the UTF-8 string.
func Parse(payload []byte) any {
	if !utf8.Valid(payload) {
		return "(binary) 0x" + hex.EncodeToString(payload)
	}

	s := string(payload)

	var parsed any
	if err := json.Unmarshal(payload, &parsed); err == nil {
		return parsed
	}

	return s
}
