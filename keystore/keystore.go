// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keystore defines the opaque key/value persistence contract the
// custodian relies on, and two conforming implementations: a local-file
// JSON store and an in-memory store (the idiomatic Go stand-in for the
// "browser-local database" backend spec.md §4.6 names — there is no literal
// browser environment on the server side, so MemoryStore plays the role of
// the second, interchangeable backend).
//
// Grounded on the teacher's file-backed storage shape
// (internal/store/client_sqlite.go's JSON load/persist) and on the example
// pack's fileKeyStorage (SAGE-X-project-sage/pkg/agent/crypto/storage/file.go),
// generalized to add the atomicity and permission invariants spec.md §4.6
// requires that neither source enforces.
package keystore

import "context"

// KeyStore is the abstract contract every persistence backend must satisfy.
// Implementations must guarantee:
//   - binary values round-trip losslessly;
//   - Set is atomic per key: a crash mid-write never yields a half-written
//     value;
//   - file-backed implementations persist with owner-only (0600)
//     permissions, written via write-temp-and-rename.
//
// The custodian must not depend on implementation-specific behavior beyond
// this contract.
type KeyStore interface {
	// Get returns the value for key and true, or nil and false if absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set durably stores value under key. It returns only once the write is
	// durable.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every key currently stored, in no particular order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key. Optional in the sense that some backends may
	// implement it as a no-op-free bulk delete; it must still be atomic
	// with respect to concurrent Get/Set per key.
	Clear(ctx context.Context) error
}

// BatchSetter is an optional optimization: an implementation may offer
// SetMany as a single-flush write of several entries. The custodian uses it
// when the backing store implements this interface, falling back to
// sequential Set calls otherwise.
type BatchSetter interface {
	SetMany(ctx context.Context, entries map[string][]byte) error
}
