// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package errs defines the error taxonomy returned at every public boundary
// of the gateway client. It mirrors the teacher's two-layer sentinel design
// (internal/app message constants + internal/service sentinel errors +
// a mapper from transport errors to domain errors), collapsed into a single
// Kind-tagged error type since the taxonomy here is fixed and small.
package errs

import (
	"errors"
	"fmt"
)

// Kind names one of the error categories from spec.md §7. It is the only
// thing callers should branch on; Message is for humans and logs.
type Kind string

const (
	// InputInvalid covers a password too weak, missing fields, non-base64
	// share, or an unknown config option.
	InputInvalid Kind = "InputInvalid"

	// NotUnlocked means sign was requested with no unlocked key.
	NotUnlocked Kind = "NotUnlocked"

	// BadPassword means the KDF-derived key failed AEAD authentication.
	BadPassword Kind = "BadPassword"

	// StoreCorrupt means a partial sealed record was found: some fields
	// present, others missing.
	StoreCorrupt Kind = "StoreCorrupt"

	// TransportFailure covers connection refused, TLS failure, or a gRPC
	// status other than OK.
	TransportFailure Kind = "TransportFailure"

	// EndorsementFailure means the chaincode returned non-success or peers
	// disagreed.
	EndorsementFailure Kind = "EndorsementFailure"

	// CommitFailed means the commit-status RPC returned a non-VALID
	// validation code. Code carries that validation code.
	CommitFailed Kind = "CommitFailed"

	// Cancelled marks a user cancellation. Streams never surface this as an
	// error value; it exists so internal plumbing can tell a cancellation
	// apart from a real failure before converting at the public boundary.
	Cancelled Kind = "Cancelled"

	// StreamProtocolError means the deliver WebSocket closed with a
	// non-1000 code, or sent a malformed frame.
	StreamProtocolError Kind = "StreamProtocolError"
)

// Error is the single error type returned at every public boundary. It
// never embeds key material or password material in Message, by
// construction of every call site that builds one.
type Error struct {
	kind    Kind
	message string
	// txID is set for CommitFailed errors so callers don't have to parse it
	// back out of Message.
	txID string
	// code carries the validation code for CommitFailed.
	code  string
	cause error
}

// New builds an *Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap builds an *Error that also records cause for errors.Unwrap/errors.As.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

// CommitFailedError builds the CommitFailed error shape spec.md §7 names,
// embedding tx_id and the validation code in Message as required by the
// end-to-end scenario in spec.md §8.
func CommitFailedError(txID, validationCode string) *Error {
	return &Error{
		kind:    CommitFailed,
		message: fmt.Sprintf("transaction %s failed to commit: %s", txID, validationCode),
		txID:    txID,
		code:    validationCode,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error's category.
func (e *Error) Kind() Kind { return e.kind }

// TxID returns the transaction id associated with the error, if any.
func (e *Error) TxID() string { return e.txID }

// ValidationCode returns the commit validation code, set only for
// CommitFailed errors.
func (e *Error) ValidationCode() string { return e.code }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, errs.New(errs.NotUnlocked, "")) style checks.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.kind == other.kind
}

// IsKind reports whether err is an *errs.Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}
