// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Arg is a single chaincode invocation argument. Exactly one of Str or Bytes
// is meaningful at a time; IsBytes reports which.
type Arg struct {
	Str     string
	Bytes   []byte
	IsBytes bool
}

// StringArg wraps a UTF-8 argument.
func StringArg(s string) Arg { return Arg{Str: s} }

// BytesArg wraps a raw-bytes argument.
func BytesArg(b []byte) Arg { return Arg{Bytes: b, IsBytes: true} }

// Value returns the argument's wire bytes: the UTF-8 encoding of Str, or
// Bytes directly.
func (a Arg) Value() []byte {
	if a.IsBytes {
		return a.Bytes
	}
	return []byte(a.Str)
}

// ProposalParams describes a chaincode invocation: which channel and
// chaincode to target, which function to call, and its arguments in order.
// Arguments are serialized with index 0 = function name (UTF-8), indices
// 1..N = the caller-supplied Args, in order.
type ProposalParams struct {
	MSPID         string
	ChannelName   string
	ChaincodeName string
	FunctionName  string
	Args          []Arg
}

// TransactionContext is derived fresh for every transaction and never
// persisted. TxID is deterministic given Nonce and CreatorBytes; a given
// Nonce value must be used exactly once.
type TransactionContext struct {
	// Nonce is 24 cryptographically random bytes, unique per transaction.
	Nonce []byte

	// CreatorBytes is the serialized SerializedIdentity of the signer.
	CreatorBytes []byte

	// TxID is hex(SHA-256(Nonce || CreatorBytes)), lowercase, 64 hex chars.
	TxID string

	// Timestamp is captured once when the context is created and reused by
	// every header built from it, so two builds from the same context are
	// byte-identical.
	Timestamp time.Time
}

// PreparedTransaction is the output of endorsement, ready to be signed and
// submitted. EnvelopePayload is the protobuf-serialized Payload the endorser
// returned, unsigned. Simulation carries the chaincode's own response to the
// endorsed invocation, already decoded by the parser, so submitAndCommit can
// surface it without a separate evaluate call.
type PreparedTransaction struct {
	TxID            string
	EnvelopePayload []byte
	Simulation      EvaluatedTransaction
}

// CommitStatus is the outcome a committed transaction reaches on the
// ledger.
type CommitStatus struct {
	// Valid is true for a successfully committed transaction.
	Valid bool

	// Code names the validation code Fabric assigned (e.g. "VALID",
	// "MVCC_READ_CONFLICT"). Always populated, even when Valid is true
	// (in which case Code == "VALID").
	Code string
}

// SubmittedOutcome is the result of submitAndCommit. Result carries the
// chaincode's simulation response captured at endorsement time, already
// decoded by the parser; submitAndCommit never re-evaluates to obtain it.
type SubmittedOutcome struct {
	TxID         string
	CommitStatus CommitStatus
	Result       EvaluatedTransaction
}

// EvaluatedTransaction is the parsed result of an evaluate or the decoded
// simulation result carried by an endorse response.
type EvaluatedTransaction struct {
	TxID   string
	Status string
	// Message carries a human-readable detail, often empty on success.
	Message string
	// ParsedData holds whatever the Parser produced: a JSON structure
	// (map[string]any / []any / scalar), a plain string, or a
	// "(binary) 0x<hex>" string when the payload was not valid UTF-8.
	ParsedData any
}
