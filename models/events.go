// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ChaincodeEvent is a single event emitted by a chaincode transaction.
type ChaincodeEvent struct {
	TxID          string
	ChaincodeName string
	EventName     string
	Payload       []byte
}

// ChaincodeEventBatch groups every ChaincodeEvent that landed in one block.
type ChaincodeEventBatch struct {
	BlockNumber uint64
	Events      []ChaincodeEvent
}

// ChaincodeAction is a single transaction's outcome within a FilteredBlock.
type ChaincodeAction struct {
	TxID           string
	ValidationCode string
	ChaincodeName  string
}

// FilteredBlock is the decoded payload of a peer deliver-filtered stream
// entry.
type FilteredBlock struct {
	ChannelID        string
	Number           uint64
	ChaincodeActions []ChaincodeAction
}

// SeekStart selects where a block-event subscription begins reading.
type SeekStart struct {
	// Newest, when true, starts at the next block committed after the
	// subscription opens. When false, BlockNumber selects a specific,
	// possibly historical, starting block.
	Newest      bool
	BlockNumber uint64
}
