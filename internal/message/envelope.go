// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"github.com/hyperledger/fabric-protos-go-apiv2/common"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer"
)

// SignedProposal wraps proposalBytes and its DER-normalized signature into
// a marshaled peer.SignedProposal, ready for the Evaluate/Endorse RPCs.
func SignedProposal(proposalBytes, signature []byte) ([]byte, error) {
	return marshal(&peer.SignedProposal{
		ProposalBytes: proposalBytes,
		Signature:     signature,
	})
}

// Envelope wraps payload and its DER-normalized signature into a marshaled
// common.Envelope, the shape used both to submit a prepared transaction
// and to open a deliver-seek stream.
func Envelope(payload, signature []byte) ([]byte, error) {
	return marshal(&common.Envelope{
		Payload:   payload,
		Signature: signature,
	})
}
