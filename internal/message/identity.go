// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package message

import (
	"github.com/hyperledger/fabric-protos-go-apiv2/msp"
)

// SerializedIdentity packs {mspid, id_bytes = UTF-8(cert_pem)} as Fabric's
// msp.SerializedIdentity, per spec.md §4.3.
func SerializedIdentity(mspID, certPEM string) ([]byte, error) {
	return marshal(&msp.SerializedIdentity{
		Mspid:   mspID,
		IdBytes: []byte(certPEM),
	})
}
