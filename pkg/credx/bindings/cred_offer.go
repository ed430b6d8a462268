/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// CreateCredentialOffer builds a credential offer for the referenced
// definition and key correctness proof and writes its handle to offer.
func CreateCredentialOffer(schemaID string, credDef, keyProof objects.Handle,
	offer *objects.Handle) ErrorCode {
	clearLastError()

	if offer == nil {
		return setLastError(credx.NewError(credx.KindInput, "offer output parameter is required"))
	}

	def, err := objects.LoadAs[*credx.CredentialDefinition](registry, credDef)
	if err != nil {
		return setLastError(err)
	}

	proof, err := objects.LoadAs[*credx.KeyCorrectnessProof](registry, keyProof)
	if err != nil {
		return setLastError(err)
	}

	created, err := issuerService().CreateCredentialOffer(schemaID, def, proof)
	if err != nil {
		return setLastError(err)
	}

	h, err := registry.Register(created)
	if err != nil {
		return setLastError(err)
	}

	*offer = h

	return Success
}
