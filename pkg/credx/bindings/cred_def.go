/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// CreateCredentialDefinition generates a credential definition for the
// referenced schema and writes three handles: the public definition,
// the private key and the key correctness proof. The three objects are
// paired with each other and only meaningful together, but are stored
// independently so callers can persist the public parts without the
// private key. Either all three outputs are written or, on failure,
// none.
//
// An empty tag selects the "default" tag; signatureType must name a
// supported scheme ("CL").
func CreateCredentialDefinition(originDID string, schema objects.Handle, tag, signatureType string,
	supportRevocation bool, credDef, credDefPrivate, keyProof *objects.Handle) ErrorCode {
	clearLastError()

	if credDef == nil || credDefPrivate == nil || keyProof == nil {
		return setLastError(credx.NewError(credx.KindInput, "credential definition output parameters are required"))
	}

	did, err := credx.ParseDID(originDID)
	if err != nil {
		return setLastError(err)
	}

	schemaObj, err := objects.LoadAs[*credx.Schema](registry, schema)
	if err != nil {
		return setLastError(err)
	}

	if tag == "" {
		tag = credx.DefaultTag
	}

	sigType, err := credx.ParseSignatureType(signatureType)
	if err != nil {
		return setLastError(err)
	}

	def, private, proof, err := issuerService().CreateCredentialDefinition(did, schemaObj, tag, sigType,
		credx.CredentialDefinitionConfig{SupportRevocation: supportRevocation})
	if err != nil {
		return setLastError(err)
	}

	handles, err := registerAll(def, private, proof)
	if err != nil {
		return setLastError(err)
	}

	*credDef, *credDefPrivate, *keyProof = handles[0], handles[1], handles[2]

	return Success
}

// CredentialDefinitionGetID writes the referenced definition's derived
// identifier without requiring the caller to deserialize the object.
func CredentialDefinitionGetID(handle objects.Handle, result *string) ErrorCode {
	clearLastError()

	if result == nil {
		return setLastError(credx.NewError(credx.KindInput, "result output parameter is required"))
	}

	def, err := objects.LoadAs[*credx.CredentialDefinition](registry, handle)
	if err != nil {
		return setLastError(err)
	}

	*result = def.ID

	return Success
}

// registerAll registers every value or none: a failure rolls back the
// entries registered so far, so a partially materialized result is
// never observable through the registry.
func registerAll(values ...objects.Object) ([]objects.Handle, error) {
	handles := make([]objects.Handle, 0, len(values))

	for _, value := range values {
		h, err := registry.Register(value)
		if err != nil {
			for _, registered := range handles {
				_ = registry.Release(registered) // nolint: errcheck
			}

			return nil, err
		}

		handles = append(handles, h)
	}

	return handles, nil
}
