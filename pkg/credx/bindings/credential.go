/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// CreateCredential signs the given attribute values into a credential
// against the referenced definition, offer and request, writing the
// new credential's handle. attrEncValues may be nil; missing encodings
// are derived from the raw values.
func CreateCredential(credDef, credDefPrivate, credOffer, credRequest objects.Handle,
	attrRawValues, attrEncValues map[string]string, credential *objects.Handle) ErrorCode {
	clearLastError()

	if credential == nil {
		return setLastError(credx.NewError(credx.KindInput, "credential output parameter is required"))
	}

	def, err := objects.LoadAs[*credx.CredentialDefinition](registry, credDef)
	if err != nil {
		return setLastError(err)
	}

	private, err := objects.LoadAs[*credx.CredentialDefinitionPrivate](registry, credDefPrivate)
	if err != nil {
		return setLastError(err)
	}

	offer, err := objects.LoadAs[*credx.CredentialOffer](registry, credOffer)
	if err != nil {
		return setLastError(err)
	}

	request, err := objects.LoadAs[*credx.CredentialRequest](registry, credRequest)
	if err != nil {
		return setLastError(err)
	}

	values := credx.EncodeCredentialValues(attrRawValues, attrEncValues)

	created, err := issuerService().CreateCredential(def, private, offer, request, values)
	if err != nil {
		return setLastError(err)
	}

	h, err := registry.Register(created)
	if err != nil {
		return setLastError(err)
	}

	*credential = h

	return Success
}

// ProcessCredential unblinds the referenced issued credential with the
// holder's request metadata and master secret, writing a handle to the
// new, usable credential. The input credential object is unchanged.
func ProcessCredential(credential, credReqMetadata, masterSecret, credDef objects.Handle,
	processed *objects.Handle) ErrorCode {
	clearLastError()

	if processed == nil {
		return setLastError(credx.NewError(credx.KindInput, "processed output parameter is required"))
	}

	cred, err := objects.LoadAs[*credx.Credential](registry, credential)
	if err != nil {
		return setLastError(err)
	}

	metadata, err := objects.LoadAs[*credx.CredentialRequestMetadata](registry, credReqMetadata)
	if err != nil {
		return setLastError(err)
	}

	secret, err := objects.LoadAs[*credx.MasterSecret](registry, masterSecret)
	if err != nil {
		return setLastError(err)
	}

	def, err := objects.LoadAs[*credx.CredentialDefinition](registry, credDef)
	if err != nil {
		return setLastError(err)
	}

	result, err := proverService().ProcessCredential(cred, metadata, secret, def)
	if err != nil {
		return setLastError(err)
	}

	h, err := registry.Register(result)
	if err != nil {
		return setLastError(err)
	}

	*processed = h

	return Success
}
