/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// CreateCredentialRequest blinds the referenced master secret against
// the referenced credential definition and offer, writing two handles:
// the request to send to the issuer and the metadata the holder must
// retain. The metadata cannot be derived from the request afterwards;
// without it the issued credential is unusable. Either both outputs
// are written or, on failure, neither.
func CreateCredentialRequest(proverDID string, credDef, masterSecret objects.Handle,
	masterSecretID string, credOffer objects.Handle,
	credReq, credReqMetadata *objects.Handle) ErrorCode {
	clearLastError()

	if credReq == nil || credReqMetadata == nil {
		return setLastError(credx.NewError(credx.KindInput, "credential request output parameters are required"))
	}

	did, err := credx.ParseDID(proverDID)
	if err != nil {
		return setLastError(err)
	}

	def, err := objects.LoadAs[*credx.CredentialDefinition](registry, credDef)
	if err != nil {
		return setLastError(err)
	}

	secret, err := objects.LoadAs[*credx.MasterSecret](registry, masterSecret)
	if err != nil {
		return setLastError(err)
	}

	offer, err := objects.LoadAs[*credx.CredentialOffer](registry, credOffer)
	if err != nil {
		return setLastError(err)
	}

	request, metadata, err := proverService().CreateCredentialRequest(did, def, secret, masterSecretID, offer)
	if err != nil {
		return setLastError(err)
	}

	handles, err := registerAll(request, metadata)
	if err != nil {
		return setLastError(err)
	}

	*credReq, *credReqMetadata = handles[0], handles[1]

	return Success
}
