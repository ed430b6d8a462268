/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"encoding/json"
	"strings"

	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// validator is implemented by domain objects that check their own
// well-formedness after decoding.
type validator interface {
	Validate() error
}

// objectFromJSON decodes, validates and registers a domain object. All
// per-type FromJSON entry points share this one implementation; only
// the type parameter differs.
func objectFromJSON[T any, PT interface {
	*T
	objects.Object
}](raw string, handle *objects.Handle) ErrorCode {
	clearLastError()

	if handle == nil {
		return setLastError(credx.NewError(credx.KindInput, "handle output parameter is required"))
	}

	value := PT(new(T))

	if strings.TrimSpace(raw) == "" {
		return setLastError(credx.NewErrorf(credx.KindInput, "empty %s encoding", value.TypeName()))
	}

	if err := json.Unmarshal([]byte(raw), value); err != nil {
		return setLastError(credx.WrapError(credx.KindInput, err,
			"invalid "+value.TypeName()+" encoding"))
	}

	if v, ok := any(value).(validator); ok {
		if err := v.Validate(); err != nil {
			return setLastError(err)
		}
	}

	h, err := registry.Register(value)
	if err != nil {
		return setLastError(err)
	}

	*handle = h

	return Success
}

// SchemaFromJSON parses a schema encoding into a new object handle.
func SchemaFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.Schema](raw, handle)
}

// CredentialDefinitionFromJSON parses a credential definition encoding
// into a new object handle.
func CredentialDefinitionFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.CredentialDefinition](raw, handle)
}

// CredentialDefinitionPrivateFromJSON parses a private key encoding
// into a new object handle.
func CredentialDefinitionPrivateFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.CredentialDefinitionPrivate](raw, handle)
}

// KeyCorrectnessProofFromJSON parses a key correctness proof encoding
// into a new object handle.
func KeyCorrectnessProofFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.KeyCorrectnessProof](raw, handle)
}

// CredentialOfferFromJSON parses a credential offer encoding into a new
// object handle.
func CredentialOfferFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.CredentialOffer](raw, handle)
}

// CredentialRequestFromJSON parses a credential request encoding into a
// new object handle.
func CredentialRequestFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.CredentialRequest](raw, handle)
}

// CredentialRequestMetadataFromJSON parses request metadata into a new
// object handle.
func CredentialRequestMetadataFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.CredentialRequestMetadata](raw, handle)
}

// MasterSecretFromJSON parses a master secret encoding into a new
// object handle.
func MasterSecretFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.MasterSecret](raw, handle)
}

// CredentialFromJSON parses a credential encoding into a new object
// handle.
func CredentialFromJSON(raw string, handle *objects.Handle) ErrorCode {
	return objectFromJSON[credx.Credential](raw, handle)
}

// ObjectGetJSON serializes the referenced object back to its textual
// encoding.
func ObjectGetJSON(handle objects.Handle, result *string) ErrorCode {
	clearLastError()

	if result == nil {
		return setLastError(credx.NewError(credx.KindInput, "result output parameter is required"))
	}

	entry, err := registry.Load(handle)
	if err != nil {
		return setLastError(err)
	}

	raw, err := json.Marshal(entry.Value())
	if err != nil {
		return setLastError(credx.WrapError(credx.KindUnexpected, err,
			"serialize "+entry.TypeName()))
	}

	*result = string(raw)

	return Success
}

// ObjectGetTypeName reports the type tag of the referenced object.
func ObjectGetTypeName(handle objects.Handle, result *string) ErrorCode {
	clearLastError()

	if result == nil {
		return setLastError(credx.NewError(credx.KindInput, "result output parameter is required"))
	}

	entry, err := registry.Load(handle)
	if err != nil {
		return setLastError(err)
	}

	*result = entry.TypeName()

	return Success
}

// ObjectFree releases the referenced object and invalidates the handle.
// Freeing an unknown or already freed handle reports NotFound.
func ObjectFree(handle objects.Handle) ErrorCode {
	clearLastError()

	if err := registry.Release(handle); err != nil {
		return setLastError(err)
	}

	return Success
}
