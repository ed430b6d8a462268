/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// CreateSchema creates a schema object with a derived identifier and
// writes its handle to schema. seqNo may be zero for schemas that are
// not ledger-anchored.
func CreateSchema(originDID, name, version string, attrNames []string, seqNo uint64,
	schema *objects.Handle) ErrorCode {
	clearLastError()

	if schema == nil {
		return setLastError(credx.NewError(credx.KindInput, "schema output parameter is required"))
	}

	did, err := credx.ParseDID(originDID)
	if err != nil {
		return setLastError(err)
	}

	created, err := issuerService().CreateSchema(did, name, version, attrNames, seqNo)
	if err != nil {
		return setLastError(err)
	}

	h, err := registry.Register(created)
	if err != nil {
		return setLastError(err)
	}

	*schema = h

	return Success
}

// SchemaGetID writes the referenced schema's derived identifier without
// requiring the caller to deserialize the object.
func SchemaGetID(handle objects.Handle, result *string) ErrorCode {
	clearLastError()

	if result == nil {
		return setLastError(credx.NewError(credx.KindInput, "result output parameter is required"))
	}

	schema, err := objects.LoadAs[*credx.Schema](registry, handle)
	if err != nil {
		return setLastError(err)
	}

	*result = schema.ID

	return Success
}
