//go:build ursa
// +build ursa

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ursautil holds small builders shared by the Ursa-backed
// crypto service.
package ursautil

import (
	"github.com/hyperledger/ursa-wrapper-go/pkg/libursa/ursa"

	"github.com/hyperledger/credx-go/pkg/credx"
)

// BuildSchema builds the Ursa schema and non-schema for a credential
// definition over the given attributes. The non-schema always carries
// the hidden master_secret attribute.
func BuildSchema(attrs []string) (*ursa.CredentialSchemaHandle, *ursa.NonCredentialSchemaHandle, error) {
	schemaBuilder, err := ursa.NewCredentialSchemaBuilder()
	if err != nil {
		return nil, nil, err
	}

	for _, attr := range attrs {
		if err = schemaBuilder.AddAttr(attr); err != nil {
			return nil, nil, err
		}
	}

	schema, err := schemaBuilder.Finalize()
	if err != nil {
		return nil, nil, err
	}

	nonSchemaBuilder, err := ursa.NewNonCredentialSchemaBuilder()
	if err != nil {
		return nil, nil, err
	}

	if err = nonSchemaBuilder.AddAttr("master_secret"); err != nil {
		return nil, nil, err
	}

	nonSchema, err := nonSchemaBuilder.Finalize()
	if err != nil {
		return nil, nil, err
	}

	return schema, nonSchema, nil
}

// BuildValues builds Ursa credential values from pre-encoded attribute
// values, optionally with the holder's hidden master secret.
func BuildValues(values map[string]credx.AttributeValue, masterSecretStr *string) (*ursa.CredentialValues, error) {
	valuesBuilder, err := ursa.NewValueBuilder()
	if err != nil {
		return nil, err
	}

	if masterSecretStr != nil {
		if err = valuesBuilder.AddDecHidden("master_secret", *masterSecretStr); err != nil {
			return nil, err
		}
	}

	for attr, value := range values {
		if err = valuesBuilder.AddDecKnown(attr, value.Encoded); err != nil {
			return nil, err
		}
	}

	return valuesBuilder.Finalize()
}
