/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package issuer implements the issuer side of the credential issuance
// protocol: schema and credential definition creation, credential
// offers and credential signing. The CL math itself is delegated to
// the injected crypto backend.
package issuer

import (
	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/crypto"
)

var logger = log.New("credx/issuer")

// Issuer orchestrates issuer-side operations over a CL crypto backend.
type Issuer struct {
	crypto crypto.Service
}

// New returns an issuer service backed by c.
func New(c crypto.Service) *Issuer {
	return &Issuer{crypto: c}
}

// CreateSchema builds a schema with a derived identifier. seqNo may be
// zero for schemas that are not ledger-anchored.
func (i *Issuer) CreateSchema(originDID credx.DID, name, version string,
	attrNames []string, seqNo uint64) (*credx.Schema, error) {
	schema := &credx.Schema{
		Ver:       credx.DefaultVer,
		ID:        credx.NewSchemaID(originDID, name, version),
		Name:      name,
		Version:   version,
		AttrNames: attrNames,
		SeqNo:     seqNo,
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}

	return schema, nil
}

// CreateCredentialDefinition generates the public definition, the
// private key and the key correctness proof for the given schema. The
// three artifacts are linked but returned separately so callers can
// store or discard each on its own.
func (i *Issuer) CreateCredentialDefinition(originDID credx.DID, schema *credx.Schema, tag string,
	sigType credx.SignatureType, config credx.CredentialDefinitionConfig,
) (*credx.CredentialDefinition, *credx.CredentialDefinitionPrivate, *credx.KeyCorrectnessProof, error) {
	if err := schema.Validate(); err != nil {
		return nil, nil, nil, err
	}

	keys, err := i.crypto.GenerateCredentialDefinition(schema.AttrNames, config.SupportRevocation)
	if err != nil {
		return nil, nil, nil, credx.WrapError(crypto.Classify(err), err, "generate credential definition")
	}

	data, err := credx.CredentialDefinitionDataFromPublicKey(keys.Public)
	if err != nil {
		return nil, nil, nil, err
	}

	credDef := &credx.CredentialDefinition{
		Ver:      credx.DefaultVer,
		ID:       credx.NewCredentialDefinitionID(originDID, schema, sigType, tag),
		SchemaID: schema.Ref(),
		Type:     sigType,
		Tag:      tag,
		Value:    *data,
	}

	logger.Debugf("created credential definition %s", credDef.ID)

	return credDef,
		&credx.CredentialDefinitionPrivate{Value: keys.Private},
		&credx.KeyCorrectnessProof{Value: keys.KeyCorrectnessProof},
		nil
}

// CreateCredentialOffer builds the offer a holder needs to request a
// credential against the given definition.
func (i *Issuer) CreateCredentialOffer(schemaID string, credDef *credx.CredentialDefinition,
	keyProof *credx.KeyCorrectnessProof) (*credx.CredentialOffer, error) {
	if schemaID == "" {
		return nil, credx.NewError(credx.KindInput, "schema id is required")
	}

	if err := keyProof.Validate(); err != nil {
		return nil, err
	}

	nonce, err := i.crypto.NewNonce()
	if err != nil {
		return nil, credx.WrapError(crypto.Classify(err), err, "create offer nonce")
	}

	return &credx.CredentialOffer{
		SchemaID:            schemaID,
		CredDefID:           credDef.ID,
		KeyCorrectnessProof: *keyProof,
		Nonce:               nonce,
	}, nil
}

// CreateCredential signs the requested attribute values into a blinded
// credential. The result must still be processed by the holder with
// the request metadata before it is usable.
func (i *Issuer) CreateCredential(credDef *credx.CredentialDefinition,
	credDefPrivate *credx.CredentialDefinitionPrivate, offer *credx.CredentialOffer,
	request *credx.CredentialRequest, values map[string]credx.AttributeValue,
) (*credx.Credential, error) {
	if len(values) == 0 {
		return nil, credx.NewError(credx.KindInput, "credential values are required")
	}

	if offer.CredDefID != credDef.ID || request.CredDefID != credDef.ID {
		return nil, credx.NewError(credx.KindInput,
			"offer and request must reference the supplied credential definition")
	}

	publicKey, err := credDef.Value.PublicKeyJSON()
	if err != nil {
		return nil, err
	}

	signature, signatureProof, err := i.crypto.SignCredential(&crypto.SignParams{
		ProverDID:                 request.ProverDID,
		PublicKey:                 publicKey,
		PrivateKey:                credDefPrivate.Value,
		BlindedMs:                 request.BlindedMs,
		BlindedMsCorrectnessProof: request.BlindedMsCorrectnessProof,
		OfferNonce:                offer.Nonce,
		RequestNonce:              request.Nonce,
		Values:                    values,
	})
	if err != nil {
		return nil, credx.WrapError(crypto.Classify(err), err, "sign credential")
	}

	return &credx.Credential{
		SchemaID:                  offer.SchemaID,
		CredDefID:                 credDef.ID,
		Values:                    values,
		Signature:                 signature,
		SignatureCorrectnessProof: signatureProof,
	}, nil
}
