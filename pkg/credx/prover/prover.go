/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package prover implements the holder side of the credential issuance
// protocol: master secrets, blinded credential requests and credential
// processing.
package prover

import (
	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/crypto"
)

var logger = log.New("credx/prover")

// Prover orchestrates holder-side operations over a CL crypto backend.
type Prover struct {
	crypto crypto.Service
}

// New returns a prover service backed by c.
func New(c crypto.Service) *Prover {
	return &Prover{crypto: c}
}

// CreateMasterSecret generates a fresh holder master secret.
func (p *Prover) CreateMasterSecret() (*credx.MasterSecret, error) {
	value, err := p.crypto.GenerateMasterSecret()
	if err != nil {
		return nil, credx.WrapError(crypto.Classify(err), err, "generate master secret")
	}

	return &credx.MasterSecret{Value: value}, nil
}

// CreateCredentialRequest blinds the holder's master secret against the
// issuer's public key and offer nonce. It returns the request to send
// to the issuer and the metadata the holder must retain: the metadata
// holds the only copy of the blinding factors, and without it the
// eventually issued credential cannot be processed.
func (p *Prover) CreateCredentialRequest(proverDID credx.DID, credDef *credx.CredentialDefinition,
	masterSecret *credx.MasterSecret, masterSecretID string, offer *credx.CredentialOffer,
) (*credx.CredentialRequest, *credx.CredentialRequestMetadata, error) {
	if masterSecretID == "" {
		return nil, nil, credx.NewError(credx.KindInput, "master secret id is required")
	}

	if offer.CredDefID != credDef.ID {
		return nil, nil, credx.NewErrorf(credx.KindInput,
			"offer is for credential definition %q, not %q", offer.CredDefID, credDef.ID)
	}

	publicKey, err := credDef.Value.PublicKeyJSON()
	if err != nil {
		return nil, nil, err
	}

	blinded, err := p.crypto.BlindMasterSecret(publicKey, offer.KeyCorrectnessProof.Value,
		offer.Nonce, masterSecret.Value)
	if err != nil {
		return nil, nil, credx.WrapError(crypto.Classify(err), err, "blind master secret")
	}

	nonce, err := p.crypto.NewNonce()
	if err != nil {
		return nil, nil, credx.WrapError(crypto.Classify(err), err, "create request nonce")
	}

	logger.Debugf("created credential request for %s", credDef.ID)

	request := &credx.CredentialRequest{
		ProverDID:                 proverDID.String(),
		CredDefID:                 credDef.ID,
		BlindedMs:                 blinded.BlindedMs,
		BlindedMsCorrectnessProof: blinded.CorrectnessProof,
		Nonce:                     nonce,
	}

	metadata := &credx.CredentialRequestMetadata{
		MasterSecretBlindingData: blinded.BlindingData,
		Nonce:                    nonce,
		MasterSecretName:         masterSecretID,
	}

	return request, metadata, nil
}

// ProcessCredential verifies the issued credential's signature
// correctness proof and unblinds its signature with the request
// metadata. It returns a new credential; the input is left unchanged.
func (p *Prover) ProcessCredential(credential *credx.Credential,
	metadata *credx.CredentialRequestMetadata, masterSecret *credx.MasterSecret,
	credDef *credx.CredentialDefinition) (*credx.Credential, error) {
	if err := metadata.Validate(); err != nil {
		return nil, err
	}

	if credential.CredDefID != credDef.ID {
		return nil, credx.NewErrorf(credx.KindInput,
			"credential is for credential definition %q, not %q", credential.CredDefID, credDef.ID)
	}

	publicKey, err := credDef.Value.PublicKeyJSON()
	if err != nil {
		return nil, err
	}

	signature, err := p.crypto.ProcessCredentialSignature(&crypto.ProcessParams{
		Signature:                 credential.Signature,
		SignatureCorrectnessProof: credential.SignatureCorrectnessProof,
		BlindingData:              metadata.MasterSecretBlindingData,
		MasterSecret:              masterSecret.Value,
		PublicKey:                 publicKey,
		RequestNonce:              metadata.Nonce,
		Values:                    credential.Values,
	})
	if err != nil {
		return nil, credx.WrapError(crypto.Classify(err), err, "process credential signature")
	}

	processed := *credential
	processed.Signature = signature

	return &processed, nil
}
