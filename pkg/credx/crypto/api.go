/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package crypto declares the CL crypto backend consumed by the
// issuance services. The engine treats every operation here as opaque:
// key material, blinded secrets and signatures cross this interface as
// backend JSON encodings and are never inspected above it.
package crypto

import (
	"encoding/json"

	"github.com/hyperledger/credx-go/pkg/credx"
)

// CredDefKeys is the artifact set produced by credential definition key
// generation. The three parts are semantically linked: the private key
// and correctness proof are only meaningful alongside the public key
// they were generated with.
type CredDefKeys struct {
	Public              json.RawMessage
	Private             json.RawMessage
	KeyCorrectnessProof json.RawMessage
}

// BlindedSecrets is the holder-side result of blinding a master secret
// against an issuer's public key. BlindingData never leaves the holder.
type BlindedSecrets struct {
	BlindedMs        json.RawMessage
	CorrectnessProof json.RawMessage
	BlindingData     json.RawMessage
}

// SignParams collects the inputs for issuing a credential signature.
type SignParams struct {
	ProverDID                 string
	PublicKey                 json.RawMessage
	PrivateKey                json.RawMessage
	BlindedMs                 json.RawMessage
	BlindedMsCorrectnessProof json.RawMessage
	OfferNonce                string
	RequestNonce              string
	Values                    map[string]credx.AttributeValue
}

// ProcessParams collects the inputs for unblinding an issued credential
// signature on the holder side.
type ProcessParams struct {
	Signature                 json.RawMessage
	SignatureCorrectnessProof json.RawMessage
	BlindingData              json.RawMessage
	MasterSecret              json.RawMessage
	PublicKey                 json.RawMessage
	RequestNonce              string
	Values                    map[string]credx.AttributeValue
}

// Classify maps a backend failure to its error kind. Backends that do
// not classify their own failures are treated as crypto errors.
func Classify(err error) credx.Kind {
	if kind := credx.KindOf(err); kind != credx.KindUnexpected {
		return kind
	}

	return credx.KindCrypto
}

// Service is the CL crypto backend contract. All operations are
// synchronous and perform in-process computation only; failures are
// surfaced as errors, never retried here.
type Service interface {
	// NewNonce produces a fresh protocol nonce.
	NewNonce() (string, error)

	// GenerateCredentialDefinition generates the linked public key,
	// private key and key correctness proof for the given attributes.
	GenerateCredentialDefinition(attrNames []string, supportRevocation bool) (*CredDefKeys, error)

	// GenerateMasterSecret produces a fresh holder master secret.
	GenerateMasterSecret() (json.RawMessage, error)

	// BlindMasterSecret blinds masterSecret against the issuer's public
	// key, correctness proof and offer nonce.
	BlindMasterSecret(publicKey, keyCorrectnessProof json.RawMessage, offerNonce string,
		masterSecret json.RawMessage) (*BlindedSecrets, error)

	// SignCredential issues a blinded credential signature plus its
	// correctness proof.
	SignCredential(params *SignParams) (signature, correctnessProof json.RawMessage, err error)

	// ProcessCredentialSignature verifies the signature correctness
	// proof and unblinds the signature with the holder's blinding data,
	// returning the final signature.
	ProcessCredentialSignature(params *ProcessParams) (json.RawMessage, error)
}
