//go:build ursa
// +build ursa

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ursa implements the CL crypto backend over the libursa
// wrapper. All heap objects handed out by libursa are freed before
// returning; only JSON encodings cross this package's boundary.
package ursa

import (
	"encoding/json"

	"github.com/hyperledger/ursa-wrapper-go/pkg/libursa/ursa"

	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/crypto"
	"github.com/hyperledger/credx-go/pkg/internal/ursautil"
)

// CL is the Ursa-backed crypto.Service.
type CL struct{}

// New returns the Ursa-backed CL crypto service.
func New() *CL {
	return &CL{}
}

// NewNonce produces a fresh protocol nonce.
func (c *CL) NewNonce() (string, error) {
	nonce, err := ursa.NewNonce()
	if err != nil {
		return "", credx.WrapError(credx.KindCrypto, err, "create nonce")
	}

	defer nonce.Free() // nolint: errcheck

	raw, err := nonce.ToJSON()
	if err != nil {
		return "", credx.WrapError(credx.KindCrypto, err, "serialize nonce")
	}

	return nonceFromRaw(raw)
}

// GenerateCredentialDefinition generates linked CL key material for the
// given attributes.
func (c *CL) GenerateCredentialDefinition(attrNames []string, supportRevocation bool) (*crypto.CredDefKeys, error) {
	schema, nonSchema, err := ursautil.BuildSchema(attrNames)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "build schema")
	}

	defer schema.Free()    // nolint: errcheck
	defer nonSchema.Free() // nolint: errcheck

	credDef, err := ursa.NewCredentialDef(schema, nonSchema, supportRevocation)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "create credential definition keys")
	}

	defer credDef.PubKey.Free()              // nolint: errcheck
	defer credDef.PrivKey.Free()             // nolint: errcheck
	defer credDef.KeyCorrectnessProof.Free() // nolint: errcheck

	pub, err := credDef.PubKey.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize public key")
	}

	priv, err := credDef.PrivKey.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize private key")
	}

	proof, err := credDef.KeyCorrectnessProof.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize key correctness proof")
	}

	return &crypto.CredDefKeys{Public: pub, Private: priv, KeyCorrectnessProof: proof}, nil
}

// GenerateMasterSecret produces a fresh holder master secret.
func (c *CL) GenerateMasterSecret() (json.RawMessage, error) {
	ms, err := ursa.NewMasterSecret()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "create master secret")
	}

	defer ms.Free() // nolint: errcheck

	raw, err := ms.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize master secret")
	}

	return raw, nil
}

// BlindMasterSecret blinds the holder's master secret against the
// issuer's public key and offer nonce.
func (c *CL) BlindMasterSecret(publicKey, keyCorrectnessProof json.RawMessage, offerNonce string,
	masterSecret json.RawMessage) (*crypto.BlindedSecrets, error) {
	pub, err := ursa.CredentialPublicKeyFromJSON(publicKey)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid credential public key")
	}

	defer pub.Free() // nolint: errcheck

	proof, err := ursa.CredentialKeyCorrectnessProofFromJSON(keyCorrectnessProof)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid key correctness proof")
	}

	defer proof.Free() // nolint: errcheck

	nonce, err := nonceToHandle(offerNonce)
	if err != nil {
		return nil, err
	}

	defer nonce.Free() // nolint: errcheck

	msStr, err := masterSecretString(masterSecret)
	if err != nil {
		return nil, err
	}

	values, err := ursautil.BuildValues(nil, &msStr)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "build values")
	}

	defer values.Free() // nolint: errcheck

	blinded, err := ursa.BlindCredentialSecrets(pub, proof, nonce, values)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "blind credential secrets")
	}

	defer blinded.Handle.Free()           // nolint: errcheck
	defer blinded.CorrectnessProof.Free() // nolint: errcheck
	defer blinded.BlindingFactor.Free()   // nolint: errcheck

	blindedMs, err := blinded.Handle.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize blinded secrets")
	}

	blindedProof, err := blinded.CorrectnessProof.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize blinded secrets correctness proof")
	}

	blindingData, err := blinded.BlindingFactor.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize blinding factors")
	}

	return &crypto.BlindedSecrets{
		BlindedMs:        blindedMs,
		CorrectnessProof: blindedProof,
		BlindingData:     blindingData,
	}, nil
}

// SignCredential issues a blinded credential signature.
func (c *CL) SignCredential(params *crypto.SignParams) (json.RawMessage, json.RawMessage, error) {
	values, err := ursautil.BuildValues(params.Values, nil)
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "build values")
	}

	defer values.Free() // nolint: errcheck

	pub, err := ursa.CredentialPublicKeyFromJSON(params.PublicKey)
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "invalid credential public key")
	}

	defer pub.Free() // nolint: errcheck

	priv, err := ursa.CredentialPrivateKeyFromJSON(params.PrivateKey)
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "invalid credential private key")
	}

	defer priv.Free() // nolint: errcheck

	secrets, err := ursa.BlindedCredentialSecretsFromJSON(params.BlindedMs)
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "invalid blinded secrets")
	}

	defer secrets.Free() // nolint: errcheck

	secretsProof, err := ursa.BlindedCredentialSecretsCorrectnessProofFromJSON(params.BlindedMsCorrectnessProof)
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "invalid blinded secrets correctness proof")
	}

	defer secretsProof.Free() // nolint: errcheck

	offerNonce, err := nonceToHandle(params.OfferNonce)
	if err != nil {
		return nil, nil, err
	}

	defer offerNonce.Free() // nolint: errcheck

	requestNonce, err := nonceToHandle(params.RequestNonce)
	if err != nil {
		return nil, nil, err
	}

	defer requestNonce.Free() // nolint: errcheck

	signParams := ursa.NewSignatureParams()
	signParams.ProverID = params.ProverDID
	signParams.CredentialPubKey = pub
	signParams.CredentialPrivKey = priv
	signParams.BlindedCredentialSecrets = secrets
	signParams.BlindedCredentialSecretsCorrectnessProof = secretsProof
	signParams.CredentialNonce = offerNonce
	signParams.CredentialValues = values
	signParams.CredentialIssuanceNonce = requestNonce

	signature, signatureProof, err := signParams.SignCredential()
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "sign credential")
	}

	defer signature.Free()      // nolint: errcheck
	defer signatureProof.Free() // nolint: errcheck

	sigRaw, err := signature.ToJSON()
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "serialize signature")
	}

	sigProofRaw, err := signatureProof.ToJSON()
	if err != nil {
		return nil, nil, credx.WrapError(credx.KindCrypto, err, "serialize signature correctness proof")
	}

	return sigRaw, sigProofRaw, nil
}

// ProcessCredentialSignature unblinds an issued credential signature.
func (c *CL) ProcessCredentialSignature(params *crypto.ProcessParams) (json.RawMessage, error) {
	msStr, err := masterSecretString(params.MasterSecret)
	if err != nil {
		return nil, err
	}

	values, err := ursautil.BuildValues(params.Values, &msStr)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "build values")
	}

	defer values.Free() // nolint: errcheck

	signature, err := ursa.CredentialSignatureFromJSON(params.Signature)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid credential signature")
	}

	defer signature.Free() // nolint: errcheck

	signatureProof, err := ursa.CredentialSignatureCorrectnessProofFromJSON(params.SignatureCorrectnessProof)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid signature correctness proof")
	}

	defer signatureProof.Free() // nolint: errcheck

	blinding, err := ursa.CredentialSecretsBlindingFactorsFromJSON(params.BlindingData)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid blinding factors")
	}

	defer blinding.Free() // nolint: errcheck

	pub, err := ursa.CredentialPublicKeyFromJSON(params.PublicKey)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid credential public key")
	}

	defer pub.Free() // nolint: errcheck

	nonce, err := nonceToHandle(params.RequestNonce)
	if err != nil {
		return nil, err
	}

	defer nonce.Free() // nolint: errcheck

	err = signature.ProcessCredentialSignature(values, signatureProof, blinding, pub, nonce)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "process credential signature")
	}

	raw, err := signature.ToJSON()
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "serialize signature")
	}

	return raw, nil
}

func nonceFromRaw(raw []byte) (string, error) {
	var nonce string
	if err := json.Unmarshal(raw, &nonce); err != nil {
		return "", credx.WrapError(credx.KindCrypto, err, "decode nonce")
	}

	return nonce, nil
}

func nonceToHandle(nonce string) (*ursa.Nonce, error) {
	raw, err := json.Marshal(nonce)
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "encode nonce")
	}

	handle, err := ursa.NonceFromJSON(string(raw))
	if err != nil {
		return nil, credx.WrapError(credx.KindCrypto, err, "invalid nonce")
	}

	return handle, nil
}

func masterSecretString(masterSecret json.RawMessage) (string, error) {
	m := struct {
		MS string `json:"ms"`
	}{}

	if err := json.Unmarshal(masterSecret, &m); err != nil {
		return "", credx.WrapError(credx.KindCrypto, err, "invalid master secret")
	}

	return m.MS, nil
}
