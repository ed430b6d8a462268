/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package crypto provides a deterministic mock of the CL crypto
// backend so issuance flows can be exercised without libursa.
package crypto

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/tidwall/sjson"

	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/crypto"
)

// CL mocks crypto.Service. The zero value produces deterministic canned
// artifacts; set the Err fields to force failures.
type CL struct {
	nonceCounter atomic.Int64

	NewNonceErr                     error
	GenerateCredentialDefinitionErr error
	GenerateMasterSecretErr         error
	BlindMasterSecretErr            error
	SignCredentialErr               error
	ProcessCredentialSignatureErr   error
}

// NewNonce returns a sequential mock nonce.
func (c *CL) NewNonce() (string, error) {
	if c.NewNonceErr != nil {
		return "", c.NewNonceErr
	}

	return fmt.Sprintf("100000000000000%06d", c.nonceCounter.Add(1)), nil
}

// GenerateCredentialDefinition returns canned key material embedding
// the attribute list, so repeated calls with equal inputs are equal.
func (c *CL) GenerateCredentialDefinition(attrNames []string, supportRevocation bool) (*crypto.CredDefKeys, error) {
	if c.GenerateCredentialDefinitionErr != nil {
		return nil, c.GenerateCredentialDefinitionErr
	}

	attrs, err := json.Marshal(attrNames)
	if err != nil {
		return nil, err
	}

	rKey := "null"
	if supportRevocation {
		rKey = `{"g":"mock-g","h":"mock-h"}`
	}

	pub := fmt.Sprintf(`{"p_key":{"n":"mock-n","s":"mock-s","r":%s,"rctxt":"mock-rctxt","z":"mock-z"},"r_key":%s}`,
		attrs, rKey)
	proof := fmt.Sprintf(`{"c":"mock-c","xz_cap":"mock-xz","xr_cap":%s}`, attrs)

	return &crypto.CredDefKeys{
		Public:              json.RawMessage(pub),
		Private:             json.RawMessage(`{"p_key":{"p":"mock-p","q":"mock-q"},"r_key":null}`),
		KeyCorrectnessProof: json.RawMessage(proof),
	}, nil
}

// GenerateMasterSecret returns a canned master secret.
func (c *CL) GenerateMasterSecret() (json.RawMessage, error) {
	if c.GenerateMasterSecretErr != nil {
		return nil, c.GenerateMasterSecretErr
	}

	return json.RawMessage(`{"ms":"20951183414894041743211365974984774347184294530851971976418691330245288306922"}`), nil
}

// BlindMasterSecret returns canned blinded secrets referencing the
// offer nonce so tests can trace the data flow.
func (c *CL) BlindMasterSecret(publicKey, keyCorrectnessProof json.RawMessage, offerNonce string,
	masterSecret json.RawMessage) (*crypto.BlindedSecrets, error) {
	if c.BlindMasterSecretErr != nil {
		return nil, c.BlindMasterSecretErr
	}

	if len(publicKey) == 0 || len(keyCorrectnessProof) == 0 || offerNonce == "" || len(masterSecret) == 0 {
		return nil, credx.NewError(credx.KindCrypto, "mock: missing blinding input")
	}

	blinded := fmt.Sprintf(
		`{"u":"mock-u","ur":null,"hidden_attributes":["master_secret"],"committed_attributes":{},"nonce":%q}`,
		offerNonce)

	return &crypto.BlindedSecrets{
		BlindedMs:        json.RawMessage(blinded),
		CorrectnessProof: json.RawMessage(`{"c":"mock-c","v_dash_cap":"mock-v","m_caps":{"master_secret":"mock-m"},"r_caps":{}}`),
		BlindingData:     json.RawMessage(`{"v_prime":"mock-v-prime","vr_prime":null}`),
	}, nil
}

// SignCredential returns a canned blinded signature.
func (c *CL) SignCredential(params *crypto.SignParams) (json.RawMessage, json.RawMessage, error) {
	if c.SignCredentialErr != nil {
		return nil, nil, c.SignCredentialErr
	}

	if len(params.Values) == 0 {
		return nil, nil, credx.NewError(credx.KindCrypto, "mock: no values to sign")
	}

	signature := fmt.Sprintf(
		`{"p_credential":{"m_2":"mock-m2","a":"mock-a","e":"mock-e","v":"blinded"},"r_credential":null,"prover_did":%q}`,
		params.ProverDID)
	proof := fmt.Sprintf(`{"se":"mock-se","c":"mock-proof-c","nonce":%q}`, params.RequestNonce)

	return json.RawMessage(signature), json.RawMessage(proof), nil
}

// ProcessCredentialSignature marks the signature as unblinded so tests
// can verify a new object was produced.
func (c *CL) ProcessCredentialSignature(params *crypto.ProcessParams) (json.RawMessage, error) {
	if c.ProcessCredentialSignatureErr != nil {
		return nil, c.ProcessCredentialSignatureErr
	}

	if len(params.BlindingData) == 0 || len(params.MasterSecret) == 0 {
		return nil, credx.NewError(credx.KindCrypto, "mock: missing blinding data or master secret")
	}

	processed, err := sjson.SetBytes([]byte(params.Signature), "p_credential.v", "processed")
	if err != nil {
		return nil, err
	}

	return processed, nil
}
