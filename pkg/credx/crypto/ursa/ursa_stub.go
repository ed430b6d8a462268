//go:build !ursa
// +build !ursa

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ursa

import (
	"encoding/json"

	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/crypto"
)

// CL is the Ursa-backed crypto.Service. Without the ursa build tag
// every operation fails; embedders that cannot link libursa can inject
// their own crypto.Service instead.
type CL struct{}

// New returns the Ursa-backed CL crypto service. STUB.
func New() *CL {
	return &CL{}
}

func errNotBuilt() error {
	return credx.NewError(credx.KindCrypto, "CL support not compiled in (rebuild with -tags ursa)")
}

// NewNonce produces a fresh protocol nonce. STUB.
func (c *CL) NewNonce() (string, error) {
	return "", errNotBuilt()
}

// GenerateCredentialDefinition generates linked CL key material. STUB.
func (c *CL) GenerateCredentialDefinition(attrNames []string, supportRevocation bool) (*crypto.CredDefKeys, error) {
	return nil, errNotBuilt()
}

// GenerateMasterSecret produces a fresh holder master secret. STUB.
func (c *CL) GenerateMasterSecret() (json.RawMessage, error) {
	return nil, errNotBuilt()
}

// BlindMasterSecret blinds the holder's master secret. STUB.
func (c *CL) BlindMasterSecret(publicKey, keyCorrectnessProof json.RawMessage, offerNonce string,
	masterSecret json.RawMessage) (*crypto.BlindedSecrets, error) {
	return nil, errNotBuilt()
}

// SignCredential issues a blinded credential signature. STUB.
func (c *CL) SignCredential(params *crypto.SignParams) (json.RawMessage, json.RawMessage, error) {
	return nil, nil, errNotBuilt()
}

// ProcessCredentialSignature unblinds an issued signature. STUB.
func (c *CL) ProcessCredentialSignature(params *crypto.ProcessParams) (json.RawMessage, error) {
	return nil, errNotBuilt()
}
