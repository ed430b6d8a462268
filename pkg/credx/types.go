/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package credx defines the domain objects of the AnonCreds issuance
// engine along with identifier derivation and validation rules. Objects
// are constructed once, registered in the object registry and never
// mutated afterwards; operations that look like updates produce new
// objects instead.
package credx

import (
	"encoding/json"
)

// DefaultVer is the envelope version carried by ledger-style objects.
const DefaultVer = "1.0"

// Schema describes the attribute layout credentials are issued against.
// Schemas are external inputs: they are parsed or created up front and
// only read afterwards.
type Schema struct {
	Ver       string   `json:"ver"`
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	AttrNames []string `json:"attrNames"`
	SeqNo     uint64   `json:"seqNo,omitempty"`
}

// TypeName implements objects.Object.
func (*Schema) TypeName() string { return "Schema" }

// Validate checks the fields required of a well-formed schema.
func (s *Schema) Validate() error {
	switch {
	case s.Name == "":
		return NewError(KindInput, "schema name is required")
	case s.Version == "":
		return NewError(KindInput, "schema version is required")
	case len(s.AttrNames) == 0:
		return NewError(KindInput, "schema attribute names are required")
	}

	return nil
}

// Ref returns the schema reference embedded into credential definition
// identifiers: the ledger sequence number when the schema is anchored,
// the schema id otherwise.
func (s *Schema) Ref() string {
	if s.SeqNo > 0 {
		return formatSeqNo(s.SeqNo)
	}

	return s.ID
}

// CredentialDefinitionData holds the public CL key material of a
// credential definition, split into the primary key and the optional
// revocation key.
type CredentialDefinitionData struct {
	Primary    json.RawMessage `json:"primary"`
	Revocation json.RawMessage `json:"revocation,omitempty"`
}

// PublicKeyJSON reassembles the data into the combined public key
// encoding consumed by the CL crypto backend.
func (d *CredentialDefinitionData) PublicKeyJSON() (json.RawMessage, error) {
	pub := struct {
		PKey json.RawMessage `json:"p_key"`
		RKey json.RawMessage `json:"r_key,omitempty"`
	}{PKey: d.Primary, RKey: d.Revocation}

	return json.Marshal(pub)
}

// CredentialDefinitionDataFromPublicKey splits a combined CL public key
// encoding into credential definition data.
func CredentialDefinitionDataFromPublicKey(pub json.RawMessage) (*CredentialDefinitionData, error) {
	key := struct {
		PKey json.RawMessage `json:"p_key"`
		RKey json.RawMessage `json:"r_key"`
	}{}

	if err := json.Unmarshal(pub, &key); err != nil {
		return nil, WrapError(KindInput, err, "invalid public key encoding")
	}

	if len(key.PKey) == 0 || string(key.PKey) == "null" {
		return nil, NewError(KindInput, "public key encoding has no primary key")
	}

	data := &CredentialDefinitionData{Primary: key.PKey}
	if len(key.RKey) > 0 && string(key.RKey) != "null" {
		data.Revocation = key.RKey
	}

	return data, nil
}

// CredentialDefinition is the public issuer-side parameter set bound to
// a schema, a tag and a signature type. Its identifier is derived, not
// chosen. The matching CredentialDefinitionPrivate and
// KeyCorrectnessProof are stored as separate objects so callers can
// persist or discard them independently.
type CredentialDefinition struct {
	Ver      string                   `json:"ver"`
	ID       string                   `json:"id"`
	SchemaID string                   `json:"schemaId"`
	Type     SignatureType            `json:"type"`
	Tag      string                   `json:"tag"`
	Value    CredentialDefinitionData `json:"value"`
}

// TypeName implements objects.Object.
func (*CredentialDefinition) TypeName() string { return "CredentialDefinition" }

// Validate checks the fields required of a well-formed definition.
func (d *CredentialDefinition) Validate() error {
	switch {
	case d.ID == "":
		return NewError(KindInput, "credential definition id is required")
	case d.SchemaID == "":
		return NewError(KindInput, "credential definition schema id is required")
	case d.Type != SignatureTypeCL:
		return NewErrorf(KindInput, "unsupported signature type %q", string(d.Type))
	case len(d.Value.Primary) == 0:
		return NewError(KindInput, "credential definition primary key is required")
	}

	return nil
}

// CredentialDefinitionPrivate is the issuer's private signing material
// paired 1:1 with a CredentialDefinition. It must never be serialized
// to untrusted parties.
type CredentialDefinitionPrivate struct {
	Value json.RawMessage `json:"value"`
}

// TypeName implements objects.Object.
func (*CredentialDefinitionPrivate) TypeName() string { return "CredentialDefinitionPrivate" }

// Validate checks that private key material is present.
func (p *CredentialDefinitionPrivate) Validate() error {
	if len(p.Value) == 0 {
		return NewError(KindInput, "credential definition private key is required")
	}

	return nil
}

// KeyCorrectnessProof proves that a credential definition's public key
// material was generated correctly. Unlike the private key it is meant
// to be distributed, paired with the definition it was generated with.
// It serializes transparently as the backend proof encoding.
type KeyCorrectnessProof struct {
	Value json.RawMessage
}

// TypeName implements objects.Object.
func (*KeyCorrectnessProof) TypeName() string { return "KeyCorrectnessProof" }

// MarshalJSON writes the proof as the raw backend encoding.
func (p *KeyCorrectnessProof) MarshalJSON() ([]byte, error) {
	if len(p.Value) == 0 {
		return []byte("null"), nil
	}

	return p.Value, nil
}

// UnmarshalJSON reads the raw backend encoding.
func (p *KeyCorrectnessProof) UnmarshalJSON(data []byte) error {
	p.Value = append(p.Value[:0], data...)
	return nil
}

// Validate checks that proof material is present.
func (p *KeyCorrectnessProof) Validate() error {
	if len(p.Value) == 0 || string(p.Value) == "null" {
		return NewError(KindInput, "key correctness proof is required")
	}

	return nil
}

// CredentialOffer is the issuer-generated context a holder needs to
// build a credential request: the definition reference, the key
// correctness proof and a fresh nonce.
type CredentialOffer struct {
	SchemaID            string              `json:"schema_id"`
	CredDefID           string              `json:"cred_def_id"`
	KeyCorrectnessProof KeyCorrectnessProof `json:"key_correctness_proof"`
	Nonce               string              `json:"nonce"`
}

// TypeName implements objects.Object.
func (*CredentialOffer) TypeName() string { return "CredentialOffer" }

// Validate checks the fields required of a well-formed offer.
func (o *CredentialOffer) Validate() error {
	switch {
	case o.SchemaID == "":
		return NewError(KindInput, "credential offer schema id is required")
	case o.CredDefID == "":
		return NewError(KindInput, "credential offer cred def id is required")
	case o.Nonce == "":
		return NewError(KindInput, "credential offer nonce is required")
	}

	return o.KeyCorrectnessProof.Validate()
}

// CredentialRequest is the holder-generated, blinded request derived
// from a credential definition, a master secret and an offer. It is
// sent to the issuer; the blinding factors stay with the holder in
// CredentialRequestMetadata.
type CredentialRequest struct {
	ProverDID                 string          `json:"prover_did"`
	CredDefID                 string          `json:"cred_def_id"`
	BlindedMs                 json.RawMessage `json:"blinded_ms"`
	BlindedMsCorrectnessProof json.RawMessage `json:"blinded_ms_correctness_proof"`
	Nonce                     string          `json:"nonce"`
}

// TypeName implements objects.Object.
func (*CredentialRequest) TypeName() string { return "CredentialRequest" }

// Validate checks the fields required of a well-formed request.
func (r *CredentialRequest) Validate() error {
	switch {
	case r.ProverDID == "":
		return NewError(KindInput, "credential request prover did is required")
	case r.CredDefID == "":
		return NewError(KindInput, "credential request cred def id is required")
	case len(r.BlindedMs) == 0:
		return NewError(KindInput, "credential request blinded master secret is required")
	case r.Nonce == "":
		return NewError(KindInput, "credential request nonce is required")
	}

	return nil
}

// CredentialRequestMetadata is the holder-local counterpart of a
// CredentialRequest: the blinding factors and nonce needed later to
// unblind the issued credential. It cannot be reconstructed from the
// request; a holder that loses it cannot use the issued credential.
// It must never be sent to the issuer.
type CredentialRequestMetadata struct {
	MasterSecretBlindingData json.RawMessage `json:"master_secret_blinding_data"`
	Nonce                    string          `json:"nonce"`
	MasterSecretName         string          `json:"master_secret_name"`
}

// TypeName implements objects.Object.
func (*CredentialRequestMetadata) TypeName() string { return "CredentialRequestMetadata" }

// Validate checks the fields required of well-formed metadata.
func (m *CredentialRequestMetadata) Validate() error {
	switch {
	case len(m.MasterSecretBlindingData) == 0:
		return NewError(KindInput, "master secret blinding data is required")
	case m.Nonce == "":
		return NewError(KindInput, "request metadata nonce is required")
	}

	return nil
}

// MasterSecret is the holder-held secret blinded into credential
// requests. It never leaves the holder.
type MasterSecret struct {
	Value json.RawMessage `json:"value"`
}

// TypeName implements objects.Object.
func (*MasterSecret) TypeName() string { return "MasterSecret" }

// Validate checks that secret material is present.
func (m *MasterSecret) Validate() error {
	if len(m.Value) == 0 {
		return NewError(KindInput, "master secret value is required")
	}

	return nil
}

// AttributeValue is a single credential attribute as signed into a
// credential: the raw value plus its numeric encoding.
type AttributeValue struct {
	Raw     string `json:"raw"`
	Encoded string `json:"encoded"`
}

// Credential is an issued CL credential. Between issuance and
// processing its signature is still blinded against the holder's
// request; ProcessCredential produces the final, usable object.
type Credential struct {
	SchemaID                  string                    `json:"schema_id"`
	CredDefID                 string                    `json:"cred_def_id"`
	RevRegID                  string                    `json:"rev_reg_id,omitempty"`
	Values                    map[string]AttributeValue `json:"values"`
	Signature                 json.RawMessage           `json:"signature"`
	SignatureCorrectnessProof json.RawMessage           `json:"signature_correctness_proof"`
}

// TypeName implements objects.Object.
func (*Credential) TypeName() string { return "Credential" }

// Validate checks the fields required of a well-formed credential.
func (c *Credential) Validate() error {
	switch {
	case c.SchemaID == "":
		return NewError(KindInput, "credential schema id is required")
	case c.CredDefID == "":
		return NewError(KindInput, "credential cred def id is required")
	case len(c.Values) == 0:
		return NewError(KindInput, "credential values are required")
	case len(c.Signature) == 0:
		return NewError(KindInput, "credential signature is required")
	}

	return nil
}

// CredentialDefinitionConfig selects optional key generation features.
type CredentialDefinitionConfig struct {
	SupportRevocation bool
}
