/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credx

import (
	"strconv"
	"strings"
)

// SignatureType names a supported credential signature scheme.
type SignatureType string

// SignatureTypeCL is the only supported scheme: Camenisch-Lysyanskaya
// signatures as implemented by the Ursa CL backend.
const SignatureTypeCL SignatureType = "CL"

// DefaultTag is used for credential definitions created without an
// explicit tag.
const DefaultTag = "default"

// ParseSignatureType resolves value against the supported schemes.
func ParseSignatureType(value string) (SignatureType, error) {
	if SignatureType(value) == SignatureTypeCL {
		return SignatureTypeCL, nil
	}

	return "", NewErrorf(KindInput, "unknown signature type %q", value)
}

// Identifier marker segments, matching the ledger layout the rest of
// the indy ecosystem expects.
const (
	schemaIDMarker  = "2"
	credDefIDMarker = "3"
)

// NewSchemaID derives the deterministic schema identifier
// <did>:2:<name>:<version>.
func NewSchemaID(originDID DID, name, version string) string {
	return strings.Join([]string{originDID.String(), schemaIDMarker, name, version}, ":")
}

// NewCredentialDefinitionID derives the deterministic credential
// definition identifier <did>:3:<signature type>:<schema ref>:<tag>.
// The schema ref is the ledger sequence number for anchored schemas and
// the schema id otherwise.
func NewCredentialDefinitionID(originDID DID, schema *Schema, sigType SignatureType, tag string) string {
	return strings.Join([]string{
		originDID.String(), credDefIDMarker, string(sigType), schema.Ref(), tag,
	}, ":")
}

func formatSeqNo(seqNo uint64) string {
	return strconv.FormatUint(seqNo, 10)
}
