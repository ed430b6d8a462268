/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credx

import (
	"strings"

	"github.com/btcsuite/btcutil/base58"
	diddoc "github.com/hyperledger/aries-framework-go/component/models/did"
)

// DID is a validated issuer or prover identifier. Beyond validation it
// is treated as opaque: method-specific resolution rules live outside
// this engine.
type DID string

// String returns the identifier text.
func (d DID) String() string { return string(d) }

// ParseDID validates value as either a fully qualified DID or an
// unqualified indy-style identifier (base58 of 16 or 32 bytes).
func ParseDID(value string) (DID, error) {
	if value == "" {
		return "", NewError(KindInput, "DID is required")
	}

	if strings.HasPrefix(value, "did:") {
		if _, err := diddoc.Parse(value); err != nil {
			return "", WrapError(KindInput, err, "invalid DID")
		}

		return DID(value), nil
	}

	switch len(base58.Decode(value)) {
	case 16, 32:
		return DID(value), nil
	default:
		return "", NewErrorf(KindInput, "invalid DID %q: expected a qualified DID or base58 identifier", value)
	}
}
