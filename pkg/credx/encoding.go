/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credx

import (
	"crypto/sha256"
	"math/big"
	"strconv"
)

// EncodeAttributeValue maps a raw attribute string to the numeric
// encoding signed into CL credentials: 32-bit integers encode as
// themselves, everything else as the big-endian integer form of its
// SHA-256 digest. The scheme matches what indy ledgers and the Ursa
// value builder produce, so credentials issued here verify against
// proofs built elsewhere.
func EncodeAttributeValue(raw string) string {
	if i, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return strconv.FormatInt(i, 10)
	}

	digest := sha256.Sum256([]byte(raw))

	return new(big.Int).SetBytes(digest[:]).String()
}

// EncodeCredentialValues fills in the encoded form for every attribute,
// preserving caller-supplied encodings when present.
func EncodeCredentialValues(raw map[string]string, encoded map[string]string) map[string]AttributeValue {
	values := make(map[string]AttributeValue, len(raw))

	for attr, val := range raw {
		enc, ok := encoded[attr]
		if !ok {
			enc = EncodeAttributeValue(val)
		}

		values[attr] = AttributeValue{Raw: val, Encoded: enc}
	}

	return values
}
