/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"github.com/hyperledger/credx-go/pkg/credx"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
)

// CreateMasterSecret generates a fresh holder master secret and writes
// its handle to masterSecret. The secret never leaves the holder; only
// its blinded form is shared through credential requests.
func CreateMasterSecret(masterSecret *objects.Handle) ErrorCode {
	clearLastError()

	if masterSecret == nil {
		return setLastError(credx.NewError(credx.KindInput, "master secret output parameter is required"))
	}

	created, err := proverService().CreateMasterSecret()
	if err != nil {
		return setLastError(err)
	}

	h, err := registry.Register(created)
	if err != nil {
		return setLastError(err)
	}

	*masterSecret = h

	return Success
}
