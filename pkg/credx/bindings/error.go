/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strconv"
	"sync"

	"github.com/hyperledger/credx-go/pkg/credx"
)

// ErrorCode is the stable status value returned by every boundary
// operation. Codes are part of the external contract and must not be
// renumbered.
type ErrorCode int32

const (
	// Success indicates the operation completed and every declared
	// output parameter has been written.
	Success ErrorCode = iota

	// Input indicates a malformed argument.
	Input

	// NotFound indicates an unknown or released object handle.
	NotFound

	// TypeMismatch indicates a handle of the wrong concrete type.
	TypeMismatch

	// CryptoError indicates a failure in the CL crypto backend.
	CryptoError

	// ResourceError indicates allocation or registry exhaustion.
	ResourceError

	// Unexpected is the fallback code for unclassified failures.
	Unexpected
)

func codeForKind(kind credx.Kind) ErrorCode {
	switch kind {
	case credx.KindInput:
		return Input
	case credx.KindNotFound:
		return NotFound
	case credx.KindTypeMismatch:
		return TypeMismatch
	case credx.KindCrypto:
		return CryptoError
	case credx.KindResource:
		return ResourceError
	default:
		return Unexpected
	}
}

// lastError is the retrievable diagnostic for a failed call.
type lastError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
}

// lastErrors holds the current error per calling goroutine, so
// concurrent callers never observe each other's failures. The cell is
// a single slot, not a log: an entry is removed when its goroutine
// reads it through GetCurrentError or makes another boundary call. A
// goroutine that fails, never queries the error and exits retains its
// one entry for the process lifetime; callers that care drain the slot
// before returning.
var lastErrors sync.Map

func setLastError(err error) ErrorCode {
	kind := credx.KindOf(err)
	code := codeForKind(kind)

	lastErrors.Store(goroutineID(), &lastError{Code: code, Message: err.Error(), Kind: kind.String()})

	return code
}

func clearLastError() {
	lastErrors.Delete(goroutineID())
}

// GetCurrentError writes the calling goroutine's last failure as a JSON
// object {"code":N,"kind":"...","message":"..."}. After a successful
// call (or before any call) it reports code 0 with an empty message.
// Reading consumes the slot: a second call without an intervening
// failure reports success.
func GetCurrentError(errorJSON *string) ErrorCode {
	if errorJSON == nil {
		return Input
	}

	current := &lastError{Kind: "Success"}

	if v, ok := lastErrors.LoadAndDelete(goroutineID()); ok {
		current = v.(*lastError)
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return Unexpected
	}

	*errorJSON = string(raw)

	return Success
}

// goroutineID extracts the calling goroutine's id from its stack
// header. There is no supported API for this; the boundary needs a
// per-caller error slot and the header format ("goroutine N [...] ")
// has been stable across Go releases.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]

	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return 0
	}

	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}

	return id
}
