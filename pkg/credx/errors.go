/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credx

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the boundary can map it to a stable code.
type Kind int

const (
	// KindUnexpected is the fallback kind for unclassified failures.
	KindUnexpected Kind = iota

	// KindInput indicates a malformed argument: a bad identifier, an
	// unknown enumeration value or an unparsable object encoding.
	KindInput

	// KindNotFound indicates an unknown or already released handle.
	KindNotFound

	// KindTypeMismatch indicates a handle resolving to an object of a
	// different concrete type than the operation requires.
	KindTypeMismatch

	// KindCrypto indicates a failure reported by the CL crypto backend.
	KindCrypto

	// KindResource indicates registry or allocation exhaustion.
	KindResource
)

// String returns the kind name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindNotFound:
		return "NotFound"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindCrypto:
		return "Crypto"
	case KindResource:
		return "Resource"
	default:
		return "Unexpected"
	}
}

// Error is the failure type produced by all fallible credx operations.
// It carries a Kind for code mapping plus a human-readable message and,
// optionally, a wrapped cause.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// NewError returns an Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// NewErrorf returns an Error of the given kind with a formatted message.
func NewErrorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// WrapError returns an Error of the given kind wrapping cause.
func WrapError(kind Kind, cause error, msg string) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}

	return e.msg
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the Kind from err. Errors that do not carry a *Error
// anywhere in their chain are classified as KindUnexpected.
func KindOf(err error) Kind {
	var cErr *Error
	if errors.As(err, &cErr) {
		return cErr.kind
	}

	return KindUnexpected
}
