/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package objects implements the process-wide handle registry backing
// the credx boundary. Callers outside the engine hold opaque integer
// handles; the registry exclusively owns the referenced objects and is
// the only place their concrete types are recovered.
package objects

import (
	"sync"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/hyperledger/credx-go/pkg/credx"
)

var logger = log.New("credx/objects")

// Handle is an opaque capability referencing a registry-owned object.
// Its numeric value has no meaning beyond lookup. A handle is unique
// for the lifetime of the registry and is never reassigned, so a stale
// handle can never alias a newer object of a different type.
type Handle int64

// Object is implemented by every domain type that can be held in the
// registry. TypeName must be callable on a nil receiver since it names
// the type, not the instance.
type Object interface {
	TypeName() string
}

// Entry pairs a handle with the registered object. Entries are
// immutable once created.
type Entry struct {
	handle Handle
	value  Object
}

// Handle returns the entry's handle.
func (e *Entry) Handle() Handle { return e.handle }

// Value returns the registered object.
func (e *Entry) Value() Object { return e.value }

// TypeName returns the registered object's type tag.
func (e *Entry) TypeName() string { return e.value.TypeName() }

// Registry is a goroutine-safe store of heap-owned domain objects
// indexed by monotonically allocated handles. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[Handle]*Entry
	next    Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]*Entry)}
}

// Register stores value and returns a fresh handle. Handles start at 1
// so the zero Handle can serve as an uninitialized-output sentinel.
func (r *Registry) Register(value Object) (Handle, error) {
	if value == nil {
		return 0, credx.NewError(credx.KindUnexpected, "cannot register a nil object")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.entries[h] = &Entry{handle: h, value: value}

	logger.Debugf("registered %s as handle %d", value.TypeName(), h)

	return h, nil
}

// Load resolves a handle to its entry. Unknown and released handles
// fail with a NotFound error.
func (r *Registry) Load(h Handle) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[h]
	if !ok {
		return nil, credx.NewErrorf(credx.KindNotFound, "invalid object handle %d", h)
	}

	return entry, nil
}

// Release removes the entry and drops ownership of its value, making
// the handle permanently invalid. Releasing an unknown or already
// released handle fails with NotFound: accepting it silently would
// mask caller lifetime bugs.
func (r *Registry) Release(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[h]; !ok {
		return credx.NewErrorf(credx.KindNotFound, "invalid object handle %d", h)
	}

	delete(r.entries, h)

	return nil
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// As returns the entry's object as the concrete type T, failing with a
// TypeMismatch error naming the expected and actual type tags when the
// entry holds something else. The mismatch is deliberately a distinct
// failure from an unknown handle.
func As[T Object](entry *Entry) (T, error) {
	var want T

	typed, ok := entry.value.(T)
	if !ok {
		return want, credx.NewErrorf(credx.KindTypeMismatch,
			"expected %s object, handle %d holds %s", want.TypeName(), entry.handle, entry.TypeName())
	}

	return typed, nil
}

// LoadAs resolves a handle and casts it to T in one step.
func LoadAs[T Object](r *Registry, h Handle) (T, error) {
	entry, err := r.Load(h)
	if err != nil {
		var zero T
		return zero, err
	}

	return As[T](entry)
}
