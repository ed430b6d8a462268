/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package objects

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperledger/credx-go/pkg/credx"
)

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()

	schema := &credx.Schema{ID: "did:sov:abc:2:test:1.0", Name: "test", Version: "1.0", AttrNames: []string{"a"}}

	h, err := r.Register(schema)
	require.NoError(t, err)
	require.NotZero(t, h)

	entry, err := r.Load(h)
	require.NoError(t, err)
	require.Equal(t, h, entry.Handle())
	require.Equal(t, "Schema", entry.TypeName())

	loaded, err := As[*credx.Schema](entry)
	require.NoError(t, err)
	require.Same(t, schema, loaded)
}

func TestRegistryRegisterNil(t *testing.T) {
	r := NewRegistry()

	_, err := r.Register(nil)
	require.Error(t, err)
}

func TestRegistryLoadUnknownHandle(t *testing.T) {
	r := NewRegistry()

	_, err := r.Load(42)
	require.Error(t, err)
	require.Equal(t, credx.KindNotFound, credx.KindOf(err))
}

func TestRegistryTypeMismatch(t *testing.T) {
	r := NewRegistry()

	h, err := r.Register(&credx.MasterSecret{Value: []byte(`{"ms":"1"}`)})
	require.NoError(t, err)

	entry, err := r.Load(h)
	require.NoError(t, err)

	_, err = As[*credx.Schema](entry)
	require.Error(t, err)
	require.Equal(t, credx.KindTypeMismatch, credx.KindOf(err))
	require.Contains(t, err.Error(), "Schema")
	require.Contains(t, err.Error(), "MasterSecret")

	// a mismatch is not a missing handle
	var cErr *credx.Error
	require.True(t, errors.As(err, &cErr))
	require.NotEqual(t, credx.KindNotFound, cErr.Kind())
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry()

	h, err := r.Register(&credx.Schema{Name: "gone", Version: "1.0", AttrNames: []string{"a"}})
	require.NoError(t, err)

	require.NoError(t, r.Release(h))

	_, err = r.Load(h)
	require.Equal(t, credx.KindNotFound, credx.KindOf(err))

	// double release reports the same failure instead of masking it
	err = r.Release(h)
	require.Equal(t, credx.KindNotFound, credx.KindOf(err))
}

func TestRegistryHandlesNotReusedAfterRelease(t *testing.T) {
	r := NewRegistry()

	first, err := r.Register(&credx.MasterSecret{Value: []byte(`{"ms":"1"}`)})
	require.NoError(t, err)
	require.NoError(t, r.Release(first))

	second, err := r.Register(&credx.MasterSecret{Value: []byte(`{"ms":"2"}`)})
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.True(t, second > first, "allocation must stay monotonic")
}

func TestRegistryConcurrentRegister(t *testing.T) {
	const (
		goroutines = 8
		perRoutine = 250
	)

	r := NewRegistry()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	seen := make(map[Handle]struct{}, goroutines*perRoutine)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < perRoutine; i++ {
				h, err := r.Register(&credx.MasterSecret{Value: []byte(`{"ms":"x"}`)})
				require.NoError(t, err)

				mu.Lock()
				_, dup := seen[h]
				seen[h] = struct{}{}
				mu.Unlock()

				require.False(t, dup, "handle %d allocated twice", h)
			}
		}()
	}

	wg.Wait()

	require.Len(t, seen, goroutines*perRoutine)
	require.Equal(t, goroutines*perRoutine, r.Len())

	for h := range seen {
		_, err := r.Load(h)
		require.NoError(t, err)
	}
}
