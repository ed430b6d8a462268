/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bindings is the external boundary of the credx engine. Every
// operation returns an ErrorCode and communicates results exclusively
// through caller-supplied output parameters: on Success each declared
// output has been written exactly once, on any other code none of them
// have been touched. The diagnostic for the last failing call on the
// current goroutine is available through GetCurrentError.
//
// State lives in a process-wide registry; the package is safe for
// concurrent use.
package bindings

import (
	"sync"

	"github.com/hyperledger/credx-go/pkg/credx/crypto"
	ursabackend "github.com/hyperledger/credx-go/pkg/credx/crypto/ursa"
	"github.com/hyperledger/credx-go/pkg/credx/issuer"
	"github.com/hyperledger/credx-go/pkg/credx/objects"
	"github.com/hyperledger/credx-go/pkg/credx/prover"
)

// version of the engine surface, reported by Version.
const version = "0.3.1"

// registry is the process-wide object store. Its lifetime is the
// process; handles stay valid until explicitly freed.
var registry = objects.NewRegistry()

var (
	servicesMu sync.RWMutex
	issuerSvc  = issuer.New(ursabackend.New())
	proverSvc  = prover.New(ursabackend.New())
)

// SetCryptoService replaces the CL crypto backend for all subsequent
// operations. The default is the Ursa backend, which requires building
// with the ursa tag; embedders may inject an alternative
// implementation.
func SetCryptoService(c crypto.Service) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	issuerSvc = issuer.New(c)
	proverSvc = prover.New(c)
}

func issuerService() *issuer.Issuer {
	servicesMu.RLock()
	defer servicesMu.RUnlock()

	return issuerSvc
}

func proverService() *prover.Prover {
	servicesMu.RLock()
	defer servicesMu.RUnlock()

	return proverSvc
}

// Registry exposes the process-wide object registry for embedders that
// manage handles directly.
func Registry() *objects.Registry {
	return registry
}

// Version returns the engine version string.
func Version() string {
	return version
}
