/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bindings

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/hyperledger/credx-go/pkg/credx/objects"
	mockcrypto "github.com/hyperledger/credx-go/pkg/mock/crypto"
)

const (
	testIssuerDID = "VsKV7grR1BUE29mG2Fm2kX"
	testProverDID = "CnEDk9HrMnmiHXEV1WFgbV"
)

func TestMain(m *testing.M) {
	SetCryptoService(&mockcrypto.CL{})

	os.Exit(m.Run())
}

// createSchema registers a fresh schema and returns its handle.
func createSchema(t *testing.T) objects.Handle {
	t.Helper()

	var schema objects.Handle

	code := CreateSchema(testIssuerDID, "degree", "1.0", []string{"name", "age"}, 0, &schema)
	require.Equal(t, Success, code)
	require.NotZero(t, schema)

	return schema
}

// createCredDef builds a schema plus credential definition and returns
// the four handles.
func createCredDef(t *testing.T) (schema, credDef, credDefPvt, keyProof objects.Handle) {
	t.Helper()

	schema = createSchema(t)

	code := CreateCredentialDefinition(testIssuerDID, schema, "tag1", "CL", false,
		&credDef, &credDefPvt, &keyProof)
	require.Equal(t, Success, code)

	return schema, credDef, credDefPvt, keyProof
}

func TestVersion(t *testing.T) {
	require.NotEmpty(t, Version())
}

func TestCreateSchema(t *testing.T) {
	schema := createSchema(t)
	defer ObjectFree(schema)

	var id string

	require.Equal(t, Success, SchemaGetID(schema, &id))
	require.Equal(t, "VsKV7grR1BUE29mG2Fm2kX:2:degree:1.0", id)

	var typeName string

	require.Equal(t, Success, ObjectGetTypeName(schema, &typeName))
	require.Equal(t, "Schema", typeName)

	t.Run("invalid DID", func(t *testing.T) {
		var handle objects.Handle

		code := CreateSchema("not-a-did!", "degree", "1.0", []string{"name"}, 0, &handle)
		require.Equal(t, Input, code)
		require.Zero(t, handle)
	})

	t.Run("missing attributes", func(t *testing.T) {
		var handle objects.Handle

		code := CreateSchema(testIssuerDID, "degree", "1.0", nil, 0, &handle)
		require.Equal(t, Input, code)
		require.Zero(t, handle)
	})

	t.Run("nil output", func(t *testing.T) {
		require.Equal(t, Input, CreateSchema(testIssuerDID, "degree", "1.0", []string{"name"}, 0, nil))
	})
}

func TestCreateCredentialDefinition(t *testing.T) {
	schema, credDef, credDefPvt, keyProof := createCredDef(t)
	defer func() {
		for _, h := range []objects.Handle{schema, credDef, credDefPvt, keyProof} {
			ObjectFree(h)
		}
	}()

	var id string

	require.Equal(t, Success, CredentialDefinitionGetID(credDef, &id))
	require.Equal(t, "VsKV7grR1BUE29mG2Fm2kX:3:CL:VsKV7grR1BUE29mG2Fm2kX:2:degree:1.0:tag1", id)

	var typeName string

	require.Equal(t, Success, ObjectGetTypeName(credDefPvt, &typeName))
	require.Equal(t, "CredentialDefinitionPrivate", typeName)

	require.Equal(t, Success, ObjectGetTypeName(keyProof, &typeName))
	require.Equal(t, "KeyCorrectnessProof", typeName)

	t.Run("identifier derivation is deterministic", func(t *testing.T) {
		var otherDef, otherPvt, otherProof objects.Handle

		code := CreateCredentialDefinition(testIssuerDID, schema, "tag1", "CL", false,
			&otherDef, &otherPvt, &otherProof)
		require.Equal(t, Success, code)

		defer func() {
			for _, h := range []objects.Handle{otherDef, otherPvt, otherProof} {
				ObjectFree(h)
			}
		}()

		var otherID string

		require.Equal(t, Success, CredentialDefinitionGetID(otherDef, &otherID))
		require.Equal(t, id, otherID)
		require.NotEqual(t, credDef, otherDef)
	})

	t.Run("empty tag defaults", func(t *testing.T) {
		var def, pvt, proof objects.Handle

		code := CreateCredentialDefinition(testIssuerDID, schema, "", "CL", false, &def, &pvt, &proof)
		require.Equal(t, Success, code)

		defer func() {
			for _, h := range []objects.Handle{def, pvt, proof} {
				ObjectFree(h)
			}
		}()

		var defID string

		require.Equal(t, Success, CredentialDefinitionGetID(def, &defID))
		require.Contains(t, defID, ":default")
	})

	t.Run("unknown signature type", func(t *testing.T) {
		var def, pvt, proof objects.Handle

		code := CreateCredentialDefinition(testIssuerDID, schema, "tag1", "BLS", false, &def, &pvt, &proof)
		require.Equal(t, Input, code)
		require.Zero(t, def)
		require.Zero(t, pvt)
		require.Zero(t, proof)
	})

	t.Run("unknown schema handle", func(t *testing.T) {
		var def, pvt, proof objects.Handle

		code := CreateCredentialDefinition(testIssuerDID, objects.Handle(99999), "tag1", "CL", false,
			&def, &pvt, &proof)
		require.Equal(t, NotFound, code)
		require.Zero(t, def)
	})

	t.Run("wrong handle type", func(t *testing.T) {
		var def, pvt, proof objects.Handle

		code := CreateCredentialDefinition(testIssuerDID, credDefPvt, "tag1", "CL", false,
			&def, &pvt, &proof)
		require.Equal(t, TypeMismatch, code)
		require.Zero(t, def)
	})
}

func TestIssuanceFlow(t *testing.T) {
	schema, credDef, credDefPvt, keyProof := createCredDef(t)

	var schemaID string

	require.Equal(t, Success, SchemaGetID(schema, &schemaID))

	var offer objects.Handle

	require.Equal(t, Success, CreateCredentialOffer(schemaID, credDef, keyProof, &offer))

	var masterSecret objects.Handle

	require.Equal(t, Success, CreateMasterSecret(&masterSecret))

	masterSecretID := uuid.New().String()

	var credReq, credReqMeta objects.Handle

	code := CreateCredentialRequest(testProverDID, credDef, masterSecret, masterSecretID,
		offer, &credReq, &credReqMeta)
	require.Equal(t, Success, code)

	var metaJSON string

	require.Equal(t, Success, ObjectGetJSON(credReqMeta, &metaJSON))
	require.Equal(t, masterSecretID, gjson.Get(metaJSON, "master_secret_name").String())

	var credential objects.Handle

	code = CreateCredential(credDef, credDefPvt, offer, credReq,
		map[string]string{"name": "Alice", "age": "28"}, nil, &credential)
	require.Equal(t, Success, code)

	var credJSON string

	require.Equal(t, Success, ObjectGetJSON(credential, &credJSON))
	require.Equal(t, schemaID, gjson.Get(credJSON, "schema_id").String())
	require.Equal(t, "Alice", gjson.Get(credJSON, "values.name.raw").String())
	require.Equal(t, "28", gjson.Get(credJSON, "values.age.encoded").String())
	require.Equal(t, "blinded", gjson.Get(credJSON, "signature.p_credential.v").String())

	var processed objects.Handle

	code = ProcessCredential(credential, credReqMeta, masterSecret, credDef, &processed)
	require.Equal(t, Success, code)
	require.NotEqual(t, credential, processed)

	var processedJSON string

	require.Equal(t, Success, ObjectGetJSON(processed, &processedJSON))
	require.Equal(t, "processed", gjson.Get(processedJSON, "signature.p_credential.v").String())

	// the blinded input credential is untouched
	require.Equal(t, Success, ObjectGetJSON(credential, &credJSON))
	require.Equal(t, "blinded", gjson.Get(credJSON, "signature.p_credential.v").String())

	for _, h := range []objects.Handle{
		schema, credDef, credDefPvt, keyProof, offer, masterSecret, credReq, credReqMeta, credential, processed,
	} {
		require.Equal(t, Success, ObjectFree(h))
	}
}

func TestCreateCredentialRequestErrors(t *testing.T) {
	schema, credDef, credDefPvt, keyProof := createCredDef(t)
	defer func() {
		for _, h := range []objects.Handle{schema, credDef, credDefPvt, keyProof} {
			ObjectFree(h)
		}
	}()

	var schemaID string

	require.Equal(t, Success, SchemaGetID(schema, &schemaID))

	var offer objects.Handle

	require.Equal(t, Success, CreateCredentialOffer(schemaID, credDef, keyProof, &offer))
	defer ObjectFree(offer)

	var masterSecret objects.Handle

	require.Equal(t, Success, CreateMasterSecret(&masterSecret))
	defer ObjectFree(masterSecret)

	t.Run("empty master secret id", func(t *testing.T) {
		var credReq, credReqMeta objects.Handle

		code := CreateCredentialRequest(testProverDID, credDef, masterSecret, "",
			offer, &credReq, &credReqMeta)
		require.Equal(t, Input, code)
		require.Zero(t, credReq)
		require.Zero(t, credReqMeta)

		var errJSON string

		require.Equal(t, Success, GetCurrentError(&errJSON))
		require.Contains(t, gjson.Get(errJSON, "message").String(), "master secret id")
	})

	t.Run("outputs untouched on failure", func(t *testing.T) {
		credReq, credReqMeta := objects.Handle(-1), objects.Handle(-1)

		code := CreateCredentialRequest(testProverDID, credDef, objects.Handle(99999), "secret",
			offer, &credReq, &credReqMeta)
		require.Equal(t, NotFound, code)
		require.Equal(t, objects.Handle(-1), credReq)
		require.Equal(t, objects.Handle(-1), credReqMeta)
	})

	t.Run("wrong offer handle type", func(t *testing.T) {
		var credReq, credReqMeta objects.Handle

		code := CreateCredentialRequest(testProverDID, credDef, masterSecret, "secret",
			schema, &credReq, &credReqMeta)
		require.Equal(t, TypeMismatch, code)
	})
}

func TestObjectJSONRoundTrip(t *testing.T) {
	const raw = `{"ver":"1.0","id":"VsKV7grR1BUE29mG2Fm2kX:2:degree:1.0",` +
		`"name":"degree","version":"1.0","attrNames":["name","age"],"seqNo":12}`

	var handle objects.Handle

	require.Equal(t, Success, SchemaFromJSON(raw, &handle))
	defer ObjectFree(handle)

	var out string

	require.Equal(t, Success, ObjectGetJSON(handle, &out))
	require.JSONEq(t, raw, out)

	var id string

	require.Equal(t, Success, SchemaGetID(handle, &id))
	require.Equal(t, "VsKV7grR1BUE29mG2Fm2kX:2:degree:1.0", id)
}

func TestFromJSONValidation(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		var handle objects.Handle

		require.Equal(t, Input, SchemaFromJSON("", &handle))
		require.Equal(t, Input, SchemaFromJSON("   ", &handle))
		require.Zero(t, handle)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		var handle objects.Handle

		require.Equal(t, Input, CredentialOfferFromJSON("{not json", &handle))
		require.Zero(t, handle)

		var errJSON string

		require.Equal(t, Success, GetCurrentError(&errJSON))
		require.Contains(t, gjson.Get(errJSON, "message").String(), "CredentialOffer")
	})

	t.Run("well-formed but invalid", func(t *testing.T) {
		var handle objects.Handle

		require.Equal(t, Input, SchemaFromJSON(`{"name":"degree"}`, &handle))
		require.Zero(t, handle)
	})

	t.Run("nil output", func(t *testing.T) {
		require.Equal(t, Input, SchemaFromJSON(`{}`, nil))
	})
}

func TestKeyCorrectnessProofRoundTrip(t *testing.T) {
	const raw = `{"c":"1","xz_cap":"2","xr_cap":[["name","3"]]}`

	var handle objects.Handle

	require.Equal(t, Success, KeyCorrectnessProofFromJSON(raw, &handle))
	defer ObjectFree(handle)

	var out string

	require.Equal(t, Success, ObjectGetJSON(handle, &out))
	require.JSONEq(t, raw, out)
}

func TestObjectFree(t *testing.T) {
	schema := createSchema(t)

	require.Equal(t, Success, ObjectFree(schema))

	t.Run("released handle is gone", func(t *testing.T) {
		var id string

		require.Equal(t, NotFound, SchemaGetID(schema, &id))
		require.Empty(t, id)
	})

	t.Run("double free reports NotFound", func(t *testing.T) {
		require.Equal(t, NotFound, ObjectFree(schema))
	})

	t.Run("unknown handle", func(t *testing.T) {
		require.Equal(t, NotFound, ObjectFree(objects.Handle(99999)))
	})
}

func TestGetCurrentError(t *testing.T) {
	t.Run("clean goroutine reports success", func(t *testing.T) {
		done := make(chan string, 1)

		go func() {
			var errJSON string

			GetCurrentError(&errJSON)
			done <- errJSON
		}()

		errJSON := <-done
		require.EqualValues(t, Success, gjson.Get(errJSON, "code").Int())
		require.Equal(t, "Success", gjson.Get(errJSON, "kind").String())
		require.Empty(t, gjson.Get(errJSON, "message").String())
	})

	t.Run("failure then success clears the slot", func(t *testing.T) {
		var handle objects.Handle

		require.Equal(t, Input, SchemaFromJSON("", &handle))

		var errJSON string

		require.Equal(t, Success, GetCurrentError(&errJSON))
		require.EqualValues(t, Input, gjson.Get(errJSON, "code").Int())
		require.Equal(t, "Input", gjson.Get(errJSON, "kind").String())

		schema := createSchema(t)
		defer ObjectFree(schema)

		require.Equal(t, Success, GetCurrentError(&errJSON))
		require.EqualValues(t, Success, gjson.Get(errJSON, "code").Int())
	})

	t.Run("reading consumes the slot", func(t *testing.T) {
		var handle objects.Handle

		require.Equal(t, Input, SchemaFromJSON("", &handle))

		var errJSON string

		require.Equal(t, Success, GetCurrentError(&errJSON))
		require.EqualValues(t, Input, gjson.Get(errJSON, "code").Int())

		// no entry is retained once the failure has been read
		require.Equal(t, Success, GetCurrentError(&errJSON))
		require.EqualValues(t, Success, gjson.Get(errJSON, "code").Int())
		require.Equal(t, "Success", gjson.Get(errJSON, "kind").String())
	})

	t.Run("errors are scoped per goroutine", func(t *testing.T) {
		const workers = 8

		var wg sync.WaitGroup

		for n := 0; n < workers; n++ {
			n := n

			wg.Add(1)

			go func() {
				defer wg.Done()

				var handle objects.Handle

				// even goroutines fail, odd ones succeed; each must
				// observe only its own outcome
				name := "degree"
				if n%2 == 0 {
					name = ""
				}

				code := CreateSchema(testIssuerDID, name, fmt.Sprintf("1.%d", n), []string{"name"}, 0, &handle)

				var errJSON string

				require.Equal(t, Success, GetCurrentError(&errJSON))

				if n%2 == 0 {
					require.Equal(t, Input, code)
					require.EqualValues(t, Input, gjson.Get(errJSON, "code").Int())
					require.Contains(t, gjson.Get(errJSON, "message").String(), "schema name")
				} else {
					require.Equal(t, Success, code)
					require.EqualValues(t, Success, gjson.Get(errJSON, "code").Int())
					require.Equal(t, Success, ObjectFree(handle))
				}
			}()
		}

		wg.Wait()
	})

	t.Run("nil output", func(t *testing.T) {
		require.Equal(t, Input, GetCurrentError(nil))
	})
}
