// Package check provides schema validation and field-level assertion helpers
// for normalized HTTP responses.
//
// All helpers are pure: they inspect a response envelope and return a typed
// error on contract violation. They never touch the network.
package check

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Logical schema names resolvable by Schema.
const (
	SchemaUser            = "user"
	SchemaUserList        = "user-list"
	SchemaAccount         = "account"
	SchemaAccountList     = "account-list"
	SchemaTransaction     = "transaction"
	SchemaTransactionList = "transaction-list"
	SchemaErrorBody       = "error"
)

var schemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	names := []string{
		SchemaUser, SchemaUserList,
		SchemaAccount, SchemaAccountList,
		SchemaTransaction, SchemaTransactionList,
		SchemaErrorBody,
	}

	compiler := jsonschema.NewCompiler()

	for _, name := range names {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			panic(fmt.Sprintf("reading embedded schema %s: %v", name, err))
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			panic(fmt.Sprintf("unmarshaling embedded schema %s: %v", name, err))
		}

		if err := compiler.AddResource(name+".json", doc); err != nil {
			panic(fmt.Sprintf("adding schema resource %s: %v", name, err))
		}
	}

	compiled := make(map[string]*jsonschema.Schema, len(names))

	for _, name := range names {
		schema, err := compiler.Compile(name + ".json")
		if err != nil {
			panic(fmt.Sprintf("compiling schema %s: %v", name, err))
		}

		compiled[name] = schema
	}

	return compiled
}

// AssertionError indicates that an expected response contract was violated.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return e.Msg
}

func assertionFailed(format string, args ...any) error {
	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}

// SchemaError indicates that a response body does not conform to a named schema.
type SchemaError struct {
	Name string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed for %q: %v", e.Name, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func bodyExcerpt(env *webclient.Envelope) string {
	const max = 200

	body := strings.TrimSpace(string(env.Body))
	if len(body) > max {
		return body[:max] + "..."
	}

	return body
}

// Schema validates the response body against the named JSON schema.
func Schema(env *webclient.Envelope, name string) error {
	schema, ok := schemas[name]
	if !ok {
		return &SchemaError{Name: name, Err: fmt.Errorf("unknown schema")}
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(env.Body))
	if err != nil {
		return &SchemaError{Name: name, Err: fmt.Errorf("response body is not valid JSON: %w", err)}
	}

	if err := schema.Validate(instance); err != nil {
		return &SchemaError{Name: name, Err: err}
	}

	return nil
}

// Status asserts an exact status code.
func Status(env *webclient.Envelope, want int) error {
	if env.StatusCode != want {
		return assertionFailed("status code: got %d, want %d; body: %s",
			env.StatusCode, want, bodyExcerpt(env))
	}

	return nil
}

// StatusBetween asserts that the status code lies within [lo, hi].
func StatusBetween(env *webclient.Envelope, lo, hi int) error {
	if env.StatusCode < lo || env.StatusCode > hi {
		return assertionFailed("status code: got %d, want within [%d, %d]; body: %s",
			env.StatusCode, lo, hi, bodyExcerpt(env))
	}

	return nil
}

// LatencyUnder asserts that the response arrived within ceiling.
func LatencyUnder(env *webclient.Envelope, ceiling time.Duration) error {
	if env.Elapsed > ceiling {
		return assertionFailed("response time %s exceeds ceiling %s", env.Elapsed, ceiling)
	}

	return nil
}

// JSONContentType asserts that the response declares a JSON content type.
func JSONContentType(env *webclient.Envelope) error {
	ct := env.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		return assertionFailed("content type: got %q, want application/json", ct)
	}

	return nil
}

func fieldAt(env *webclient.Envelope, path string) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(env.Body))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, assertionFailed("response body is not valid JSON: %v", err)
	}

	current := doc

	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, assertionFailed("field %q: segment %q is not an object", path, segment)
		}

		current, ok = obj[segment]
		if !ok {
			return nil, assertionFailed("field %q not present in response; body: %s", path, bodyExcerpt(env))
		}
	}

	return current, nil
}

// FieldPresent asserts that a dot-separated JSON field path exists and is non-null.
func FieldPresent(env *webclient.Envelope, path string) error {
	value, err := fieldAt(env, path)
	if err != nil {
		return err
	}

	if value == nil {
		return assertionFailed("field %q is null", path)
	}

	return nil
}

// FieldEquals asserts that the value at a dot-separated JSON field path equals want.
//
// Numbers are compared by their literal representation, so decimal amounts
// compare exactly rather than through float64.
func FieldEquals(env *webclient.Envelope, path string, want any) error {
	value, err := fieldAt(env, path)
	if err != nil {
		return err
	}

	if fmt.Sprint(value) != fmt.Sprint(want) {
		return assertionFailed("field %q: got %v, want %v", path, value, want)
	}

	return nil
}
