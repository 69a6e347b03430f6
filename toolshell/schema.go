package toolshell

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jonwraymond/toolguard/errtax"
)

// schemaValidator is the subset of *jsonschema.Schema that run() needs,
// kept as an interface so only schema.go imports the jsonschema package.
type schemaValidator interface {
	Validate(v any) error
}

// compileSchema compiles a tool's JSON Schema document. Failures here are
// Validation-category errors: an invalid schema is indistinguishable from
// a tool that can never accept valid input.
func compileSchema(tool string, schema []byte) (schemaValidator, error) {
	resourceName := tool + ".schema.json"

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(schema)); err != nil {
		return nil, errtax.Validation(fmt.Sprintf("tool %q has an invalid parameter schema", tool), map[string]any{
			"tool":  tool,
			"error": err.Error(),
		})
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, errtax.Validation(fmt.Sprintf("tool %q schema failed to compile", tool), map[string]any{
			"tool":  tool,
			"error": err.Error(),
		})
	}
	return compiled, nil
}

// decodeParams parses rawParams for both schema validation and cache-key
// canonicalization. json.Number is used instead of float64 so integer
// parameters round-trip exactly through both paths.
func decodeParams(rawParams json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(rawParams)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(rawParams))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// validationPath extracts the JSON-pointer-ish path to the violation at
// the root of a jsonschema.ValidationError, for the "context describing
// the violating path" spec.md §4.5 calls for.
func validationPath(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok || ve == nil {
		return ""
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return "/"
	}
	return ve.InstanceLocation
}
