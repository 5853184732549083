// Package validate provides an optional static JSON-Schema check for a
// document's data payload. It is never invoked by the layering engine: a
// caller runs it before or after rendering, as fits their pipeline.
package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// Error describes one schema violation found in a document's data.
type Error struct {
	// Path is the dotted location within data the violation occurred at,
	// e.g. "a.b" — empty for a violation at the payload root.
	Path string
	// Keyword is the JSON-Schema keyword that failed (e.g. "required", "type").
	Keyword string
	Message string
}

func (e Error) String() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Keyword, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", e.Path, e.Keyword, e.Message)
}

// Schema wraps a compiled JSON Schema used to check a document's data payload.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles schemaData (a JSON-Schema document) for later validation.
func Compile(schemaData []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()

	compiled, err := compiler.Compile(schemaData)
	if err != nil {
		return nil, fmt.Errorf("validate: compile schema: %w", err)
	}

	return &Schema{compiled: compiled}, nil
}

// CompileFromReader reads r fully and compiles it as a JSON-Schema document.
func CompileFromReader(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("validate: read schema: %w", err)
	}

	return Compile(data)
}

// Validate checks doc's "data" field against s. It inspects data only —
// metadata and layering structure are the engine's concern, not the
// schema's. A nil or missing data field validates against whatever the
// schema permits for its type; an empty result means the document is
// schema-valid.
func (s *Schema) Validate(doc map[string]any) []Error {
	result := s.compiled.Validate(doc["data"])
	if result.IsValid() {
		return nil
	}

	var errs []Error

	collect(result, "", &errs)

	return errs
}

func collect(result *jsonschema.EvaluationResult, base string, out *[]Error) {
	for keyword, evalErr := range result.Errors {
		*out = append(*out, Error{
			Path:    pathFromPointer(base + result.InstanceLocation),
			Keyword: keyword,
			Message: evalErr.Message,
		})
	}

	for _, detail := range result.Details {
		collect(detail, base+result.InstanceLocation, out)
	}
}

// pathFromPointer turns a JSON pointer like "/a/b" into the dotted form
// "a.b" used elsewhere in this module.
func pathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(pointer, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(p, "~1", "/"), "~0", "~")
	}

	return strings.Join(parts, ".")
}
