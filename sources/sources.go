// Package sources decodes a stream of YAML documents into the raw
// []map[string]any shape the layering engine accepts. It performs no
// layering-aware validation of its own: a malformed document surfaces as a
// decode error, never as one of the engine's typed failures.
package sources

import (
	"errors"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

var (
	// ErrNoData indicates the reader produced no documents at all.
	ErrNoData = errors.New("no data to process")
	// ErrUnmarshal indicates a document in the stream failed to decode.
	ErrUnmarshal = errors.New("failed to unmarshal document")
	// ErrNotAMapping indicates a decoded document's top level is not a mapping.
	ErrNotAMapping = errors.New("document is not a mapping")
)

// LoadBundle decodes r as a multi-document YAML stream (documents separated
// by "---") and returns them in stream order as raw documents suitable for
// Render. Empty documents (a bare "---" with nothing between separators)
// are skipped.
func LoadBundle(r io.Reader) ([]map[string]any, error) {
	dec := yaml.NewDecoder(r)

	var docs []map[string]any

	for {
		var raw any

		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnmarshal, err)
		}

		if raw == nil {
			continue
		}

		doc, ok := normalize(raw).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrNotAMapping, raw)
		}

		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, ErrNoData
	}

	return docs, nil
}

// normalize converts the map[any]any that yaml.v3 can produce for nested
// mappings into map[string]any throughout, so downstream code never has to
// handle both shapes.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalize(val)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out
	default:
		return v
	}
}
