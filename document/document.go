// Package document provides the uniform in-memory representation of a
// single configuration document: its schema identifier, its metadata, and
// its data payload.
//
// Construction validates only the presence of schema and metadata — enough
// to let a caller identify a document in an error message. Semantic
// validation (layer membership, selector well-formedness, parent
// reachability) belongs to the layering engine, which has the context
// (the layering policy, the sibling set) to explain a failure properly.
package document

import (
	"errors"
	"fmt"

	"github.com/layerforge/layering/clone"
)

// ErrMissingSchema is returned when a raw document has no string "schema" field.
var ErrMissingSchema = errors.New("document missing schema")

// ErrMissingMetadata is returned when a raw document has no "metadata" mapping.
var ErrMissingMetadata = errors.New("document missing metadata")

// Method identifies one of the three supported layering actions.
type Method string

// Supported action methods.
const (
	MethodMerge   Method = "merge"
	MethodReplace Method = "replace"
	MethodDelete  Method = "delete"
)

// Action directs how a child document's payload is folded into its
// parent's rendered payload at a single dotted path.
type Action struct {
	Method Method
	Path   string
}

// LayeringDefinition is the metadata.layeringDefinition section of a
// document that participates in layering.
type LayeringDefinition struct {
	Layer          string
	Abstract       bool
	ParentSelector map[string]string
	Actions        []Action
}

// Document is an immutable view over one parsed configuration document.
// The only mutable state is the rendered-payload slot, written once by the
// renderer and read by documents one layer below.
type Document struct {
	index int

	schema string
	name   string
	labels map[string]string

	layering *LayeringDefinition

	// raw is a private deep copy of the entire input document, used to
	// reconstruct the output shape without aliasing the caller's input.
	raw     map[string]any
	payload any

	rendered    any
	renderedSet bool
}

// New builds a Document from a raw parsed value. The raw map is deep
// copied immediately so that nothing the Document later exposes aliases
// the caller's input.
func New(raw map[string]any, index int) (*Document, error) {
	rawCopy, ok := clone.Copy(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document %d: %w", index, ErrMissingMetadata)
	}

	schema, ok := rawCopy["schema"].(string)
	if !ok || schema == "" {
		return nil, fmt.Errorf("document %d: %w", index, ErrMissingSchema)
	}

	metadata, ok := rawCopy["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document %d (schema %s): %w", index, schema, ErrMissingMetadata)
	}

	name, _ := metadata["name"].(string) //nolint:errcheck

	doc := &Document{
		index:   index,
		schema:  schema,
		name:    name,
		labels:  toStringMap(metadata["labels"]),
		raw:     rawCopy,
		payload: rawCopy["data"],
	}

	if rawLD, ok := metadata["layeringDefinition"].(map[string]any); ok {
		doc.layering = parseLayeringDefinition(rawLD)
	}

	return doc, nil
}

func parseLayeringDefinition(raw map[string]any) *LayeringDefinition {
	ld := &LayeringDefinition{
		ParentSelector: toStringMap(raw["parentSelector"]),
	}

	ld.Layer, _ = raw["layer"].(string)     //nolint:errcheck
	ld.Abstract, _ = raw["abstract"].(bool) //nolint:errcheck

	rawActions, _ := raw["actions"].([]any) //nolint:errcheck
	for _, a := range rawActions {
		am, ok := a.(map[string]any)
		if !ok {
			continue
		}

		method, _ := am["method"].(string) //nolint:errcheck
		p, _ := am["path"].(string)        //nolint:errcheck

		ld.Actions = append(ld.Actions, Action{Method: Method(method), Path: p})
	}

	return ld
}

// toStringMap coerces a YAML/JSON-decoded mapping (map[string]any, or
// already map[string]string) into map[string]string, dropping any
// non-string values. A nil or wrongly-typed input yields an empty map.
func toStringMap(raw any) map[string]string {
	out := map[string]string{}

	switch m := raw.(type) {
	case map[string]any:
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	}

	return out
}

// Index returns the document's position in the original input slice.
// Used only for stable diagnostics and tie-breaking; it plays no part in
// output ordering semantics.
func (d *Document) Index() int { return d.index }

// Schema returns the document's schema identifier.
func (d *Document) Schema() string { return d.schema }

// Name returns the document's metadata.name.
func (d *Document) Name() string { return d.name }

// Labels returns the document's metadata.labels.
func (d *Document) Labels() map[string]string { return d.labels }

// Layering returns the document's layering definition and whether it has one.
func (d *Document) Layering() (*LayeringDefinition, bool) {
	return d.layering, d.layering != nil
}

// Payload returns the document's data payload as originally parsed. It must
// be treated as read-only by callers; copy before mutating.
func (d *Document) Payload() any { return d.payload }

// SetRendered records this document's rendered payload: the result of
// applying its actions against its parent's rendered payload. For
// top-layer documents, it is a deep copy of Payload with no transform
// applied.
func (d *Document) SetRendered(data any) {
	d.rendered = data
	d.renderedSet = true
}

// Rendered returns the document's rendered payload and whether it has
// been set yet.
func (d *Document) Rendered() (any, bool) { return d.rendered, d.renderedSet }

// Output assembles the document's final output shape: a deep copy of the
// original raw document with "data" replaced by the rendered payload, if
// the document is concrete. Abstract documents keep their original,
// unrendered data in the output — their rendered payload exists only to
// feed their children.
func (d *Document) Output() map[string]any {
	out, ok := clone.Copy(d.raw).(map[string]any)
	if !ok {
		out = map[string]any{}
	}

	if d.layering != nil && !d.layering.Abstract && d.renderedSet {
		out["data"] = d.rendered
	}

	return out
}
