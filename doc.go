// Package layering renders a set of declarative configuration documents
// into a fully materialized configuration by composing them in layers.
//
// A rendering session takes an unordered collection of documents —
// including exactly one control document that defines the layering
// policy — and produces a list of fully rendered documents, where each
// concrete document's payload has been successively transformed by its
// parent's payload under a set of named actions at specified payload
// paths.
//
// # Layers
//
// The layering policy document names an ordered sequence of layer names,
// coarsest first (e.g. "global", "region", "site"). Every other document
// that wants to participate in layering declares which layer it belongs
// to and, unless it is in the topmost layer, a parent selector that picks
// out its unique parent in the layer immediately above it.
//
// # Rendering
//
// Render walks the resulting forest parent-before-child, threading each
// parent's rendered payload into its children, and applying each child's
// ordered actions (merge, replace, delete) against a working copy of that
// payload. Concrete documents contribute their final rendered payload to
// the output; abstract documents contribute only to their children.
//
// Render is a pure function: it performs no I/O, holds no state across
// calls, and never aliases its output with its input.
//
//	rendered, err := layering.Render(rawDocuments)
//
// See SPEC_FULL.md for the full specification this package implements.
package layering
