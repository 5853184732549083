package layering

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Use errors.Is against these;
// use errors.As against the concrete types below to recover context.
var (
	ErrLayeringPolicyNotFound      = errors.New("layering policy not found")
	ErrLayeringPolicyMalformed     = errors.New("layering policy malformed")
	ErrMissingDocumentParent       = errors.New("document has no parent")
	ErrIndeterminateDocumentParent = errors.New("document has more than one parent")
	ErrUnsupportedActionMethod     = errors.New("unsupported action method")
	ErrMissingDocumentKey          = errors.New("missing document key")
)

// LayeringPolicyNotFoundError is returned when the input does not contain
// exactly one document carrying the reserved layering-policy schema (none,
// or more than one).
type LayeringPolicyNotFoundError struct {
	Schema string
}

func (e *LayeringPolicyNotFoundError) Error() string {
	return fmt.Sprintf("%v: expected exactly one document with schema %q", ErrLayeringPolicyNotFound, e.Schema)
}

func (e *LayeringPolicyNotFoundError) Unwrap() error { return ErrLayeringPolicyNotFound }

// LayeringPolicyMalformedError is returned when the layering policy's
// data.layerOrder is absent, not a sequence, empty, or contains duplicates.
type LayeringPolicyMalformedError struct {
	Schema string
	Name   string
	Reason string
}

func (e *LayeringPolicyMalformedError) Error() string {
	return fmt.Sprintf("%v: document %s/%s: %s", ErrLayeringPolicyMalformed, e.Schema, e.Name, e.Reason)
}

func (e *LayeringPolicyMalformedError) Unwrap() error { return ErrLayeringPolicyMalformed }

// MissingDocumentParentError is returned when a non-top-layer document has
// no parent satisfying schema equality and selector match.
type MissingDocumentParentError struct {
	Schema string
	Name   string
	Layer  string
}

func (e *MissingDocumentParentError) Error() string {
	return fmt.Sprintf("%v: document %s/%s in layer %q", ErrMissingDocumentParent, e.Schema, e.Name, e.Layer)
}

func (e *MissingDocumentParentError) Unwrap() error { return ErrMissingDocumentParent }

// IndeterminateDocumentParentError is returned when a non-top-layer
// document has two or more candidate parents.
type IndeterminateDocumentParentError struct {
	Schema string
	Name   string
	Layer  string
	Count  int
}

func (e *IndeterminateDocumentParentError) Error() string {
	return fmt.Sprintf("%v: document %s/%s in layer %q has %d candidate parents",
		ErrIndeterminateDocumentParent, e.Schema, e.Name, e.Layer, e.Count)
}

func (e *IndeterminateDocumentParentError) Unwrap() error { return ErrIndeterminateDocumentParent }

// UnsupportedActionMethodError is returned when an action's method is not
// one of merge, replace, or delete.
type UnsupportedActionMethodError struct {
	Schema string
	Name   string
	Method string
}

func (e *UnsupportedActionMethodError) Error() string {
	return fmt.Sprintf("%v: document %s/%s: method %q", ErrUnsupportedActionMethod, e.Schema, e.Name, e.Method)
}

func (e *UnsupportedActionMethodError) Unwrap() error { return ErrUnsupportedActionMethod }

// MissingDocumentKeyError is returned when an action's path refers to a
// key absent where the method requires its presence.
type MissingDocumentKeyError struct {
	Schema string
	Name   string
	Path   string
	Key    string
}

func (e *MissingDocumentKeyError) Error() string {
	return fmt.Sprintf("%v: document %s/%s: path %q missing key %q",
		ErrMissingDocumentKey, e.Schema, e.Name, e.Path, e.Key)
}

func (e *MissingDocumentKeyError) Unwrap() error { return ErrMissingDocumentKey }
