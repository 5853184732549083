// Package path implements the dotted path grammar used to address a
// location within a document's data: the literal "." addresses the whole
// data container, and ".a.b.c" descends keys a, b and addresses key c.
package path

import (
	"errors"
	"strings"
)

// rootSegment is prepended to every parsed path, so "." resolves to the
// whole "data" slot and ".a" resolves to "data.a".
const rootSegment = "data"

// ErrMissingKey is returned by Resolve when an intermediate segment of the
// path is absent from the container being walked.
var ErrMissingKey = errors.New("path: missing key along path")

// Segments parses expr ("." or ".a.b.c") into its ordered list of keys,
// with the reserved root segment prepended.
func Segments(expr string) []string {
	segments := []string{rootSegment}

	for _, part := range strings.Split(expr, ".") {
		if part == "" {
			continue
		}

		segments = append(segments, part)
	}

	return segments
}

// Resolve walks segments through root and returns the container holding
// the final segment and that final segment itself as key. root is the
// wrapper {"data": payload}, so the first segment ("data") is looked up in
// root itself; for "." the returned container is root and key is "data".
//
// If an intermediate segment is absent or not a mapping, Resolve fails
// with ErrMissingKey; key in that case is the offending segment.
func Resolve(root map[string]any, segments []string) (container map[string]any, key string, err error) {
	if len(segments) == 0 {
		return nil, "", ErrMissingKey
	}

	current := root

	for i := 0; i < len(segments)-1; i++ {
		seg := segments[i]

		next, ok := current[seg]
		if !ok {
			return nil, seg, ErrMissingKey
		}

		nextMap, ok := next.(map[string]any)
		if !ok {
			return nil, seg, ErrMissingKey
		}

		current = nextMap
	}

	return current, segments[len(segments)-1], nil
}
