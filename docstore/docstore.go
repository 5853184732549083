// Package docstore models the persistence collaborator's contract: a
// caller fetches a bucket's documents, renders them through the layering
// engine, and optionally writes results back. The layering engine package
// never imports docstore — wiring the two together, and deciding when
// persistence happens relative to rendering, is the caller's job.
package docstore

import (
	"context"
	"errors"
)

// ErrBucketNotFound indicates the named bucket has no stored documents.
var ErrBucketNotFound = errors.New("docstore: bucket not found")

// Store is a unified document-bucket abstraction: a named bucket holds an
// ordered list of raw documents, the same shape layering.Render accepts.
type Store interface {
	// Get returns every document in bucket, in storage order.
	Get(ctx context.Context, bucket string) ([]map[string]any, error)
	// Put replaces bucket's entire document list.
	Put(ctx context.Context, bucket string, docs []map[string]any) error
	// List returns the names of every bucket currently stored.
	List(ctx context.Context) ([]string, error)
}
