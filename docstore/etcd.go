package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.yaml.in/yaml/v3"

	"github.com/layerforge/layering/sources"
)

// EtcdStore is a Store backed by etcd, storing each bucket as a single key
// whose value is a multi-document YAML stream — the same stream shape
// sources.LoadBundle decodes.
type EtcdStore struct {
	client *clientv3.Client
	prefix string
}

// NewEtcdStore wraps an already-connected etcd client. prefix is prepended
// to every bucket name to form the etcd key, e.g. "/layerforge/".
func NewEtcdStore(client *clientv3.Client, prefix string) *EtcdStore {
	return &EtcdStore{client: client, prefix: prefix}
}

func (s *EtcdStore) key(bucket string) string {
	return s.prefix + bucket
}

// Get fetches bucket's YAML stream and decodes it into raw documents.
func (s *EtcdStore) Get(ctx context.Context, bucket string) ([]map[string]any, error) {
	resp, err := s.client.Get(ctx, s.key(bucket))
	if err != nil {
		return nil, fmt.Errorf("docstore: get bucket %s: %w", bucket, err)
	}

	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	docs, err := sources.LoadBundle(strings.NewReader(string(resp.Kvs[0].Value)))
	if errors.Is(err, sources.ErrNoData) {
		// A bucket stored with zero documents encodes as an empty stream.
		return []map[string]any{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("docstore: decode bucket %s: %w", bucket, err)
	}

	return docs, nil
}

// Put serializes docs as a multi-document YAML stream and stores it under
// bucket, replacing whatever was there.
func (s *EtcdStore) Put(ctx context.Context, bucket string, docs []map[string]any) error {
	var b strings.Builder

	enc := yaml.NewEncoder(&b)

	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("docstore: encode bucket %s: %w", bucket, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("docstore: encode bucket %s: %w", bucket, err)
	}

	if _, err := s.client.Put(ctx, s.key(bucket), b.String()); err != nil {
		return fmt.Errorf("docstore: put bucket %s: %w", bucket, err)
	}

	return nil
}

// List enumerates every key under prefix and returns the bucket names
// (the key with prefix stripped).
func (s *EtcdStore) List(ctx context.Context) ([]string, error) {
	resp, err := s.client.Get(ctx, s.prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("docstore: list buckets: %w", err)
	}

	buckets := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		buckets = append(buckets, strings.TrimPrefix(string(kv.Key), s.prefix))
	}

	return buckets, nil
}
