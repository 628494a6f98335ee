// Package snapshots stores the raw snapshot records of the feed as opaque
// byte values under string keys. It knows nothing about their encoding.
package snapshots

import "context"

// Repository is a key/value store for snapshot records.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error. SetMany writes all values or none.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
