package snapshots

import (
	"context"
	"maps"
	"slices"
)

// MemoryRepository keeps records in a map. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type MemoryRepository struct {
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, value []byte) error {
	r.data[key] = append([]byte{}, value...)
	return nil
}

func (r *MemoryRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	for k, v := range values {
		_ = r.Set(ctx, k, v)
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	maps.DeleteFunc(r.data, func(string, []byte) bool { return true })
	return nil
}
