package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/repositories/snapshots"
	"github.com/dmitrijs2005/minifeed/internal/store"
)

var errWrite = errors.New("write refused")

// flakyRepo is a memory repository whose writes can be switched off.
type flakyRepo struct {
	*snapshots.MemoryRepository
	failWrites bool
}

func (r *flakyRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.failWrites {
		return errWrite
	}
	return r.MemoryRepository.Set(ctx, key, value)
}

func newTestStore(t *testing.T) (*store.Store, *flakyRepo) {
	t.Helper()
	repo := &flakyRepo{MemoryRepository: snapshots.NewMemoryRepository()}
	return store.New(repo, logging.Nop()), repo
}

// sequentialIDs returns an id generator yielding prefix1, prefix2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// steppingClock returns a clock that advances by one second per call.
func steppingClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(time.Second)
		return now
	}
}

func newTestFeed(t *testing.T, st *store.Store) *FeedService {
	t.Helper()
	f, err := NewFeedService(context.Background(), st, logging.Nop())
	require.NoError(t, err)
	f.newID = sequentialIDs("p")
	f.now = steppingClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	return f
}
