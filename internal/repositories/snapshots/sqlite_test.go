package snapshots

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE snapshots (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

// repositoryContract runs the behaviour every Repository must share.
func repositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "k1", []byte(`[1,2]`)))

		v, err := r.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[1,2]`), v)
	})

	t.Run("missing key is nil nil", func(t *testing.T) {
		r := newRepo(t)
		v, err := r.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))

		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("set many and list", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "a", []byte("0")))
		require.NoError(t, r.SetMany(ctx, map[string][]byte{
			"a": []byte("1"),
			"b": []byte("2"),
		}))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, m)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "x", []byte{1}))
		require.NoError(t, r.Delete(ctx, "x"))
		require.NoError(t, r.Delete(ctx, "x"))

		v, err := r.Get(ctx, "x")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "a", []byte{1}))
		require.NoError(t, r.Set(ctx, "b", []byte{2}))
		require.NoError(t, r.Clear(ctx))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}

func TestSQLiteRepository_Contract(t *testing.T) {
	repositoryContract(t, func(t *testing.T) Repository {
		return NewSQLiteRepository(setupDB(t))
	})
}

func TestMemoryRepository_Contract(t *testing.T) {
	repositoryContract(t, func(t *testing.T) Repository {
		return NewMemoryRepository()
	})
}

func TestMemoryRepository_DoesNotAliasValues(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'Y'
	again, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestSQLiteRepository_SetManyIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, r.Set(ctx, "a", []byte("keep")))

	// "b" sorts after "a" and is rejected by the trigger, so "a" must roll back.
	_, err := db.Exec(`
CREATE TRIGGER reject_b BEFORE INSERT ON snapshots
WHEN NEW.key = 'b'
BEGIN SELECT RAISE(ABORT, 'rejected'); END;`)
	require.NoError(t, err)

	err = r.SetMany(ctx, map[string][]byte{"a": []byte("changed"), "b": []byte("x")})
	require.ErrorContains(t, err, "failed to set snapshot[b]")

	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), v)
}

func TestSQLiteRepository_ErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get snapshot[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set snapshot[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete snapshot[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear snapshots")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list snapshots")
}
