package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/repositories/snapshots"
)

// failingRepo fails every call with err.
type failingRepo struct{ err error }

func (f failingRepo) Get(context.Context, string) ([]byte, error)      { return nil, f.err }
func (f failingRepo) Set(context.Context, string, []byte) error        { return f.err }
func (f failingRepo) SetMany(context.Context, map[string][]byte) error { return f.err }
func (f failingRepo) Delete(context.Context, string) error             { return f.err }
func (f failingRepo) List(context.Context) (map[string][]byte, error)  { return nil, f.err }
func (f failingRepo) Clear(context.Context) error                      { return f.err }

func newStore(t *testing.T) (*Store, *snapshots.MemoryRepository, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	repo := snapshots.NewMemoryRepository()
	return New(repo, log), repo, &buf
}

func samplePosts() []models.Post {
	return []models.Post{
		{
			ID:        "p2",
			Author:    models.Author{ID: "u1", Name: "Ann"},
			Text:      "world",
			Image:     models.ImagePtr("x.png"),
			CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 250_000_000, time.UTC),
			Likes:     1,
			LikedBy:   []string{"u2"},
		},
		{
			ID:        "p1",
			Author:    models.Author{ID: "u1", Name: "Ann"},
			Text:      "hello",
			CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			LikedBy:   []string{},
		},
	}
}

func TestStore_EmptyDefaults(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	accounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)

	posts, err := s.LoadPosts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	session, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_RoundTrip(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	accounts := []models.Account{{ID: "u1", Name: "Ann", Email: "ann@example.com", Password: "pw"}}
	require.NoError(t, s.SaveAccounts(ctx, accounts))
	gotAccounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(accounts, gotAccounts))

	posts := samplePosts()
	require.NoError(t, s.SavePosts(ctx, posts))
	gotPosts, err := s.LoadPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(posts, gotPosts))

	session := &models.Session{Email: "ann@example.com", Remember: true}
	require.NoError(t, s.SaveSession(ctx, session))
	gotSession, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, gotSession)
}

func TestStore_SavePostsWritesBrowserLayout(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePosts(ctx, []models.Post{{
		ID:        "p1",
		Author:    models.Author{ID: "u1", Name: "Ann"},
		Text:      "hi",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 120_000_000, time.UTC),
		LikedBy:   []string{},
	}, {
		ID:        "p0",
		Author:    models.Author{ID: "u1", Name: "Ann"},
		Image:     models.ImagePtr("x.png"),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC),
		Likes:     1,
		LikedBy:   []string{"u1"},
	}}))

	raw, err := repo.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.Equal(t, `[`+
		`{"id":"p1","author":{"id":"u1","name":"Ann"},"text":"hi","image":null,"createdAt":"2024-01-02T03:04:05.120Z","likes":0,"likedBy":[]},`+
		`{"id":"p0","author":{"id":"u1","name":"Ann"},"text":"","image":"x.png","createdAt":"2024-01-02T03:04:06.000Z","likes":1,"likedBy":["u1"]}`+
		`]`, string(raw))
}

func TestStore_NilSessionIsNull(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, &models.Session{Email: "a@b.c"}))
	require.NoError(t, s.SaveSession(ctx, nil))

	raw, err := repo.Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	got, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CorruptRecordsLoadAsEmpty(t *testing.T) {
	s, repo, logs := newStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, AccountsKey, []byte(`{not json`)))
	require.NoError(t, repo.Set(ctx, PostsKey, []byte(`{"id":"p1"}`)))
	require.NoError(t, repo.Set(ctx, SessionKey, []byte(`[1,2,3]`)))

	accounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	posts, err := s.LoadPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	session, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	out := logs.String()
	assert.Contains(t, out, "key="+AccountsKey)
	assert.Contains(t, out, "key="+PostsKey)
	assert.Contains(t, out, "key="+SessionKey)
}

func TestStore_LoadPostsNormalizesLikes(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	raw := `[{"id":"p1","author":{"id":"u1","name":"Ann"},"text":"hi","image":null,
		"createdAt":"2024-05-01T10:00:00.000Z","likes":5,"likedBy":["u2","u2","u3"]}]`
	require.NoError(t, repo.Set(ctx, PostsKey, []byte(raw)))

	posts, err := s.LoadPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, []string{"u2", "u3"}, posts[0].LikedBy)
	assert.Equal(t, 2, posts[0].Likes)
}

func TestStore_RepositoryErrorsPropagate(t *testing.T) {
	boom := errors.New("disk gone")
	s := New(failingRepo{err: boom}, logging.Nop())
	ctx := context.Background()

	_, err := s.LoadAccounts(ctx)
	require.ErrorIs(t, err, boom)
	_, err = s.LoadPosts(ctx)
	require.ErrorIs(t, err, boom)
	_, err = s.LoadSession(ctx)
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, s.SaveAccounts(ctx, nil), boom)
	require.ErrorIs(t, s.SavePosts(ctx, nil), boom)
	require.ErrorIs(t, s.SaveSession(ctx, nil), boom)

	_, err = s.Export(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.Import(ctx, Snapshot{PostsKey: json.RawMessage(`[]`)}), boom)
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	src, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, src.SaveAccounts(ctx, []models.Account{{ID: "u1", Name: "Ann", Email: "ann@example.com"}}))
	require.NoError(t, src.SavePosts(ctx, samplePosts()))
	require.NoError(t, src.SaveSession(ctx, &models.Session{Email: "ann@example.com"}))

	snap, err := src.Export(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 3)

	encoded, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	dst, _, _ := newStore(t)
	require.NoError(t, dst.Import(ctx, decoded))

	again, err := dst.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, again)

	posts, err := dst.LoadPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(samplePosts(), posts))
}

func TestStore_ImportRejectsBrokenRecord(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAccounts(ctx, []models.Account{{ID: "u1", Email: "a@b.c"}}))

	err := s.Import(ctx, Snapshot{
		AccountsKey: json.RawMessage(`[]`),
		PostsKey:    json.RawMessage(`{"oops":true}`),
	})
	require.ErrorContains(t, err, "import "+PostsKey)

	accounts, err := s.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1, "nothing may be written when one record is broken")
}

func TestStore_ImportSkipsUnknownKeys(t *testing.T) {
	s, repo, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Import(ctx, Snapshot{"theme": json.RawMessage(`"dark"`)}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
