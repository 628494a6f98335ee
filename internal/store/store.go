// Package store is the typed persistent snapshot of the feed: the account
// list, the session marker and the post list, each kept as one JSON record
// in a snapshots.Repository.
//
// Loading never fails on bad data: a missing or undecodable record yields the
// empty default (empty slice or nil session) and a warning is logged. Only
// repository I/O failures are returned as errors.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/repositories/snapshots"
)

// Record keys. They match the browser localStorage keys of the original
// demo, so a localStorage dump can be imported as is.
const (
	AccountsKey = "mini_users_v1"
	SessionKey  = "mini_session_v1"
	PostsKey    = "mini_posts_v1"
)

type Store struct {
	repo   snapshots.Repository
	logger logging.Logger
}

func New(repo snapshots.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger}
}

func load[T any](ctx context.Context, s *Store, key string) (T, error) {
	var zero T
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", key, err)
	}
	if len(raw) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn(ctx, "corrupt snapshot record, using empty default", "key", key, "error", err)
		return zero, nil
	}
	return v, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) LoadAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := load[[]models.Account](ctx, s, AccountsKey)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []models.Account) error {
	if accounts == nil {
		accounts = []models.Account{}
	}
	return s.save(ctx, AccountsKey, accounts)
}

// LoadPosts returns the stored posts, newest first, each normalized so that
// Likes matches the de-duplicated like-set.
func (s *Store) LoadPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := load[[]models.Post](ctx, s, PostsKey)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		return []models.Post{}, nil
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func (s *Store) SavePosts(ctx context.Context, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	return s.save(ctx, PostsKey, posts)
}

// LoadSession returns the stored session or nil when there is none.
func (s *Store) LoadSession(ctx context.Context) (*models.Session, error) {
	return load[*models.Session](ctx, s, SessionKey)
}

// SaveSession stores session; nil is written as JSON null.
func (s *Store) SaveSession(ctx context.Context, session *models.Session) error {
	return s.save(ctx, SessionKey, session)
}
