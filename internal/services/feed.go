package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/minifeed/internal/common"
	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/store"
)

// SortMode selects the display order of Query.
type SortMode string

const (
	// SortDefault keeps storage order (newest inserted first). Any value
	// not listed below behaves the same way.
	SortDefault   SortMode = ""
	SortLatest    SortMode = "latest"
	SortOldest    SortMode = "oldest"
	SortMostLiked SortMode = "most-liked"
)

// SortModes lists the named sort modes.
func SortModes() []SortMode {
	return []SortMode{SortLatest, SortOldest, SortMostLiked}
}

// FeedService owns the post list. Posts are kept newest-inserted first; the
// in-memory list is only replaced after the store accepted the new one.
type FeedService struct {
	store  *store.Store
	logger logging.Logger
	posts  []models.Post
	now    func() time.Time
	newID  func() string
}

// NewFeedService loads the stored posts.
func NewFeedService(ctx context.Context, st *store.Store, logger logging.Logger) (*FeedService, error) {
	s := &FeedService{store: st, logger: logger, now: time.Now, newID: uuid.NewString}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory list with the stored one.
func (s *FeedService) Reload(ctx context.Context) error {
	posts, err := s.store.LoadPosts(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}
	s.posts = posts
	return nil
}

func (s *FeedService) commit(ctx context.Context, next []models.Post) error {
	if err := s.store.SavePosts(ctx, next); err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	s.posts = next
	return nil
}

func (s *FeedService) indexOf(id string) int {
	return slices.IndexFunc(s.posts, func(p models.Post) bool { return p.ID == id })
}

// replaceAt returns a copy of the list with position i set to p.
func (s *FeedService) replaceAt(i int, p models.Post) []models.Post {
	next := slices.Clone(s.posts)
	next[i] = p
	return next
}

// Create prepends a new post by author. Text and image are trimmed; at
// least one of them must remain.
func (s *FeedService) Create(ctx context.Context, text, image string, author models.Author) (*models.Post, error) {
	text = strings.TrimSpace(text)
	image = strings.TrimSpace(image)
	if text == "" && image == "" {
		return nil, common.ErrEmptyPost
	}

	post := models.Post{
		ID:        s.newID(),
		Author:    author,
		Text:      text,
		Image:     models.ImagePtr(image),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Likes:     0,
		LikedBy:   []string{},
	}

	next := make([]models.Post, 0, len(s.posts)+1)
	next = append(next, post)
	next = append(next, s.posts...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "post created", "post_id", post.ID, "author_id", author.ID)
	out := post.Clone()
	return &out, nil
}

// Get returns a copy of the post with that id.
func (s *FeedService) Get(id string) (*models.Post, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	p := s.posts[i].Clone()
	return &p, nil
}

// Edit replaces text and image of a post. An empty image removes it. Id,
// author, creation time and likes are kept. There is no ownership check.
func (s *FeedService) Edit(ctx context.Context, id, text, image string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	image = strings.TrimSpace(image)
	if text == "" && image == "" {
		return nil, common.ErrEmptyPost
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}

	p := s.posts[i].Clone()
	p.Text = text
	p.Image = models.ImagePtr(image)
	if err := s.commit(ctx, s.replaceAt(i, p)); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "post edited", "post_id", id)
	out := p.Clone()
	return &out, nil
}

// Delete removes a post. There is no ownership check.
func (s *FeedService) Delete(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return common.ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.posts), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info(ctx, "post deleted", "post_id", id)
	return nil
}

// ToggleLike adds accountID to the like-set of a post, or removes it when
// already present. Calling it twice restores the previous like-set.
func (s *FeedService) ToggleLike(ctx context.Context, id, accountID string) (*models.Post, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}

	p := s.posts[i].Clone()
	if j := slices.Index(p.LikedBy, accountID); j >= 0 {
		p.LikedBy = slices.Delete(p.LikedBy, j, j+1)
	} else {
		p.LikedBy = append(p.LikedBy, accountID)
	}
	p.Likes = len(p.LikedBy)

	if err := s.commit(ctx, s.replaceAt(i, p)); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "like toggled", "post_id", id, "account_id", accountID, "likes", p.Likes)
	out := p.Clone()
	return &out, nil
}

// Query filters and orders a copy of the feed. The filter is trimmed and
// matched case-insensitively against post text and author name. Sorting is
// stable, so ties keep storage order. The stored list is never modified.
func (s *FeedService) Query(filter string, mode SortMode) []models.Post {
	q := strings.ToLower(strings.TrimSpace(filter))

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p.Clone())
	}

	switch mode {
	case SortLatest:
		slices.SortStableFunc(out, func(a, b models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortOldest:
		slices.SortStableFunc(out, func(a, b models.Post) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortMostLiked:
		slices.SortStableFunc(out, func(a, b models.Post) int { return cmp.Compare(b.Likes, a.Likes) })
	}
	return out
}

func matches(p models.Post, q string) bool {
	return strings.Contains(strings.ToLower(p.Text), q) ||
		strings.Contains(strings.ToLower(p.Author.Name), q)
}
