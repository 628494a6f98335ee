// Package models defines the records persisted by the feed core: accounts,
// the session marker and posts. JSON tags follow the snapshot layout, so a
// record written here reads back unchanged.
package models

import (
	"encoding/json"
	"slices"
	"time"
)

// CreatedAtLayout is the stored form of Post.CreatedAt: UTC with exactly
// three fractional digits, as written by JavaScript's toISOString.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Account is a registered user identity.
//
// Password is kept as plaintext; hashing is out of scope for this demo and
// would break compatibility with existing snapshots.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Author returns the snapshot of the account embedded into new posts.
func (a Account) Author() Author {
	return Author{ID: a.ID, Name: a.Name}
}

// Session marks which account is signed in and whether it should be
// restored on the next start.
type Session struct {
	Email    string `json:"email"`
	Remember bool   `json:"remember,omitempty"`
}

// Author is the author snapshot stored inside a post. Renaming an account
// later does not touch existing posts.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post is a feed entry. Likes always equals len(LikedBy).
type Post struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"likedBy"`
}

// postRecord fixes the stored field order and the createdAt layout.
type postRecord struct {
	ID        string   `json:"id"`
	Author    Author   `json:"author"`
	Text      string   `json:"text"`
	Image     *string  `json:"image"`
	CreatedAt string   `json:"createdAt"`
	Likes     int      `json:"likes"`
	LikedBy   []string `json:"likedBy"`
}

// MarshalJSON writes CreatedAt in CreatedAtLayout. Decoding uses the default
// time.Time parser, which accepts any RFC 3339 precision.
func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(postRecord{
		ID:        p.ID,
		Author:    p.Author,
		Text:      p.Text,
		Image:     p.Image,
		CreatedAt: p.CreatedAt.UTC().Format(CreatedAtLayout),
		Likes:     p.Likes,
		LikedBy:   p.LikedBy,
	})
}

// ImageURL returns the image URL or "" when the post has none.
func (p Post) ImageURL() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

// IsLikedBy reports whether accountID is in the like-set.
func (p Post) IsLikedBy(accountID string) bool {
	return slices.Contains(p.LikedBy, accountID)
}

// Clone returns a deep copy that shares no memory with p.
func (p Post) Clone() Post {
	c := p
	c.LikedBy = append(make([]string, 0, len(p.LikedBy)), p.LikedBy...)
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
	return c
}

// Normalize repairs a loaded post: duplicate like-set entries are dropped
// (first occurrence wins) and Likes is recomputed from the like-set.
func (p *Post) Normalize() {
	seen := make(map[string]struct{}, len(p.LikedBy))
	likedBy := make([]string, 0, len(p.LikedBy))
	for _, id := range p.LikedBy {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		likedBy = append(likedBy, id)
	}
	p.LikedBy = likedBy
	p.Likes = len(likedBy)
	if p.Image != nil && *p.Image == "" {
		p.Image = nil
	}
}

// ImagePtr converts an optional image URL to the stored representation.
func ImagePtr(url string) *string {
	if url == "" {
		return nil
	}
	return &url
}
