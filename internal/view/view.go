// Package view turns feed posts into display rows. It is a pure function of
// its input and knows nothing about storage or the terminal.
package view

import (
	"time"

	"github.com/dmitrijs2005/minifeed/internal/models"
)

// TimestampLayout is the display format of post creation times.
const TimestampLayout = "2006-01-02 15:04:05"

// PostView is one rendered feed row.
type PostView struct {
	ID            string
	AuthorName    string
	Text          string
	Image         string
	CreatedAt     string
	Likes         int
	LikedByViewer bool
}

// Render maps posts to rows in the given order. viewerID marks the rows the
// viewer has liked; pass "" for an anonymous viewer. Times are shown in loc,
// or in UTC when loc is nil.
func Render(posts []models.Post, viewerID string, loc *time.Location) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostView{
			ID:            p.ID,
			AuthorName:    p.Author.Name,
			Text:          p.Text,
			Image:         p.ImageURL(),
			CreatedAt:     FormatTimestamp(p.CreatedAt, loc),
			Likes:         p.Likes,
			LikedByViewer: viewerID != "" && p.IsLikedBy(viewerID),
		})
	}
	return out
}

func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}
