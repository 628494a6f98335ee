package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dmitrijs2005/minifeed/internal/services"
	"github.com/dmitrijs2005/minifeed/internal/view"
)

const emptyFeed = "No posts yet. Be the first! 🎉"

// parseSortMode accepts the named modes plus "default" for storage order.
func parseSortMode(s string) (services.SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return services.SortDefault, nil
	}
	mode := services.SortMode(s)
	if !slices.Contains(services.SortModes(), mode) {
		return "", fmt.Errorf("unknown sort mode %q (use latest, oldest, most-liked or default)", s)
	}
	return mode, nil
}

// Feed prints the feed with the current search. A mode argument overrides
// the current sort for this listing only.
func (a *App) Feed(_ context.Context, mode string) error {
	sort := a.sort
	if mode != "" {
		m, err := parseSortMode(mode)
		if err != nil {
			return err
		}
		sort = m
	}

	printFeed(a.out, a.core.QueryFeed(a.filter, sort))
	return nil
}

// Search sets the feed filter and prints the result. An empty text clears it.
func (a *App) Search(ctx context.Context, text string) error {
	a.filter = text
	return a.Feed(ctx, "")
}

// Sort sets the feed order and prints the result.
func (a *App) Sort(ctx context.Context, mode string) error {
	m, err := parseSortMode(mode)
	if err != nil {
		return err
	}
	a.sort = m
	return a.Feed(ctx, "")
}

func printFeed(w io.Writer, rows []view.PostView) {
	if len(rows) == 0 {
		fmt.Fprintln(w, emptyFeed)
		return
	}

	for _, r := range rows {
		heart := "♡"
		if r.LikedByViewer {
			heart = "❤️"
		}
		fmt.Fprintf(w, "[%s] %s · %s\n", r.ID, r.AuthorName, r.CreatedAt)
		if r.Text != "" {
			fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(r.Text, "\n", "\n  "))
		}
		if r.Image != "" {
			fmt.Fprintf(w, "  image: %s\n", r.Image)
		}
		fmt.Fprintf(w, "  %s %d\n\n", heart, r.Likes)
	}
}
