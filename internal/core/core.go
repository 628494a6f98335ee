// Package core is the boundary the presentation layer talks to. It wires
// the account directory, the session manager and the feed engine over one
// store and takes the acting account from the session manager for every
// post operation.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/minifeed/internal/common"
	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/repositories/snapshots"
	"github.com/dmitrijs2005/minifeed/internal/services"
	"github.com/dmitrijs2005/minifeed/internal/store"
	"github.com/dmitrijs2005/minifeed/internal/view"
)

type Core struct {
	store    *store.Store
	accounts *services.AccountService
	sessions *services.SessionService
	feed     *services.FeedService
	logger   logging.Logger
	location *time.Location
}

// New builds a Core over repo and loads the stored feed. It does not restore
// the session; call RestoreSession for that.
func New(ctx context.Context, repo snapshots.Repository, logger logging.Logger) (*Core, error) {
	st := store.New(repo, logger.With("component", "store"))
	accounts := services.NewAccountService(st, logger.With("component", "accounts"))
	sessions := services.NewSessionService(st, accounts, logger.With("component", "sessions"))

	feed, err := services.NewFeedService(ctx, st, logger.With("component", "feed"))
	if err != nil {
		return nil, fmt.Errorf("init feed: %w", err)
	}

	return &Core{
		store:    st,
		accounts: accounts,
		sessions: sessions,
		feed:     feed,
		logger:   logger,
		location: time.Local,
	}, nil
}

// Register creates an account and signs it in without remember-me.
func (c *Core) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	account, err := c.accounts.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Start(ctx, *account, false); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates and signs in with remember-me.
func (c *Core) Login(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := c.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Start(ctx, *account, true); err != nil {
		return nil, err
	}
	return account, nil
}

func (c *Core) Logout(ctx context.Context) error {
	return c.sessions.End(ctx)
}

// RestoreSession signs the remembered account back in, if any.
func (c *Core) RestoreSession(ctx context.Context) (*models.Account, error) {
	return c.sessions.Restore(ctx)
}

func (c *Core) CurrentUser() (*models.Account, bool) {
	return c.sessions.Current()
}

func (c *Core) ListUsers(ctx context.Context) ([]models.Account, error) {
	return c.accounts.List(ctx)
}

func (c *Core) actor() (*models.Account, error) {
	account, ok := c.sessions.Current()
	if !ok {
		return nil, common.ErrUnauthorized
	}
	return account, nil
}

func (c *Core) CreatePost(ctx context.Context, text, image string) (*models.Post, error) {
	account, err := c.actor()
	if err != nil {
		return nil, err
	}
	return c.feed.Create(ctx, text, image, account.Author())
}

func (c *Core) GetPost(id string) (*models.Post, error) {
	return c.feed.Get(id)
}

// EditPost and DeletePost need a signed-in user but, like the feed engine,
// do not check that the user wrote the post.
func (c *Core) EditPost(ctx context.Context, id, text, image string) (*models.Post, error) {
	if _, err := c.actor(); err != nil {
		return nil, err
	}
	return c.feed.Edit(ctx, id, text, image)
}

func (c *Core) DeletePost(ctx context.Context, id string) error {
	if _, err := c.actor(); err != nil {
		return err
	}
	return c.feed.Delete(ctx, id)
}

func (c *Core) ToggleLike(ctx context.Context, id string) (*models.Post, error) {
	account, err := c.actor()
	if err != nil {
		return nil, err
	}
	return c.feed.ToggleLike(ctx, id, account.ID)
}

// QueryFeed filters and sorts the feed and renders it for the current user.
func (c *Core) QueryFeed(filter string, mode services.SortMode) []view.PostView {
	viewerID := ""
	if account, ok := c.sessions.Current(); ok {
		viewerID = account.ID
	}
	return view.Render(c.feed.Query(filter, mode), viewerID, c.location)
}

func (c *Core) Export(ctx context.Context) (store.Snapshot, error) {
	return c.store.Export(ctx)
}

// Import writes snap to the store, then reloads the feed and the signed-in
// user from it. After an import the stored session record decides who is
// signed in; a user whose account or session the file removed is signed out.
func (c *Core) Import(ctx context.Context, snap store.Snapshot) error {
	if err := c.store.Import(ctx, snap); err != nil {
		return err
	}
	if err := c.feed.Reload(ctx); err != nil {
		return err
	}
	return c.sessions.Sync(ctx)
}
