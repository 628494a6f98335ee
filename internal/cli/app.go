package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/minifeed/internal/config"
	"github.com/dmitrijs2005/minifeed/internal/core"
	"github.com/dmitrijs2005/minifeed/internal/filex"
	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/repositories/snapshots"
	"github.com/dmitrijs2005/minifeed/internal/services"
	"github.com/dmitrijs2005/minifeed/internal/storage"
	"github.com/dmitrijs2005/minifeed/internal/store"
	"github.com/dmitrijs2005/minifeed/internal/view"
)

// feedCore is the part of core.Core the REPL drives.
type feedCore interface {
	Register(ctx context.Context, name, email, password string) (*models.Account, error)
	Login(ctx context.Context, email, password string) (*models.Account, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*models.Account, error)
	CurrentUser() (*models.Account, bool)
	ListUsers(ctx context.Context) ([]models.Account, error)

	CreatePost(ctx context.Context, text, image string) (*models.Post, error)
	GetPost(id string) (*models.Post, error)
	EditPost(ctx context.Context, id, text, image string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (*models.Post, error)
	QueryFeed(filter string, mode services.SortMode) []view.PostView

	Export(ctx context.Context) (store.Snapshot, error)
	Import(ctx context.Context, snap store.Snapshot) error
}

type App struct {
	config *config.Config
	core   feedCore
	logger logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
	filter string
	sort   services.SortMode
}

// NewApp opens the database named by c, applies migrations and loads the
// feed. Logs go to stderr so they stay out of the REPL output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := parseSortMode(c.DefaultSort); err != nil {
		return nil, fmt.Errorf("default sort: %w", err)
	}

	if !c.InMemory() {
		if _, err := filex.EnsureSubdDir(c.DataDir); err != nil {
			return nil, fmt.Errorf("init data dir: %w", err)
		}
	}

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN())
	if err != nil {
		logger.Error(ctx, "error initializing database", "dsn", c.DatabaseDSN(), "error", err)
		return nil, err
	}

	fc, err := core.New(ctx, snapshots.NewSQLiteRepository(db), logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	return newApp(c, fc, logger, os.Stdin, os.Stdout, db), nil
}

// newApp expects c.DefaultSort to be valid; an unknown value falls back to
// storage order.
func newApp(c *config.Config, fc feedCore, logger logging.Logger, in io.Reader, out io.Writer, db *sql.DB) *App {
	sort, _ := parseSortMode(c.DefaultSort)
	return &App{
		config: c,
		core:   fc,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(in),
		out:    out,
		sort:   sort,
	}
}

// Run restores a remembered session and runs the REPL until exit, EOF or
// ctx cancellation.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to minifeed (type 'help' for commands)")

	account, err := a.core.RestoreSession(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if account != nil {
		fmt.Fprintf(a.out, "Welcome, %s\n", account.Name)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the database and flushes the logger.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close database", "error", err)
		}
		a.db = nil
	}
	if s, ok := a.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.core.CurrentUser()
	return ok
}

// status is shown in the prompt: the signed-in name plus active search and
// sort, if any.
func (a *App) status() string {
	var parts []string
	if account, ok := a.core.CurrentUser(); ok {
		parts = append(parts, account.Name)
	}
	if a.filter != "" {
		parts = append(parts, fmt.Sprintf("search=%q", a.filter))
	}
	if a.sort != services.SortDefault {
		parts = append(parts, "sort="+string(a.sort))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
