package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/minifeed/internal/common"
)

// commands is the surface the REPL dispatches to. App satisfies it; tests
// provide a recording stub.
type commands interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Users(ctx context.Context) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error
	Feed(ctx context.Context, mode string) error
	Search(ctx context.Context, text string) error
	Sort(ctx context.Context, mode string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
}

const (
	helpLoggedOut = "Available commands: register, login, feed [sort], search <text>, sort <mode>, users, export <file>, import <file>, exit"
	helpLoggedIn  = "Available commands: post, edit <id>, delete <id>, like <id>, feed [sort], search <text>, sort <mode>, whoami, users, export <file>, import <file>, logout, exit"
)

// needsLogin lists commands refused without a signed-in user.
var needsLogin = map[string]bool{
	"post":   true,
	"edit":   true,
	"delete": true,
	"like":   true,
	"logout": true,
	"whoami": true,
}

// runREPL reads one command per line from reader and dispatches it to a.
// The first token is the command; the rest of the line is its argument.
// The loop ends on EOF, "exit"/"quit" or ctx cancellation. Handler errors
// are printed as user messages and never stop the loop.
func runREPL(ctx context.Context, a commands, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "mf %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		if needsLogin[cmd] && !a.isLoggedIn() {
			fmt.Fprintln(w, userMessage(common.ErrUnauthorized))
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "users":
			cmdErr = a.Users(ctx)

		case "post":
			cmdErr = a.Post(ctx)

		case "edit", "delete", "like":
			if arg == "" {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				continue
			}
			switch cmd {
			case "edit":
				cmdErr = a.Edit(ctx, arg)
			case "delete":
				cmdErr = a.Delete(ctx, arg)
			default:
				cmdErr = a.Like(ctx, arg)
			}

		case "l", "feed":
			cmdErr = a.Feed(ctx, arg)

		case "search":
			cmdErr = a.Search(ctx, arg)

		case "sort":
			cmdErr = a.Sort(ctx, arg)

		case "export", "import":
			if arg == "" {
				fmt.Fprintf(w, "Usage: %s <file>\n", cmd)
				continue
			}
			if cmd == "export" {
				cmdErr = a.Export(ctx, arg)
			} else {
				cmdErr = a.Import(ctx, arg)
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, userMessage(cmdErr))
		}

		if err != nil {
			// last line had no trailing newline
			return
		}
	}
}

// userMessage maps core errors to the text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already used"
	case errors.Is(err, common.ErrInvalidName):
		return "Please enter a name"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Login failed. Check credentials."
	case errors.Is(err, common.ErrEmptyPost):
		return "Please add text or image"
	case errors.Is(err, common.ErrNotFound):
		return "Post not found"
	case errors.Is(err, common.ErrUnauthorized):
		return "Please login first"
	case errors.Is(err, errCancelled):
		return "Cancelled"
	default:
		return "Error: " + err.Error()
	}
}
