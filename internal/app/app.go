// Package app wires the configuration, logger, user repository, and auth
// service together and dispatches the userstore subcommands. Each
// invocation runs exactly one command; there is no interactive menu loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/ebogdanov/userstore/internal/auth"
	"github.com/ebogdanov/userstore/internal/config"
	"github.com/ebogdanov/userstore/internal/logging"
	"github.com/ebogdanov/userstore/internal/session"
	"github.com/ebogdanov/userstore/internal/users"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type App struct {
	config *config.Config
	logger logging.Logger
	repo   users.Repository
	auth   auth.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repo, err := users.NewFileRepository(cfg.UsersFile, logger)
	if err != nil {
		return nil, fmt.Errorf("open user repository: %w", err)
	}

	sessions := session.NewTokenStore(cfg.SessionFile, []byte(cfg.SecretKey), cfg.SessionValidity, logger)

	authService, err := auth.NewService(ctx, repo, sessions, logger)
	if err != nil {
		return nil, fmt.Errorf("init auth service: %w", err)
	}

	return &App{config: cfg, logger: logger, repo: repo, auth: authService}, nil
}

// Run executes one subcommand. args is os.Args[1:] with configuration flags
// already consumed by the config layer.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := command(args)

	switch cmd {
	case "add":
		return a.cmdAdd(ctx, rest)
	case "list":
		return a.cmdList(ctx)
	case "get":
		return a.cmdGet(ctx, rest)
	case "find":
		return a.cmdFind(ctx, rest)
	case "update":
		return a.cmdUpdate(ctx, rest)
	case "delete":
		return a.cmdDelete(ctx, rest)
	case "signin":
		return a.cmdSignIn(ctx, rest)
	case "signout":
		return a.auth.SignOut(ctx)
	case "whoami":
		return a.cmdWhoAmI()
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

const usage = `usage: userstore [flags] <command> [arguments]

commands:
  add <login> <name> [email [address]]   create a user (password is prompted)
  list                                   print all users ordered by name
  get <id>                               print one user by id
  find <login>                           print one user by login
  update <id> <name> [email [address]]   replace a user's details
  delete <id>                            remove a user
  signin <login>                         authenticate (password is prompted)
  signout                                drop the current session
  whoami                                 print the authenticated user`

// command splits args into the subcommand name and its arguments, skipping
// the configuration flags handled elsewhere.
func command(args []string) (string, []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f", "-s", "-k", "-t", "-c", "-config":
			i++ // skip the flag's value too
		default:
			if len(args[i]) > 0 && args[i][0] == '-' {
				continue
			}
			return args[i], args[i+1:]
		}
	}
	return "", nil
}
