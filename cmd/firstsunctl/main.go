// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command firstsunctl manages First Sun site content and accounts from the
// terminal. The session and the chosen language are kept in the user
// config directory between runs.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/olegiv/firstsun-go/internal/client"
	"github.com/olegiv/firstsun-go/internal/dashboard"
	"github.com/olegiv/firstsun-go/internal/i18n"
	"github.com/olegiv/firstsun-go/internal/validation"
)

const defaultServer = "http://localhost:8080"

// errUsage marks a command line that could not be parsed.
var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses global flags, wires the app and dispatches one command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("firstsunctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	server := fs.String("server", envOr("FSUN_SERVER", defaultServer), "API server base URL")
	configDir := fs.String("config", os.Getenv("FSUN_CONFIG_DIR"), "Client config directory (default: user config dir)")
	verbose := fs.Bool("verbose", false, "Log debug output to stderr")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dir := *configDir
	if dir == "" {
		d, err := dashboard.DefaultConfigDir()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		dir = d
	}

	a, err := newApp(ctx, appConfig{
		Server:    *server,
		ConfigDir: dir,
		In:        stdin,
		Out:       stdout,
		Err:       stderr,
		Logger:    logger,
	})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		// Notifier already reported failures of dashboard operations.
		if !a.reported {
			_, _ = fmt.Fprintln(stderr, "error:", err)
		}
		return 1
	}
	return 0
}

type appConfig struct {
	Server    string
	ConfigDir string
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	Logger    *slog.Logger
}

// app holds the wired dashboard services for one invocation.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger

	client   *client.Client
	catalog  *i18n.Catalog
	locale   *i18n.Localizer
	auth     *dashboard.AuthState
	users    *dashboard.UserAdmin
	notify   dashboard.Notifier
	validate *validation.Validator

	reported bool
}

func newApp(ctx context.Context, cfg appConfig) (*app, error) {
	catalog, err := i18n.NewCatalog(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}
	locale := i18n.NewLocalizer(catalog, dashboard.NewFilePreferences(cfg.ConfigDir), cfg.Logger)

	c := client.New(cfg.Server, client.WithLanguage(locale.Language()))
	locale.OnChange(func(s i18n.State) { c.SetLanguage(s.Lang) })

	a := &app{
		in:       bufio.NewReader(cfg.In),
		out:      cfg.Out,
		errOut:   cfg.Err,
		logger:   cfg.Logger,
		client:   c,
		catalog:  catalog,
		locale:   locale,
		validate: validation.New(),
	}
	a.notify = &reportingNotifier{
		inner: &dashboard.ConsoleNotifier{Out: cfg.Out, Err: cfg.Err},
		onErr: func() { a.reported = true },
	}

	a.auth = dashboard.NewAuthState(dashboard.AuthOptions{
		Provider: c,
		Tokens:   dashboard.NewFileTokenStore(cfg.ConfigDir),
		Navigator: dashboard.NavigatorFunc(func(path string) {
			cfg.Logger.Debug("navigate", "path", path)
		}),
		Notifier: a.notify,
		Logger:   cfg.Logger,
	})
	if err := a.auth.Start(ctx); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	a.users = dashboard.NewUserAdmin(c, a.validate, a.notify, cfg.Logger)
	return a, nil
}

// reportingNotifier records that an error was already shown.
type reportingNotifier struct {
	inner dashboard.Notifier
	onErr func()
}

func (n *reportingNotifier) Success(msg string) { n.inner.Success(msg) }

func (n *reportingNotifier) Error(msg string, err error) {
	n.onErr()
	n.inner.Error(msg, err)
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, "firstsunctl - First Sun dashboard client\n\n")
	_, _ = fmt.Fprintf(w, "Usage: firstsunctl [options] <command> [args]\n\n")
	_, _ = fmt.Fprintf(w, "Commands:\n")
	_, _ = fmt.Fprintf(w, "  signin -email E [-password P]     Sign in\n")
	_, _ = fmt.Fprintf(w, "  signup -email E [-password P]     Create an account\n")
	_, _ = fmt.Fprintf(w, "  signout                           Sign out everywhere\n")
	_, _ = fmt.Fprintf(w, "  whoami                            Show the signed-in user and roles\n")
	_, _ = fmt.Fprintf(w, "  lang [ar|en]                      Show or set the language\n")
	_, _ = fmt.Fprintf(w, "  t <key>                           Translate a key\n")
	_, _ = fmt.Fprintf(w, "  <resource> list [-q text]         List products|partners|articles|gallery|translations\n")
	_, _ = fmt.Fprintf(w, "  <resource> create -file F         Create a record from JSON (- for stdin)\n")
	_, _ = fmt.Fprintf(w, "  <resource> update -file F <id>    Replace a record from JSON\n")
	_, _ = fmt.Fprintf(w, "  <resource> delete [-y] <id>       Delete a record\n")
	_, _ = fmt.Fprintf(w, "  users list                        List accounts (admin)\n")
	_, _ = fmt.Fprintf(w, "  users create -email E -role R     Create an account (admin)\n")
	_, _ = fmt.Fprintf(w, "  users passwd -email E             Change a password (admin)\n")
	_, _ = fmt.Fprintf(w, "  users delete [-y] <id>            Delete an account (admin)\n")
	_, _ = fmt.Fprintf(w, "\nOptions:\n")
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, "\nPasswords not given as flags are read from FSUN_PASSWORD or prompted for.\n")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
