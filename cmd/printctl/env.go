package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/JaimeStill/printmg/internal/account"
	"github.com/JaimeStill/printmg/internal/backend"
	"github.com/JaimeStill/printmg/internal/catalog"
	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/dashboard"
	"github.com/JaimeStill/printmg/internal/guard"
	"github.com/JaimeStill/printmg/internal/history"
	"github.com/JaimeStill/printmg/internal/i18n"
	"github.com/JaimeStill/printmg/internal/notifications"
	"github.com/JaimeStill/printmg/internal/session"
	"github.com/JaimeStill/printmg/internal/storage"
	"github.com/JaimeStill/printmg/pkg/logging"
)

// env wires the SDK once per invocation. Commands are its methods.
type env struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	logger *slog.Logger
	tr     *i18n.Translator
	json   bool

	sessions *session.Store
	prefs    *session.PreferenceStore
	client   *backend.Client
	account  *account.Account
	guard    *guard.Guard
	catalog  *catalog.Catalog
	history  *history.History
	inbox    *notifications.Inbox
	stats    *dashboard.Stats
	users    *dashboard.Users
}

func newEnv(in io.Reader, out, errOut io.Writer) *env {
	return &env{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

func (e *env) init(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if url := c.String("api-url"); url != "" {
		cfg.API.BaseURL = url
	}
	cfg.Logging.DefaultLevel(logging.LevelWarn)
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config finalize failed: %w", err)
	}
	if c.Bool("verbose") {
		cfg.Logging.Level = logging.LevelDebug
	}

	e.cfg = cfg
	e.json = c.Bool("json")
	e.logger = logging.NewWriter(&cfg.Logging, e.errOut)

	durable, err := storage.NewFilesystem(cfg.Session.DurablePath, e.logger)
	if err != nil {
		return fmt.Errorf("durable storage: %w", err)
	}
	scoped, err := storage.NewFilesystem(cfg.Session.ScopedPath, e.logger)
	if err != nil {
		return fmt.Errorf("scoped storage: %w", err)
	}

	e.sessions = session.NewStore(durable, scoped, e.logger)
	e.prefs = session.NewPreferenceStore(durable, cfg.Locale.Default)

	lang := c.String("lang")
	if lang == "" {
		prefs, err := e.prefs.Load(c.Context)
		if err != nil {
			e.logger.Warn("preferences unreadable", "error", err)
		}
		lang = prefs.Language
	}
	e.tr = i18n.New(lang)

	e.client = backend.New(&cfg.API, e.sessions, e.logger)
	e.account = account.New(e.client, e.sessions, account.NewGoogleVerifier(cfg.Google.ClientID), e.logger)
	e.guard = guard.New(e.sessions)
	e.catalog = catalog.New(e.client, cfg.Pagination, e.logger)
	e.history = history.New(e.client, cfg.Pagination, e.logger)
	e.inbox = notifications.NewInbox(e.client, cfg.Pagination, e.logger)
	e.stats = dashboard.NewStats(e.client, cfg.Polling.StatsTTLDuration(), e.logger)
	e.users = dashboard.NewUsers(e.client, cfg.Pagination)

	return nil
}

// gated runs action only when the active session may open path.
func (e *env) gated(path string, action cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if d := e.guard.Check(c.Context, path); !d.Allowed {
			return e.denied(path, d)
		}
		return e.report(c, action(c))
	}
}

func (e *env) denied(path string, d guard.Decision) error {
	roles := "USER, ADMIN"
	if route, ok := e.guard.Lookup(path); ok && len(route.Roles) > 0 {
		names := make([]string, len(route.Roles))
		for i, r := range route.Roles {
			names[i] = string(r)
		}
		roles = strings.Join(names, ", ")
	}

	fmt.Fprintln(e.errOut, e.tr.T("app.redirect", d.Redirect))
	return errors.New(e.tr.T("app.access_denied", roles))
}

// report turns backend failures into the message shown to the user. A
// rejected token also closes the local session.
func (e *env) report(c *cli.Context, err error) error {
	if err == nil {
		return nil
	}

	if backend.IsAuthError(err) {
		if lerr := e.sessions.Logout(c.Context); lerr != nil {
			e.logger.Warn("session cleanup failed", "error", lerr)
		}
		return errors.New(backend.UserMessage(err))
	}

	var se *backend.ServerError
	if errors.As(err, &se) {
		e.logger.Debug("backend error", "status", se.Status, "fields", se.Fields)
		return errors.New(se.Message())
	}
	if errors.Is(err, backend.ErrTransport) {
		e.logger.Debug("transport error", "error", err)
		return errors.New(e.tr.T("app.generic_error"))
	}

	return err
}

// confirm asks a yes/no question on the input stream.
func (e *env) confirm(question string) (bool, error) {
	fmt.Fprintf(e.out, "%s [y/N] ", question)
	line, err := e.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui", "e", "eny":
		return true, nil
	default:
		return false, nil
	}
}

func (e *env) println(key string, args ...any) {
	fmt.Fprintln(e.out, e.tr.T(key, args...))
}
