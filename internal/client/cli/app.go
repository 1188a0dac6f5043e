package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/dmitrijs2005/voltdrive/internal/client/config"
	"github.com/dmitrijs2005/voltdrive/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/voltdrive/internal/client/session"
	"github.com/dmitrijs2005/voltdrive/internal/logging"
)

type App struct {
	config  *config.Config
	api     client.Client
	session *session.Session
	db      *sql.DB
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	var sess *session.Session
	api := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout,
		client.TokenSourceFunc(func() string { return sess.Token() }))
	sess = session.New(api, session.NewStore(metadata.NewSQLiteRepository(db)), logger)

	return &App{
		config:  c,
		api:     api,
		session: sess,
		db:      db,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the stored session and blocks in the REPL until the user
// exits, stdin closes or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	if err := a.session.Bootstrap(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err.Error())
	}

	fmt.Fprintln(a.out, "Welcome to VoltDrive CLI (type 'help' for commands)")
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", u.Name, u.Email)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// lastError is the message left by the most recent failed register or login.
func (a *App) lastError() string {
	return a.session.LastError()
}

func (a *App) status() string {
	st := a.session.State()
	switch {
	case st.IsLoading:
		return "(loading)"
	case st.User == nil || st.Token == "":
		return ""
	}
	return fmt.Sprintf("(%s %s)", st.User.Email, st.User.Role)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}
