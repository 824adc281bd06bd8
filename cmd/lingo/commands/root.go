package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"lingo/internal/app"
	"lingo/internal/domain"
	"lingo/internal/guard"
	sessionsvc "lingo/internal/services/session"
	"lingo/internal/web"
)

// Shown when the API rejects the stored session mid-command.
const expiredNotice = "Session expired. Please log in again with `lingo login`."

var (
	home          string
	configPath    string
	apiURL        string
	passphrase    string
	logLevel      string
	storageKind   string
	verifySession bool

	wire *app.Wire
)

// Execute runs the lingo CLI with os.Args.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, newRoot(), os.Args[1:])
}

func run(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	defer func() {
		if wire != nil {
			_ = wire.Close()
			wire = nil
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "lingo",
		Short:        "Language-learning client: tutor conversations, vocabulary, quizzes and goals",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg.Navigator = web.Navigator{Fallback: commandNavigator(cmd)}

			if wire, err = app.NewWire(cfg); err != nil {
				return err
			}
			if err := wire.Start(cmd.Context()); err != nil {
				return err
			}
			return guard.Command(cmd, wire.Session)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "state directory (default ~/.lingo)")
	pf.StringVar(&configPath, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVar(&apiURL, "api", "", "API base URL (default http://localhost:5130/api)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "encrypt the stored session with this passphrase")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&storageKind, "storage", "", "session storage: file, sqlite or memory")
	pf.BoolVar(&verifySession, "verify-session", false, "check the stored session with the server at startup")

	root.AddCommand(
		loginCmd(), registerCmd(), logoutCmd(), statusCmd(),
		profileCmd(), vocabCmd(), progressCmd(), errorsCmd(),
		goalsCmd(), badgesCmd(), conversationsCmd(), quizCmd(),
		serveCmd(),
	)
	return root
}

// loadConfig layers defaults, the YAML file, LINGO_* variables and flags.
func loadConfig(cmd *cobra.Command) (*app.Config, error) {
	dir := home
	if dir == "" {
		var err error
		if dir, err = app.DefaultHome(); err != nil {
			return nil, err
		}
	}
	path := configPath
	if path == "" {
		path = filepath.Join(dir, "config.yaml")
	}
	cfg, err := app.LoadConfig(path, app.DefaultConfig(dir))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if home != "" {
		cfg.Home = home
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if passphrase != "" {
		cfg.Passphrase = passphrase
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if storageKind != "" {
		cfg.Storage = storageKind
	}
	if verifySession {
		cfg.Session.Policy = sessionsvc.PolicyVerify.String()
	}
	cfg.LogOutput = cmd.ErrOrStderr()
	return cfg, nil
}

// commandNavigator is the navigator for cmd. A rejected login or registration
// is reported as a credentials error, so those commands stay silent.
func commandNavigator(cmd *cobra.Command) domain.Navigator {
	switch cmd.Name() {
	case "login", "register":
		return domain.NavigatorFunc(func(context.Context, domain.Route) {})
	}
	return terminalNavigator(cmd.ErrOrStderr())
}

// terminalNavigator tells the user to sign in again when the API rejects the
// session. Other routes have no terminal counterpart.
func terminalNavigator(w io.Writer) domain.Navigator {
	return domain.NavigatorFunc(func(_ context.Context, route domain.Route) {
		if route == domain.RouteLogin {
			fmt.Fprintln(w, expiredNotice)
		}
	})
}
