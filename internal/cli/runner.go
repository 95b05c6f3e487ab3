package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/items/internal/api"
	"github.com/idilsaglam/items/internal/config"
	"github.com/idilsaglam/items/internal/logging"
	"github.com/idilsaglam/items/internal/shell"
	"github.com/idilsaglam/items/internal/ui"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// exitError carries an exit code: 1 for failures, 2 for usage errors.
// reported is true when the message was already printed.
type exitError struct {
	code     int
	msg      string
	reported bool
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

func usageErr(msg string) error { return &exitError{code: 2, msg: msg} }

func failed(msg string) error { return &exitError{code: 1, msg: msg, reported: true} }

// runner holds what every subcommand needs once flags are parsed.
type runner struct {
	cfgFile string
	cfg     *config.Config
}

// Run executes the CLI with args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.reported {
			ui.Fail(stderr, ee.msg)
		}
		return ee.code
	}
	// cobra's own argument and flag errors
	ui.Fail(stderr, err.Error())
	fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `items --help` for usage."))
	return 2
}

func NewRootCmd() *cobra.Command {
	r := &runner{}

	root := &cobra.Command{
		Use:   "items",
		Short: "items - manage items on a remote items API",
		Long: `items - manage items on a remote items API

Without a subcommand it opens the interactive manager.

Configuration is read once at startup from ~/.items/config.{yaml,toml,json}
(or --config), ITEMS_* environment variables and flags:

  ITEMS_API_URL     base URL of the items resource
  ITEMS_API_TOKEN   static bearer token`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(r.cfgFile, cmd.Flags())
			if err != nil {
				return &exitError{code: 1, msg: "config: " + err.Error()}
			}
			r.cfg = cfg
			ui.SetTheme(cfg.Theme)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&r.cfgFile, "config", "", "config file (default ~/.items/config.{yaml,toml,json})")
	pf.String("api-url", "", "base URL of the items API")
	pf.String("token", "", "static bearer token")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "log file for the interactive manager (default ~/.items/items.log)")
	pf.String("theme", "", "color theme: classic, neon or mono")

	root.AddCommand(
		r.tuiCmd(),
		r.lsCmd(),
		r.addCmd(),
		r.editCmd(),
		r.rmCmd(),
		r.exportCmd(),
		r.importCmd(),
		r.serveCmd(),
		versionCmd(),
	)
	return root
}

// consoleLogger is used by one-shot commands; diagnostics go to stderr.
func (r *runner) consoleLogger(cmd *cobra.Command) zerolog.Logger {
	return logging.Console(r.cfg.LogLevel, cmd.ErrOrStderr())
}

// newShell builds the API client and the shell around it.
func (r *runner) newShell(logger zerolog.Logger) (*shell.Shell, error) {
	if err := r.cfg.RequireAPI(); err != nil {
		return nil, &exitError{code: 1, msg: err.Error()}
	}
	return shell.New(api.New(r.cfg.APIURL, r.cfg.Token), logger), nil
}

func (r *runner) logFile() (string, error) {
	if r.cfg.LogFile != "" {
		return r.cfg.LogFile, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "items.log"), nil
}

// reportBanner prints the shell's banner, if any, and turns it into exit 1.
func reportBanner(cmd *cobra.Command, s *shell.Shell) error {
	if msg := s.Error(); msg != "" {
		ui.Fail(cmd.ErrOrStderr(), msg)
		return failed(msg)
	}
	return nil
}
