package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/app"
	"github.com/idilsaglam/todolist/internal/binding"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logger"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks failures caused by how the command was called.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	theme      string
	logLevel   string
	logFile    string
}

// Execute runs the todo command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	}
	return exitError
}

// NewRootCommand builds the todo command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var rf rootFlags

	root := &cobra.Command{
		Use:   "todo",
		Short: "A tiny to-do list",
		Long: `todo shows an in-memory to-do list in the terminal.

Keys: a add, space toggle, x remove done, q quit.
Nothing is saved between runs.`,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd, rf)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), cfg, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "YAML config file")
	pf.StringVar(&rf.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&rf.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&rf.logFile, "log-file", "", "write logs to this file")

	root.AddCommand(newListCommand(&rf, stdout, stderr))
	return root
}

// loadSettings layers flags over file and environment configuration.
func loadSettings(cmd *cobra.Command, rf rootFlags) (config.Config, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = rf.theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rf.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = rf.logFile
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageError{err}
	}
	ui.SetTheme(cfg.Theme)
	return cfg, nil
}

// compile builds the view definition, printing any diagnostics.
func compile(cfg config.Config, stderr io.Writer) (*tui.Definition, error) {
	var (
		def   *tui.Definition
		diags []tui.Diagnostic
	)
	if cfg.UI.File != "" {
		def, diags = tui.CompileFile(cfg.UI.File)
	} else {
		def, diags = tui.Compile(tui.DefaultDescription())
	}
	tui.PrintDiagnostics(stderr, diags)
	if def == nil {
		return nil, errors.New("ui description has errors")
	}
	return def, nil
}

func runInteractive(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, closer, err := logger.OpenFile(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	def, err := compile(cfg, stderr)
	if err != nil {
		return err
	}

	list := model.NewList(model.Seed()...)
	h := app.NewHandlers(list, app.Options{RejectEmpty: cfg.Todo.RejectEmpty}, log)

	inst := def.Create(log)
	defer inst.Close()
	if err := app.Bind(inst, h); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log.Info().Str("component", "cli").Int("items", list.Len()).Msg("starting view")
	if err := inst.Run(ctx); err != nil {
		return err
	}
	log.Info().Str("component", "cli").Int("items", list.Len()).Msg("view closed")
	return nil
}

// newHeadless binds h to an instance without a view.
func newHeadless(h *app.Handlers) (*binding.Headless, error) {
	inst := binding.NewHeadless(app.Callbacks, app.Properties)
	if err := app.Bind(inst, h); err != nil {
		return nil, err
	}
	return inst, nil
}
