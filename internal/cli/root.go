// Package cli provides the non-interactive lingora command.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
	"github.com/kannan/lingora/internal/logger"
	"github.com/kannan/lingora/internal/report"
	"github.com/kannan/lingora/internal/workspace"
)

// options holds everything parsed from the command line for one invocation.
type options struct {
	core    config.Args
	output  report.Format
	verbose bool
	logFile string
}

// command wires a root command to its environment.
type command struct {
	opts    options
	workDir string
	exec    workspace.Executor
	stdout  io.Writer
	stderr  io.Writer
}

// NewRootCommand creates the lingora root command. Relative paths are
// resolved against workDir and exec is invoked once the arguments validate.
func NewRootCommand(workDir string, exec workspace.Executor, stdout, stderr io.Writer) *cobra.Command {
	c := &command{
		opts:    options{output: report.FormatText},
		workDir: workDir,
		exec:    exec,
		stdout:  stdout,
		stderr:  stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "lingora",
		Short: "Lingora - translation file auditor",
		Long: `Lingora audits the Fluent translation files of a project.

It finds every translation file under the configured sources, works out the
locale of each one from its path and checks it against the canonical and
primary locales:
  • Base locales without translation files
  • Locales with no canonical or primary locale to fall back to
  • Translation files that name no locale

Settings are read from ./Lingora.toml when present; flags extend or override it.`,
		Example: `  lingora --canonical en-GB --primaries fr-FR,it-IT
  lingora -c Lingora.toml --output json
  lingora config show --format yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           app.GetVersion(),
		Args:              noArgs,
		PersistentPreRunE: c.initLogger,
		RunE:              c.runAudit,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &app.UsageError{Err: err, Usage: cmd.UsageString()}
	})
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	config.BindFlags(pf, &c.opts.core)
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&c.opts.logFile, "log-file", "", "also write logs to this file")

	rootCmd.Flags().VarP(&c.opts.output, "output", "o", "output format: text, json, yaml or silent")

	rootCmd.AddCommand(c.newVersionCommand())
	rootCmd.AddCommand(c.newConfigCommand())

	return rootCmd
}

// Execute runs lingora with the process arguments and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(int(app.ExitExecutionError))
	}

	code := Run(ctx, os.Args[1:], workDir, workspace.NewScanner(), os.Stdout, os.Stderr)
	stop()
	logger.Close()
	os.Exit(int(code))
}

// Run parses args, runs the command, reports any error on stderr and returns
// the exit code.
func Run(ctx context.Context, args []string, workDir string, exec workspace.Executor, stdout, stderr io.Writer) app.ExitCode {
	rootCmd := NewRootCommand(workDir, exec, stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return app.ExitCodeFor(err)
}

func (c *command) initLogger(cmd *cobra.Command, args []string) error {
	level := "warn"
	if c.opts.verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{
		Path:   c.opts.logFile,
		Level:  level,
		Output: c.stderr,
	}); err != nil {
		fmt.Fprintf(c.stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	return nil
}

// resolve validates the core arguments. Warnings are logged at info level so
// stderr stays empty on success unless --verbose is given.
func (c *command) resolve() (*config.Config, error) {
	cfg, err := config.Resolve(c.workDir, c.opts.core)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		logger.Info(w)
	}
	logger.Debug("configuration resolved",
		"file", cfg.File(),
		"canonical", cfg.Canonical(),
		"primaries", len(cfg.Primaries()))
	return cfg, nil
}

func (c *command) runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := c.resolve()
	if err != nil {
		return err
	}

	res, err := workspace.Run(cmd.Context(), c.exec, cfg)
	if err != nil {
		return err
	}

	// Render fully before writing so a failed encode leaves stdout empty.
	var buf bytes.Buffer
	if err := report.Render(&buf, res, c.opts.output); err != nil {
		return &app.ExecutionError{Err: err}
	}
	if _, err := buf.WriteTo(c.stdout); err != nil {
		return &app.ExecutionError{Err: err}
	}

	if !res.OK() {
		return app.ErrIssuesFound
	}
	return nil
}

func (c *command) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information about Lingora; with --verbose, build details too",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.opts.verbose {
				fmt.Fprintln(c.stdout, app.GetVersionInfo("Lingora"))
			} else {
				fmt.Fprintf(c.stdout, "Lingora v%s\n", app.Version)
			}
			return nil
		},
	}
}

// noArgs rejects positional arguments with a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &app.UsageError{
			Err:   fmt.Errorf("unknown command or argument %q for %q", args[0], cmd.CommandPath()),
			Usage: cmd.UsageString(),
		}
	}
	return nil
}

// printError writes err to w in the form matching its kind.
func printError(w io.Writer, err error) {
	var usageErr *app.UsageError
	var validationErr *config.ValidationError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(w, "Error: %v\n\n", usageErr.Err)
		fmt.Fprint(w, usageErr.Usage)
	case errors.As(err, &validationErr):
		fmt.Fprint(w, validationErr.String())
	case errors.Is(err, app.ErrIssuesFound):
		fmt.Fprintf(w, "%v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
