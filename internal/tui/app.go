package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
	"github.com/kannan/lingora/internal/logger"
	"github.com/kannan/lingora/internal/workspace"
)

// session runs a validated configuration until the user exits. It is
// replaced in tests so the command can be exercised without a terminal.
type session func(ctx context.Context, m Model, stdin io.Reader, stdout io.Writer) error

// NewCommand creates the lingora-tui root command.
func NewCommand(workDir string, exec workspace.Executor, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return newCommand(workDir, exec, stdin, stdout, stderr, runProgram)
}

func newCommand(workDir string, exec workspace.Executor, stdin io.Reader, stdout, stderr io.Writer, run session) *cobra.Command {
	args := DefaultArgs()

	cmd := &cobra.Command{
		Use:   "lingora-tui",
		Short: "Lingora - interactive translation file auditor",
		Long: `Interactive lingora session.

Runs the audit once at startup and keeps the result on screen. Press ':' to
change the configuration with the same flags the command accepts, 'r' to run
again, 'tab' to switch screens and 'q' to quit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.GetVersion(),
		Args: func(cmd *cobra.Command, posArgs []string) error {
			if len(posArgs) > 0 {
				return &app.UsageError{
					Err:   fmt.Errorf("unexpected argument %q", posArgs[0]),
					Usage: cmd.UsageString(),
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if args.Verbose {
				level = "debug"
			}
			if err := logger.Init(logger.Config{Path: args.LogFile, Level: level}); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to initialize logger: %v\n", err)
			}

			cfg, err := resolveArgs(workDir, args)
			if err != nil {
				return err
			}
			for _, w := range cfg.Warnings() {
				logger.Warn(w)
			}

			args.Color.Apply()
			m := New(cmd.Context(), workDir, exec, args, cfg)
			if err := run(cmd.Context(), m, stdin, stdout); err != nil {
				return &app.ExecutionError{Err: err}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &app.UsageError{Err: err, Usage: c.UsageString()}
	})
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	bindFlags(cmd.Flags(), &args)

	return cmd
}

// runProgram runs the bubbletea program for m.
func runProgram(ctx context.Context, m Model, stdin io.Reader, stdout io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.shutdown()
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("session interrupted: %w", err)
	}
	return err
}

// Run parses args, runs the session and returns the exit code. Errors that
// stop the session from starting are written to stderr.
func Run(ctx context.Context, args []string, workDir string, exec workspace.Executor, stdin io.Reader, stdout, stderr io.Writer) app.ExitCode {
	return run(ctx, NewCommand(workDir, exec, stdin, stdout, stderr), args, stderr)
}

func run(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) app.ExitCode {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return app.ExitCodeFor(err)
}

// Execute runs lingora-tui with the process arguments and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(int(app.ExitExecutionError))
	}

	code := Run(ctx, os.Args[1:], workDir, workspace.NewScanner(), os.Stdin, os.Stdout, os.Stderr)
	stop()
	logger.Close()
	os.Exit(int(code))
}

func printError(w io.Writer, err error) {
	var usageErr *app.UsageError
	var validationErr *config.ValidationError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(w, "Error: %v\n\n", usageErr.Err)
		fmt.Fprint(w, usageErr.Usage)
	case errors.As(err, &validationErr):
		fmt.Fprint(w, validationErr.String())
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
