package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
)

func (c *command) newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Commands for inspecting the effective lingora configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	format := string(config.FormatTOML)
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Validate the configuration and print the effective settings, after the
config file and flags are merged, in config file form.

Examples:
  lingora config show
  lingora config show --canonical en-GB --format yaml`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return &app.UsageError{Err: fmt.Errorf("invalid argument %q for \"--format\" flag: %w", format, err), Usage: cmd.UsageString()}
			}
			return c.runConfigShow(f)
		},
	}
	configShowCmd.Flags().StringVar(&format, "format", format, "output format: toml, yaml or json")

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Validate the config file and flags, and check that every source path exists.

Examples:
  lingora config validate
  lingora config validate -c /path/to/Lingora.toml`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigValidate()
		},
	}

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	return configCmd
}

func (c *command) runConfigShow(format config.Format) error {
	cfg, err := c.resolve()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := cfg.Write(&buf, format); err != nil {
		return &app.ExecutionError{Err: fmt.Errorf("failed to encode configuration: %w", err)}
	}
	if _, err := buf.WriteTo(c.stdout); err != nil {
		return &app.ExecutionError{Err: err}
	}
	return nil
}

func (c *command) runConfigValidate() error {
	cfg, err := c.resolve()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.stdout, "Configuration is valid")
	for _, row := range cfg.Summary() {
		fmt.Fprintf(c.stdout, "  %-15s %s\n", row[0]+":", row[1])
	}
	for _, w := range cfg.Warnings() {
		fmt.Fprintf(c.stdout, "  warning: %s\n", w)
	}
	return nil
}
