package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand(ctx))
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = *ctx.configFlag
			}
			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"path":   resolved,
					"exists": exists,
					"config": cfg,
				})
			}
			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "config file: %s\n", resolved)
			} else {
				fmt.Fprintf(out, "config file: %s (not found, using defaults)\n", resolved)
			}
			fmt.Fprintf(out, "database_dir:        %s\n", cfg.Paths.DatabaseDir)
			fmt.Fprintf(out, "log_dir:             %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "log level:           %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "log format:          %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "workers:             %d\n", cfg.Validation.Workers)
			fmt.Fprintf(out, "metadata_extensions: %v\n", cfg.Validation.MetadataExtensions)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the configuration as JSON")
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if ctx.configFlag != nil && *ctx.configFlag != "" {
				path = config.ExpandPath(*ctx.configFlag)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.Sample()), 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote sample configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
