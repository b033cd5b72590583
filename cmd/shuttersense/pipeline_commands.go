package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/inventory"
)

func newPipelineCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Manage the pipeline catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newPipelineAddCommand(ctx))
	cmd.AddCommand(newPipelineListCommand(ctx))
	cmd.AddCommand(newPipelineShowCommand(ctx))
	cmd.AddCommand(newPipelineRemoveCommand(ctx))
	return cmd
}

func newPipelineAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <pipeline.json>",
		Short: "Store a pipeline definition in the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			definition, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read pipeline file: %w", err)
			}
			return ctx.withStore(func(store *inventory.Store) error {
				findings, err := store.SavePipeline(cmd.Context(), name, definition)
				if err != nil {
					return err
				}
				if len(findings) > 0 {
					return structuralError(cmd, findings, false)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored pipeline %q\n", name)
				return nil
			})
		},
	}
}

func newPipelineListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *inventory.Store) error {
				pipelines, err := store.ListPipelines(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					names := make([]string, 0, len(pipelines))
					for _, p := range pipelines {
						names = append(names, p.Name)
					}
					return writeJSON(cmd, names)
				}
				if len(pipelines) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty")
					return nil
				}
				for _, p := range pipelines {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t(updated %s)\n", p.Name, p.UpdatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit pipeline names as JSON")
	return cmd
}

func newPipelineShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored pipeline definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *inventory.Store) error {
				stored, err := store.GetPipeline(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(append(stored.Definition, '\n'))
				return err
			})
		},
	}
}

func newPipelineRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a pipeline from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *inventory.Store) error {
				if err := store.DeletePipeline(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed pipeline %q\n", args[0])
				return nil
			})
		},
	}
}
