package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/validation"
)

func newGraphCommand(ctx *commandContext) *cobra.Command {
	var (
		pipelineFile string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "graph [pipeline]",
		Short: "Show path statistics for a pipeline without validating files",
		Long: `Graph runs structural validation and path enumeration for a pipeline and
reports how many processing paths exist, how many were truncated by the
cycle cap, and how completed paths distribute over termination types.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			if pipelineFile == "" && name == "" {
				return fmt.Errorf("pass a pipeline name or --pipeline-file")
			}

			definition, err := loadDefinition(cmd.Context(), ctx, pipelineFile, name)
			if err != nil {
				return err
			}
			engine, findings, err := pipeline.Load(definition)
			if err != nil {
				return err
			}
			if len(findings) > 0 {
				return structuralError(cmd, findings, jsonOutput)
			}

			report := validation.NewRunner(engine, ctx.ensureLogger()).Graph()
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), newRenderer().Graph(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&pipelineFile, "pipeline-file", "", "Load the pipeline from a JSON file instead of the catalog")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the statistics as JSON")
	return cmd
}
