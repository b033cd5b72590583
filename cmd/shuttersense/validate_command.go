package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/inventory"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/validation"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		pipelineFile string
		workers      int
		jsonOutput   bool
		showResults  bool
		noRecord     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [pipeline] <collection-dir>",
		Short: "Validate a photo collection against a pipeline",
		Long: `Validate scans a collection directory, groups its files into images, and
classifies each image against the pipeline's enumerated processing paths.

The pipeline comes from the catalog by name, or from a JSON file via
--pipeline-file.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var (
				pipelineName string
				root         string
			)
			if pipelineFile != "" {
				if len(args) != 1 {
					return errors.New("with --pipeline-file, pass only the collection directory")
				}
				pipelineName = pipelineFile
				root = args[0]
			} else {
				if len(args) != 2 {
					return errors.New("pass a pipeline name and a collection directory (or use --pipeline-file)")
				}
				pipelineName = args[0]
				root = args[1]
			}

			definition, err := loadDefinition(cmd.Context(), ctx, pipelineFile, pipelineName)
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

			records, err := files.Scan(root)
			if err != nil {
				return err
			}

			runner := validation.NewRunner(engine, ctx.ensureLogger())
			opts := validation.Options{
				Workers:            cfg.Validation.Workers,
				MetadataExtensions: cfg.Validation.MetadataExtensions,
			}
			if workers > 0 {
				opts.Workers = workers
			}
			summary, err := runner.Run(cmd.Context(), records, opts)
			if err != nil {
				return err
			}

			if !noRecord && pipelineFile == "" {
				if err := ctx.withStore(func(store *inventory.Store) error {
					return store.RecordRun(cmd.Context(), pipelineName, root, summary)
				}); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: run not recorded: %v\n", err)
				}
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			renderer := newRenderer()
			fmt.Fprintln(cmd.OutOrStdout(), renderer.Summary(summary))
			if showResults {
				fmt.Fprintln(cmd.OutOrStdout(), renderer.Results(summary.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pipelineFile, "pipeline-file", "", "Load the pipeline from a JSON file instead of the catalog")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent image validations (overrides config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full summary as JSON")
	cmd.Flags().BoolVar(&showResults, "results", false, "List every image's classification")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Skip recording the run in the catalog")
	return cmd
}

// loadDefinition resolves the pipeline JSON from a file path or the catalog.
func loadDefinition(cmdCtx context.Context, ctx *commandContext, pipelineFile, name string) ([]byte, error) {
	if pipelineFile != "" {
		data, err := os.ReadFile(pipelineFile)
		if err != nil {
			return nil, fmt.Errorf("read pipeline file: %w", err)
		}
		return data, nil
	}

	var definition []byte
	err := ctx.withStore(func(store *inventory.Store) error {
		stored, err := store.GetPipeline(cmdCtx, name)
		if err != nil {
			return err
		}
		definition = stored.Definition
		return nil
	})
	return definition, err
}

func structuralError(cmd *cobra.Command, findings []string, jsonOutput bool) error {
	if jsonOutput {
		if err := writeJSON(cmd, map[string]any{"structural_errors": findings}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "pipeline failed structural validation:")
		for _, finding := range findings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", finding)
		}
	}
	return fmt.Errorf("pipeline failed structural validation (%d findings)", len(findings))
}
