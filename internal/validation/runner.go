package validation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/grouping"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/logging"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
)

// Options tunes a validation run.
type Options struct {
	// Workers caps concurrent image validation; zero means GOMAXPROCS.
	Workers int
	// MetadataExtensions lists sidecar extensions split off before grouping
	// and attached to images by stem afterwards.
	MetadataExtensions []string
}

// Runner drives validation runs against one compiled pipeline. Paths are
// enumerated once at construction and reused across runs; they are
// independent of any file collection.
type Runner struct {
	cfg    *pipeline.Config
	paths  []pipeline.Path
	logger *slog.Logger
}

// NewRunner enumerates the pipeline's paths and returns a reusable runner.
func NewRunner(cfg *pipeline.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, paths: pipeline.EnumeratePaths(cfg), logger: logger}
}

// Paths exposes the cached enumeration.
func (r *Runner) Paths() []pipeline.Path { return r.paths }

// GraphReport carries the display-graph statistics produced when no file
// collection is supplied.
type GraphReport struct {
	TotalNodes int                `json:"total_nodes"`
	Stats      pipeline.PathStats `json:"path_stats"`
}

// Graph computes path statistics without validating any images.
func (r *Runner) Graph() GraphReport {
	return GraphReport{
		TotalNodes: r.cfg.Len(),
		Stats:      pipeline.ComputePathStats(r.cfg, r.paths),
	}
}

// Run groups the file records, flattens them into specific images, and
// validates every image against the cached path set. Images are validated in
// parallel; a context cancellation abandons the run and discards partial
// counts rather than reporting them.
func (r *Runner) Run(ctx context.Context, records []files.Info, opts Options) (*Summary, error) {
	capture := r.cfg.Capture()
	if capture == nil {
		return nil, fmt.Errorf("run validation: pipeline has no capture node")
	}

	sidecars, imageRecords := files.Split(records, opts.MetadataExtensions)
	groups, invalid := grouping.BuildImageGroups(imageRecords, capture.FilenameRegex, capture.CameraIDGroupValue())
	images := grouping.Flatten(groups)
	for _, stray := range grouping.AttachMetadata(images, sidecars) {
		invalid = append(invalid, grouping.InvalidFile{
			Filename: stray.Name,
			Path:     stray.Path,
			Reason:   "metadata file matches no image in the collection",
		})
	}

	runID := uuid.NewString()
	r.logger.Info("validation run started",
		logging.String("run_id", runID),
		logging.Int("groups", len(groups)),
		logging.Int("images", len(images)),
		logging.Int("invalid_files", len(invalid)))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(images))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := range images {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = ValidateSpecificImage(images[i], r.cfg, r.paths)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run validation: %w", err)
	}

	summary := Summarize(runID, len(groups), results, invalid)
	r.logger.Info("validation run finished",
		logging.String("run_id", runID),
		logging.Int("consistent", summary.StatusCounts.Consistent),
		logging.Int("consistent_with_warning", summary.StatusCounts.ConsistentWithWarning),
		logging.Int("partial", summary.StatusCounts.Partial),
		logging.Int("inconsistent", summary.StatusCounts.Inconsistent))
	return summary, nil
}
