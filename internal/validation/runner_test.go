package validation_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/files"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/validation"
)

func runnerFixture(t *testing.T) *validation.Runner {
	t.Helper()
	cfg, _ := requiredPairFixture(t)
	return validation.NewRunner(cfg, nil)
}

func collection(names ...string) []files.Info {
	recs := make([]files.Info, 0, len(names))
	for _, name := range names {
		recs = append(recs, files.NewInfo("photos/"+name, 1))
	}
	return recs
}

func TestRunnerRunAggregates(t *testing.T) {
	runner := runnerFixture(t)
	records := collection(
		"AB3D0001.dng", "AB3D0001.xmp",
		"AB3D0002.dng",
		"AB3D0003-2.dng", "AB3D0003.dng", "AB3D0003.xmp",
		"notaphoto.txt",
	)
	summary, err := runner.Run(context.Background(), records, validation.Options{
		Workers:            2,
		MetadataExtensions: []string{".xmp"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.RunID == "" {
		t.Fatal("expected a run id")
	}
	if summary.TotalGroups != 3 {
		t.Fatalf("expected 3 groups, got %d", summary.TotalGroups)
	}
	// AB3D0003 flattens into a base capture and a separate image "2".
	if summary.TotalImages != 4 {
		t.Fatalf("expected 4 images, got %d", summary.TotalImages)
	}
	if summary.InvalidFilesCount != 1 || summary.InvalidFiles[0].Filename != "notaphoto.txt" {
		t.Fatalf("unexpected invalid files: %#v", summary.InvalidFiles)
	}

	want := validation.StatusCounts{Consistent: 2, Partial: 2}
	if diff := cmp.Diff(want, summary.StatusCounts); diff != "" {
		t.Fatalf("status counts mismatch (-want +got):\n%s", diff)
	}
	if summary.ByTermination["archive"].Consistent != 2 || summary.ByTermination["archive"].Partial != 2 {
		t.Fatalf("unexpected by-termination rollup: %+v", summary.ByTermination["archive"])
	}
}

func TestRunnerRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	records := collection(
		"AB3D0001.dng", "AB3D0001.xmp",
		"AB3D0002.dng", "AB3D0002.xmp",
		"AB3D0003.dng",
		"AB3D0004.dng",
	)
	serial, err := runnerFixture(t).Run(context.Background(), records, validation.Options{Workers: 1})
	if err != nil {
		t.Fatalf("serial run failed: %v", err)
	}
	parallel, err := runnerFixture(t).Run(context.Background(), records, validation.Options{Workers: 8})
	if err != nil {
		t.Fatalf("parallel run failed: %v", err)
	}
	if diff := cmp.Diff(serial.StatusCounts, parallel.StatusCounts); diff != "" {
		t.Fatalf("status counts differ by worker count:\n%s", diff)
	}
	if diff := cmp.Diff(serial.Results, parallel.Results, cmp.AllowUnexported(validation.TerminationMatch{})); diff != "" {
		t.Fatalf("results differ by worker count:\n%s", diff)
	}
}

func TestRunnerRunAbandonsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runnerFixture(t).Run(ctx, collection("AB3D0001.dng"), validation.Options{})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestRunnerGraphReport(t *testing.T) {
	nodes := []pipeline.Node{
		capNode(),
		{ID: "raw", Type: pipeline.NodeFile, Extension: ".dng"},
		{ID: "loop", Type: pipeline.NodeProcess, MethodIDs: []string{"BW"}},
		{ID: "tif", Type: pipeline.NodeFile, Extension: ".tif"},
		{ID: "arch", Type: pipeline.NodeTermination, TerminationType: "archive"},
	}
	edges := []pipeline.Edge{
		{From: "cap", To: "raw"},
		{From: "raw", To: "loop"},
		{From: "loop", To: "tif"},
		{From: "tif", To: "loop"},
		{From: "loop", To: "arch"},
	}
	cfg, _ := compileFixture(t, nodes, edges)

	report := validation.NewRunner(cfg, nil).Graph()
	if report.TotalNodes != 5 {
		t.Fatalf("unexpected node count: %d", report.TotalNodes)
	}
	if report.Stats.Truncated == 0 {
		t.Fatalf("expected truncated paths in cyclic graph: %+v", report.Stats)
	}
	if report.Stats.NonTruncatedByTermination["archive"] == 0 {
		t.Fatalf("expected archive paths: %+v", report.Stats)
	}
}

func TestRunnerMetadataWithoutOwnerIsReported(t *testing.T) {
	summary, err := runnerFixture(t).Run(context.Background(),
		collection("AB3D0001.dng", "AB3D0001.xmp", "ZZ990099.xmp"),
		validation.Options{MetadataExtensions: []string{".xmp"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.InvalidFilesCount != 1 {
		t.Fatalf("expected stray sidecar reported, got %#v", summary.InvalidFiles)
	}
	if summary.InvalidFiles[0].Filename != "ZZ990099.xmp" {
		t.Fatalf("unexpected invalid file: %#v", summary.InvalidFiles[0])
	}
}
