package report_test

import (
	"strings"
	"testing"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/grouping"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/report"
	"github.com/fabrice-guiot/shuttersense-sub002/internal/validation"
)

func TestTerminationLabel(t *testing.T) {
	if got := report.TerminationLabel("archive-ready"); got != "Archive-Ready" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := report.TerminationLabel(""); got != "(none)" {
		t.Fatalf("unexpected empty label: %q", got)
	}
}

func TestSummaryRendersCountsAndInvalidFiles(t *testing.T) {
	summary := &validation.Summary{
		RunID:       "run-1",
		TotalImages: 3,
		TotalGroups: 2,
		StatusCounts: validation.StatusCounts{
			Consistent: 1, ConsistentWithWarning: 1, Partial: 1,
		},
		ByTermination: map[string]validation.TerminationCounts{
			"archive-ready": {Consistent: 2, Partial: 1},
		},
		InvalidFilesCount: 1,
		InvalidFiles: []grouping.InvalidFile{
			{Filename: "oops.txt", Path: "photos/oops.txt", Reason: "does not match expected filename format"},
		},
	}

	out := report.Renderer{Plain: true}.Summary(summary)
	for _, want := range []string{"Archive-Ready", "oops.txt", "Invalid File", "does not match"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphRendersPathStats(t *testing.T) {
	rep := validation.GraphReport{
		TotalNodes: 5,
		Stats: pipeline.PathStats{
			Total:        7,
			Truncated:    2,
			NonTruncated: 5,
			NonTruncatedByTermination: map[string]int{
				"archive": 3,
				"print":   2,
			},
		},
	}
	out := report.Renderer{Plain: true}.Graph(rep)
	for _, want := range []string{"Total Paths", "Truncated", "Archive", "Print"} {
		if !strings.Contains(out, want) {
			t.Fatalf("graph output missing %q:\n%s", want, out)
		}
	}
}

func TestResultsListsEachImage(t *testing.T) {
	results := []validation.Result{
		{
			BaseFilename:  "AB3D0001",
			OverallStatus: validation.StatusConsistent,
			TerminationMatches: []validation.TerminationMatch{
				{TerminationType: "archive", Status: validation.StatusConsistent},
			},
		},
		{BaseFilename: "AB3D0002", OverallStatus: validation.StatusPartial},
	}
	out := report.Renderer{Plain: true}.Results(results)
	for _, want := range []string{"AB3D0001", "AB3D0002", "CONSISTENT", "PARTIAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("results output missing %q:\n%s", want, out)
		}
	}
}
