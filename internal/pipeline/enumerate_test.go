package pipeline_test

import (
	"testing"

	"github.com/fabrice-guiot/shuttersense-sub002/internal/pipeline"
)

func compile(t *testing.T, nodes []pipeline.Node, edges []pipeline.Edge) *pipeline.Config {
	t.Helper()
	if findings := pipeline.ValidateStructure(nodes, edges); len(findings) != 0 {
		t.Fatalf("fixture pipeline invalid: %v", findings)
	}
	cfg, err := pipeline.Compile(pipeline.Document{Nodes: nodes, Edges: edges})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return cfg
}

func pathIDs(cfg *pipeline.Config, p pipeline.Path) []string {
	ids := make([]string, 0, len(p.Nodes))
	for _, i := range p.Nodes {
		ids = append(ids, cfg.NodeAt(i).ID)
	}
	return ids
}

func TestEnumeratePathsLinear(t *testing.T) {
	cfg := compile(t,
		[]pipeline.Node{
			captureNode("cap"),
			fileNode("raw", ".dng"),
			terminationNode("arch", "archive"),
		},
		[]pipeline.Edge{edge("cap", "raw"), edge("raw", "arch")},
	)
	paths := pipeline.EnumeratePaths(cfg)
	if len(paths) != 1 {
		t.Fatalf("expected one path, got %d", len(paths))
	}
	got := pathIDs(cfg, paths[0])
	want := []string{"cap", "raw", "arch"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected path %v", got)
		}
	}
	if paths[0].Truncated {
		t.Fatal("linear path must not be truncated")
	}
	if term := paths[0].Termination(cfg); term == nil || term.TerminationType != "archive" {
		t.Fatalf("unexpected termination: %#v", term)
	}
}

func TestEnumeratePathsBranchingFansOut(t *testing.T) {
	cfg := compile(t,
		[]pipeline.Node{
			captureNode("cap"),
			fileNode("raw", ".dng"),
			{ID: "fork", Type: pipeline.NodeBranching, ConditionDescription: "keep or edit"},
			fileNode("jpg", ".jpg"),
			terminationNode("arch", "archive"),
			terminationNode("share", "shared"),
		},
		[]pipeline.Edge{
			edge("cap", "raw"),
			edge("raw", "fork"),
			edge("fork", "arch"),
			edge("fork", "jpg"),
			edge("jpg", "share"),
		},
	)
	paths := pipeline.EnumeratePaths(cfg)
	if len(paths) != 2 {
		t.Fatalf("expected two paths, got %d", len(paths))
	}

	stats := pipeline.ComputePathStats(cfg, paths)
	if stats.Total != 2 || stats.Truncated != 0 || stats.NonTruncated != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.NonTruncatedByTermination["archive"] != 1 || stats.NonTruncatedByTermination["shared"] != 1 {
		t.Fatalf("unexpected termination tabulation: %+v", stats.NonTruncatedByTermination)
	}
}

func TestEnumeratePathsBoundsCycles(t *testing.T) {
	// process -> file -> process cycle with an exit to termination.
	cfg := compile(t,
		[]pipeline.Node{
			captureNode("cap"),
			fileNode("raw", ".dng"),
			{ID: "edit", Type: pipeline.NodeProcess, MethodIDs: []string{"HDR"}},
			fileNode("tif", ".tif"),
			terminationNode("arch", "archive"),
		},
		[]pipeline.Edge{
			edge("cap", "raw"),
			edge("raw", "edit"),
			edge("edit", "tif"),
			edge("tif", "edit"), // cycle back
			edge("edit", "arch"),
		},
	)
	paths := pipeline.EnumeratePaths(cfg)
	if len(paths) == 0 {
		t.Fatal("cycle must still produce a finite, non-empty path set")
	}

	stats := pipeline.ComputePathStats(cfg, paths)
	if stats.Truncated == 0 {
		t.Fatalf("expected at least one truncated path, stats: %+v", stats)
	}
	if stats.NonTruncated == 0 {
		t.Fatalf("expected the exit branch to complete, stats: %+v", stats)
	}

	// No node other than capture/termination may appear more than the cap
	// allows on any single path.
	for _, p := range paths {
		counts := map[string]int{}
		for _, id := range pathIDs(cfg, p) {
			counts[id]++
		}
		for id, n := range counts {
			node, _ := cfg.NodeByID(id)
			if node.Type == pipeline.NodeCapture || node.Type == pipeline.NodeTermination {
				continue
			}
			if n > pipeline.MaxIterations {
				t.Fatalf("node %s visited %d times on one path", id, n)
			}
		}
	}
}

func TestEnumeratePathsDeadEndIsNotTruncated(t *testing.T) {
	cfg := compile(t,
		[]pipeline.Node{
			captureNode("cap"),
			fileNode("raw", ".dng"),
			fileNode("jpg", ".jpg"),
			terminationNode("arch", "archive"),
		},
		[]pipeline.Edge{
			edge("cap", "raw"),
			edge("raw", "arch"),
			edge("raw", "jpg"), // jpg has no outputs and is not a termination
		},
	)
	paths := pipeline.EnumeratePaths(cfg)
	if len(paths) != 2 {
		t.Fatalf("expected two paths, got %d", len(paths))
	}
	stats := pipeline.ComputePathStats(cfg, paths)
	if stats.Truncated != 0 {
		t.Fatalf("dead ends are not truncations: %+v", stats)
	}
	if stats.NonTruncatedByTermination["archive"] != 1 {
		t.Fatalf("expected one archive path: %+v", stats.NonTruncatedByTermination)
	}
	if total := stats.NonTruncated; total != 2 {
		t.Fatalf("dead-end branch still counts as a path: %+v", stats)
	}
}
