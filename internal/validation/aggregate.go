package validation

import (
	"github.com/fabrice-guiot/shuttersense-sub002/internal/grouping"
)

// StatusCounts tallies per-image overall statuses, keeping the two
// consistent variants distinct.
type StatusCounts struct {
	Consistent            int `json:"consistent"`
	ConsistentWithWarning int `json:"consistent_with_warning"`
	Partial               int `json:"partial"`
	Inconsistent          int `json:"inconsistent"`
}

// TerminationCounts is the collection-level rollup per termination type. The
// consistent variants merge here for display; they stay separate in
// StatusCounts and in each Result.
type TerminationCounts struct {
	Consistent   int `json:"CONSISTENT"`
	Partial      int `json:"PARTIAL"`
	Inconsistent int `json:"INCONSISTENT"`
}

// Summary is the per-run aggregation of every image's classification.
type Summary struct {
	RunID             string                       `json:"run_id"`
	TotalImages       int                          `json:"total_images"`
	TotalGroups       int                          `json:"total_groups"`
	StatusCounts      StatusCounts                 `json:"status_counts"`
	ByTermination     map[string]TerminationCounts `json:"by_termination"`
	InvalidFilesCount int                          `json:"invalid_files_count"`
	InvalidFiles      []grouping.InvalidFile       `json:"invalid_files"`
	Results           []Result                     `json:"results"`
}

// Summarize folds per-image results into collection-level statistics. It is
// insensitive to result order, so parallel validation can hand results over
// in any arrangement.
func Summarize(runID string, totalGroups int, results []Result, invalid []grouping.InvalidFile) *Summary {
	summary := &Summary{
		RunID:             runID,
		TotalImages:       len(results),
		TotalGroups:       totalGroups,
		ByTermination:     make(map[string]TerminationCounts),
		InvalidFilesCount: len(invalid),
		InvalidFiles:      invalid,
		Results:           results,
	}

	for _, result := range results {
		switch result.OverallStatus {
		case StatusConsistent:
			summary.StatusCounts.Consistent++
		case StatusConsistentWithWarning:
			summary.StatusCounts.ConsistentWithWarning++
		case StatusPartial:
			summary.StatusCounts.Partial++
		case StatusInconsistent:
			summary.StatusCounts.Inconsistent++
		}

		for _, match := range result.TerminationMatches {
			counts := summary.ByTermination[match.TerminationType]
			switch match.Status {
			case StatusConsistent, StatusConsistentWithWarning:
				counts.Consistent++
			case StatusPartial:
				counts.Partial++
			case StatusInconsistent:
				counts.Inconsistent++
			}
			summary.ByTermination[match.TerminationType] = counts
		}
	}
	return summary
}
