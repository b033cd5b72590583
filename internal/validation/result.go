package validation

// Status is the per-image classification outcome.
type Status string

const (
	StatusConsistent            Status = "CONSISTENT"
	StatusConsistentWithWarning Status = "CONSISTENT_WITH_WARNING"
	StatusPartial               Status = "PARTIAL"
	StatusInconsistent          Status = "INCONSISTENT"
)

// score orders statuses from worst to best for tie-breaking. The two
// consistent variants stay distinct here; only collection-level rollups
// merge them.
func (s Status) score() int {
	switch s {
	case StatusConsistent:
		return 3
	case StatusConsistentWithWarning:
		return 2
	case StatusPartial:
		return 1
	default:
		return 0
	}
}

// TerminationMatch is the outcome for one termination type reachable via
// paths consistent with the image's properties.
type TerminationMatch struct {
	TerminationType string   `json:"termination_type"`
	Status          Status   `json:"status"`
	MatchedFiles    []string `json:"matched_files"`
	MissingFiles    []string `json:"missing_files"`

	// propertiesConsumed carries the tie-break weight of the match's best
	// path so the overall status can be derived without re-ranking.
	propertiesConsumed int
}

// Result is the classification of one specific image.
type Result struct {
	BaseFilename       string             `json:"base_filename"`
	OverallStatus      Status             `json:"overall_status"`
	TerminationMatches []TerminationMatch `json:"termination_matches"`
}
