package inventory

import "time"

// Pipeline is one stored workflow definition. Definition holds the raw JSON
// blob the engine parses.
type Pipeline struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Definition []byte    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Run records the collection-level outcome of one validation run.
type Run struct {
	ID                    int64     `json:"id"`
	RunID                 string    `json:"run_id"`
	PipelineName          string    `json:"pipeline_name"`
	CollectionRoot        string    `json:"collection_root"`
	TotalImages           int       `json:"total_images"`
	TotalGroups           int       `json:"total_groups"`
	Consistent            int       `json:"consistent"`
	ConsistentWithWarning int       `json:"consistent_with_warning"`
	Partial               int       `json:"partial"`
	Inconsistent          int       `json:"inconsistent"`
	InvalidFiles          int       `json:"invalid_files"`
	CreatedAt             time.Time `json:"created_at"`
}
