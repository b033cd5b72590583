package pipeline

// NodeType discriminates the closed set of node kinds. Switches over it are
// exhaustive; an unknown value is a structural-validation finding, never a
// runtime branch.
type NodeType string

const (
	NodeCapture     NodeType = "capture"
	NodeFile        NodeType = "file"
	NodeProcess     NodeType = "process"
	NodePairing     NodeType = "pairing"
	NodeBranching   NodeType = "branching"
	NodeTermination NodeType = "termination"
)

// knownNodeTypes lists every member of the closed set.
var knownNodeTypes = map[NodeType]struct{}{
	NodeCapture:     {},
	NodeFile:        {},
	NodeProcess:     {},
	NodePairing:     {},
	NodeBranching:   {},
	NodeTermination: {},
}

// Node is one vertex of the workflow graph. Output holds the ids of its
// successors in edge order; it is compiled from the document's edge list and
// empty by construction for termination nodes. The remaining fields are
// type-specific payloads, meaningful only for the kind named in the comment.
type Node struct {
	ID     string
	Name   string
	Type   NodeType
	Output []string

	// capture
	SampleFilename string
	FilenameRegex  string
	CameraIDGroup  string

	// file
	Extension      string
	Optional       bool
	RequireSidecar bool

	// process
	MethodIDs []string

	// pairing
	PairingType string
	InputCount  int

	// branching
	ConditionDescription string

	// termination
	TerminationType string
}

// FileRequired reports whether a missing file for this file node degrades an
// image to partial rather than merely warning. Optional file nodes (typically
// sidecars) only warn, unless the pipeline author pinned them down with
// require_sidecar.
func (n *Node) FileRequired() bool {
	return !n.Optional || n.RequireSidecar
}

// MatchesMethod reports whether any of the node's method ids appears in the
// given property list.
func (n *Node) MatchesMethod(properties []string) bool {
	for _, id := range n.MethodIDs {
		for _, p := range properties {
			if id == p {
				return true
			}
		}
	}
	return false
}

// pairingFanIn is the incoming-edge count a pairing node requires when its
// definition does not set input_count.
const pairingFanIn = 2

// RequiredInputs returns the incoming-edge count the structural validator
// enforces for a pairing node.
func (n *Node) RequiredInputs() int {
	if n.InputCount > 0 {
		return n.InputCount
	}
	return pairingFanIn
}
