package pipeline

// MaxIterations caps how often a single node may recur along one branch
// before enumeration truncates it. Capture and termination nodes are exempt:
// the capture starts every branch and terminations end theirs.
const MaxIterations = 5

// Path is one enumerated route from the capture node towards a termination,
// stored as arena indexes. Truncated marks branches stopped by the revisit
// cap rather than by reaching a termination node.
type Path struct {
	Nodes     []int
	Truncated bool
}

// Termination returns the termination node a path ends on, or nil for
// truncated and dead-ended paths.
func (p Path) Termination(cfg *Config) *Node {
	if p.Truncated || len(p.Nodes) == 0 {
		return nil
	}
	last := cfg.NodeAt(p.Nodes[len(p.Nodes)-1])
	if last.Type != NodeTermination {
		return nil
	}
	return last
}

type pathFrame struct {
	node   int
	trail  []int
	visits map[int]int
}

// EnumeratePaths expands the graph from the capture node into every distinct
// branch. Branching and multi-output nodes fan out into one path per output.
// Traversal uses an explicit work stack so looping pipelines cannot exhaust
// the call stack, and a per-branch visit count bounds cycles: exceeding
// MaxIterations on a node flags the branch truncated and stops it, never
// fails.
func EnumeratePaths(cfg *Config) []Path {
	capture := cfg.Capture()
	if capture == nil {
		return nil
	}
	start, _ := cfg.IndexOf(capture.ID)

	// Loops that dodge the revisit cap entirely (a capture self-edge) are
	// still cut off once a trail cannot contain any legal branch.
	maxTrail := (cfg.Len() + 1) * MaxIterations

	var paths []Path
	stack := []pathFrame{{node: start, trail: []int{start}, visits: map[int]int{}}}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := cfg.NodeAt(frame.node)
		if node.Type == NodeTermination || len(node.Output) == 0 {
			paths = append(paths, Path{Nodes: frame.trail})
			continue
		}
		if len(frame.trail) > maxTrail {
			paths = append(paths, Path{Nodes: frame.trail, Truncated: true})
			continue
		}

		// Push outputs in reverse so the first output is explored first.
		for i := len(node.Output) - 1; i >= 0; i-- {
			next, ok := cfg.IndexOf(node.Output[i])
			if !ok {
				continue
			}
			child := cfg.NodeAt(next)

			visits := frame.visits
			if child.Type != NodeCapture && child.Type != NodeTermination {
				if visits[next]+1 > MaxIterations {
					paths = append(paths, Path{Nodes: cloneTrail(frame.trail), Truncated: true})
					continue
				}
				visits = cloneVisits(frame.visits)
				visits[next]++
			}

			trail := make([]int, len(frame.trail), len(frame.trail)+1)
			copy(trail, frame.trail)
			stack = append(stack, pathFrame{node: next, trail: append(trail, next), visits: visits})
		}
	}
	return paths
}

// PathStats summarizes an enumeration for display-graph mode: total branch
// count, how many were truncated by the cycle cap, and the non-truncated
// count per termination type.
type PathStats struct {
	Total                     int            `json:"total_paths"`
	Truncated                 int            `json:"truncated_paths"`
	NonTruncated              int            `json:"non_truncated_paths"`
	NonTruncatedByTermination map[string]int `json:"non_truncated_by_termination"`
}

// ComputePathStats tabulates enumeration results.
func ComputePathStats(cfg *Config, paths []Path) PathStats {
	stats := PathStats{NonTruncatedByTermination: make(map[string]int)}
	for _, path := range paths {
		stats.Total++
		if path.Truncated {
			stats.Truncated++
			continue
		}
		stats.NonTruncated++
		if term := path.Termination(cfg); term != nil {
			stats.NonTruncatedByTermination[term.TerminationType]++
		}
	}
	return stats
}

func cloneVisits(visits map[int]int) map[int]int {
	cp := make(map[int]int, len(visits)+1)
	for k, v := range visits {
		cp[k] = v
	}
	return cp
}

func cloneTrail(trail []int) []int {
	cp := make([]int, len(trail))
	copy(cp, trail)
	return cp
}
