package pipeline

import (
	"fmt"
)

// Config is the compiled runtime form of a pipeline: an arena of nodes with
// output lists populated from the document's edges, an id→index map, and one
// index list per node kind for O(1) typed access.
type Config struct {
	nodes []Node
	index map[string]int

	captures     []int
	files        []int
	processes    []int
	pairings     []int
	branchings   []int
	terminations []int
}

// Compile builds a Config from a parsed document. It expects the document to
// have passed ValidateStructure; the only errors it reports itself are edge
// references that cannot be resolved, which a validated document never has.
func Compile(doc Document) (*Config, error) {
	cfg := &Config{
		nodes: make([]Node, len(doc.Nodes)),
		index: make(map[string]int, len(doc.Nodes)),
	}
	copy(cfg.nodes, doc.Nodes)

	for i := range cfg.nodes {
		node := &cfg.nodes[i]
		node.Output = nil
		cfg.index[node.ID] = i
		switch node.Type {
		case NodeCapture:
			cfg.captures = append(cfg.captures, i)
		case NodeFile:
			cfg.files = append(cfg.files, i)
		case NodeProcess:
			cfg.processes = append(cfg.processes, i)
		case NodePairing:
			cfg.pairings = append(cfg.pairings, i)
		case NodeBranching:
			cfg.branchings = append(cfg.branchings, i)
		case NodeTermination:
			cfg.terminations = append(cfg.terminations, i)
		}
	}

	for _, edge := range doc.Edges {
		from, ok := cfg.index[edge.From]
		if !ok {
			return nil, fmt.Errorf("compile pipeline: edge from unknown node %q", edge.From)
		}
		if _, ok := cfg.index[edge.To]; !ok {
			return nil, fmt.Errorf("compile pipeline: edge to unknown node %q", edge.To)
		}
		if cfg.nodes[from].Type == NodeTermination {
			return nil, fmt.Errorf("compile pipeline: termination node %q has an outgoing edge", edge.From)
		}
		cfg.nodes[from].Output = append(cfg.nodes[from].Output, edge.To)
	}
	return cfg, nil
}

// Load parses, validates, and compiles a pipeline JSON blob in one step.
// Structural findings come back as the string slice; the error covers
// syntactic and compile failures only.
func Load(data []byte) (*Config, []string, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, nil, err
	}
	if findings := ValidateStructure(doc.Nodes, doc.Edges); len(findings) > 0 {
		return nil, findings, nil
	}
	cfg, err := Compile(doc)
	if err != nil {
		return nil, nil, err
	}
	return cfg, nil, nil
}

// Len returns the number of nodes in the arena.
func (c *Config) Len() int { return len(c.nodes) }

// NodeAt returns the node stored at the given arena index.
func (c *Config) NodeAt(i int) *Node { return &c.nodes[i] }

// NodeByID resolves a node id to its arena node.
func (c *Config) NodeByID(id string) (*Node, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.nodes[i], true
}

// IndexOf resolves a node id to its arena index.
func (c *Config) IndexOf(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Capture returns the single capture node. Structural validation guarantees
// exactly one exists by the time a Config is built.
func (c *Config) Capture() *Node {
	if len(c.captures) == 0 {
		return nil
	}
	return &c.nodes[c.captures[0]]
}

// Terminations returns the termination nodes in arena order.
func (c *Config) Terminations() []*Node {
	out := make([]*Node, 0, len(c.terminations))
	for _, i := range c.terminations {
		out = append(out, &c.nodes[i])
	}
	return out
}

// FileNodes returns the file nodes in arena order.
func (c *Config) FileNodes() []*Node {
	out := make([]*Node, 0, len(c.files))
	for _, i := range c.files {
		out = append(out, &c.nodes[i])
	}
	return out
}

// ProcessNodes returns the process nodes in arena order.
func (c *Config) ProcessNodes() []*Node {
	out := make([]*Node, 0, len(c.processes))
	for _, i := range c.processes {
		out = append(out, &c.nodes[i])
	}
	return out
}

// PairingNodes returns the pairing nodes in arena order.
func (c *Config) PairingNodes() []*Node {
	out := make([]*Node, 0, len(c.pairings))
	for _, i := range c.pairings {
		out = append(out, &c.nodes[i])
	}
	return out
}

// BranchingNodes returns the branching nodes in arena order.
func (c *Config) BranchingNodes() []*Node {
	out := make([]*Node, 0, len(c.branchings))
	for _, i := range c.branchings {
		out = append(out, &c.nodes[i])
	}
	return out
}
