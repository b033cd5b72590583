package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidateStructure runs every static check against a parsed document and
// returns the findings. Checks are independent and all collected; an empty
// result means the pipeline is structurally sound. Cycles are deliberately
// not a finding, the enumerator bounds them at traversal time.
func ValidateStructure(nodes []Node, edges []Edge) []string {
	var findings []string

	byID := make(map[string]*Node, len(nodes))
	var captures []*Node
	requiredFiles := 0
	terminations := 0
	for i := range nodes {
		node := &nodes[i]
		if _, dup := byID[node.ID]; dup {
			findings = append(findings, fmt.Sprintf("duplicate node id %q", node.ID))
			continue
		}
		byID[node.ID] = node
		switch node.Type {
		case NodeCapture:
			captures = append(captures, node)
		case NodeFile:
			if node.FileRequired() {
				requiredFiles++
			}
		case NodeProcess, NodePairing, NodeBranching:
		case NodeTermination:
			terminations++
		default:
			findings = append(findings, fmt.Sprintf("node %q has unknown type %q", node.ID, node.Type))
		}
	}

	switch len(captures) {
	case 0:
		findings = append(findings, "pipeline is missing a capture node")
	case 1:
		findings = append(findings, validateCaptureProperties(captures[0])...)
	default:
		findings = append(findings, fmt.Sprintf("invalid structure: %d capture nodes, expected exactly one", len(captures)))
	}

	if requiredFiles == 0 {
		findings = append(findings, "pipeline must contain at least one required file node")
	}
	if terminations == 0 {
		findings = append(findings, "pipeline must contain at least one termination node")
	}

	connected := make(map[string]struct{}, len(nodes))
	incoming := make(map[string]int, len(nodes))
	for _, edge := range edges {
		if _, ok := byID[edge.From]; !ok {
			findings = append(findings, fmt.Sprintf("edge references unknown node %q", edge.From))
		} else {
			connected[edge.From] = struct{}{}
		}
		if _, ok := byID[edge.To]; !ok {
			findings = append(findings, fmt.Sprintf("edge references unknown node %q", edge.To))
		} else {
			connected[edge.To] = struct{}{}
			incoming[edge.To]++
		}
	}

	// Orphans only make sense once there are edges at all; a single-node
	// pipeline has nothing to connect. Terminations may legally sit
	// unreferenced in some stored representations.
	if len(edges) > 0 {
		for i := range nodes {
			node := &nodes[i]
			if node.Type == NodeTermination {
				continue
			}
			if _, ok := connected[node.ID]; !ok {
				findings = append(findings, fmt.Sprintf("node %q is not connected to any edge", node.ID))
			}
		}
	}

	for i := range nodes {
		node := &nodes[i]
		if node.Type != NodePairing {
			continue
		}
		want := node.RequiredInputs()
		if got := incoming[node.ID]; got != want {
			findings = append(findings,
				fmt.Sprintf("pairing node %q has %d incoming edges, expected exactly %d", node.ID, got, want))
		}
	}

	return findings
}

// validateCaptureProperties checks the filename-parsing contract carried by
// the capture node: a compilable two-group regex, a sample filename that
// matches it, a camera id group of "1" or "2", and a numeric counter capture
// on the sample.
func validateCaptureProperties(node *Node) []string {
	var findings []string

	if strings.TrimSpace(node.SampleFilename) == "" {
		findings = append(findings, fmt.Sprintf("capture node %q is missing sample_filename", node.ID))
	}
	if strings.TrimSpace(node.FilenameRegex) == "" {
		findings = append(findings, fmt.Sprintf("capture node %q is missing filename_regex", node.ID))
		return findings
	}

	re, err := regexp.Compile(node.FilenameRegex)
	if err != nil {
		findings = append(findings, fmt.Sprintf("capture node %q filename_regex does not compile: %v", node.ID, err))
		return findings
	}
	if re.NumSubexp() != 2 {
		findings = append(findings,
			fmt.Sprintf("capture node %q filename_regex must expose exactly 2 capture groups, has %d", node.ID, re.NumSubexp()))
		return findings
	}

	group := strings.TrimSpace(node.CameraIDGroup)
	if group != "" && group != "1" && group != "2" {
		findings = append(findings, fmt.Sprintf("capture node %q camera_id_group must be \"1\" or \"2\", got %q", node.ID, group))
	}

	sample := strings.TrimSpace(node.SampleFilename)
	if sample == "" {
		return findings
	}
	match := re.FindStringSubmatch(sample)
	if match == nil {
		findings = append(findings, fmt.Sprintf("capture node %q sample_filename does not match filename_regex", node.ID))
		return findings
	}

	counterGroup := 2
	if node.CameraIDGroupValue() == 2 {
		counterGroup = 1
	}
	counter := match[counterGroup]
	if counter == "" || !allDigits(counter) {
		findings = append(findings,
			fmt.Sprintf("capture node %q counter capture group %d must be all numeric, got %q", node.ID, counterGroup, counter))
	}
	return findings
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
