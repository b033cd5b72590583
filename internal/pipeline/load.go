package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the external JSON representation of a pipeline: a node list
// plus an explicit edge list. Compile turns it into the runtime Config with
// per-node output lists.
type Document struct {
	Nodes []Node
	Edges []Edge
}

// Edge is one directed connection. Both the current {from,to} spelling and
// the legacy {from_node,to_node} spelling are accepted on input.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var raw struct {
		From       string `json:"from"`
		To         string `json:"to"`
		FromLegacy string `json:"from_node"`
		ToLegacy   string `json:"to_node"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.From = raw.From
	if e.From == "" {
		e.From = raw.FromLegacy
	}
	e.To = raw.To
	if e.To == "" {
		e.To = raw.ToLegacy
	}
	return nil
}

type rawNode struct {
	ID         string          `json:"id"`
	Type       NodeType        `json:"type"`
	Name       string          `json:"name"`
	Properties json.RawMessage `json:"properties"`
}

type rawProperties struct {
	Name                 string      `json:"name"`
	SampleFilename       string      `json:"sample_filename"`
	FilenameRegex        string      `json:"filename_regex"`
	CameraIDGroup        flexString  `json:"camera_id_group"`
	Extension            string      `json:"extension"`
	Optional             bool        `json:"optional"`
	RequireSidecar       bool        `json:"require_sidecar"`
	MethodIDs            flexStrings `json:"method_ids"`
	PairingType          string      `json:"pairing_type"`
	InputCount           int         `json:"input_count"`
	ConditionDescription string      `json:"condition_description"`
	TerminationType      string      `json:"termination_type"`
}

// flexString accepts either a JSON string or a number, normalizing to the
// string spelling. camera_id_group appears both ways in stored pipelines.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexStrings accepts a JSON array of strings or a single string holding a
// comma-separated list.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var list []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	*f = list
	return nil
}

// ParseDocument decodes the pipeline JSON blob. It only reports syntactic
// problems; structural findings are the validator's job.
func ParseDocument(data []byte) (Document, error) {
	var raw struct {
		Nodes []rawNode `json:"nodes"`
		Edges []Edge    `json:"edges"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("parse pipeline document: %w", err)
	}

	doc := Document{Edges: raw.Edges}
	for i, rn := range raw.Nodes {
		if rn.ID == "" {
			return Document{}, fmt.Errorf("parse pipeline document: node %d has no id", i)
		}
		node := Node{ID: rn.ID, Type: rn.Type, Name: rn.Name}
		if len(rn.Properties) > 0 {
			var props rawProperties
			if err := json.Unmarshal(rn.Properties, &props); err != nil {
				return Document{}, fmt.Errorf("parse node %s properties: %w", rn.ID, err)
			}
			applyProperties(&node, props)
		}
		if node.Name == "" {
			node.Name = node.ID
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc, nil
}

func applyProperties(node *Node, props rawProperties) {
	if node.Name == "" {
		node.Name = props.Name
	}
	node.SampleFilename = props.SampleFilename
	node.FilenameRegex = props.FilenameRegex
	node.CameraIDGroup = string(props.CameraIDGroup)
	node.Extension = props.Extension
	node.Optional = props.Optional
	node.RequireSidecar = props.RequireSidecar
	node.MethodIDs = props.MethodIDs
	node.PairingType = props.PairingType
	node.InputCount = props.InputCount
	node.ConditionDescription = props.ConditionDescription
	node.TerminationType = props.TerminationType
}

// CameraIDGroupValue returns the numeric camera id group a capture node
// selects, defaulting to 1 when unset.
func (n *Node) CameraIDGroupValue() int {
	if v, err := strconv.Atoi(strings.TrimSpace(n.CameraIDGroup)); err == nil && v == 2 {
		return 2
	}
	return 1
}
