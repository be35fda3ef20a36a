// Package graph converts between a project's set of agent configuration
// files and the node/edge projection the canvas renders. The projection is
// rebuilt from the files on every pass; only visual positions live outside
// the files themselves.
package graph

import (
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/schema"
)

// DefaultRootFilename is the conventional entry-point file of a project.
const DefaultRootFilename = "root_agent.yaml"

// Edge id prefixes. Sub-agent edges and agent-tool edges are independent
// edge sources and are never deduplicated against each other.
const (
	SubAgentEdgePrefix  = "edge-"
	AgentToolEdgePrefix = "tooledge-"
)

// ConfigFile pairs a filename with its raw YAML text.
type ConfigFile struct {
	Filename string `json:"filename"`
	YAMLText string `json:"yamlText"`
}

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeKind distinguishes container agents from leaf agents on the canvas.
type NodeKind string

const (
	KindLeaf      NodeKind = "leaf"
	KindContainer NodeKind = "container"
)

// ChildSummary is the compact child listing attached to container nodes for
// rendering. It is derived from edges and never authoritative.
type ChildSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NodeData is the editable payload of a node, mirroring the agent document
// plus the decoded tool buckets.
type NodeData struct {
	Filename    string `json:"filename"`
	IsRoot      bool   `json:"isRoot"`
	Name        string `json:"name"`
	AgentClass  string `json:"agentClass"`
	Model       string `json:"model,omitempty"`
	Description string `json:"description,omitempty"`
	Instruction string `json:"instruction,omitempty"`

	Tools        []string                          `json:"tools"`
	ToolConfigs  map[string]schema.ExtraToolConfig `json:"toolConfigs,omitempty"`
	McpServers   []schema.McpServerConfig          `json:"mcpServers,omitempty"`
	AgentTools   []string                          `json:"agentTools,omitempty"`
	OpenAPITools []schema.OpenAPIToolConfig        `json:"openApiTools,omitempty"`

	GenerationConfig *schema.GenerationConfig `json:"generationConfig,omitempty"`
	Callbacks        map[string][]string      `json:"callbacks,omitempty"`

	ChildAgents []ChildSummary `json:"childAgents,omitempty"`
}

// Node is one agent document projected onto the canvas. The id equals the
// filename, which is unique within a project and stable across rebuilds.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge is a directed relationship between two nodes, derived from
// sub_agents entries or agent-tool references.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}
