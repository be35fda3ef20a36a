package graph

import (
	"strings"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/schema"
)

// Compile emits the YAML document for the node flagged as root. It compiles
// exactly one file per call; sibling files are compiled by flagging their
// own node and calling again. Returns the empty string when no node carries
// the root flag — callers must treat that as "nothing to compile", not as
// valid YAML.
//
// The contract is always-attempt-never-throw: malformed node data (for
// example a missing agent class) still produces a best-effort document.
func Compile(nodes []Node, edges []Edge) string {
	var root *Node
	for i := range nodes {
		if nodes[i].Data.IsRoot {
			root = &nodes[i]
			break
		}
	}
	if root == nil {
		return ""
	}

	class := root.Data.AgentClass
	if class == "" {
		class = schema.ClassLlmAgent
	}

	cfg := schema.AgentConfig{
		Name:        root.Data.Name,
		AgentClass:  class,
		Description: root.Data.Description,
		Instruction: root.Data.Instruction,
	}
	// Container agents orchestrate children and never carry a model.
	if !schema.IsContainerClass(class) && root.Kind != KindContainer {
		cfg.Model = root.Data.Model
	}

	for _, e := range edges {
		if e.Source != root.ID || !strings.HasPrefix(e.ID, SubAgentEdgePrefix) {
			continue
		}
		cfg.SubAgents = append(cfg.SubAgents, schema.AgentRef{
			ConfigPath: "./" + NormalizeConfigPath(e.Target),
		})
	}

	cfg.Tools = schema.EncodeTools(schema.ToolBuckets{
		Names:        root.Data.Tools,
		Configs:      root.Data.ToolConfigs,
		McpServers:   root.Data.McpServers,
		AgentTools:   prefixPaths(root.Data.AgentTools),
		OpenAPITools: root.Data.OpenAPITools,
	})

	if !root.Data.GenerationConfig.Empty() {
		cfg.GenerationConfig = root.Data.GenerationConfig
	}
	cfg.SetCallbacks(root.Data.Callbacks)

	out, err := schema.Marshal(&cfg)
	if err != nil {
		return ""
	}
	return out
}

// prefixPaths restores the conventional "./" prefix on agent-tool config
// paths so compiled output matches the wire schema regardless of how the
// bucket was populated.
func prefixPaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, "./"+NormalizeConfigPath(p))
	}
	return out
}
