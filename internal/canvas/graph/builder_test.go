package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(name, text string) ConfigFile {
	return ConfigFile{Filename: name, YAMLText: text}
}

func TestBuildSkipsMalformedAndNamelessFiles(t *testing.T) {
	nodes, edges := Build([]ConfigFile{
		file("root_agent.yaml", "name: root\nagent_class: LlmAgent\n"),
		file("broken.yaml", "name: [unclosed\n"),
		file("nameless.yaml", "agent_class: LlmAgent\n"),
	}, nil, "")

	require.Len(t, nodes, 1)
	assert.Equal(t, "root_agent.yaml", nodes[0].ID)
	assert.Empty(t, edges)
}

func TestBuildNodeKinds(t *testing.T) {
	nodes, _ := Build([]ConfigFile{
		file("root_agent.yaml", "name: root\nagent_class: SequentialAgent\n"),
		file("leaf.yaml", "name: leaf\nagent_class: LlmAgent\n"),
		file("custom.yaml", "name: custom\nagent_class: MyFancyAgent\n"),
	}, nil, "")

	kinds := map[string]NodeKind{}
	for _, n := range nodes {
		kinds[n.ID] = n.Kind
	}
	assert.Equal(t, KindContainer, kinds["root_agent.yaml"])
	assert.Equal(t, KindLeaf, kinds["leaf.yaml"])
	assert.Equal(t, KindLeaf, kinds["custom.yaml"], "unknown classes default to leaf")
}

func TestBuildSubAgentEdgesAndChildSummaries(t *testing.T) {
	nodes, edges := Build([]ConfigFile{
		file("root_agent.yaml", `
name: root
agent_class: SequentialAgent
sub_agents:
  - config_path: ./step_one.yaml
  - config_path: step_two.yaml
  - config_path: ./missing.yaml
`),
		file("step_one.yaml", "name: one\nagent_class: LlmAgent\n"),
		file("step_two.yaml", "name: two\nagent_class: LlmAgent\n"),
	}, nil, "")

	require.Len(t, edges, 2, "dangling reference must not produce an edge")
	assert.Equal(t, "edge-root_agent.yaml-step_one.yaml", edges[0].ID)
	assert.Equal(t, "edge-root_agent.yaml-step_two.yaml", edges[1].ID)

	var root Node
	for _, n := range nodes {
		if n.Data.IsRoot {
			root = n
		}
	}
	require.Len(t, root.Data.ChildAgents, 2)
	assert.Equal(t, ChildSummary{ID: "step_one.yaml", Name: "one"}, root.Data.ChildAgents[0])
	assert.Equal(t, ChildSummary{ID: "step_two.yaml", Name: "two"}, root.Data.ChildAgents[1])
}

func TestBuildAgentToolEdges(t *testing.T) {
	_, edges := Build([]ConfigFile{
		file("root_agent.yaml", `
name: root
agent_class: LlmAgent
tools:
  - name: AgentTool
    args:
      agent:
        config_path: ./helper.yaml
`),
		file("helper.yaml", "name: helper\nagent_class: LlmAgent\n"),
	}, nil, "")

	require.Len(t, edges, 1)
	assert.Equal(t, "tooledge-root_agent.yaml-helper.yaml", edges[0].ID)
	assert.Equal(t, "root_agent.yaml", edges[0].Source)
	assert.Equal(t, "helper.yaml", edges[0].Target)
}

func TestBuildSubAgentAndAgentToolAreIndependentEdges(t *testing.T) {
	_, edges := Build([]ConfigFile{
		file("root_agent.yaml", `
name: root
agent_class: LlmAgent
sub_agents:
  - config_path: ./helper.yaml
tools:
  - name: AgentTool
    args:
      agent:
        config_path: ./helper.yaml
`),
		file("helper.yaml", "name: helper\nagent_class: LlmAgent\n"),
	}, nil, "")

	require.Len(t, edges, 2, "same target via sub_agents and AgentTool stays two edges")
}

func TestBuildPositions(t *testing.T) {
	saved := map[string]Position{
		"root_agent.yaml": {X: 400, Y: 250},
	}
	nodes, _ := Build([]ConfigFile{
		file("root_agent.yaml", "name: root\nagent_class: LlmAgent\n"),
		file("helper.yaml", "name: helper\nagent_class: LlmAgent\n"),
	}, saved, "")

	byID := map[string]Node{}
	for _, n := range nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, Position{X: 400, Y: 250}, byID["root_agent.yaml"].Position)

	// Unsaved nodes get a deterministic slot: rebuilds must agree.
	again, _ := Build([]ConfigFile{
		file("root_agent.yaml", "name: root\nagent_class: LlmAgent\n"),
		file("helper.yaml", "name: helper\nagent_class: LlmAgent\n"),
	}, saved, "")
	for _, n := range again {
		assert.Equal(t, byID[n.ID].Position, n.Position)
	}
}

func TestBuildRootOverride(t *testing.T) {
	nodes, _ := Build([]ConfigFile{
		file("root_agent.yaml", "name: root\nagent_class: LlmAgent\n"),
		file("tool_agent.yaml", "name: tool\nagent_class: LlmAgent\n"),
	}, nil, "tool_agent.yaml")

	roots := 0
	for _, n := range nodes {
		if n.Data.IsRoot {
			roots++
			assert.Equal(t, "tool_agent.yaml", n.ID)
		}
	}
	assert.Equal(t, 1, roots)
}

func TestBuildDecodesToolBucketsOntoNodeData(t *testing.T) {
	nodes, _ := Build([]ConfigFile{
		file("root_agent.yaml", `
name: root
agent_class: LlmAgent
model: gemini-2.0-flash
tools:
  - google_search
  - name: MCPToolset
    args:
      stdio_server_params:
        command: npx
        args: ["-y", "@x/y"]
generation_config:
  top_k: 40
`),
	}, nil, "")

	require.Len(t, nodes, 1)
	d := nodes[0].Data
	assert.Equal(t, []string{"google_search"}, d.Tools)
	require.Len(t, d.McpServers, 1)
	assert.Equal(t, "npx", d.McpServers[0].Stdio.Command)
	require.NotNil(t, d.GenerationConfig)
	require.NotNil(t, d.GenerationConfig.TopK)
	assert.Equal(t, 40, *d.GenerationConfig.TopK)
}
