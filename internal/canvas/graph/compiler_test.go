package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/schema"
)

func TestCompileNoRootReturnsEmptyString(t *testing.T) {
	nodes := []Node{{
		ID:   "a.yaml",
		Kind: KindLeaf,
		Data: NodeData{Filename: "a.yaml", Name: "a", AgentClass: schema.ClassLlmAgent},
	}}
	assert.Equal(t, "", Compile(nodes, nil))
}

func TestCompileRoundTripPreservesScalars(t *testing.T) {
	src := `name: research_agent
model: gemini-2.0-flash
agent_class: LlmAgent
description: Looks things up.
instruction: You are a researcher.
tools:
  - name: google_search
`
	nodes, edges := Build([]ConfigFile{{Filename: "root_agent.yaml", YAMLText: src}}, nil, "")
	out := Compile(nodes, edges)
	require.NotEmpty(t, out)

	cfg, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "research_agent", cfg.Name)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, schema.ClassLlmAgent, cfg.AgentClass)
	assert.Equal(t, "Looks things up.", cfg.Description)
	assert.Equal(t, "You are a researcher.", cfg.Instruction)
	require.Len(t, cfg.Tools, 1)
	assert.Equal(t, "google_search", cfg.Tools[0].Name)
}

func TestCompileBuiltinToolsAlwaysObjectForm(t *testing.T) {
	nodes := []Node{{
		ID:   "root_agent.yaml",
		Kind: KindLeaf,
		Data: NodeData{
			Filename:   "root_agent.yaml",
			IsRoot:     true,
			Name:       "root",
			AgentClass: schema.ClassLlmAgent,
			Tools:      []string{"google_search", "load_web_page"},
		},
	}}
	out := Compile(nodes, nil)
	require.NotEmpty(t, out)
	assert.NotRegexp(t, `(?m)^\s*- \w+$`, out, "tools must never be bare scalars")
	assert.Contains(t, out, "- name: google_search")
	assert.Contains(t, out, "- name: load_web_page")
}

func TestCompileContainerNeverEmitsModel(t *testing.T) {
	nodes := []Node{{
		ID:   "root_agent.yaml",
		Kind: KindContainer,
		Data: NodeData{
			Filename:   "root_agent.yaml",
			IsRoot:     true,
			Name:       "pipeline",
			AgentClass: schema.ClassSequentialAgent,
			Model:      "gemini-2.0-flash",
		},
	}}
	out := Compile(nodes, nil)
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "model:")
}

func TestCompileSubAgentsFromEdgesWithRelativePrefix(t *testing.T) {
	nodes := []Node{
		{
			ID:   "root_agent.yaml",
			Kind: KindContainer,
			Data: NodeData{Filename: "root_agent.yaml", IsRoot: true, Name: "pipeline", AgentClass: schema.ClassSequentialAgent},
		},
		{
			ID:   "step.yaml",
			Kind: KindLeaf,
			Data: NodeData{Filename: "step.yaml", Name: "step", AgentClass: schema.ClassLlmAgent},
		},
	}
	edges := []Edge{
		{ID: "edge-root_agent.yaml-step.yaml", Source: "root_agent.yaml", Target: "step.yaml"},
		{ID: "tooledge-root_agent.yaml-step.yaml", Source: "root_agent.yaml", Target: "step.yaml"},
	}
	out := Compile(nodes, edges)
	require.NotEmpty(t, out)

	cfg, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, cfg.SubAgents, 1, "tool edges must not become sub_agents")
	assert.Equal(t, "./step.yaml", cfg.SubAgents[0].ConfigPath)
}

func TestCompileGenerationConfigOmittedWhenUnset(t *testing.T) {
	node := Node{
		ID:   "root_agent.yaml",
		Kind: KindLeaf,
		Data: NodeData{
			Filename:         "root_agent.yaml",
			IsRoot:           true,
			Name:             "root",
			AgentClass:       schema.ClassLlmAgent,
			GenerationConfig: &schema.GenerationConfig{},
		},
	}
	out := Compile([]Node{node}, nil)
	assert.NotContains(t, out, "generation_config")

	temp := 0.3
	node.Data.GenerationConfig = &schema.GenerationConfig{Temperature: &temp}
	out = Compile([]Node{node}, nil)
	assert.Contains(t, out, "generation_config:")
	assert.Contains(t, out, "temperature: 0.3")
	assert.NotContains(t, out, "top_k")
}

func TestCompileFieldOrder(t *testing.T) {
	temp := 0.5
	nodes := []Node{{
		ID:   "root_agent.yaml",
		Kind: KindLeaf,
		Data: NodeData{
			Filename:         "root_agent.yaml",
			IsRoot:           true,
			Name:             "root",
			AgentClass:       schema.ClassLlmAgent,
			Model:            "gemini-2.0-flash",
			Description:      "entry",
			Instruction:      "act",
			Tools:            []string{"google_search"},
			GenerationConfig: &schema.GenerationConfig{Temperature: &temp},
			Callbacks:        map[string][]string{"after_model": {"callbacks.log"}},
		},
	}}
	edges := []Edge{{ID: "edge-root_agent.yaml-helper.yaml", Source: "root_agent.yaml", Target: "helper.yaml"}}
	out := Compile(nodes, edges)
	require.NotEmpty(t, out)

	order := []string{"name:", "model:", "agent_class:", "description:", "instruction:", "sub_agents:", "tools:", "generation_config:", "after_model_callbacks:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", key, out)
		assert.Greater(t, idx, last, "%q out of order in:\n%s", key, out)
		last = idx
	}
}

func TestCompileCallbacksGroupedByPhase(t *testing.T) {
	nodes := []Node{{
		ID:   "root_agent.yaml",
		Kind: KindLeaf,
		Data: NodeData{
			Filename:   "root_agent.yaml",
			IsRoot:     true,
			Name:       "root",
			AgentClass: schema.ClassLlmAgent,
			Callbacks: map[string][]string{
				"before_model": {"callbacks.redact", "callbacks.trim"},
				"after_tool":   {"callbacks.audit"},
			},
		},
	}}
	out := Compile(nodes, nil)
	cfg, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	require.Len(t, cfg.BeforeModelCallbacks, 2)
	assert.Equal(t, "callbacks.redact", cfg.BeforeModelCallbacks[0].Name)
	require.Len(t, cfg.AfterToolCallbacks, 1)
	assert.Equal(t, "callbacks.audit", cfg.AfterToolCallbacks[0].Name)
}

func TestCompileMissingAgentClassBestEffort(t *testing.T) {
	nodes := []Node{{
		ID:   "root_agent.yaml",
		Kind: KindLeaf,
		Data: NodeData{Filename: "root_agent.yaml", IsRoot: true, Name: "root"},
	}}
	out := Compile(nodes, nil)
	require.NotEmpty(t, out)
	cfg, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, schema.ClassLlmAgent, cfg.AgentClass)
}

func TestCompileAgentToolPathsKeepRelativePrefix(t *testing.T) {
	nodes := []Node{{
		ID:   "root_agent.yaml",
		Kind: KindLeaf,
		Data: NodeData{
			Filename:   "root_agent.yaml",
			IsRoot:     true,
			Name:       "root",
			AgentClass: schema.ClassLlmAgent,
			AgentTools: []string{"helper.yaml"},
		},
	}}
	out := Compile(nodes, nil)
	assert.Contains(t, out, "config_path: ./helper.yaml")
}

func TestFullProjectRoundTrip(t *testing.T) {
	rootSrc := `name: pipeline
agent_class: SequentialAgent
description: Two step pipeline.
sub_agents:
  - config_path: ./fetch.yaml
  - config_path: ./summarize.yaml
`
	files := []ConfigFile{
		{Filename: "root_agent.yaml", YAMLText: rootSrc},
		{Filename: "fetch.yaml", YAMLText: "name: fetch\nagent_class: LlmAgent\nmodel: gemini-2.0-flash\n"},
		{Filename: "summarize.yaml", YAMLText: "name: summarize\nagent_class: LlmAgent\nmodel: gemini-2.0-flash\n"},
	}
	nodes, edges := Build(files, nil, "")
	out := Compile(nodes, edges)

	cfg, err := schema.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "pipeline", cfg.Name)
	assert.Empty(t, cfg.Model)
	require.Len(t, cfg.SubAgents, 2)
	assert.Equal(t, "./fetch.yaml", cfg.SubAgents[0].ConfigPath)
	assert.Equal(t, "./summarize.yaml", cfg.SubAgents[1].ConfigPath)
}
