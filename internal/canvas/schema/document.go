// Package schema defines the on-disk document model for agent configuration
// files and the codec for the heterogeneous tools field. The field layout and
// ordering here mirror exactly what the agent runtime's config loader expects,
// so struct field order is significant.
package schema

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Agent class values recognized by the runtime loader. Container classes
// orchestrate child agents; everything else (including unknown classes) is
// treated as an LLM-backed leaf.
const (
	ClassLlmAgent        = "LlmAgent"
	ClassSequentialAgent = "SequentialAgent"
	ClassParallelAgent   = "ParallelAgent"
	ClassLoopAgent       = "LoopAgent"
)

// IsContainerClass reports whether the agent class orchestrates child agents
// rather than calling a model directly.
func IsContainerClass(class string) bool {
	switch class {
	case ClassSequentialAgent, ClassParallelAgent, ClassLoopAgent:
		return true
	}
	return false
}

// CallbackPhases lists the callback hook points in wire order.
var CallbackPhases = []string{
	"before_agent",
	"after_agent",
	"before_model",
	"after_model",
	"before_tool",
	"after_tool",
}

// AgentRef is a relative reference to another agent config file.
type AgentRef struct {
	ConfigPath string `yaml:"config_path" json:"config_path"`
}

// CallbackRef names a callback function by its import path.
type CallbackRef struct {
	Name string `yaml:"name" json:"name"`
}

// GenerationConfig holds model sampling settings. All fields are optional;
// the block is omitted from output entirely when nothing is set.
type GenerationConfig struct {
	Temperature     *float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	MaxOutputTokens *int     `yaml:"max_output_tokens,omitempty" json:"max_output_tokens,omitempty"`
	TopP            *float64 `yaml:"top_p,omitempty" json:"top_p,omitempty"`
	TopK            *int     `yaml:"top_k,omitempty" json:"top_k,omitempty"`
}

// Empty reports whether no sampling setting is present.
func (g *GenerationConfig) Empty() bool {
	if g == nil {
		return true
	}
	return g.Temperature == nil && g.MaxOutputTokens == nil && g.TopP == nil && g.TopK == nil
}

// AgentConfig is one agent configuration document. Field declaration order
// matches the wire schema: name, model, agent_class, description,
// instruction, sub_agents, tools, generation_config, then the callback
// buckets in phase order. yaml.v3 marshals struct fields in declaration
// order, which is what keeps compiled output stable.
type AgentConfig struct {
	Name                 string            `yaml:"name" json:"name"`
	Model                string            `yaml:"model,omitempty" json:"model,omitempty"`
	AgentClass           string            `yaml:"agent_class" json:"agent_class"`
	Description          string            `yaml:"description,omitempty" json:"description,omitempty"`
	Instruction          string            `yaml:"instruction,omitempty" json:"instruction,omitempty"`
	SubAgents            []AgentRef        `yaml:"sub_agents,omitempty" json:"sub_agents,omitempty"`
	Tools                []ToolEntry       `yaml:"tools,omitempty" json:"tools,omitempty"`
	GenerationConfig     *GenerationConfig `yaml:"generation_config,omitempty" json:"generation_config,omitempty"`
	BeforeAgentCallbacks []CallbackRef     `yaml:"before_agent_callbacks,omitempty" json:"before_agent_callbacks,omitempty"`
	AfterAgentCallbacks  []CallbackRef     `yaml:"after_agent_callbacks,omitempty" json:"after_agent_callbacks,omitempty"`
	BeforeModelCallbacks []CallbackRef     `yaml:"before_model_callbacks,omitempty" json:"before_model_callbacks,omitempty"`
	AfterModelCallbacks  []CallbackRef     `yaml:"after_model_callbacks,omitempty" json:"after_model_callbacks,omitempty"`
	BeforeToolCallbacks  []CallbackRef     `yaml:"before_tool_callbacks,omitempty" json:"before_tool_callbacks,omitempty"`
	AfterToolCallbacks   []CallbackRef     `yaml:"after_tool_callbacks,omitempty" json:"after_tool_callbacks,omitempty"`
}

// CallbacksByPhase collects the callback function names grouped by phase.
// Phases with no callbacks are absent from the map.
func (c *AgentConfig) CallbacksByPhase() map[string][]string {
	out := map[string][]string{}
	collect := func(phase string, refs []CallbackRef) {
		for _, r := range refs {
			out[phase] = append(out[phase], r.Name)
		}
	}
	collect("before_agent", c.BeforeAgentCallbacks)
	collect("after_agent", c.AfterAgentCallbacks)
	collect("before_model", c.BeforeModelCallbacks)
	collect("after_model", c.AfterModelCallbacks)
	collect("before_tool", c.BeforeToolCallbacks)
	collect("after_tool", c.AfterToolCallbacks)
	return out
}

// SetCallbacks populates the per-phase callback buckets from a phase map.
// Unknown phases are ignored; the wire schema enumerates a fixed key set.
func (c *AgentConfig) SetCallbacks(byPhase map[string][]string) {
	refs := func(names []string) []CallbackRef {
		if len(names) == 0 {
			return nil
		}
		out := make([]CallbackRef, 0, len(names))
		for _, n := range names {
			out = append(out, CallbackRef{Name: n})
		}
		return out
	}
	c.BeforeAgentCallbacks = refs(byPhase["before_agent"])
	c.AfterAgentCallbacks = refs(byPhase["after_agent"])
	c.BeforeModelCallbacks = refs(byPhase["before_model"])
	c.AfterModelCallbacks = refs(byPhase["after_model"])
	c.BeforeToolCallbacks = refs(byPhase["before_tool"])
	c.AfterToolCallbacks = refs(byPhase["after_tool"])
}

// Parse decodes one agent configuration document from YAML text.
func Parse(text []byte) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := yaml.Unmarshal(text, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse agent config: %w", err)
	}
	return &cfg, nil
}

// Marshal encodes one agent configuration document as YAML text with the
// loader's canonical 2-space indentation.
func Marshal(cfg *AgentConfig) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to marshal agent config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize agent config: %w", err)
	}
	return buf.String(), nil
}
