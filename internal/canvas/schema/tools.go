package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Structured tool entry names carried in the wire format. They are
// distinguished on decode by their args shape, not by these names, but the
// encoder always writes them back under these names.
const (
	ToolNameMcpToolset     = "MCPToolset"
	ToolNameAgentTool      = "AgentTool"
	ToolNameOpenAPIToolset = "OpenAPIToolset"
)

// ToolKind discriminates the tool entry union.
type ToolKind int

const (
	// ToolKindName is a built-in or function tool referenced by name,
	// optionally carrying confirmation settings and tool-specific args.
	ToolKindName ToolKind = iota
	// ToolKindMcp is an MCP toolset launched over stdio or connected via SSE.
	ToolKindMcp
	// ToolKindAgent is another agent config used as a callable tool.
	ToolKindAgent
	// ToolKindOpenAPI is a toolset generated from an OpenAPI spec URL.
	ToolKindOpenAPI
)

// McpStdioParams describes an MCP server launched as a subprocess.
type McpStdioParams struct {
	Command string            `yaml:"command" json:"command"`
	Args    []string          `yaml:"args,omitempty" json:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// McpSseParams describes an MCP server reached over SSE.
type McpSseParams struct {
	URL     string            `yaml:"url" json:"url"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// McpServerConfig is one MCP toolset descriptor. Exactly one of Stdio or SSE
// is expected to be set.
type McpServerConfig struct {
	Stdio *McpStdioParams `yaml:"stdio_server_params,omitempty" json:"stdio_server_params,omitempty"`
	SSE   *McpSseParams   `yaml:"sse_server_params,omitempty" json:"sse_server_params,omitempty"`
}

// OpenAPIToolConfig is one OpenAPI toolset descriptor.
type OpenAPIToolConfig struct {
	Name    string `yaml:"name" json:"name"`
	SpecURL string `yaml:"spec_url" json:"spec_url"`
}

// ExtraToolConfig carries the optional per-tool settings of a named tool:
// the confirmation flag/prompt plus tool-specific args such as a data-store
// id, RAG corpus parameters, a retrieval input directory, or a long-running
// function path. Kept separate from the tool name list so plain names stay
// plain strings in the UI projection.
type ExtraToolConfig struct {
	RequireConfirmation bool           `json:"require_confirmation,omitempty"`
	ConfirmationPrompt  string         `json:"confirmation_prompt,omitempty"`
	Args                map[string]any `json:"args,omitempty"`
}

// Empty reports whether the config carries nothing worth emitting.
func (c ExtraToolConfig) Empty() bool {
	return !c.RequireConfirmation && c.ConfirmationPrompt == "" && len(c.Args) == 0
}

// ToolEntry is one entry of an agent's tools list: a tagged union over the
// four structured kinds plus the plain-name form. Exactly the payload for
// the active Kind is populated.
type ToolEntry struct {
	Kind ToolKind

	// ToolKindName
	Name   string
	Config ExtraToolConfig

	// ToolKindMcp
	Mcp *McpServerConfig

	// ToolKindAgent
	Agent *AgentRef

	// ToolKindOpenAPI
	OpenAPI *OpenAPIToolConfig
}

// rawTool is the generic wire shape of a structured tool entry.
type rawTool struct {
	Name string    `yaml:"name"`
	Args yaml.Node `yaml:"args"`
}

// argsProbe is decoded from the args block to disambiguate the structured
// kinds by shape alone.
type argsProbe struct {
	Stdio   *McpStdioParams `yaml:"stdio_server_params"`
	SSE     *McpSseParams   `yaml:"sse_server_params"`
	Agent   *AgentRef       `yaml:"agent"`
	SpecURL string          `yaml:"spec_url"`
}

// UnmarshalYAML decodes a tool entry from either a bare scalar name or a
// structured {name, args} mapping. The structured kinds are recognized by
// inspecting the args shape: stdio/sse server params mean an MCP toolset, an
// agent reference means an agent-as-tool, a spec_url means an OpenAPI
// toolset, and anything else is a named tool with extra args.
func (t *ToolEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = ToolEntry{Kind: ToolKindName, Name: value.Value}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("tool entry must be a name or a mapping, got %v", value.Kind)
	}

	var raw rawTool
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode tool entry: %w", err)
	}
	if raw.Args.Kind == 0 || raw.Args.IsZero() {
		*t = ToolEntry{Kind: ToolKindName, Name: raw.Name}
		return nil
	}

	var probe argsProbe
	if err := raw.Args.Decode(&probe); err == nil {
		switch {
		case probe.Stdio != nil || probe.SSE != nil:
			*t = ToolEntry{Kind: ToolKindMcp, Mcp: &McpServerConfig{Stdio: probe.Stdio, SSE: probe.SSE}}
			return nil
		case probe.Agent != nil && probe.Agent.ConfigPath != "":
			*t = ToolEntry{Kind: ToolKindAgent, Agent: probe.Agent}
			return nil
		case probe.SpecURL != "":
			name := raw.Name
			var named struct {
				Name string `yaml:"name"`
			}
			if err := raw.Args.Decode(&named); err == nil && named.Name != "" {
				name = named.Name
			}
			*t = ToolEntry{Kind: ToolKindOpenAPI, OpenAPI: &OpenAPIToolConfig{Name: name, SpecURL: probe.SpecURL}}
			return nil
		}
	}

	// Generic named tool with extra args: peel off the confirmation keys,
	// everything else stays as tool-specific args.
	args := map[string]any{}
	if err := raw.Args.Decode(&args); err != nil {
		return fmt.Errorf("failed to decode tool args for %q: %w", raw.Name, err)
	}
	cfg := ExtraToolConfig{Args: args}
	if v, ok := args["require_confirmation"].(bool); ok {
		cfg.RequireConfirmation = v
		delete(args, "require_confirmation")
	}
	if v, ok := args["confirmation_prompt"].(string); ok {
		cfg.ConfirmationPrompt = v
		delete(args, "confirmation_prompt")
	}
	if len(args) == 0 {
		cfg.Args = nil
	}
	*t = ToolEntry{Kind: ToolKindName, Name: raw.Name, Config: cfg}
	return nil
}

// MarshalYAML encodes a tool entry in the strict external schema: always the
// object form with a name key, never a bare scalar, and no args key at all
// when a named tool carries no settings.
func (t ToolEntry) MarshalYAML() (any, error) {
	switch t.Kind {
	case ToolKindName:
		if t.Config.Empty() {
			return struct {
				Name string `yaml:"name"`
			}{Name: t.Name}, nil
		}
		args := map[string]any{}
		for k, v := range t.Config.Args {
			args[k] = v
		}
		if t.Config.RequireConfirmation {
			args["require_confirmation"] = true
		}
		if t.Config.ConfirmationPrompt != "" {
			args["confirmation_prompt"] = t.Config.ConfirmationPrompt
		}
		return struct {
			Name string         `yaml:"name"`
			Args map[string]any `yaml:"args"`
		}{Name: t.Name, Args: args}, nil

	case ToolKindMcp:
		mcp := t.Mcp
		if mcp == nil {
			mcp = &McpServerConfig{}
		}
		return struct {
			Name string           `yaml:"name"`
			Args *McpServerConfig `yaml:"args"`
		}{Name: ToolNameMcpToolset, Args: mcp}, nil

	case ToolKindAgent:
		ref := t.Agent
		if ref == nil {
			ref = &AgentRef{}
		}
		return struct {
			Name string `yaml:"name"`
			Args struct {
				Agent AgentRef `yaml:"agent"`
			} `yaml:"args"`
		}{Name: ToolNameAgentTool, Args: struct {
			Agent AgentRef `yaml:"agent"`
		}{Agent: *ref}}, nil

	case ToolKindOpenAPI:
		oa := t.OpenAPI
		if oa == nil {
			oa = &OpenAPIToolConfig{}
		}
		return struct {
			Name string             `yaml:"name"`
			Args *OpenAPIToolConfig `yaml:"args"`
		}{Name: ToolNameOpenAPIToolset, Args: oa}, nil
	}
	return nil, fmt.Errorf("unknown tool kind %d", t.Kind)
}

// ToolBuckets is the UI-facing projection of a tools list: the four
// categories the canvas edits independently, plus per-name extra settings.
type ToolBuckets struct {
	Names        []string                   `json:"tools"`
	Configs      map[string]ExtraToolConfig `json:"toolConfigs,omitempty"`
	McpServers   []McpServerConfig          `json:"mcpServers,omitempty"`
	AgentTools   []string                   `json:"agentTools,omitempty"`
	OpenAPITools []OpenAPIToolConfig        `json:"openApiTools,omitempty"`
}

// DecodeTools categorizes a decoded tools list into buckets.
func DecodeTools(entries []ToolEntry) ToolBuckets {
	b := ToolBuckets{Names: []string{}}
	for _, e := range entries {
		switch e.Kind {
		case ToolKindName:
			b.Names = append(b.Names, e.Name)
			if !e.Config.Empty() {
				if b.Configs == nil {
					b.Configs = map[string]ExtraToolConfig{}
				}
				b.Configs[e.Name] = e.Config
			}
		case ToolKindMcp:
			if e.Mcp != nil {
				b.McpServers = append(b.McpServers, *e.Mcp)
			}
		case ToolKindAgent:
			if e.Agent != nil {
				b.AgentTools = append(b.AgentTools, e.Agent.ConfigPath)
			}
		case ToolKindOpenAPI:
			if e.OpenAPI != nil {
				b.OpenAPITools = append(b.OpenAPITools, *e.OpenAPI)
			}
		}
	}
	return b
}

// EncodeTools rebuilds a tools list from buckets, in bucket order: names,
// MCP servers, agent tools, OpenAPI toolsets.
func EncodeTools(b ToolBuckets) []ToolEntry {
	var out []ToolEntry
	for _, name := range b.Names {
		e := ToolEntry{Kind: ToolKindName, Name: name}
		if cfg, ok := b.Configs[name]; ok {
			e.Config = cfg
		}
		out = append(out, e)
	}
	for i := range b.McpServers {
		srv := b.McpServers[i]
		out = append(out, ToolEntry{Kind: ToolKindMcp, Mcp: &srv})
	}
	for _, path := range b.AgentTools {
		out = append(out, ToolEntry{Kind: ToolKindAgent, Agent: &AgentRef{ConfigPath: path}})
	}
	for i := range b.OpenAPITools {
		oa := b.OpenAPITools[i]
		out = append(out, ToolEntry{Kind: ToolKindOpenAPI, OpenAPI: &oa})
	}
	return out
}
