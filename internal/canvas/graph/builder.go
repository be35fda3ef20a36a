package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/schema"
)

// Default layout grid used when a node has no saved position.
const (
	gridColumns  = 3
	gridOriginX  = 80
	gridOriginY  = 80
	gridSpacingX = 320
	gridSpacingY = 200
)

// NormalizeConfigPath strips the conventional leading "./" so references can
// be compared against filenames directly.
func NormalizeConfigPath(p string) string {
	return strings.TrimPrefix(p, "./")
}

// Build projects a set of config files into nodes and edges.
//
// Files whose YAML fails to parse, or which lack a name, are skipped
// silently; surfacing those is the validator's job. Edges are created only
// for references that resolve to a present file — dangling references
// likewise produce no edge here. Saved positions win over the deterministic
// default grid. The node whose filename matches rootFilename (or
// DefaultRootFilename when empty) is flagged as the root.
func Build(files []ConfigFile, positions map[string]Position, rootFilename string) ([]Node, []Edge) {
	if rootFilename == "" {
		rootFilename = DefaultRootFilename
	}

	type parsed struct {
		file ConfigFile
		cfg  *schema.AgentConfig
	}
	var docs []parsed
	present := map[string]bool{}
	for _, f := range files {
		cfg, err := schema.Parse([]byte(f.YAMLText))
		if err != nil || cfg == nil || cfg.Name == "" {
			continue
		}
		docs = append(docs, parsed{file: f, cfg: cfg})
		present[f.Filename] = true
	}

	// Deterministic default layout: grid slots by sorted filename.
	sort.Slice(docs, func(i, j int) bool { return docs[i].file.Filename < docs[j].file.Filename })

	nameByFile := map[string]string{}
	for _, d := range docs {
		nameByFile[d.file.Filename] = d.cfg.Name
	}

	nodes := make([]Node, 0, len(docs))
	var edges []Edge
	for i, d := range docs {
		cfg := d.cfg
		filename := d.file.Filename

		kind := KindLeaf
		if schema.IsContainerClass(cfg.AgentClass) {
			kind = KindContainer
		}

		pos, ok := positions[filename]
		if !ok {
			pos = Position{
				X: gridOriginX + float64(i%gridColumns)*gridSpacingX,
				Y: gridOriginY + float64(i/gridColumns)*gridSpacingY,
			}
		}

		buckets := schema.DecodeTools(cfg.Tools)
		data := NodeData{
			Filename:     filename,
			IsRoot:       filename == rootFilename,
			Name:         cfg.Name,
			AgentClass:   cfg.AgentClass,
			Model:        cfg.Model,
			Description:  cfg.Description,
			Instruction:  cfg.Instruction,
			Tools:        buckets.Names,
			ToolConfigs:  buckets.Configs,
			McpServers:   buckets.McpServers,
			AgentTools:   buckets.AgentTools,
			OpenAPITools: buckets.OpenAPITools,
			Callbacks:    callbacksOrNil(cfg),
		}
		if !cfg.GenerationConfig.Empty() {
			data.GenerationConfig = cfg.GenerationConfig
		}

		for _, ref := range cfg.SubAgents {
			target := NormalizeConfigPath(ref.ConfigPath)
			if !present[target] {
				continue
			}
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("%s%s-%s", SubAgentEdgePrefix, filename, target),
				Source: filename,
				Target: target,
			})
			if kind == KindContainer {
				data.ChildAgents = append(data.ChildAgents, ChildSummary{
					ID:   target,
					Name: nameByFile[target],
				})
			}
		}

		for _, path := range buckets.AgentTools {
			target := NormalizeConfigPath(path)
			if !present[target] {
				continue
			}
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("%s%s-%s", AgentToolEdgePrefix, filename, target),
				Source: filename,
				Target: target,
			})
		}

		nodes = append(nodes, Node{
			ID:       filename,
			Kind:     kind,
			Position: pos,
			Data:     data,
		})
	}
	return nodes, edges
}

func callbacksOrNil(cfg *schema.AgentConfig) map[string][]string {
	byPhase := cfg.CallbacksByPhase()
	if len(byPhase) == 0 {
		return nil
	}
	return byPhase
}
