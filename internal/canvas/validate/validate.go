// Package validate checks the cross-file structural integrity of a project:
// dangling config_path references and circular sub-agent chains. All checks
// are pure functions over a snapshot of the file set; none of them mutate
// anything or throw on malformed input.
package validate

import (
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/schema"
)

// ParseFailure records a file whose YAML could not be parsed. The builder
// skips such files silently; this is where they get surfaced.
type ParseFailure struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Report is the collected result of a full project check. Nothing in here
// is thrown; callers decide severity.
type Report struct {
	ParseFailures []ParseFailure    `json:"parseFailures,omitempty"`
	BrokenRefs    []BrokenReference `json:"brokenReferences,omitempty"`
	Cycle         []string          `json:"cycle,omitempty"`
}

// OK reports whether the project passed every check.
func (r Report) OK() bool {
	return len(r.ParseFailures) == 0 && len(r.BrokenRefs) == 0 && len(r.Cycle) == 0
}

// ScanBrokenReferences finds every config_path — in sub_agents and in
// agent-tool entries — whose target file is not present in the project.
// A leading "./" is normalized before comparison. Malformed files contribute
// no references and are not themselves reported here.
func ScanBrokenReferences(files []graph.ConfigFile) []BrokenReference {
	present := map[string]bool{}
	for _, f := range files {
		present[f.Filename] = true
	}

	var refs []BrokenReference
	for _, f := range files {
		cfg, err := schema.Parse([]byte(f.YAMLText))
		if err != nil || cfg == nil {
			continue
		}
		check := func(path string) {
			if path == "" {
				return
			}
			if !present[graph.NormalizeConfigPath(path)] {
				refs = append(refs, BrokenReference{File: f.Filename, Path: path})
			}
		}
		for _, sub := range cfg.SubAgents {
			check(sub.ConfigPath)
		}
		for _, tool := range cfg.Tools {
			if tool.Kind == schema.ToolKindAgent && tool.Agent != nil {
				check(tool.Agent.ConfigPath)
			}
		}
	}
	return refs
}

// DetectCycle walks the sub_agents relation depth-first from start and
// reports the first chain that revisits one of its own ancestors. Each
// branch carries its own copy of the on-stack set, so two sibling branches
// that both reach a shared dependency are not mistaken for a cycle. Files
// already explored without finding a cycle are memoized and never
// re-traversed. Malformed referenced files are treated as having no further
// sub-agents, which bounds the search.
func DetectCycle(files []graph.ConfigFile, start string) ([]string, bool) {
	children := subAgentChildren(files)
	start = graph.NormalizeConfigPath(start)

	cleared := map[string]bool{}
	var walk func(file string, path []string, onPath map[string]bool) []string
	walk = func(file string, path []string, onPath map[string]bool) []string {
		for _, child := range children[file] {
			if onPath[child] {
				return append(append([]string{}, path...), child)
			}
			if cleared[child] {
				continue
			}
			branchPath := append(append([]string{}, path...), child)
			branchSet := make(map[string]bool, len(onPath)+1)
			for k := range onPath {
				branchSet[k] = true
			}
			branchSet[child] = true
			if chain := walk(child, branchPath, branchSet); chain != nil {
				return chain
			}
			cleared[child] = true
		}
		return nil
	}

	chain := walk(start, []string{start}, map[string]bool{start: true})
	if chain == nil {
		return nil, false
	}
	return chain, true
}

// CheckProject runs every validation over a file snapshot: parse failures,
// broken references, and a cycle search rooted at rootFilename (the
// conventional root when empty).
func CheckProject(files []graph.ConfigFile, rootFilename string) Report {
	if rootFilename == "" {
		rootFilename = graph.DefaultRootFilename
	}

	var report Report
	for _, f := range files {
		if _, err := schema.Parse([]byte(f.YAMLText)); err != nil {
			report.ParseFailures = append(report.ParseFailures, ParseFailure{
				File:    f.Filename,
				Message: err.Error(),
			})
		}
	}
	report.BrokenRefs = ScanBrokenReferences(files)
	if chain, found := DetectCycle(files, rootFilename); found {
		report.Cycle = chain
	}
	return report
}

// subAgentChildren parses each file and maps filename to the normalized
// sub-agent targets it declares. Unparseable files map to nothing.
func subAgentChildren(files []graph.ConfigFile) map[string][]string {
	children := map[string][]string{}
	for _, f := range files {
		cfg, err := schema.Parse([]byte(f.YAMLText))
		if err != nil || cfg == nil {
			continue
		}
		for _, sub := range cfg.SubAgents {
			if sub.ConfigPath == "" {
				continue
			}
			children[f.Filename] = append(children[f.Filename], graph.NormalizeConfigPath(sub.ConfigPath))
		}
	}
	return children
}
