package schema

import (
	"path/filepath"
	"strings"

	"github.com/stoewer/go-strcase"
)

// Scaffold returns the canonical YAML for a fresh agent document. The agent
// name is derived from the filename stem, normalized to snake_case so that
// "DataFetcher.yaml" and "data-fetcher.yaml" both yield "data_fetcher".
func Scaffold(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	cfg := &AgentConfig{
		Name:       strcase.SnakeCase(stem),
		AgentClass: ClassLlmAgent,
	}
	text, err := Marshal(cfg)
	if err != nil {
		return ""
	}
	return text
}
