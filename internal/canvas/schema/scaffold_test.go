package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffoldDerivesSnakeCaseName(t *testing.T) {
	for filename, want := range map[string]string{
		"data_fetcher.yaml": "data_fetcher",
		"DataFetcher.yaml":  "data_fetcher",
		"data-fetcher.yml":  "data_fetcher",
	} {
		text := Scaffold(filename)
		cfg, err := Parse([]byte(text))
		require.NoError(t, err, "filename %q", filename)
		assert.Equal(t, want, cfg.Name, "filename %q", filename)
		assert.Equal(t, ClassLlmAgent, cfg.AgentClass)
	}
}
