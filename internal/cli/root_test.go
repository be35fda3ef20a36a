package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}
	return dir
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := Root()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "validate", "compile", "tree", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestValidateCommandCleanProject(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"root_agent.yaml": "name: root\nagent_class: SequentialAgent\nsub_agents:\n  - config_path: ./step.yaml\n",
		"step.yaml":       "name: step\nagent_class: LlmAgent\n",
	})
	out, err := runCommand(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no problems found")
}

func TestValidateCommandReportsBrokenReference(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"root_agent.yaml": "name: root\nagent_class: SequentialAgent\nsub_agents:\n  - config_path: ./gone.yaml\n",
	})
	out, err := runCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Contains(t, out, "./gone.yaml")
}

func TestCompileCommandPrintsCanonicalYAML(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"root_agent.yaml": "name: root\nagent_class: LlmAgent\ntools:\n  - google_search\n",
	})
	out, err := runCommand(t, "compile", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "- name: google_search", "bare tool names are normalized to object form")
}

func TestTreeCommand(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"root_agent.yaml": "name: pipeline\nagent_class: SequentialAgent\nsub_agents:\n  - config_path: ./step.yaml\n",
		"step.yaml":       "name: step\nagent_class: LlmAgent\n",
	})
	out, err := runCommand(t, "tree", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "pipeline")
	assert.Contains(t, out, "step")
}

func TestVersionCommandJSON(t *testing.T) {
	out, err := runCommand(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}
