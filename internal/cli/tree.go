package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
)

var (
	containerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	leafStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	toolStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var treeRootFile string

// TreeCmd renders a project's agent hierarchy.
var TreeCmd = &cobra.Command{
	Use:   "tree <project-dir>",
	Short: "Print the agent hierarchy of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.NewStore(args[0], treeRootFile)
		if err != nil {
			return err
		}
		files, err := store.List(cmd.Context())
		if err != nil {
			return err
		}

		nodes, edges := graph.Build(files, nil, store.RootFilename())
		byID := map[string]graph.Node{}
		for _, n := range nodes {
			byID[n.ID] = n
		}

		var root *graph.Node
		for i := range nodes {
			if nodes[i].Data.IsRoot {
				root = &nodes[i]
				break
			}
		}
		if root == nil {
			return fmt.Errorf("no root file %q in %s", store.RootFilename(), args[0])
		}

		printNode(cmd, byID, edges, root.ID, 0, map[string]bool{})
		return nil
	},
}

func printNode(cmd *cobra.Command, byID map[string]graph.Node, edges []graph.Edge, id string, depth int, seen map[string]bool) {
	node, ok := byID[id]
	if !ok {
		return
	}
	indent := strings.Repeat("  ", depth)

	label := leafStyle.Render(node.Data.Name)
	if node.Kind == graph.KindContainer {
		label = containerStyle.Render(node.Data.Name)
	}
	cmd.Printf("%s%s %s\n", indent, label, dimStyle.Render("("+node.Data.AgentClass+", "+id+")"))

	for _, tool := range node.Data.Tools {
		cmd.Printf("%s  %s\n", indent, toolStyle.Render("tool: "+tool))
	}

	if seen[id] {
		cmd.Printf("%s  %s\n", indent, dimStyle.Render("... (already shown)"))
		return
	}
	seen[id] = true

	for _, e := range edges {
		if e.Source != id {
			continue
		}
		if strings.HasPrefix(e.ID, graph.AgentToolEdgePrefix) {
			cmd.Printf("%s  %s\n", indent, toolStyle.Render("agent tool -> "+e.Target))
			continue
		}
		printNode(cmd, byID, edges, e.Target, depth+1, seen)
	}
}

func init() {
	TreeCmd.Flags().StringVar(&treeRootFile, "root", "", "root filename (default root_agent.yaml)")
}
