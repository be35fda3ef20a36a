package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
)

var compileWrite bool

// CompileCmd round-trips every file of a project through the graph builder
// and compiler, normalizing it to the canonical wire shape.
var CompileCmd = &cobra.Command{
	Use:   "compile <project-dir>",
	Short: "Normalize a project's files to the canonical wire shape",
	Long:  "Rebuilds each file through the graph builder and compiler. Without --write, prints the result instead of modifying files.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.NewStore(args[0], "")
		if err != nil {
			return err
		}
		files, err := store.List(cmd.Context())
		if err != nil {
			return err
		}

		for _, f := range files {
			// Each file compiles from its own node: rebuild with the file
			// as the focus root.
			nodes, edges := graph.Build(files, nil, f.Filename)
			out := graph.Compile(nodes, edges)
			if out == "" {
				cmd.Printf("# %s: skipped (unparseable or nameless)\n", f.Filename)
				continue
			}
			if compileWrite {
				if err := store.Write(cmd.Context(), f.Filename, out); err != nil {
					return fmt.Errorf("failed to write %s: %w", f.Filename, err)
				}
				cmd.Printf("wrote %s\n", f.Filename)
				continue
			}
			cmd.Printf("# --- %s ---\n%s", f.Filename, out)
		}
		return nil
	},
}

func init() {
	CompileCmd.Flags().BoolVar(&compileWrite, "write", false, "rewrite files in place")
}
