// Package cli implements the agentcanvas command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// Root builds the top-level command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "agentcanvas",
		Short:         "Visual editor backend for YAML agent configurations",
		Long:          "agentcanvas keeps a canvas node/edge graph and a set of YAML agent configuration files in sync, and serves the editor HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(ServeCmd)
	root.AddCommand(ValidateCmd)
	root.AddCommand(CompileCmd)
	root.AddCommand(TreeCmd)
	root.AddCommand(VersionCmd)
	return root
}
