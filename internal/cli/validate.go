package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/project"
	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/validate"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var validateRootFile string

// ValidateCmd checks a project directory for structural problems.
var ValidateCmd = &cobra.Command{
	Use:   "validate <project-dir>",
	Short: "Check a project's cross-file integrity",
	Long:  "Reports unparseable files, dangling config_path references, and circular sub-agent chains.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.NewStore(args[0], validateRootFile)
		if err != nil {
			return err
		}
		files, err := store.List(cmd.Context())
		if err != nil {
			return err
		}

		report := validate.CheckProject(files, store.RootFilename())
		if report.OK() {
			cmd.Println(okStyle.Render(fmt.Sprintf("%d files, no problems found", len(files))))
			return nil
		}

		for _, pf := range report.ParseFailures {
			cmd.Printf("%s %s: %s\n", errStyle.Render("parse error"), fileStyle.Render(pf.File), pf.Message)
		}
		for _, ref := range report.BrokenRefs {
			cmd.Printf("%s %s -> %s\n", errStyle.Render("broken reference"), fileStyle.Render(ref.File), ref.Path)
		}
		if len(report.Cycle) > 0 {
			cmd.Printf("%s %s\n", errStyle.Render("circular sub-agents"), strings.Join(report.Cycle, " -> "))
		}
		return fmt.Errorf("validation failed")
	},
}

func init() {
	ValidateCmd.Flags().StringVar(&validateRootFile, "root", "", "root filename (default root_agent.yaml)")
}
