package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scopetheme/internal/tui"
)

var exploreScope string

var exploreCmd = &cobra.Command{
	Use:     "explore",
	Aliases: []string{"tui"},
	Short:   "Explore scope resolution interactively",
	Long: `Launch an interactive explorer for the active theme.

Type a scope path to see which rule wins and how it renders. The rule list
marks the winning rule; pick a rule to resolve its own selector.

Keyboard shortcuts:
  ↑/↓     Move through rules
  Enter   Resolve the highlighted rule's selector
  Ctrl+U  Clear the scope
  F1      Toggle help
  Esc     Quit

Examples:
  scopetheme explore
  scopetheme explore --theme ansi-light --scope "source.http keyword.control.http"`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().StringVarP(&exploreScope, "scope", "s", "", "initial scope path")
}

func runExplore(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	model := tui.NewExplorerModel(e.resolver, e.mode, e.palette)
	if exploreScope != "" {
		model.SetScope(exploreScope)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running explorer: %w", err)
	}
	return nil
}
