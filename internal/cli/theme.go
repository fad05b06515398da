package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scopetheme/internal/config"
	"scopetheme/internal/display"
	"scopetheme/internal/theme"
	"scopetheme/internal/tui"
)

var (
	themeImportName    string
	themeImportReplace bool
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage themes",
	Long: `Manage built-in and imported themes.

Run without arguments to launch the interactive theme picker.
Use subcommands for direct theme management.

Examples:
  scopetheme theme                         # Launch interactive picker
  scopetheme theme set ansi-light          # Set theme directly
  scopetheme theme list                    # List available themes
  scopetheme theme show                    # Show current theme
  scopetheme theme import Monokai.tmTheme  # Add a theme to the library`,
	Args: cobra.NoArgs,
	RunE: runThemeTUI,
}

var themeSetCmd = &cobra.Command{
	Use:   "set [theme-name]",
	Short: "Set the active theme",
	Long: `Set the active theme and save it to the config file.

Examples:
  scopetheme theme set ansi
  scopetheme theme set monokai`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeSet,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeShowCmd = &cobra.Command{
	Use:   "show [theme-name]",
	Short: "Show a theme",
	Long:  `Display a theme's metadata, its default style and a rendered sample. Defaults to the active theme.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runThemeShow,
}

var themeImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a .tmTheme file into the library",
	Long: `Validate a .tmTheme file and store it in the theme library.

The theme is named after the file unless --name is given. Built-in theme
names cannot be reused.

Examples:
  scopetheme theme import ~/Downloads/Monokai.tmTheme
  scopetheme theme import dark.tmTheme --name my-dark --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeImport,
}

var themeRemoveCmd = &cobra.Command{
	Use:     "remove [theme-name]",
	Aliases: []string{"rm"},
	Short:   "Remove an imported theme",
	Args:    cobra.ExactArgs(1),
	RunE:    runThemeRemove,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeSetCmd, themeListCmd, themeShowCmd, themeImportCmd, themeRemoveCmd)

	themeImportCmd.Flags().StringVarP(&themeImportName, "name", "n", "", "library name (default: derived from the file name)")
	themeImportCmd.Flags().BoolVar(&themeImportReplace, "replace", false, "replace an imported theme with the same name")
}

// launches theme picker
func runThemeTUI(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	names, err := e.manager.List(cmd.Context())
	if err != nil {
		return err
	}

	model := tui.NewPickerModel(cmd.Context(), e.manager, names, e.activeThemeName(), e.mode, e.palette)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run theme picker: %w", err)
	}

	if picked, ok := final.(tui.PickerModel); ok && picked.Selected() != "" {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to '%s'\n", picked.Selected())
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// sets the theme directly
func runThemeSet(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	name := args[0]

	// refuse a theme that exists but does not load
	r, err := e.manager.Get(cmd.Context(), name)
	if err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return fmt.Errorf("theme '%s' not found. Run 'scopetheme theme list' to see available themes", name)
		}
		return err
	}

	if err := config.UpdateTheme(name); err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}

	e.restyle(r)
	fmt.Fprintln(cmd.OutOrStdout(), e.styles.Success.Render(fmt.Sprintf("✓ Theme set to '%s'", name)))
	return nil
}

// lists all available themes
func runThemeList(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	names, err := e.manager.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, e.styles.Header.Render(" Available Themes "))
	fmt.Fprintln(out)

	current := e.activeThemeName()
	for _, name := range names {
		label := name
		if e.manager.IsBuiltin(name) {
			label += e.styles.Muted.Render(" (built-in)")
		}

		prefix := "  "
		if name == current {
			prefix = "▶ "
			label = e.styles.Success.Render(name+" (current)")
		}
		fmt.Fprintf(out, "%s%s\n", prefix, label)
	}

	fmt.Fprintln(out)
	return nil
}

// displays theme details
func runThemeShow(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if len(args) == 1 {
		r, err := e.manager.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logDiagnostics(r)
		e.restyle(r)
	}

	r := e.resolver
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, e.styles.Header.Render(fmt.Sprintf(" Theme: %s ", r.Name())))
	fmt.Fprintln(out)

	if r.Author() != "" {
		fmt.Fprintf(out, "  %s %s\n", e.styles.Label.Render("Author:"), r.Author())
	}
	if r.UUID() != "" {
		fmt.Fprintf(out, "  %s %s\n", e.styles.Label.Render("UUID:  "), r.UUID())
	}

	def := r.Default()
	fmt.Fprintf(out, "  %s %s\n", e.styles.Label.Render("Rules: "), fmt.Sprint(len(r.Rules())))
	fmt.Fprintf(out, "  %s %s %s\n", e.styles.Label.Render("Fg:    "),
		display.Swatch(def, e.mode, e.palette), display.FormatColor(def.Foreground, e.palette))
	fmt.Fprintf(out, "  %s %s\n", e.styles.Label.Render("Bg:    "), display.FormatColor(def.Background, e.palette))
	fmt.Fprintf(out, "  %s %d\n", e.styles.Label.Render("Issues:"), len(r.Diagnostics()))

	fmt.Fprintln(out)
	fmt.Fprintln(out, display.RenderSegments(r, display.HTTPSample, e.mode, e.palette))
	fmt.Fprintln(out)
	return nil
}

func runThemeImport(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read theme: %w", err)
	}

	name := themeImportName
	if name == "" {
		name = themeNameFromPath(path)
	}

	r, err := e.manager.Import(cmd.Context(), name, data, themeImportReplace)
	if err != nil {
		return err
	}

	logDiagnostics(r)
	fmt.Fprintln(cmd.OutOrStdout(), e.styles.Success.Render(
		fmt.Sprintf("✓ Imported '%s' (%d rules, %d diagnostics)", name, len(r.Rules()), len(r.Diagnostics()))))
	return nil
}

func runThemeRemove(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	name := args[0]
	if err := e.manager.Remove(cmd.Context(), name); err != nil {
		return err
	}

	// a removed active theme leaves the config pointing nowhere
	if e.cfg.ThemeName == name {
		if err := config.UpdateTheme(""); err != nil {
			return fmt.Errorf("failed to reset theme: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), e.styles.Success.Render(fmt.Sprintf("✓ Removed '%s'", name)))
	return nil
}
