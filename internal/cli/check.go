package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scopetheme/internal/theme"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a .tmTheme file",
	Long: `Load a theme file and report problems.

Structural problems (no default entry, a duplicate default, an empty scope)
reject the theme and exit non-zero. Bad colour values only affect the rule
that carries them and are listed as diagnostics; --strict makes them fatal.

Examples:
  scopetheme check ~/themes/solarized.tmTheme
  scopetheme check --strict ansi.tmTheme`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when the theme has diagnostics")
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()

	r, err := theme.Parse(themeNameFromPath(path), data)
	if err != nil {
		fmt.Fprintln(out, e.styles.Error.Render("✗ "+err.Error()))
		return fmt.Errorf("theme rejected: %w", err)
	}

	diags := r.Diagnostics()
	fmt.Fprintf(out, "%s %s: %d rules, %d diagnostics\n",
		e.styles.Success.Render("✓"), r.Name(), len(r.Rules()), len(diags))

	for _, d := range diags {
		fmt.Fprintf(out, "  %s %s\n", e.styles.Error.Render("!"), d.Error())
	}

	if checkStrict && len(diags) > 0 {
		return fmt.Errorf("%d diagnostics in strict mode", len(diags))
	}
	return nil
}

// "Solarized Dark.tmTheme" -> "solarized-dark"
func themeNameFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ToLower(strings.Join(strings.Fields(base), "-"))
}
