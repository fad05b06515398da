package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scopetheme/internal/display"
	"scopetheme/internal/domain"
)

var (
	resolveStack bool
	resolveJSON  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [scope...]",
	Short: "Resolve scopes to styles",
	Long: `Resolve one or more scopes against the active theme.

Each argument is resolved on its own. A quoted argument containing spaces is
treated as a scope stack, outermost scope first. With --stack all arguments
form a single stack.

Examples:
  scopetheme resolve keyword.control.http constant.numeric
  scopetheme resolve "source.http http.requestheaders support.variable.http"
  scopetheme resolve --stack source.json string.quoted.double.json
  scopetheme resolve --json error`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveStack, "stack", false, "treat all arguments as one scope stack")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print results as JSON")
}

type resolveResult struct {
	Scope      string `json:"scope"`
	Default    bool   `json:"default"`
	RuleIndex  int    `json:"rule_index"`
	RuleName   string `json:"rule_name,omitempty"`
	Selector   string `json:"selector,omitempty"`
	Foreground string `json:"foreground"`
	Hex        string `json:"hex,omitempty"`
	ANSIIndex  *int   `json:"ansi_index,omitempty"`
	FontStyle  string `json:"font_style,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	queries := args
	if resolveStack {
		queries = []string{strings.Join(args, " ")}
	}

	results := make([]resolveResult, 0, len(queries))
	styles := make([]domain.ResolvedStyle, 0, len(queries))
	for _, q := range queries {
		s := e.resolver.Resolve(q)
		logger.Debug("resolved", "scope", q, "rule", s.RuleIndex)

		res := resolveResult{
			Scope:      q,
			Default:    s.IsDefault(),
			RuleIndex:  s.RuleIndex,
			RuleName:   s.RuleName,
			Selector:   s.Selector,
			Foreground: s.Foreground.String(),
			Hex:        s.Foreground.Hex(e.palette),
			FontStyle:  s.FontStyle.String(),
		}
		if idx, ok := s.Foreground.ANSIIndex(); ok {
			res.ANSIIndex = &idx
		}
		results = append(results, res)
		styles = append(styles, s)
	}

	out := cmd.OutOrStdout()

	if resolveJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, e.styles.Header.Render(fmt.Sprintf(" Theme: %s ", e.resolver.Name())))
	fmt.Fprintln(out)
	for i, res := range results {
		s := styles[i]
		fmt.Fprintf(out, "  %s %s\n", display.Swatch(s, e.mode, e.palette), e.styles.Label.Render(res.Scope))
		fmt.Fprintf(out, "      rule:  %s\n", display.FormatRuleLabel(s))
		if !s.IsDefault() {
			fmt.Fprintf(out, "      match: %s\n", e.styles.Muted.Render(s.Selector))
		}
		fmt.Fprintf(out, "      fg:    %s\n", display.FormatColor(s.Foreground, e.palette))
		fmt.Fprintf(out, "      font:  %s\n", display.GetFontStyleIcon(s.FontStyle))
		fmt.Fprintln(out)
	}

	return nil
}
