package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"scopetheme/internal/display"
	"scopetheme/internal/domain"
	"scopetheme/internal/fuzzy"
)

const ruleFilterThreshold = 40

var rulesFilter string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active theme's rules",
	Long: `List the rules of the active theme in source order.

Use --filter to fuzzy-match against rule names and selectors; results are
then ordered by match quality.

Examples:
  scopetheme rules
  scopetheme rules --filter http
  scopetheme rules --theme ansi-light --filter kch`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVarP(&rulesFilter, "filter", "f", "", "fuzzy filter on name and selector")
}

// FilterRules returns the rules whose name or selector fuzzy-matches
// pattern, best match first. An empty pattern keeps every rule in order.
func FilterRules(pattern string, rules []domain.StyleRule) []domain.StyleRule {
	if pattern == "" {
		return rules
	}

	names := make([]string, len(rules))
	scopes := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
		scopes[i] = r.Scope
	}

	best := make(map[int]int)
	for _, set := range [][]string{names, scopes} {
		for _, m := range fuzzy.MatchMany(pattern, set, ruleFilterThreshold) {
			if m.Score > best[m.Index] {
				best[m.Index] = m.Score
			}
		}
	}

	order := make([]int, 0, len(best))
	for i := range rules {
		if _, ok := best[i]; ok {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return best[order[a]] > best[order[b]]
	})

	out := make([]domain.StyleRule, len(order))
	for i, idx := range order {
		out[i] = rules[idx]
	}
	return out
}

func runRules(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	rules := FilterRules(rulesFilter, e.resolver.Rules())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, e.styles.Header.Render(fmt.Sprintf(" %s: %d rules ", e.resolver.Name(), len(rules))))
	fmt.Fprintln(out)

	for _, rule := range rules {
		s := e.resolver.Resolve(rule.SampleScope())
		fmt.Fprintf(out, "  %2d %s %-24s %s  %s\n",
			rule.Index,
			display.Swatch(s, e.mode, e.palette),
			display.Truncate(rule.Label(), 24),
			e.styles.Muted.Render(rule.Scope),
			display.GetFontStyleIcon(rule.FontStyle),
		)
	}

	if len(rules) == 0 {
		fmt.Fprintln(out, e.styles.Muted.Render("  no rules match"))
	}
	fmt.Fprintln(out)
	return nil
}

