package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"scopetheme/internal/config"
	"scopetheme/internal/display"
)

var (
	flagTheme   string
	flagConfig  string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "scopetheme"})
)

var rootCmd = &cobra.Command{
	Use:   "scopetheme",
	Short: "scopetheme - resolve TextMate theme scopes to terminal styles",
	Long: `scopetheme loads TextMate (.tmTheme) colour themes and resolves syntax scopes
such as "keyword.control.http" to the colour and font style a highlighter
should use. Themes may reference the terminal's 16-colour ANSI palette.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagConfig != "" {
			config.SetConfigFile(flagConfig)
		}
		return nil
	},
	RunE: displayWelcome,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTheme, "theme", "t", "", "theme to use instead of the configured one")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.scopetheme/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func displayWelcome(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, e.styles.Title.Render("S C O P E T H E M E"))
	fmt.Fprintln(out, e.styles.Subtitle.Render(fmt.Sprintf("Active theme: %s", e.resolver.Name())))
	fmt.Fprintln(out)
	fmt.Fprintln(out, display.RenderSegments(e.resolver, display.HTTPSample, e.mode, e.palette))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'scopetheme --help' to see available commands.")
	fmt.Fprintln(out)
	return nil
}
