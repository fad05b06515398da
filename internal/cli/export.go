package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scopetheme/internal/export"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active theme",
	Long: `Export the active theme in another format.

Palette references are written as the hex value they map to in the
configured palette.

Supported formats:
  - json: VS Code colour theme (tokenColors)
  - yaml: flat rule list
  - markdown: human-readable rule table
  - csv: one row per rule, for spreadsheets
  - chroma: chroma XML style, usable by chroma-based highlighters

Examples:
  scopetheme export --format json --output ansi.json
  scopetheme export --theme ansi-light --format markdown
  scopetheme export -f chroma -o ansi.xml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	formats := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		formats[i] = string(f)
	}

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format ("+strings.Join(formats, ", ")+")")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	e, err := loadEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, e.resolver, e.palette); err != nil {
		return fmt.Errorf("failed to export theme: %w", err)
	}

	if exportOutput != "" {
		logger.Debug("exported theme", "theme", e.resolver.Name(), "format", format, "file", exportOutput)
		fmt.Fprintln(cmd.OutOrStdout(), e.styles.Success.Render(fmt.Sprintf("✓ Exported %s to %s", e.resolver.Name(), exportOutput)))
	}
	return nil
}
