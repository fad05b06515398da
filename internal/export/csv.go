package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"scopetheme/internal/color"
	"scopetheme/internal/theme"
)

func WriteCSV(w io.Writer, r *theme.Resolver, p color.Palette) error {
	writer := csv.NewWriter(w)

	header := []string{"Index", "Name", "Scope", "Foreground", "Hex", "Background", "Font Style"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	data := Build(r, p)
	rows := append([]RuleData{data.Default}, data.Rules...)
	for _, rule := range rows {
		row := []string{
			strconv.Itoa(rule.Index),
			rule.Name,
			rule.Scope,
			rule.Foreground,
			rule.Hex,
			rule.Background,
			rule.FontStyle,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
