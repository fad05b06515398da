package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"scopetheme/internal/color"
	"scopetheme/internal/theme"
)

func WriteYAML(w io.Writer, r *theme.Resolver, p color.Palette) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(Build(r, p)); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}
	return nil
}
