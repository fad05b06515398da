package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed themes/*.tmTheme
var builtinFS embed.FS

// DefaultThemeName is used when no theme is configured or the configured one
// fails to load.
const DefaultThemeName = "ansi"

const builtinExt = ".tmTheme"

// BuiltinNames lists the embedded themes, sorted.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinFS, "themes")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), builtinExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), builtinExt))
	}
	sort.Strings(names)
	return names
}

// BuiltinSource returns the raw plist of an embedded theme.
func BuiltinSource(name string) ([]byte, error) {
	data, err := builtinFS.ReadFile(path.Join("themes", name+builtinExt))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return data, nil
}

func isBuiltin(name string) bool {
	_, err := fs.Stat(builtinFS, path.Join("themes", name+builtinExt))
	return err == nil
}
