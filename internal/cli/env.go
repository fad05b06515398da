package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"scopetheme/internal/color"
	"scopetheme/internal/config"
	"scopetheme/internal/repository/sqlite"
	"scopetheme/internal/theme"
)

// env is what most commands need: config, the theme library and the active
// theme.
type env struct {
	cfg      *config.Config
	mode     color.Mode
	palette  color.Palette
	db       *sqlite.DB
	manager  *theme.Manager
	resolver *theme.Resolver
	styles   *theme.Styles
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	configureLogger(cfg)

	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.ResolvePalette()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open theme library: %w", err)
	}

	e := &env{
		cfg:     cfg,
		mode:    mode,
		palette: palette,
		db:      db,
		manager: theme.NewManager(sqlite.NewThemeRepository(db)),
	}

	e.resolver = e.activeTheme(ctx)
	e.styles = theme.NewStyles(e.resolver, mode, palette)

	return e, nil
}

func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
}

func (e *env) activeThemeName() string {
	switch {
	case flagTheme != "":
		return flagTheme
	case e.cfg.ThemeName != "":
		return e.cfg.ThemeName
	default:
		return theme.DefaultThemeName
	}
}

// a theme that fails to load is replaced by the built-in default
func (e *env) activeTheme(ctx context.Context) *theme.Resolver {
	name := e.activeThemeName()

	r, err := e.manager.Get(ctx, name)
	if err != nil {
		logger.Warn("falling back to built-in theme", "theme", name, "fallback", theme.DefaultThemeName, "err", err)
		r = e.manager.Default()
	}

	logDiagnostics(r)
	return r
}

func (e *env) restyle(r *theme.Resolver) {
	e.resolver = r
	e.styles = theme.NewStyles(r, e.mode, e.palette)
}

func logDiagnostics(r *theme.Resolver) {
	for _, d := range r.Diagnostics() {
		logger.Warn("theme diagnostic", "theme", r.Name(), "rule", d.RuleIndex, "field", d.Field, "err", d.Err)
	}
}

func configureLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if flagVerbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	logger.Debug("config loaded", "file", config.GetConfigFile(), "db", cfg.DBPath, "mode", cfg.ColorMode)
}
