package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"scopetheme/internal/color"
)

type Config struct {
	ThemeName string            `mapstructure:"theme_name"`
	DBPath    string            `mapstructure:"db_path"`
	ColorMode string            `mapstructure:"color_mode"`
	Palette   map[string]string `mapstructure:"palette"`
	LogLevel  string            `mapstructure:"log_level"`
}

var (
	configDir  string
	configFile string
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".scopetheme")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigDir() string {
	return configDir
}

func GetConfigFile() string {
	return configFile
}

// points the package at an explicit config file, e.g. from --config
func SetConfigFile(path string) {
	configFile = path
	configDir = filepath.Dir(path)
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SCOPETHEME")
	v.AutomaticEnv()

	v.SetDefault("theme_name", "")
	v.SetDefault("db_path", filepath.Join(configDir, "themes.db"))
	v.SetDefault("color_mode", color.ModeANSI.String())
	v.SetDefault("log_level", "info")

	return v
}

// loads config from file and SCOPETHEME_ env vars; a missing file means defaults
func LoadConfig() (*Config, error) {
	v := newViper()
	if ConfigExists() {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(configDir, "themes.db")
	}
	if cfg.ColorMode == "" {
		cfg.ColorMode = color.ModeANSI.String()
	}

	if _, err := cfg.Mode(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("theme_name", cfg.ThemeName)
	v.Set("db_path", cfg.DBPath)
	v.Set("color_mode", cfg.ColorMode)
	v.Set("log_level", cfg.LogLevel)
	if len(cfg.Palette) > 0 {
		v.Set("palette", cfg.Palette)
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// returns default config
func GetDefaultConfig() *Config {
	return &Config{
		ThemeName: "",
		DBPath:    filepath.Join(configDir, "themes.db"),
		ColorMode: color.ModeANSI.String(),
		LogLevel:  "info",
	}
}

// updates theme in config file
func UpdateTheme(themeName string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ThemeName = themeName
	return SaveConfig(cfg)
}

// Mode parses the configured colour mode.
func (c *Config) Mode() (color.Mode, error) {
	m, err := color.ParseMode(c.ColorMode)
	if err != nil {
		return color.ModeANSI, fmt.Errorf("invalid color_mode: %w", err)
	}
	return m, nil
}

// ResolvePalette applies palette overrides to the default xterm palette.
func (c *Config) ResolvePalette() (color.Palette, error) {
	p, err := color.DefaultPalette.WithOverrides(c.Palette)
	if err != nil {
		return color.DefaultPalette, fmt.Errorf("invalid palette: %w", err)
	}
	return p, nil
}
