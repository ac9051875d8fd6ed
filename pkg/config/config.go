package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"daylog/pkg/keymaps"
)

// DefaultQuotaBytes matches the storage budget of a browser origin.
const DefaultQuotaBytes = 5 << 20

// EnvPrefix prefixes environment overrides, e.g. DAYLOG_DATABASE.
const EnvPrefix = "DAYLOG"

// Config holds the application configuration
type Config struct {
	Database   string            `mapstructure:"database" json:"database"`
	Driver     string            `mapstructure:"driver" json:"driver"`
	QuotaBytes int64             `mapstructure:"quota_bytes" json:"quota_bytes"`
	LogFile    string            `mapstructure:"log_file" json:"log_file"`
	KeyMap     map[string]string `mapstructure:"keymap" json:"keymap"`
	StylesFile string            `mapstructure:"styles_file" json:"styles_file"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `mapstructure:"border_color" json:"border_color"`
	AccentColor string `mapstructure:"accent_color" json:"accent_color"`

	// Text colors
	NormalTextColor   string `mapstructure:"normal_text_color" json:"normal_text_color"`
	SelectedTextColor string `mapstructure:"selected_text_color" json:"selected_text_color"`
	SelectedBgColor   string `mapstructure:"selected_bg_color" json:"selected_bg_color"`
	ErrorColor        string `mapstructure:"error_color" json:"error_color"`

	// D-Day badge colors
	UrgentColor  string `mapstructure:"urgent_color" json:"urgent_color"`
	WarningColor string `mapstructure:"warning_color" json:"warning_color"`
	NormalColor  string `mapstructure:"normal_color" json:"normal_color"`
	PastColor    string `mapstructure:"past_color" json:"past_color"`
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	return Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "86",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		UrgentColor:       "196",
		WarningColor:      "214",
		NormalColor:       "42",
		PastColor:         "244",
	}
}

// Dir returns the default configuration directory.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "daylog"), nil
}

// Load loads the application configuration from the specified path. An empty
// path selects config.json in Dir. A missing file is created with defaults.
// DAYLOG_* environment variables take precedence over the file.
func Load(configPath string) (Config, Styles, error) {
	configDir, err := Dir()
	if err != nil {
		return Config{}, Styles{}, err
	}
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.json")
	} else {
		configDir = filepath.Dir(configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("database", filepath.Join(configDir, "daylog.db"))
	v.SetDefault("driver", "")
	v.SetDefault("quota_bytes", DefaultQuotaBytes)
	v.SetDefault("log_file", "")
	v.SetDefault("keymap", keymaps.GetDefaultKeyMappings())
	v.SetDefault("styles_file", filepath.Join(configDir, "styles.json"))

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return Config{}, Styles{}, fmt.Errorf("reading %s: %w", configPath, err)
		}
		// If the file doesn't exist, create it with default values
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return Config{}, Styles{}, err
		}
		if err := v.WriteConfigAs(configPath); err != nil {
			return Config{}, Styles{}, fmt.Errorf("writing default config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, Styles{}, err
	}

	styles, err := loadStyles(cfg.StylesFile)
	if err != nil {
		return cfg, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return cfg, styles, nil
}

// loadStyles loads the application styles from the specified path, falling
// back to DefaultStyles for any color the file leaves out.
func loadStyles(stylesPath string) (Styles, error) {
	defaults := DefaultStyles()

	v := viper.New()
	v.SetConfigFile(stylesPath)
	v.SetConfigType("json")
	for key, value := range styleMap(defaults) {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return defaults, err
		}
		if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
			return defaults, err
		}
		if err := v.WriteConfigAs(stylesPath); err != nil {
			return defaults, err
		}
		return defaults, nil
	}

	var styles Styles
	if err := v.Unmarshal(&styles); err != nil {
		return defaults, err
	}
	return styles, nil
}

func styleMap(s Styles) map[string]string {
	return map[string]string{
		"border_color":        s.BorderColor,
		"accent_color":        s.AccentColor,
		"normal_text_color":   s.NormalTextColor,
		"selected_text_color": s.SelectedTextColor,
		"selected_bg_color":   s.SelectedBgColor,
		"error_color":         s.ErrorColor,
		"urgent_color":        s.UrgentColor,
		"warning_color":       s.WarningColor,
		"normal_color":        s.NormalColor,
		"past_color":          s.PastColor,
	}
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
