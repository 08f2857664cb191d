package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/viper"

	"github.com/jask/taskboard/internal/ui/table"
)

// EnvPrefix prefixes every environment override, e.g. TASKBOARD_DATABASE_PATH.
const EnvPrefix = "TASKBOARD"

// UI modes.
const (
	ModeTUI   = "tui"
	ModePlain = "plain"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds the log file settings. An empty path disables logging.
type LogConfig struct {
	Path   string `mapstructure:"path"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Mode         string `mapstructure:"mode"`
	Separator    string `mapstructure:"separator"`
	TitleFill    string `mapstructure:"title_fill"`
	OverflowFill string `mapstructure:"overflow_fill"`
}

// DefaultPath is where the config file lives unless TASKBOARD_CONFIG
// points elsewhere.
func DefaultPath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "taskboard", "config.toml")
}

// New returns a viper instance with defaults and env overrides set up,
// pointed at path (or DefaultPath when empty). Callers may bind flags on
// it before calling Load.
func New(path string) *viper.Viper {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "taskboard", "taskboard.db"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "taskboard", "taskboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ui.mode", ModeTUI)
	v.SetDefault("ui.separator", "|")
	v.SetDefault("ui.title_fill", "-")
	v.SetDefault("ui.overflow_fill", ".")

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the config file when present and decodes the result. A
// missing file is not an error; a malformed one is.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports settings the board cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("config: database.path is empty")
	}
	switch c.UI.Mode {
	case ModeTUI, ModePlain:
	default:
		return fmt.Errorf("config: ui.mode %q: want %s or %s", c.UI.Mode, ModeTUI, ModePlain)
	}
	if !oneCell(c.UI.TitleFill) {
		return fmt.Errorf("config: ui.title_fill %q: want a single one-cell character", c.UI.TitleFill)
	}
	if !oneCell(c.UI.OverflowFill) {
		return fmt.Errorf("config: ui.overflow_fill %q: want a single one-cell character", c.UI.OverflowFill)
	}
	if c.UI.Separator == "" {
		return errors.New("config: ui.separator is empty")
	}
	return nil
}

func oneCell(s string) bool {
	return utf8.RuneCountInString(s) == 1 && ansi.StringWidth(s) == 1
}

// TableStyle is the table style described by the ui settings.
func (u UIConfig) TableStyle() table.Style {
	s := table.Style{Separator: u.Separator}
	s.TitleFill, _ = utf8.DecodeRuneInString(u.TitleFill)
	s.OverflowFill, _ = utf8.DecodeRuneInString(u.OverflowFill)
	return s
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("ui.mode", cfg.UI.Mode)
	v.Set("ui.separator", cfg.UI.Separator)
	v.Set("ui.title_fill", cfg.UI.TitleFill)
	v.Set("ui.overflow_fill", cfg.UI.OverflowFill)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
