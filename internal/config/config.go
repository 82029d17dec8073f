package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/marcus/genie/pkg/overlay"
)

const configFile = ".genie/config.json"

// DefaultTheme is used when no theme is configured or the configured name
// is unknown.
const DefaultTheme = "dark"

// DefaultLogLevel is used when no log level is configured.
const DefaultLogLevel = "info"

// MaxPaletteHistory caps how many palette entries are kept.
const MaxPaletteHistory = 20

// Config is the persisted CLI state under .genie/config.json. The engine
// itself keeps no files; everything here belongs to the calc and demo
// commands.
type Config struct {
	Theme          string   `json:"theme,omitempty"`
	RootFontPx     int      `json:"root_font_px,omitempty"`
	ReducedMotion  bool     `json:"reduced_motion,omitempty"`
	DisableMouse   bool     `json:"disable_mouse,omitempty"`
	LogLevel       string   `json:"log_level,omitempty"`
	PaletteHistory []string `json:"palette_history,omitempty"`
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetTheme sets the default overlay theme
func SetTheme(baseDir string, name string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.Theme = name
	return Save(baseDir, cfg)
}

// GetTheme returns the configured theme name, falling back to DefaultTheme
// when unset or unknown
func GetTheme(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	if _, ok := overlay.LookupTheme(cfg.Theme); !ok {
		return DefaultTheme, nil
	}
	return cfg.Theme, nil
}

// SetRootFontPx sets the root font size used for rem and em dimensions
func SetRootFontPx(baseDir string, px int) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.RootFontPx = px
	return Save(baseDir, cfg)
}

// GetRootFontPx returns the configured root font size, falling back to the
// engine default for zero or negative values
func GetRootFontPx(baseDir string) (int, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return 0, err
	}
	if cfg.RootFontPx <= 0 {
		return overlay.DefaultRootFontPx, nil
	}
	return cfg.RootFontPx, nil
}

// SetReducedMotion sets whether overlays skip animation
func SetReducedMotion(baseDir string, reduced bool) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.ReducedMotion = reduced
	return Save(baseDir, cfg)
}

// GetReducedMotion returns whether overlays skip animation
func GetReducedMotion(baseDir string) (bool, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return false, err
	}
	return cfg.ReducedMotion, nil
}

// SetMouseCapture sets whether the demo captures mouse events. Stored
// inverted so the zero-value config keeps capture on.
func SetMouseCapture(baseDir string, enabled bool) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.DisableMouse = !enabled
	return Save(baseDir, cfg)
}

// GetMouseCapture returns whether the demo captures mouse events
func GetMouseCapture(baseDir string) (bool, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return false, err
	}
	return !cfg.DisableMouse, nil
}

// SetLogLevel sets the CLI log level
func SetLogLevel(baseDir string, level string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.LogLevel = level
	return Save(baseDir, cfg)
}

// GetLogLevel returns the configured log level, falling back to
// DefaultLogLevel when unset
func GetLogLevel(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	if cfg.LogLevel == "" {
		return DefaultLogLevel, nil
	}
	return cfg.LogLevel, nil
}

// AddPaletteEntry records a palette command at the front of the history,
// deduplicating and trimming to MaxPaletteHistory
func AddPaletteEntry(baseDir string, entry string) error {
	if entry == "" {
		return nil
	}

	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	history := []string{entry}
	for _, e := range cfg.PaletteHistory {
		if e == entry {
			continue
		}
		history = append(history, e)
	}
	if len(history) > MaxPaletteHistory {
		history = history[:MaxPaletteHistory]
	}

	cfg.PaletteHistory = history
	return Save(baseDir, cfg)
}

// GetPaletteHistory returns palette entries, most recent first
func GetPaletteHistory(baseDir string) ([]string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	return cfg.PaletteHistory, nil
}

// ClearPaletteHistory removes all palette entries
func ClearPaletteHistory(baseDir string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	cfg.PaletteHistory = nil
	return Save(baseDir, cfg)
}
