// Package config loads the frozen, process-wide theme/policy configuration.
// It is initialized lazily on first access and is safe for concurrent reads
// thereafter; it is never re-initialized once loaded.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ThemeConfig controls the progress renderer's colors and bar characters.
type ThemeConfig struct {
	BarCompleteChar   string   `toml:"bar_complete_char" yaml:"bar_complete_char"`
	BarIncompleteChar string   `toml:"bar_incomplete_char" yaml:"bar_incomplete_char"`
	BarGradient       []string `toml:"bar_gradient" yaml:"bar_gradient"`
	TextColor         string   `toml:"text_color" yaml:"text_color"`
	BorderColor       string   `toml:"border_color" yaml:"border_color"`
	TitleColor        string   `toml:"title_color" yaml:"title_color"`
}

// LayoutConfig controls the TUI box-drawing style.
type LayoutConfig struct {
	BoxStyle string `toml:"box_style" yaml:"box_style"` // rounded|single|heavy|double
}

// ProgressConfig groups the progress-renderer-relevant settings.
type ProgressConfig struct {
	Style string      `toml:"style" yaml:"style"` // fancy|plain
	Theme ThemeConfig `toml:"theme" yaml:"theme"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
}

// CopyConfig groups copy-specific defaults.
type CopyConfig struct {
	Reflink string `toml:"reflink" yaml:"reflink"` // auto|never|disable
}

// Config is the top-level, frozen configuration object.
type Config struct {
	Progress ProgressConfig `toml:"progress" yaml:"progress"`
	Copy     CopyConfig     `toml:"copy" yaml:"copy"`
}

func defaultConfig() Config {
	return Config{
		Progress: ProgressConfig{
			Style: "plain",
			Theme: ThemeConfig{
				BarCompleteChar:   "█",
				BarIncompleteChar: "░",
				BarGradient:       []string{"#CABBE9", "#7E6EAC"},
				TextColor:         "reset",
				BorderColor:       "#9E8BCA",
				TitleColor:        "#9E8BCA",
			},
			Layout: LayoutConfig{BoxStyle: "rounded"},
		},
		Copy: CopyConfig{Reflink: "auto"},
	}
}

var (
	once   sync.Once
	loaded Config
)

// Get returns the process-wide Config, loading it from disk on first call.
// Any load failure silently falls back to defaultConfig(), matching the
// original tool's own "never fail to start over a bad config" policy.
func Get() Config {
	once.Do(func() {
		loaded = load()
	})
	return loaded
}

func load() Config {
	cfg := defaultConfig()

	for _, dir := range searchDirs() {
		if tryLoad(filepath.Join(dir, "config.toml"), &cfg, toml.Unmarshal) {
			return cfg
		}
		if tryLoad(filepath.Join(dir, "config.yaml"), &cfg, yaml.Unmarshal) {
			return cfg
		}
	}
	return cfg
}

func searchDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "bcmr"))
	}
	if xdgDir := xdg.ConfigHome; xdgDir != "" {
		candidate := filepath.Join(xdgDir, "bcmr")
		if len(dirs) == 0 || dirs[0] != candidate {
			dirs = append(dirs, candidate)
		}
	}
	return dirs
}

func tryLoad(path string, cfg *Config, unmarshal func([]byte, interface{}) error) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	merged := defaultConfig()
	if err := unmarshal(data, &merged); err != nil {
		return false
	}
	*cfg = merged
	return true
}
