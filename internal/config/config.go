package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/pkg/bar"
)

const configFileName = "etaprogress/config.yaml"

// Config holds the configuration options for the application.
type Config struct {
	Width           int           `yaml:"width"`
	MaxWidth        int           `yaml:"maxWidth"`
	Locale          string        `yaml:"locale,omitempty"`
	EtaEvery        int           `yaml:"etaEvery,omitempty"`
	WindowSize      int           `yaml:"windowSize,omitempty"`
	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`
	Style           *StyleConfig  `yaml:"style,omitempty"`
}

// StyleConfig holds the characters bars are drawn with.
type StyleConfig struct {
	LeftBorder  string `yaml:"leftBorder,omitempty"`
	RightBorder string `yaml:"rightBorder,omitempty"`
	Empty       string `yaml:"empty,omitempty"`
	Full        string `yaml:"full,omitempty"`
	Leading     string `yaml:"leading,omitempty"`
	Half        string `yaml:"half,omitempty"`
	Marker      string `yaml:"marker,omitempty"`
}

// Bar converts the style to the one the renderers draw with.
func (s *StyleConfig) Bar() bar.Style {
	return bar.Style{
		LeftBorder:  s.LeftBorder,
		RightBorder: s.RightBorder,
		Empty:       s.Empty,
		Full:        s.Full,
		Leading:     s.Leading,
		Half:        s.Half,
		Marker:      s.Marker,
	}
}

// Path returns the location GetConfig reads from.
func Path() string {
	return filepath.Join(xdg.ConfigHome, configFileName)
}

// GetConfig reads the configuration file and returns a Config struct.
// If the configuration file does not exist, it returns the default configuration.
func GetConfig() (*Config, error) {
	return Load(Path())
}

// Load reads the configuration at path, falling back to defaults for a
// missing or empty file and for every zero field.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &defaults, nil
		}

		return nil, errors.NewConfigError(err)
	}

	if len(b) == 0 {
		return &defaults, nil
	}

	var cfg Config

	err = yaml.Unmarshal(b, &cfg)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Errorf("parsing %s: %w", path, err))
	}

	styleCfg := zeroOr(cfg.Style, defaults.Style)

	out := &Config{
		Width:           cfg.Width,
		MaxWidth:        cfg.MaxWidth,
		Locale:          zeroOr(cfg.Locale, defaults.Locale),
		EtaEvery:        zeroOr(cfg.EtaEvery, defaults.EtaEvery),
		WindowSize:      zeroOr(cfg.WindowSize, defaults.WindowSize),
		RefreshInterval: zeroOr(cfg.RefreshInterval, defaults.RefreshInterval),
		Style: &StyleConfig{
			LeftBorder:  zeroOr(styleCfg.LeftBorder, defaults.Style.LeftBorder),
			RightBorder: zeroOr(styleCfg.RightBorder, defaults.Style.RightBorder),
			Empty:       zeroOr(styleCfg.Empty, defaults.Style.Empty),
			Full:        zeroOr(styleCfg.Full, defaults.Style.Full),
			Leading:     zeroOr(styleCfg.Leading, defaults.Style.Leading),
			Half:        zeroOr(styleCfg.Half, defaults.Style.Half),
			Marker:      zeroOr(styleCfg.Marker, defaults.Style.Marker),
		},
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}

func DefaultConfig() Config {
	style := bar.DefaultStyle()

	return Config{
		Width:           width,
		MaxWidth:        maxWidth,
		Locale:          locale,
		EtaEvery:        etaEvery,
		WindowSize:      windowSize,
		RefreshInterval: refreshInterval,
		Style: &StyleConfig{
			LeftBorder:  style.LeftBorder,
			RightBorder: style.RightBorder,
			Empty:       style.Empty,
			Full:        style.Full,
			Leading:     style.Leading,
			Half:        style.Half,
			Marker:      style.Marker,
		},
	}
}

// Validate reports the first setting the renderers cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Width < 0:
		return errors.NewConfigError(fmt.Errorf("width must not be negative, got %d", c.Width))
	case c.MaxWidth < 0:
		return errors.NewConfigError(fmt.Errorf("maxWidth must not be negative, got %d", c.MaxWidth))
	case c.EtaEvery < 1:
		return errors.NewConfigError(fmt.Errorf("etaEvery must be at least 1, got %d", c.EtaEvery))
	case c.WindowSize < 2:
		return errors.NewConfigError(fmt.Errorf("windowSize must be at least 2, got %d", c.WindowSize))
	case c.RefreshInterval < 0:
		return errors.NewConfigError(fmt.Errorf("refreshInterval must not be negative, got %s", c.RefreshInterval))
	}

	if _, err := c.Language(); err != nil {
		return errors.NewConfigError(fmt.Errorf("locale %q: %w", c.Locale, err))
	}

	return nil
}

// Language parses the configured locale.
func (c *Config) Language() (language.Tag, error) {
	return language.Parse(c.Locale)
}

// zeroOr returns def if v is the zero value for its type.
func zeroOr[T any](v, def T) T {
	if reflect.ValueOf(v).IsZero() {
		return def
	}

	return v
}
