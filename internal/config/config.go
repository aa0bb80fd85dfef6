package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/narrate/internal/input"
)

// Config is the configuration data as present in a config file at
// '${NARRATE_HOME}/config.yaml'.
type Config struct {
	Search     Search          `yaml:"search"`
	Speech     Speech          `yaml:"speech"`
	Keys       input.KeyConfig `yaml:"keys"`
	Stylesheet Stylesheet      `yaml:"stylesheet"`
}

// Search configures the type-ahead search of menus.
type Search struct {
	// Timeout is the inactivity after which typing starts a new query.
	// For format see time.ParseDuration.
	Timeout string `yaml:"timeout"`
}

// Speech configures what is spoken.
type Speech struct {
	// Sprites maps sprite names to the text spoken in their place, in addition
	// to the built-in ones. An empty text silences a sprite.
	Sprites map[string]string `yaml:"sprites"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal   Styling `yaml:"normal"`
	Selected Styling `yaml:"selected"`
	Status   Styling `yaml:"status"`
	Warning  Styling `yaml:"warning"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// SearchTimeout returns the configured search timeout.
func (c Config) SearchTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid search timeout '%s': %w", c.Search.Timeout, err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("search timeout '%s' is not positive", c.Search.Timeout)
	}
	return timeout, nil
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	defaultConfig := Default(defaultTheme)

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	if _, err := result.SearchTimeout(); err != nil {
		return defaultConfig, err
	}

	return result, nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	if augment.Search.Timeout != "" {
		result.Search.Timeout = augment.Search.Timeout
	}

	result.Speech.Sprites = make(map[string]string, len(base.Speech.Sprites)+len(augment.Speech.Sprites))
	for name, spoken := range base.Speech.Sprites {
		result.Speech.Sprites[name] = spoken
	}
	for name, spoken := range augment.Speech.Sprites {
		result.Speech.Sprites[name] = spoken
	}

	// key maps are replaced as a whole so that defaults can be unbound
	if len(augment.Keys.Menu) > 0 {
		result.Keys.Menu = augment.Keys.Menu
	}
	if len(augment.Keys.Global) > 0 {
		result.Keys.Global = augment.Keys.Global
	}

	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)

	return result
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.Selected.overwriteIfDefined(augment.Selected)
	result.Status.overwriteIfDefined(augment.Status)
	result.Warning.overwriteIfDefined(augment.Warning)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		s.Style = &FontStyle{
			Bold:       augment.Style.Bold,
			Italic:     augment.Style.Italic,
			Underlined: augment.Style.Underlined,
		}
	}
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)
