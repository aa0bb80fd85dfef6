package config

import (
	"github.com/ja-he/narrate/internal/input"
	"github.com/ja-he/narrate/internal/input/handlers"
	"github.com/ja-he/narrate/internal/search"
)

// Default returns the default configuration with the colorscheme of the given
// type (light or dark). Anything but Light is taken to mean Dark.
func Default(colorschemeType ColorschemeType) Config {
	menuKeys := make(map[input.Keyspec]input.Actionspec, len(handlers.DefaultMenuKeys))
	for keyspec, actionspec := range handlers.DefaultMenuKeys {
		menuKeys[keyspec] = actionspec
	}

	return Config{
		Search: Search{
			Timeout: search.DefaultTimeout.String(),
		},
		Speech: Speech{
			Sprites: map[string]string{},
		},
		Keys: input.KeyConfig{
			Menu: menuKeys,
			Global: map[input.Keyspec]input.Actionspec{
				"<c-r>": "repeat",
				"<c-s>": "silence",
				"<f1>":  "help",
				"<c-q>": "quit",
			},
		},
		Stylesheet: defaultStylesheet(colorschemeType),
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Light {
		return Stylesheet{
			Normal:   Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			Selected: Styling{Fg: "#000000", Bg: "#ccebff", Style: &FontStyle{Bold: true}},
			Status:   Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			Warning:  Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
		}
	}
	return Stylesheet{
		Normal:   Styling{Fg: "#d0d0d0", Bg: "#202020", Style: &FontStyle{}},
		Selected: Styling{Fg: "#202020", Bg: "#a0c0ff", Style: &FontStyle{Bold: true}},
		Status:   Styling{Fg: "#ffffff", Bg: "#404060", Style: &FontStyle{}},
		Warning:  Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
	}
}
