package input

import "errors"

// Keyspec is a key sequence as written in configuration, e.g. "<c-a>x".
type Keyspec string

// Actionspec names an action a handler knows how to perform, e.g. "next".
type Actionspec string

// KeyConfig is the key binding configuration as present in a config file.
type KeyConfig struct {
	Menu   map[Keyspec]Actionspec `yaml:"menu"`
	Global map[Keyspec]Actionspec `yaml:"global"`
}

// ErrUnknownActionspec is returned (wrapped) when a key is bound to an
// actionspec the handler does not know.
var ErrUnknownActionspec = errors.New("unknown actionspec")
