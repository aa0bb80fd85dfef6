package handlers

import (
	"fmt"

	"github.com/ja-he/narrate/internal/control/action"
	"github.com/ja-he/narrate/internal/input"
)

// Hotkeys is a handler for key sequences that should work regardless of what
// is on the stack, e.g. "repeat last utterance". It is usually the background
// handler of a Router, but can be pushed like any other handler.
type Hotkeys struct {
	name string
	tree *input.Tree
}

// NewHotkeys returns a pointer to a new Hotkeys handler for the given
// mappings, or an error if any keyspec is invalid.
func NewHotkeys(name string, mappings map[input.Keyspec]action.Action) (*Hotkeys, error) {
	tree, err := input.ConstructInputTree(mappings)
	if err != nil {
		return nil, fmt.Errorf("could not construct hotkeys '%s': %w", name, err)
	}
	return &Hotkeys{name: name, tree: tree}, nil
}

func (h *Hotkeys) Name() string { return h.name }

// CapturesAllInput returns whether a partial sequence is pending.
func (h *Hotkeys) CapturesAllInput() bool { return h.tree.CapturesInput() }

func (h *Hotkeys) GetHelp() []input.HelpEntry { return input.HelpEntries(h.tree.GetHelp()) }

func (h *Hotkeys) Tick() {}

func (h *Hotkeys) HandleKeyDown(key input.Key) bool { return h.tree.ProcessInput(key) }

func (h *Hotkeys) OnActivate() error { return nil }

// OnDeactivate abandons any partial sequence.
func (h *Hotkeys) OnDeactivate() error {
	h.tree.Reset()
	return nil
}
