package handlers

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/control/action"
	"github.com/ja-he/narrate/internal/input"
	"github.com/ja-he/narrate/internal/search"
	"github.com/ja-he/narrate/internal/speech"
)

// MenuItem is a single entry of a Menu.
// The label may contain markup; it is filtered before being searched or
// spoken.
type MenuItem struct {
	Label  string
	Action action.Action
}

// MenuParams are the parameters for NewMenu.
type MenuParams struct {
	Name    string
	Items   []MenuItem
	Speaker *speech.Speaker

	// Search is the type-ahead search the menu uses; nil means a new one with
	// the default timeout.
	Search *search.TypeAhead

	// Keys binds keys to the menu's actionspecs; nil means DefaultMenuKeys.
	Keys map[input.Keyspec]input.Actionspec

	// CapturesAll denies background handlers the keys the menu does not use.
	CapturesAll bool

	// OnClose is what the "close" action does, typically popping the menu off
	// its stack.
	OnClose func()
}

// DefaultMenuKeys are the bindings a menu has if none are configured.
var DefaultMenuKeys = map[input.Keyspec]input.Actionspec{
	"<up>":    "previous",
	"<down>":  "next",
	"<home>":  "first",
	"<end>":   "last",
	"<cr>":    "activate",
	"<esc>":   "close",
	"<bs>":    "backspace",
	"<tab>":   "next-result",
	"<s-tab>": "previous-result",
	"<c-l>":   "clear-search",
}

// Menu is a handler for a list of items that can be moved through with keys
// and searched by typing.
//
// Runes that are not bound to an action are typed into the menu's type-ahead
// search and the cursor follows the selected result.
type Menu struct {
	name        string
	items       []MenuItem
	labels      []string
	cursor      int
	capturesAll bool

	speaker  *speech.Speaker
	search   *search.TypeAhead
	mappings map[input.Key]action.Action
	onClose  func()
}

// NewMenu returns a pointer to a new Menu, or an error if a key binding is
// invalid.
func NewMenu(params MenuParams) (*Menu, error) {
	if params.Speaker == nil {
		return nil, fmt.Errorf("menu '%s' has no speaker", params.Name)
	}

	m := &Menu{
		name:        params.Name,
		capturesAll: params.CapturesAll,
		speaker:     params.Speaker,
		search:      params.Search,
		onClose:     params.OnClose,
	}
	if m.search == nil {
		m.search = search.NewTypeAhead(nil, search.DefaultTimeout)
	}

	keys := params.Keys
	if keys == nil {
		keys = DefaultMenuKeys
	}
	m.mappings = map[input.Key]action.Action{}
	for keyspec, actionspec := range keys {
		key, err := input.ConfigKeyspecToKey(keyspec)
		if err != nil {
			return nil, fmt.Errorf("could not bind '%s' in menu '%s': %w", keyspec, params.Name, err)
		}
		a, err := m.actionFor(actionspec)
		if err != nil {
			return nil, fmt.Errorf("could not bind '%s' in menu '%s': %w", keyspec, params.Name, err)
		}
		m.mappings[key] = a
	}

	m.setItems(params.Items)
	return m, nil
}

func (m *Menu) actionFor(spec input.Actionspec) (action.Action, error) {
	switch spec {
	case "previous":
		return action.Explained("previous item", func() { m.moveBy(-1) }), nil
	case "next":
		return action.Explained("next item", func() { m.moveBy(1) }), nil
	case "first":
		return action.Explained("first item", func() { m.moveTo(0) }), nil
	case "last":
		return action.Explained("last item", func() { m.moveTo(len(m.items) - 1) }), nil
	case "activate":
		return action.Explained("activate item", m.activate), nil
	case "clear-search":
		return action.Explained("clear search", func() {
			m.search.Clear()
			m.say("search cleared")
		}), nil
	case "close":
		return action.Explained("close menu", func() {
			if m.onClose != nil {
				m.onClose()
			}
		}), nil
	case "backspace":
		return action.Explained("remove last search character", m.backspace), nil
	case "next-result":
		return action.Explained("next search result", func() { m.navigateResults(1) }), nil
	case "previous-result":
		return action.Explained("previous search result", func() { m.navigateResults(-1) }), nil
	case "repeat":
		return action.Explained("repeat last utterance", func() {
			if err := m.speaker.Repeat(); err != nil {
				log.Error().Err(err).Str("handler", m.name).Msg("could not repeat")
			}
		}), nil
	default:
		return nil, fmt.Errorf("'%s': %w", spec, input.ErrUnknownActionspec)
	}
}

// Name returns the name of the menu.
func (m *Menu) Name() string { return m.name }

// CapturesAllInput returns whether the menu was configured to capture all input.
func (m *Menu) CapturesAllInput() bool { return m.capturesAll }

// GetHelp returns the key bindings of the menu, sorted by key.
func (m *Menu) GetHelp() []input.HelpEntry {
	help := input.Help{}
	for k, a := range m.mappings {
		help[input.ToConfigIdentifierString(k)] = a.Explain()
	}
	return input.HelpEntries(help)
}

// Tick does nothing; menus only change on input.
func (m *Menu) Tick() {}

// HandleKeyDown performs the action bound to the key, or types an unbound rune
// into the search.
func (m *Menu) HandleKeyDown(key input.Key) bool {
	if a, ok := m.mappings[key]; ok {
		a.Do()
		return true
	}
	if key.IsRune() {
		m.typeRune(key.Ch)
		return true
	}
	return false
}

// OnActivate announces the menu and its current item.
func (m *Menu) OnActivate() error {
	if err := m.speaker.Say(m.name); err != nil {
		return err
	}
	if m.cursor >= 0 {
		return m.speaker.Queue(m.labels[m.cursor])
	}
	return nil
}

// OnDeactivate abandons any search in progress.
func (m *Menu) OnDeactivate() error {
	m.search.Clear()
	return nil
}

// SetItems replaces the items of the menu. An active search is re-run against
// the new items and keeps its selection where it still matches.
func (m *Menu) SetItems(items []MenuItem) {
	m.setItems(items)
	if m.search.IsSearchActive() {
		m.search.Search(len(m.labels), m.labelOf)
		if selected := m.search.SelectedOriginalIndex(); selected >= 0 {
			m.cursor = selected
		}
	}
}

// Items returns the items of the menu.
func (m *Menu) Items() []MenuItem { return m.items }

// Label returns the filtered label of the item at the given index.
func (m *Menu) Label(i int) string { return m.labelOf(i) }

// Cursor returns the index of the current item, or -1 if the menu is empty.
func (m *Menu) Cursor() int { return m.cursor }

// Search returns the menu's type-ahead search.
func (m *Menu) Search() *search.TypeAhead { return m.search }

func (m *Menu) setItems(items []MenuItem) {
	m.items = items
	m.labels = make([]string, len(items))
	for i, item := range items {
		m.labels[i] = m.speaker.Filter().FilterForSpeech(item.Label)
	}
	switch {
	case len(m.items) == 0:
		m.cursor = -1
	case m.cursor >= len(m.items):
		m.cursor = len(m.items) - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

func (m *Menu) labelOf(i int) string {
	if i < 0 || i >= len(m.labels) {
		return ""
	}
	return m.labels[i]
}

func (m *Menu) moveBy(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	m.moveTo(((m.cursor+delta)%n + n) % n)
}

func (m *Menu) moveTo(i int) {
	if i < 0 || i >= len(m.items) {
		return
	}
	m.cursor = i
	m.say(m.labels[i])
}

func (m *Menu) activate() {
	if m.cursor < 0 {
		return
	}
	item := m.items[m.cursor]
	if item.Action == nil {
		log.Debug().Str("handler", m.name).Str("item", m.labels[m.cursor]).Msg("item has no action")
		return
	}
	item.Action.Do()
}

func (m *Menu) typeRune(r rune) {
	m.search.AddChar(r)
	m.search.Search(len(m.labels), m.labelOf)
	m.followSearch()
}

func (m *Menu) backspace() {
	if !m.search.HasBuffer() {
		return
	}
	m.search.RemoveChar()
	m.search.Search(len(m.labels), m.labelOf)
	if !m.search.IsSearchActive() {
		m.say("search cleared")
		return
	}
	m.followSearch()
}

func (m *Menu) navigateResults(direction int) {
	if m.search.ResultCount() == 0 {
		m.say("no results")
		return
	}
	m.search.NavigateResults(direction)
	m.followSearch()
}

func (m *Menu) followSearch() {
	selected := m.search.SelectedOriginalIndex()
	if selected < 0 {
		m.say(fmt.Sprintf("no match for %s", m.search.Buffer()))
		return
	}
	m.moveTo(selected)
}

// say speaks the text; errors are only logged since actions cannot return
// them.
func (m *Menu) say(text string) {
	if err := m.speaker.Say(text); err != nil {
		log.Error().Err(err).Str("handler", m.name).Msg("could not speak")
	}
}
