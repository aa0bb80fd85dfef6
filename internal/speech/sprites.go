package speech

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"
)

// Unknown sprite names at most this far from a registered one get that name
// suggested in the diagnostics.
const closestSuggestionDistance = 2

// SpriteTable maps sprite names (case-insensitively) to the words spoken in
// their place. An empty spoken text means the sprite is dropped silently.
//
// Registration is expected to happen at startup; lookups may happen at any
// time, including before anything was registered.
type SpriteTable struct {
	mtx     sync.RWMutex
	entries map[string]string

	unknownMtx sync.Mutex
	unknown    map[string]struct{}
}

// NewSpriteTable returns a pointer to a new, empty SpriteTable.
func NewSpriteTable() *SpriteTable {
	return &SpriteTable{
		entries: make(map[string]string),
		unknown: make(map[string]struct{}),
	}
}

// Register sets the spoken text for the named sprite, replacing any previous
// registration.
func (t *SpriteTable) Register(name, spoken string) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.entries[strings.ToLower(name)] = spoken
}

// Lookup returns the spoken text registered for the named sprite.
func (t *SpriteTable) Lookup(name string) (spoken string, ok bool) {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	spoken, ok = t.entries[strings.ToLower(name)]
	return spoken, ok
}

// Len returns the number of registered sprites.
func (t *SpriteTable) Len() int {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return len(t.entries)
}

// Unknown returns the (folded) names of the unregistered sprites encountered
// so far, sorted.
func (t *SpriteTable) Unknown() []string {
	t.unknownMtx.Lock()
	defer t.unknownMtx.Unlock()
	result := make([]string, 0, len(t.unknown))
	for name := range t.unknown {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// reportUnknown logs a warning for the given name, the first time only.
func (t *SpriteTable) reportUnknown(name string) {
	name = strings.ToLower(name)

	t.unknownMtx.Lock()
	_, reported := t.unknown[name]
	t.unknown[name] = struct{}{}
	t.unknownMtx.Unlock()
	if reported {
		return
	}

	event := log.Warn().Str("sprite", name)
	if closest, ok := t.closest(name); ok {
		event = event.Str("closest", closest)
	}
	event.Msg("unknown sprite, stripping it from speech")
}

func (t *SpriteTable) closest(name string) (string, bool) {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	best, bestDistance := "", closestSuggestionDistance+1
	for registered := range t.entries {
		d := levenshtein.ComputeDistance(name, registered)
		if d < bestDistance || (d == bestDistance && registered < best) {
			best, bestDistance = registered, d
		}
	}
	return best, best != ""
}

// RegisterDefaults registers the built-in spoken words for common sprites.
func RegisterDefaults(t *SpriteTable) {
	for name, spoken := range defaultSprites {
		t.Register(name, spoken)
	}
}

var defaultSprites = map[string]string{
	"warning":    "warning:",
	"info":       "info:",
	"crit":       "critical:",
	"check":      "done",
	"cross":      "failed",
	"arrow_up":   "up",
	"arrow_down": "down",
}
