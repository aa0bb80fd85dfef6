// Package speech turns markup-laden text into plain speakable text and hands
// it to a speech device.
package speech

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog/log"
)

// markupIntroducers are the characters any markup handled by Filter starts
// with; text without them only needs whitespace normalization.
const markupIntroducers = "<[{"

// The value of name= may be bare or quoted, with the closing quote matching
// the opening one.
var (
	spriteTagPattern     = regexp2.MustCompile(`<sprite\s+name\s*=\s*(["']?)([^"'\s/>]+)\1\s*/?>`, regexp2.IgnoreCase)
	linkPattern          = regexp2.MustCompile(`<link\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)\s*>(.*?)</link\s*>`, regexp2.IgnoreCase|regexp2.Singleline)
	hotkeyPattern        = regexp2.MustCompile(`\{hotkey\}.*`, regexp2.IgnoreCase|regexp2.Singleline)
	tagPattern           = regexp2.MustCompile(`<[^<>]+>`, regexp2.None)
	bracketSpritePattern = regexp2.MustCompile(`\[[A-Za-z_][A-Za-z0-9_\-]*\]\s*`, regexp2.None)
	emptyPairPattern     = regexp2.MustCompile(`\(\s*\)|\[\s*\]`, regexp2.None)
)

// Filter converts markup-tagged strings to text that can be spoken.
// It is safe for concurrent use as long as its SpriteTable is.
type Filter struct {
	sprites *SpriteTable
}

// NewFilter returns a pointer to a new Filter replacing sprites per the given
// table. A nil table means no sprite is known.
func NewFilter(sprites *SpriteTable) *Filter {
	if sprites == nil {
		sprites = NewSpriteTable()
	}
	return &Filter{sprites: sprites}
}

// Sprites returns the table this filter looks sprites up in.
func (f *Filter) Sprites() *SpriteTable {
	return f.sprites
}

// FilterForSpeech returns the speakable form of the given text:
//
//  1. sprite tags become their registered words (unknown ones vanish)
//  2. links become their display text
//  3. a {Hotkey} placeholder and everything after it is dropped
//  4. any other <tag> is dropped, paired or not
//  5. [sprite] shorthands are dropped along with the whitespace after them
//  6. empty () and [] left behind are dropped
//  7. whitespace is collapsed and trimmed
func (f *Filter) FilterForSpeech(text string) string {
	if text == "" {
		return ""
	}
	if !strings.ContainsAny(text, markupIntroducers) {
		return normalizeWhitespace(text)
	}

	text = replace(spriteTagPattern, text, func(m regexp2.Match) string {
		name := m.GroupByNumber(2).String()
		spoken, ok := f.sprites.Lookup(name)
		if !ok {
			f.sprites.reportUnknown(name)
			return ""
		}
		if spoken == "" {
			return ""
		}
		return spoken + " "
	})
	text = replace(linkPattern, text, func(m regexp2.Match) string {
		return m.GroupByNumber(1).String()
	})
	text = replace(hotkeyPattern, text, dropMatch)
	text = replace(tagPattern, text, dropMatch)
	text = replace(bracketSpritePattern, text, dropMatch)
	for {
		stripped := replace(emptyPairPattern, text, dropMatch)
		if stripped == text {
			break
		}
		text = stripped
	}

	return normalizeWhitespace(text)
}

func dropMatch(regexp2.Match) string { return "" }

// replace applies the evaluator to all matches of the pattern. Without a match
// timeout regexp2 does not fail, but should it, the text passes unchanged.
func replace(pattern *regexp2.Regexp, text string, evaluator regexp2.MatchEvaluator) string {
	result, err := pattern.ReplaceFunc(text, evaluator, -1, -1)
	if err != nil {
		log.Error().Err(err).Str("pattern", pattern.String()).Msg("could not apply speech filter pattern")
		return text
	}
	return result
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Sprites is the process-wide sprite table, with the defaults registered.
var Sprites = NewSpriteTable()

var defaultFilter = NewFilter(Sprites)

func init() {
	RegisterDefaults(Sprites)
}

// RegisterSprite registers the spoken text for the named sprite in the
// process-wide table.
func RegisterSprite(name, spoken string) {
	Sprites.Register(name, spoken)
}

// FilterForSpeech filters the text using the process-wide sprite table.
func FilterForSpeech(text string) string {
	return defaultFilter.FilterForSpeech(text)
}
