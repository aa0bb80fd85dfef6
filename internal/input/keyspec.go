package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// ConfigKeyspecToKeys converts full key sequence specification strings (e.g.
// "<space>qw" meaning the SPACE key, then the Q key, then the W key) to the
// appropriate sequence of Keys (or an error, if invalid).
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	specR := []rune(spec)
	keys := make([][]rune, 0)
	specialContext := false

	for pos, r := range specR {
		switch r {

		case '<':
			if specialContext {
				return nil, fmt.Errorf("illegal second opening special context ('<') before previous is closed (pos %d)", pos)
			}
			specialContext = true
			keys = append(keys, []rune{r})

		case '>':
			if !specialContext {
				return nil, fmt.Errorf("illegal closing of special context ('>') while none open (pos %d)", pos)
			}
			specialContext = false
			keys[len(keys)-1] = append(keys[len(keys)-1], r)

		default:
			if specialContext {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
					return nil,
						fmt.Errorf("illegal character '%c' in special context (pos %d)", r, pos)
				}
				keys[len(keys)-1] = append(keys[len(keys)-1], r)
			} else {
				keys = append(keys, []rune{r})
			}

		}
	}
	if specialContext {
		return nil, fmt.Errorf("unclosed special context at end of '%s'", spec)
	}

	result := make([]Key, 0)
	for _, keyIdentifier := range keys {
		if keyIdentifier[0] == '<' {
			key, err := KeyIdentifierToKey(string(keyIdentifier[1 : len(keyIdentifier)-1]))
			if err != nil {
				return nil, fmt.Errorf("error mapping identifier '%s' to key: %w", string(keyIdentifier), err)
			}
			result = append(result, key)
		} else {
			result = append(result, Key{Key: tcell.KeyRune, Ch: keyIdentifier[0]})
		}
	}

	return result, nil
}

// ConfigKeyspecToKey converts a keyspec that must describe exactly one key.
func ConfigKeyspecToKey(spec Keyspec) (Key, error) {
	keys, err := ConfigKeyspecToKeys(spec)
	if err != nil {
		return Key{}, err
	}
	if len(keys) != 1 {
		return Key{}, fmt.Errorf("keyspec '%s' has not exactly one key (but %d)", spec, len(keys))
	}
	return keys[0], nil
}

type namedKey struct {
	identifier string
	key        Key
}

// Identifiers and the keys they stand for. Some tcell keys share a code (e.g.
// <tab> and <c-i>); the first listed identifier is the one keys are described
// by.
var namedKeys = []namedKey{
	{"space", Key{Key: tcell.KeyRune, Ch: ' '}},
	{"cr", Key{Key: tcell.KeyEnter}},
	{"esc", Key{Key: tcell.KeyESC}},
	{"del", Key{Key: tcell.KeyDelete}},
	{"bs", Key{Key: tcell.KeyBackspace2}},
	{"tab", Key{Key: tcell.KeyTab}},
	{"s-tab", Key{Key: tcell.KeyBacktab}},
	{"left", Key{Key: tcell.KeyLeft}},
	{"right", Key{Key: tcell.KeyRight}},
	{"up", Key{Key: tcell.KeyUp}},
	{"down", Key{Key: tcell.KeyDown}},
	{"home", Key{Key: tcell.KeyHome}},
	{"end", Key{Key: tcell.KeyEnd}},
	{"pgup", Key{Key: tcell.KeyPgUp}},
	{"pgdn", Key{Key: tcell.KeyPgDn}},
	{"f1", Key{Key: tcell.KeyF1}},

	{"c-space", Key{Key: tcell.KeyCtrlSpace}},
	{"c-bs", Key{Key: tcell.KeyBackspace}},

	{"c-a", Key{Key: tcell.KeyCtrlA}},
	{"c-b", Key{Key: tcell.KeyCtrlB}},
	{"c-c", Key{Key: tcell.KeyCtrlC}},
	{"c-d", Key{Key: tcell.KeyCtrlD}},
	{"c-e", Key{Key: tcell.KeyCtrlE}},
	{"c-f", Key{Key: tcell.KeyCtrlF}},
	{"c-g", Key{Key: tcell.KeyCtrlG}},
	{"c-h", Key{Key: tcell.KeyCtrlH}},
	{"c-i", Key{Key: tcell.KeyCtrlI}},
	{"c-j", Key{Key: tcell.KeyCtrlJ}},
	{"c-k", Key{Key: tcell.KeyCtrlK}},
	{"c-l", Key{Key: tcell.KeyCtrlL}},
	{"c-m", Key{Key: tcell.KeyCtrlM}},
	{"c-n", Key{Key: tcell.KeyCtrlN}},
	{"c-o", Key{Key: tcell.KeyCtrlO}},
	{"c-p", Key{Key: tcell.KeyCtrlP}},
	{"c-q", Key{Key: tcell.KeyCtrlQ}},
	{"c-r", Key{Key: tcell.KeyCtrlR}},
	{"c-s", Key{Key: tcell.KeyCtrlS}},
	{"c-t", Key{Key: tcell.KeyCtrlT}},
	{"c-u", Key{Key: tcell.KeyCtrlU}},
	{"c-v", Key{Key: tcell.KeyCtrlV}},
	{"c-w", Key{Key: tcell.KeyCtrlW}},
	{"c-x", Key{Key: tcell.KeyCtrlX}},
	{"c-y", Key{Key: tcell.KeyCtrlY}},
	{"c-z", Key{Key: tcell.KeyCtrlZ}},
}

var (
	keysByIdentifier = map[string]Key{}
	identifiersByKey = map[Key]string{}
)

func init() {
	for _, nk := range namedKeys {
		keysByIdentifier[nk.identifier] = nk.key
		if _, taken := identifiersByKey[nk.key]; !taken {
			identifiersByKey[nk.key] = nk.identifier
		}
	}
}

// KeyIdentifierToKey converts the given special identifier to the appropriate
// key (or an error, if invalid).
func KeyIdentifierToKey(identifier string) (Key, error) {
	key, ok := keysByIdentifier[strings.ToLower(identifier)]
	if !ok {
		return Key{}, fmt.Errorf("no mapping present for identifier '%s'", identifier)
	}
	return key, nil
}

// ToConfigIdentifierString converts the given key to its configuration
// identfier.
func ToConfigIdentifierString(k Key) string {
	identifier, ok := identifiersByKey[k]
	if ok {
		return "<" + identifier + ">"
	} else if k.Key == tcell.KeyRune {
		return string(k.Ch)
	} else {
		panic(fmt.Sprintf("undescribable key %s", k.ToDebugString()))
	}
}
