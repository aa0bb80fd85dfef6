package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key is a single key press as handlers see it.
// Runes are represented by tcell.KeyRune and the rune in Ch; all other keys
// leave Ch zero.
type Key struct {
	Mod tcell.ModMask
	Key tcell.Key
	Ch  rune
}

// RuneKey returns the Key for the given rune.
func RuneKey(r rune) Key {
	return Key{Key: tcell.KeyRune, Ch: r}
}

// IsRune returns whether this key carries a printable rune.
func (k Key) IsRune() bool {
	return k.Key == tcell.KeyRune
}

// ToDebugString returns a representation of the key for logs.
func (k *Key) ToDebugString() string {
	return fmt.Sprintf(
		"(%s (%d),'%s'(%d))",
		tcell.KeyNames[k.Key],
		int(k.Key),
		string(k.Ch),
		int(k.Ch),
	)
}
