// Package search implements type-ahead search over lists that are owned by
// someone else.
package search

import (
	"strings"
	"time"
	"unicode"

	"github.com/emirpasic/gods/v2/lists/arraylist"
)

// DefaultTimeout is the inactivity after which typing starts a new query
// instead of extending the current one.
const DefaultTimeout = 1500 * time.Millisecond

// What the last buffer edit means for the cursor on the next Search.
type pendingEdit int

const (
	editNone pendingEdit = iota
	editChanged
	editRepeated
)

// TypeAhead holds the state of an incremental search over a list: the typed
// characters, the indices of the matching items and a cursor into those.
//
// Items are never stored; every Search is given the item count and a label
// lookup, so the list may change between calls.
//
// Typing the same character repeatedly cycles through the items matching that
// single character instead of searching for the literal repetition.
type TypeAhead struct {
	clock   func() time.Time
	timeout time.Duration

	buffer   *arraylist.List[rune]
	lastChar time.Time
	pending  pendingEdit

	results []int
	cursor  int
	active  bool
}

// NewTypeAhead returns a pointer to a new, inactive TypeAhead.
// A nil clock means time.Now; a non-positive timeout means DefaultTimeout.
func NewTypeAhead(clock func() time.Time, timeout time.Duration) *TypeAhead {
	if clock == nil {
		clock = time.Now
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TypeAhead{
		clock:   clock,
		timeout: timeout,
		buffer:  arraylist.New[rune](),
		cursor:  -1,
	}
}

// AddChar appends the case-folded rune to the buffer.
// If the previous character is older than the timeout, the buffer is emptied
// first. Matching is not re-run; call Search afterwards.
func (s *TypeAhead) AddChar(r rune) {
	now := s.clock()
	if !s.lastChar.IsZero() && now.Sub(s.lastChar) > s.timeout {
		s.buffer.Clear()
	}
	s.lastChar = now

	r = unicode.ToLower(r)
	if !s.buffer.Empty() && s.consistsOnlyOf(r) {
		s.pending = editRepeated
	} else {
		s.pending = editChanged
	}
	s.buffer.Add(r)
}

// RemoveChar removes the last rune of the buffer, if any.
func (s *TypeAhead) RemoveChar() {
	if s.buffer.Empty() {
		return
	}
	s.buffer.Remove(s.buffer.Size() - 1)
	s.pending = editChanged
}

// Clear resets the search completely, making it inactive.
func (s *TypeAhead) Clear() {
	s.buffer.Clear()
	s.pending = editNone
	s.results = nil
	s.cursor = -1
	s.active = false
}

// Search matches the items 0..itemCount-1 against the buffer.
// An item matches if the buffer is a case-insensitive prefix of any of the
// whitespace-separated words of its label; items with empty labels never
// match.
//
// After a typed character the cursor is put on the first match, or, if the
// character repeated all previous ones, on the match following the previously
// selected item (wrapping). Without an intervening edit (e.g. when the list
// changed) the selected item is kept if it still matches.
//
// Searching with an empty buffer makes the search inactive.
func (s *TypeAhead) Search(itemCount int, labelOf func(int) string) {
	previous := s.SelectedOriginalIndex()
	edit := s.pending
	s.pending = editNone

	query := s.query()
	if query == "" {
		s.Clear()
		return
	}

	s.active = true
	s.results = s.results[:0]
	for i := 0; i < itemCount; i++ {
		label := labelOf(i)
		if label == "" {
			continue
		}
		if matchesWordStart(label, query) {
			s.results = append(s.results, i)
		}
	}

	if len(s.results) == 0 {
		s.cursor = -1
		return
	}

	switch edit {
	case editRepeated:
		s.cursor = 0
		for pos, original := range s.results {
			if original > previous {
				s.cursor = pos
				break
			}
		}
	case editNone:
		s.cursor = 0
		for pos, original := range s.results {
			if original == previous {
				s.cursor = pos
				break
			}
		}
	default:
		s.cursor = 0
	}
}

// NavigateResults moves the cursor forward (direction > 0) or backward
// (direction < 0) by one result, wrapping around at either end.
func (s *TypeAhead) NavigateResults(direction int) {
	n := len(s.results)
	if n == 0 || direction == 0 {
		return
	}
	switch {
	case s.cursor < 0 && direction > 0:
		s.cursor = 0
	case s.cursor < 0:
		s.cursor = n - 1
	case direction > 0:
		s.cursor = (s.cursor + 1) % n
	default:
		s.cursor = (s.cursor - 1 + n) % n
	}
}

// JumpToFirstResult puts the cursor on the first result, if any.
func (s *TypeAhead) JumpToFirstResult() {
	if len(s.results) > 0 {
		s.cursor = 0
	}
}

// JumpToLastResult puts the cursor on the last result, if any.
func (s *TypeAhead) JumpToLastResult() {
	if len(s.results) > 0 {
		s.cursor = len(s.results) - 1
	}
}

// Buffer returns the typed (case-folded) characters.
func (s *TypeAhead) Buffer() string {
	return string(s.buffer.Values())
}

// HasBuffer returns whether any characters are typed.
func (s *TypeAhead) HasBuffer() bool {
	return !s.buffer.Empty()
}

// IsSearchActive returns whether a search was run since the last Clear, even
// if it found nothing.
func (s *TypeAhead) IsSearchActive() bool {
	return s.active
}

// ResultCount returns the number of matching items.
func (s *TypeAhead) ResultCount() int {
	return len(s.results)
}

// Results returns the indices of the matching items in ascending order.
func (s *TypeAhead) Results() []int {
	result := make([]int, len(s.results))
	copy(result, s.results)
	return result
}

// SelectedOriginalIndex returns the item index the cursor is on, or -1.
func (s *TypeAhead) SelectedOriginalIndex() int {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return -1
	}
	return s.results[s.cursor]
}

// query is what gets matched: the buffer, or a single rune if the buffer is
// just that rune repeated.
func (s *TypeAhead) query() string {
	runes := s.buffer.Values()
	if len(runes) > 1 && s.consistsOnlyOf(runes[0]) {
		return string(runes[0])
	}
	return string(runes)
}

func (s *TypeAhead) consistsOnlyOf(r rune) bool {
	for _, c := range s.buffer.Values() {
		if c != r {
			return false
		}
	}
	return true
}

// matchesWordStart returns whether query is a prefix of the label starting at
// one of its words. For queries without whitespace this is a prefix match on
// any single word.
func matchesWordStart(label, query string) bool {
	words := strings.Fields(strings.ToLower(label))
	for i := range words {
		if strings.HasPrefix(strings.Join(words[i:], " "), query) {
			return true
		}
	}
	return false
}
