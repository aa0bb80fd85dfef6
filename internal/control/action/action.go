// Package action holds the actions that key bindings resolve to.
package action

// Action is something a key binding can trigger.
// Explain returns a short human-readable description of what Do does; it is
// what help listings show and what gets spoken when help is requested.
type Action interface {
	Do()
	Explain() string
}
