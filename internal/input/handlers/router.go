package handlers

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/input"
)

// Router feeds input to the active handler of a Stack and lets a background
// handler (e.g. global hotkeys) see the keys the active handler neither
// consumes nor captures.
type Router struct {
	stack      *Stack
	background input.Handler
}

// NewRouter returns a router over the given stack.
// The background handler may be nil.
func NewRouter(stack *Stack, background input.Handler) *Router {
	return &Router{
		stack:      stack,
		background: background,
	}
}

// HandleKeyDown passes the key to the active handler and, if that does not
// consume it and does not capture all input, to the background handler.
// Returns whether any handler consumed the key.
func (r *Router) HandleKeyDown(key input.Key) bool {
	active := r.stack.ActiveHandler()
	if active != nil {
		if active.HandleKeyDown(key) {
			return true
		}
		if active.CapturesAllInput() {
			log.Trace().Str("handler", active.Name()).Str("key", key.ToDebugString()).Msg("key dropped by capturing handler")
			return false
		}
	}
	if r.background != nil {
		return r.background.HandleKeyDown(key)
	}
	return false
}

// Tick ticks the active handler, then the background handler.
func (r *Router) Tick() {
	if active := r.stack.ActiveHandler(); active != nil {
		active.Tick()
	}
	if r.background != nil {
		r.background.Tick()
	}
}

// Help returns the help applicable right now: that of the active handler,
// followed by the background help unless the active handler captures all
// input.
func (r *Router) Help() []input.HelpEntry {
	var result []input.HelpEntry
	active := r.stack.ActiveHandler()
	if active != nil {
		result = append(result, active.GetHelp()...)
		if active.CapturesAllInput() {
			return result
		}
	}
	if r.background != nil {
		result = append(result, r.background.GetHelp()...)
	}
	return result
}

// Stack returns the stack this router routes to.
func (r *Router) Stack() *Stack {
	return r.stack
}
