// Package handlers provides the handler stack that decides which input.Handler
// owns the keyboard, and the generic handlers built on it.
package handlers

import (
	"github.com/emirpasic/gods/v2/stacks/arraystack"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/input"
)

// Stack is the stack of handlers of which only the topmost is active.
//
// Every transition mutates the stack before calling into a handler, so that a
// handler returning an error (or panicking) from OnActivate or OnDeactivate
// never leaves the stack in a shape that disagrees with Count and
// ActiveHandler. The error is returned to the caller unchanged.
//
// A Stack is not safe for concurrent use; it is meant to be driven by a single
// input loop.
type Stack struct {
	handlers *arraystack.Stack[input.Handler]
}

// NewStack returns a pointer to a new, empty Stack.
func NewStack() *Stack {
	return &Stack{
		handlers: arraystack.New[input.Handler](),
	}
}

// Push puts the given handler on top of the stack and activates it.
// Pushing nil does nothing.
// If the activation fails, the handler stays on the stack.
func (s *Stack) Push(h input.Handler) error {
	if h == nil {
		return nil
	}
	s.handlers.Push(h)
	log.Debug().Str("handler", h.Name()).Int("depth", s.Count()).Msg("pushed handler")
	return h.OnActivate()
}

// Pop removes the topmost handler and deactivates it, then reactivates the
// handler that is exposed by the removal, if any.
// Popping an empty stack does nothing.
// If the deactivation fails, the exposed handler is not reactivated.
func (s *Stack) Pop() error {
	popped, ok := s.handlers.Pop()
	if !ok {
		return nil
	}
	log.Debug().Str("handler", popped.Name()).Int("depth", s.Count()).Msg("popped handler")
	if err := popped.OnDeactivate(); err != nil {
		return err
	}
	if exposed, ok := s.handlers.Peek(); ok {
		log.Debug().Str("handler", exposed.Name()).Msg("reactivating exposed handler")
		return exposed.OnActivate()
	}
	return nil
}

// Replace swaps the topmost handler for the given one.
// The replaced handler is deactivated and the one below it is never
// reactivated. On an empty stack this is the same as Push.
// Replacing with nil does nothing and leaves the current handler active.
func (s *Stack) Replace(h input.Handler) error {
	if h == nil {
		return nil
	}
	if replaced, ok := s.handlers.Pop(); ok {
		log.Debug().Str("handler", replaced.Name()).Str("replacement", h.Name()).Msg("replacing handler")
		if err := replaced.OnDeactivate(); err != nil {
			return err
		}
	}
	return s.Push(h)
}

// Clear drops all handlers without calling any of them.
// It is meant for hard resets, not for navigation.
func (s *Stack) Clear() {
	s.handlers.Clear()
	log.Debug().Msg("cleared handler stack")
}

// DeactivateAll empties the stack and deactivates the handler that was on top.
// Handlers below it were already deactivated when they got buried.
func (s *Stack) DeactivateAll() error {
	top, ok := s.handlers.Peek()
	s.handlers.Clear()
	if !ok {
		return nil
	}
	log.Debug().Str("handler", top.Name()).Msg("deactivating all handlers")
	return top.OnDeactivate()
}

// ActiveHandler returns the topmost handler, or nil if the stack is empty.
func (s *Stack) ActiveHandler() input.Handler {
	h, ok := s.handlers.Peek()
	if !ok {
		return nil
	}
	return h
}

// Count returns the number of handlers on the stack.
func (s *Stack) Count() int {
	return s.handlers.Size()
}

// Handlers returns the handlers on the stack, from the bottom to the top.
func (s *Stack) Handlers() []input.Handler {
	lifo := s.handlers.Values()
	result := make([]input.Handler, len(lifo))
	for i, h := range lifo {
		result[len(lifo)-1-i] = h
	}
	return result
}

// Contains returns whether the given handler is anywhere on the stack.
func (s *Stack) Contains(h input.Handler) bool {
	for _, onStack := range s.handlers.Values() {
		if onStack == h {
			return true
		}
	}
	return false
}
