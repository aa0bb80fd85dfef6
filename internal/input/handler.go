package input

// Handler is anything that can own the keyboard while it is on top of a
// handler stack.
//
// OnActivate is called every time the handler becomes the top of the stack
// (including when it is re-exposed by a pop) and OnDeactivate every time it
// stops being the top. Errors returned from either are not handled by the
// stack; they are passed on to whoever caused the transition.
type Handler interface {

	// Name returns the display name of this handler.
	Name() string

	// CapturesAllInput returns whether this handler gobbles all input, i.E.
	// whether background handlers should be denied keys it does not consume.
	CapturesAllInput() bool

	// GetHelp returns the help entries for this handler, in presentation order.
	GetHelp() []HelpEntry

	// Tick is called once per host loop iteration while the handler is active.
	Tick()

	// HandleKeyDown attempts to process the given key.
	// Returns whether the key was consumed.
	HandleKeyDown(key Key) bool

	OnActivate() error
	OnDeactivate() error
}
