package action

// Simple implements the Action interface.
// It models an action as a func() which is called on Do and a fixed or
// computed explanation.
type Simple struct {
	action  func()
	explain func() string
}

// Do performs this simple action.
func (a *Simple) Do() {
	if a.action != nil {
		a.action()
	}
}

// Explain returns the explanation for this simple action's Do member.
func (a *Simple) Explain() string {
	if a.explain == nil {
		return ""
	}
	return a.explain()
}

// NewSimple returns a pointer to a new simple action, which stores the given
// action function and the given explainer to use when prompted with Do or
// Explain respectively.
func NewSimple(explainer func() string, action func()) *Simple {
	return &Simple{
		action:  action,
		explain: explainer,
	}
}

// Explained returns a simple action with a constant explanation.
func Explained(explanation string, action func()) *Simple {
	return NewSimple(func() string { return explanation }, action)
}
