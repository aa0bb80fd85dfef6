package speech

import (
	"fmt"
	"sync"
)

// Device is a speech synthesizer.
type Device interface {
	// Speak speaks the given text. With interrupt set, anything currently
	// being spoken is cut off; otherwise the text is queued behind it.
	Speak(text string, interrupt bool) error
	// Stop silences the device and drops anything queued.
	Stop() error
}

// Speaker is the single way text reaches a Device. Everything it is given is
// filtered for speech first, and text that filters down to nothing is not
// spoken.
type Speaker struct {
	device Device
	filter *Filter

	mtx  sync.Mutex
	last string
}

// NewSpeaker returns a pointer to a new Speaker for the given device.
// A nil filter means the process-wide one.
func NewSpeaker(device Device, filter *Filter) *Speaker {
	if filter == nil {
		filter = defaultFilter
	}
	return &Speaker{
		device: device,
		filter: filter,
	}
}

// Say speaks the text, interrupting anything currently spoken.
func (s *Speaker) Say(text string) error {
	return s.speak(text, true)
}

// Queue speaks the text after anything currently spoken.
func (s *Speaker) Queue(text string) error {
	return s.speak(text, false)
}

// Silence stops the device.
func (s *Speaker) Silence() error {
	if err := s.device.Stop(); err != nil {
		return fmt.Errorf("could not silence speech device: %w", err)
	}
	return nil
}

// Repeat speaks the last utterance again, interrupting.
// Nothing happens if nothing was spoken yet.
func (s *Speaker) Repeat() error {
	last := s.Last()
	if last == "" {
		return nil
	}
	if err := s.device.Speak(last, true); err != nil {
		return fmt.Errorf("could not repeat '%s': %w", last, err)
	}
	return nil
}

// Last returns the last (filtered) text handed to the device.
func (s *Speaker) Last() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.last
}

// Filter returns the filter the speaker applies.
func (s *Speaker) Filter() *Filter {
	return s.filter
}

func (s *Speaker) speak(text string, interrupt bool) error {
	filtered := s.filter.FilterForSpeech(text)
	if filtered == "" {
		return nil
	}

	s.mtx.Lock()
	s.last = filtered
	s.mtx.Unlock()

	if err := s.device.Speak(filtered, interrupt); err != nil {
		return fmt.Errorf("could not speak '%s': %w", filtered, err)
	}
	return nil
}
