package speech

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// LogDevice "speaks" by logging every utterance at info level.
type LogDevice struct{}

// Speak logs the text.
func (LogDevice) Speak(text string, interrupt bool) error {
	log.Info().Str("utterance", text).Bool("interrupt", interrupt).Msg("speaking")
	return nil
}

// Stop logs the silencing.
func (LogDevice) Stop() error {
	log.Info().Msg("silencing")
	return nil
}

// WriterDevice writes every utterance as a line to an io.Writer.
// Interrupting utterances are prefixed with "! ".
type WriterDevice struct {
	mtx sync.Mutex
	w   io.Writer
}

// NewWriterDevice returns a pointer to a new WriterDevice writing to w.
func NewWriterDevice(w io.Writer) *WriterDevice {
	return &WriterDevice{w: w}
}

// Speak writes the text as a line.
func (d *WriterDevice) Speak(text string, interrupt bool) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	prefix := ""
	if interrupt {
		prefix = "! "
	}
	_, err := fmt.Fprintf(d.w, "%s%s\n", prefix, text)
	return err
}

// Stop does nothing, written lines cannot be taken back.
func (d *WriterDevice) Stop() error {
	return nil
}

// Utterance is a single text handed to a Device.
type Utterance struct {
	Text      string
	Interrupt bool
}

// Recorder is a Device that keeps everything it is given in memory.
// Errors set on it are returned by every subsequent call.
type Recorder struct {
	mtx        sync.Mutex
	utterances []Utterance
	stops      int

	SpeakErr error
	StopErr  error
}

// Speak records the utterance.
func (r *Recorder) Speak(text string, interrupt bool) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.SpeakErr != nil {
		return r.SpeakErr
	}
	r.utterances = append(r.utterances, Utterance{Text: text, Interrupt: interrupt})
	return nil
}

// Stop records the silencing.
func (r *Recorder) Stop() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.StopErr != nil {
		return r.StopErr
	}
	r.stops++
	return nil
}

// Utterances returns a copy of everything recorded so far.
func (r *Recorder) Utterances() []Utterance {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	result := make([]Utterance, len(r.utterances))
	copy(result, r.utterances)
	return result
}

// Texts returns the texts of everything recorded so far.
func (r *Recorder) Texts() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	result := make([]string, len(r.utterances))
	for i, u := range r.utterances {
		result[i] = u.Text
	}
	return result
}

// Last returns the last recorded text, or "".
func (r *Recorder) Last() string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if len(r.utterances) == 0 {
		return ""
	}
	return r.utterances[len(r.utterances)-1].Text
}

// Stops returns how often the recorder was stopped.
func (r *Recorder) Stops() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.stops
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.utterances = nil
	r.stops = 0
}
