// Package potatolog keeps zerolog JSON output in memory so it can be shown
// and inspected by the program itself.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter.
var GlobalMemoryLogReaderWriter = MemoryLogReaderWriter{
	mtx: sync.Mutex{},
	log: []LogEntry{},
}

// MemoryLogReaderWriter is a simple in-memory log reader and writer.
type MemoryLogReaderWriter struct {
	mtx sync.Mutex
	log []LogEntry
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	return len(p), nil
}

// Get returns a copy of the log.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	result := make([]LogEntry, len(w.log))
	copy(result, w.log)
	return result
}

// AtLeast returns the entries at the given level or above, oldest first.
// Entries without a (known) level are skipped.
func (w *MemoryLogReaderWriter) AtLeast(level zerolog.Level) []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	var result []LogEntry
	for _, entry := range w.log {
		levelStr, ok := entry[zerolog.LevelFieldName].(string)
		if !ok {
			continue
		}
		entryLevel, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			continue
		}
		if entryLevel >= level {
			result = append(result, entry)
		}
	}
	return result
}

// Reset drops all entries.
func (w *MemoryLogReaderWriter) Reset() {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = []LogEntry{}
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
	AtLeast(level zerolog.Level) []LogEntry
}
