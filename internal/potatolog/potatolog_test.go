package potatolog_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ja-he/narrate/internal/potatolog"
)

func TestMemoryLogReaderWriter(t *testing.T) {
	w := &potatolog.MemoryLogReaderWriter{}
	logger := zerolog.New(w)

	logger.Debug().Msg("quiet")
	logger.Warn().Str("sprite", "x").Msg("loud")
	logger.Error().Msg("louder")

	t.Run("Get", func(t *testing.T) {
		entries := w.Get()
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[1]["sprite"] != "x" {
			t.Errorf("expected field 'sprite' to be 'x', got '%v'", entries[1]["sprite"])
		}
	})

	t.Run("AtLeast", func(t *testing.T) {
		entries := w.AtLeast(zerolog.WarnLevel)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0][zerolog.MessageFieldName] != "loud" {
			t.Errorf("expected 'loud' first, got '%v'", entries[0][zerolog.MessageFieldName])
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := w.Write([]byte("not json")); err == nil {
			t.Error("expected an error for invalid input")
		}
		if len(w.Get()) != 3 {
			t.Error("expected invalid input not to be logged")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		w.Reset()
		if len(w.Get()) != 0 {
			t.Error("expected empty log after reset")
		}
	})
}
