package speech_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/potatolog"
	"github.com/ja-he/narrate/internal/speech"
)

// captureLog redirects the global logger into memory for the duration of the
// test.
func captureLog(t *testing.T) *potatolog.MemoryLogReaderWriter {
	t.Helper()
	w := &potatolog.MemoryLogReaderWriter{}
	previous := log.Logger
	log.Logger = zerolog.New(w)
	t.Cleanup(func() { log.Logger = previous })
	return w
}

func newDefaultFilter() *speech.Filter {
	table := speech.NewSpriteTable()
	speech.RegisterDefaults(table)
	table.Register("decorative_icon", "")
	return speech.NewFilter(table)
}

func TestFilterForSpeech(t *testing.T) {
	captureLog(t)
	f := newDefaultFilter()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Pipe broken", "Pipe broken"},
		{"plain whitespace", "  a \n\t b  ", "a b"},
		{"whitespace runs", "word1   word2\n\nword3", "word1 word2 word3"},
		{"bold", "<b>Warning</b>", "Warning"},
		{"unpaired tags", "<b>text</color>", "text"},
		{"color tag with value", "<color=#ff0000>red</color> alert", "red alert"},
		{"sprite", "<sprite name=warning>Pipe broken", "warning: Pipe broken"},
		{"sprite double quoted self-closed", `<sprite name="check"/>Built`, "done Built"},
		{"sprite single quoted", `<sprite name='cross' />Build`, "failed Build"},
		{"sprite case insensitive", `<SPRITE NAME=Arrow_Up>Level`, "up Level"},
		{"sprite registered empty", "<sprite name=decorative_icon>text", "text"},
		{"sprite unknown", "<sprite name=sparkles>text", "text"},
		{"sprite in the middle", "Pressure <sprite name=arrow_down> low", "Pressure down low"},
		{"bracket sprite", "[icon_name] some text", "some text"},
		{"bracket sprite in the middle", "some [icon_name] text", "some text"},
		{"link double quoted", `<link="LINK_ID">Click here</link>`, "Click here"},
		{"link single quoted", `See <link='a b'>the docs</link>.`, "See the docs."},
		{"link with markup inside", `<link="x"><b>Open</b></link>`, "Open"},
		{"hotkey", "Open the menu {Hotkey} ctrl+m", "Open the menu"},
		{"hotkey case insensitive", "Build {hotkey}", "Build"},
		{"empty parens left by sprite", "Pressure (<sprite name=decorative_icon>)", "Pressure"},
		{"empty brackets", "Pipe [ ] broken", "Pipe broken"},
		{"nested empty pairs", "Pipe ([ ]) broken", "Pipe broken"},
		{"non-empty parens kept", "Pipe (12 bar)", "Pipe (12 bar)"},
		{"only markup", "<b></b>", ""},
		{"lone bracket", "a [ b", "a [ b"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := f.FilterForSpeech(c.input)
			if result != c.expected {
				t.Errorf("expected '%s' -> '%s', got '%s'", c.input, c.expected, result)
			}
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		for _, c := range cases {
			once := f.FilterForSpeech(c.input)
			twice := f.FilterForSpeech(once)
			if once != twice {
				t.Errorf("filtering '%s' again changed it from '%s' to '%s'", c.input, once, twice)
			}
		}
	})
}

func TestFilterWithoutSprites(t *testing.T) {
	captureLog(t)
	f := speech.NewFilter(nil)

	result := f.FilterForSpeech("<sprite name=warning>Pipe broken")
	if result != "Pipe broken" {
		t.Errorf("expected unknown sprite to vanish, got '%s'", result)
	}
	if f.Sprites().Len() != 0 {
		t.Errorf("expected no sprites, got %d", f.Sprites().Len())
	}
}

func TestUnknownSpriteReporting(t *testing.T) {
	t.Run("once per name", func(t *testing.T) {
		logs := captureLog(t)
		f := newDefaultFilter()

		f.FilterForSpeech("<sprite name=sparkles>a")
		f.FilterForSpeech("<sprite name=SPARKLES>b <sprite name=sparkles>")
		f.FilterForSpeech("<sprite name=flame>c")

		warnings := logs.AtLeast(zerolog.WarnLevel)
		if len(warnings) != 2 {
			t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
		}
		if warnings[0]["sprite"] != "sparkles" {
			t.Errorf("expected first warning about 'sparkles', got '%v'", warnings[0]["sprite"])
		}

		if diff := cmp.Diff([]string{"flame", "sparkles"}, f.Sprites().Unknown()); diff != "" {
			t.Errorf("unexpected unknown sprites (-want +got):\n%s", diff)
		}
	})

	t.Run("closest registered name", func(t *testing.T) {
		logs := captureLog(t)
		f := newDefaultFilter()

		f.FilterForSpeech("<sprite name=warnin>Pipe broken")

		warnings := logs.AtLeast(zerolog.WarnLevel)
		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(warnings))
		}
		if warnings[0]["closest"] != "warning" {
			t.Errorf("expected 'warning' to be suggested, got '%v'", warnings[0]["closest"])
		}
	})

	t.Run("no suggestion if nothing is close", func(t *testing.T) {
		logs := captureLog(t)
		f := newDefaultFilter()

		f.FilterForSpeech("<sprite name=thermometer>hot")

		warnings := logs.AtLeast(zerolog.WarnLevel)
		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(warnings))
		}
		if _, ok := warnings[0]["closest"]; ok {
			t.Errorf("expected no suggestion, got '%v'", warnings[0]["closest"])
		}
	})

	t.Run("known sprites are not reported", func(t *testing.T) {
		logs := captureLog(t)
		f := newDefaultFilter()

		f.FilterForSpeech("<sprite name=info>All good <sprite name=decorative_icon>")

		if warnings := logs.AtLeast(zerolog.WarnLevel); len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})
}

func TestSpriteTable(t *testing.T) {
	table := speech.NewSpriteTable()

	if _, ok := table.Lookup("warning"); ok {
		t.Error("expected lookup on empty table to fail")
	}

	table.Register("Warning", "careful")
	spoken, ok := table.Lookup("WARNING")
	if !ok || spoken != "careful" {
		t.Errorf("expected case-insensitive lookup to yield 'careful', got '%s' (%t)", spoken, ok)
	}

	table.Register("warning", "attention")
	spoken, _ = table.Lookup("warning")
	if spoken != "attention" {
		t.Errorf("expected re-registration to replace, got '%s'", spoken)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", table.Len())
	}
}

func TestProcessWideFilter(t *testing.T) {
	captureLog(t)

	if result := speech.FilterForSpeech("<sprite name=warning>Pipe broken"); result != "warning: Pipe broken" {
		t.Errorf("expected defaults to be registered, got '%s'", result)
	}

	speech.RegisterSprite("process_wide_test_icon", "icon")
	if result := speech.FilterForSpeech("<sprite name=process_wide_test_icon>here"); result != "icon here" {
		t.Errorf("expected registered sprite to be spoken, got '%s'", result)
	}
}
