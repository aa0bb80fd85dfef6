package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/speech"
)

// FilterCommand contains flags for the `filter` command line command, for
// `go-flags` to parse command line args into.
type FilterCommand struct {
	CommonOpts

	Sprites []string `short:"s" long:"sprite" description:"register the spoken text for a sprite (repeatable)" value-name:"<name=spoken>"`
}

// Execute executes the filter command.
// (This gets called by `go-flags` when `filter` is provided on the command
// line)
//
// Every argument is filtered and printed on its own line; without arguments,
// every line of stdin is.
func (command *FilterCommand) Execute(args []string) error {
	closeLog, err := command.setUpLogging(os.Stderr)
	defer closeLog()
	if err != nil {
		return err
	}

	configData, err := command.loadConfig()
	if err != nil {
		return err
	}
	registerSprites(configData.Speech.Sprites)
	for _, spec := range command.Sprites {
		name, spoken, err := parseSpriteFlag(spec)
		if err != nil {
			return err
		}
		speech.RegisterSprite(name, spoken)
	}

	if len(args) > 0 {
		for _, arg := range args {
			fmt.Fprintln(os.Stdout, speech.FilterForSpeech(arg))
		}
		return nil
	}
	return filterLines(os.Stdin, os.Stdout, speech.FilterForSpeech)
}

func parseSpriteFlag(spec string) (name, spoken string, err error) {
	name, spoken, found := strings.Cut(spec, "=")
	if !found || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("invalid sprite '%s', expected <name=spoken>", spec)
	}
	return strings.TrimSpace(name), spoken, nil
}

// filterLines writes every line read from r filtered to w.
func filterLines(r io.Reader, w io.Writer, filter func(string) string) error {
	scanner := bufio.NewScanner(r)
	count := 0
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, filter(scanner.Text())); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}
	log.Debug().Int("lines", count).Msg("filtered")
	return nil
}
