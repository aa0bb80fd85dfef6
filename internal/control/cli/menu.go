package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/potatolog"
	"github.com/ja-he/narrate/internal/speech"
	"github.com/ja-he/narrate/internal/styling"
	"github.com/ja-he/narrate/internal/tui"
)

// MenuCommand contains flags for the `menu` command line command, for
// `go-flags` to parse command line args into.
type MenuCommand struct {
	CommonOpts

	SpeechFile   string        `short:"o" long:"speech-output-file" description:"write everything spoken to this file (otherwise it is logged)" value-name:"<file>"`
	TickInterval time.Duration `long:"tick-interval" default:"250ms" description:"how often the active handler is ticked"`
}

// Execute executes the menu command.
// (This gets called by `go-flags` when `menu` is provided on the command line)
//
// The arguments are the items of the main menu; without arguments, the lines
// of stdin are.
func (command *MenuCommand) Execute(args []string) error {
	// no console logging, it would draw over the screen; warnings are shown in
	// the view instead
	closeLog, err := command.setUpLogging(nil)
	defer closeLog()
	if err != nil {
		return err
	}

	configData, err := command.loadConfig()
	if err != nil {
		return err
	}
	registerSprites(configData.Speech.Sprites)

	stylesheet, err := styling.NewStylesheetFromConfig(configData.Stylesheet)
	if err != nil {
		return fmt.Errorf("invalid stylesheet: %w", err)
	}

	items := args
	if len(items) == 0 {
		items, err = readItems(bufio.NewScanner(os.Stdin))
		if err != nil {
			return err
		}
	}

	var device speech.Device = speech.LogDevice{}
	if command.SpeechFile != "" {
		file, err := os.OpenFile(command.SpeechFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("could not open '%s' for speech output: %w", command.SpeechFile, err)
		}
		defer file.Close()
		device = speech.NewWriterDevice(file)
	}

	controller, err := NewController(ControllerParams{
		Items:     items,
		Config:    configData,
		Speaker:   speech.NewSpeaker(device, nil),
		Styles:    stylesheet,
		LogReader: &potatolog.GlobalMemoryLogReaderWriter,
	})
	if err != nil {
		return err
	}

	screen, err := tui.NewTUIScreenHandler()
	if err != nil {
		return err
	}

	if err := controller.Start(); err != nil {
		log.Error().Err(err).Msg("could not activate main menu")
	}
	controller.Run(screen, command.TickInterval)
	return nil
}

// readItems returns the non-blank lines of the scanner's input.
func readItems(scanner *bufio.Scanner) ([]string, error) {
	var items []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read items: %w", err)
	}
	return items, nil
}
