package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/narrate/internal/config"
	"github.com/ja-he/narrate/internal/potatolog"
	"github.com/ja-he/narrate/internal/speech"
)

// CommonOpts are the flags all commands that speak share.
type CommonOpts struct {
	ConfigPath    string `short:"c" long:"config" description:"the config file to use (default: ${NARRATE_HOME}/config.yaml or ~/.config/narrate/config.yaml)" value-name:"<file>"`
	Theme         string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme (note: only sets defaults, which are individually overridden by settings in config.yaml"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs only kept in memory and on stderr)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
}

// setUpLogging points the global logger at the in-memory log, the log output
// file if requested, and the given console writer (if not nil).
// The returned function closes the log file.
func (o *CommonOpts) setUpLogging(console io.Writer) (func(), error) {
	writers := []io.Writer{&potatolog.GlobalMemoryLogReaderWriter}
	closer := func() {}

	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console})
	}

	if o.LogOutputFile != "" {
		file, err := os.OpenFile(o.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return closer, fmt.Errorf("could not open '%s' for logging: %w", o.LogOutputFile, err)
		}
		if o.LogPretty {
			writers = append(writers, zerolog.ConsoleWriter{Out: file, NoColor: true})
		} else {
			writers = append(writers, file)
		}
		closer = func() { file.Close() }
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return closer, nil
}

func (o *CommonOpts) theme() config.ColorschemeType {
	switch o.Theme {
	case "light":
		return config.Light
	default:
		return config.Dark
	}
}

// configPath returns where the config file is expected.
func (o *CommonOpts) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	narrateHome := os.Getenv("NARRATE_HOME")
	if narrateHome != "" {
		return filepath.Join(strings.TrimRight(narrateHome, "/"), "config.yaml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "narrate", "config.yaml")
}

// loadConfig reads the config file over the defaults. A missing file means
// the defaults.
func (o *CommonOpts) loadConfig() (config.Config, error) {
	path := o.configPath()
	yamlData, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("file", path).Msg("no config file, using defaults")
		yamlData = []byte{}
	case err != nil:
		return config.Config{}, fmt.Errorf("can't read config file '%s': %w", path, err)
	}

	configData, err := config.ParseConfigAugmentDefaults(o.theme(), yamlData)
	if err != nil {
		return config.Config{}, fmt.Errorf("can't parse config file '%s': %w", path, err)
	}
	return configData, nil
}

// registerSprites registers the configured sprites in the process-wide table.
func registerSprites(sprites map[string]string) {
	for name, spoken := range sprites {
		speech.RegisterSprite(name, spoken)
	}
	log.Debug().Int("count", speech.Sprites.Len()).Msg("registered sprites")
}
