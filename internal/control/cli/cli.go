// Package cli provides the command-line interface for narrate.
package cli

// CommandLineOpts are the options and commands narrate understands.
type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	FilterCommand  FilterCommand  `command:"filter" description:"print text the way it would be spoken" subcommands-optional:"true"`
	MenuCommand    MenuCommand    `command:"menu" description:"run a spoken menu in the terminal" subcommands-optional:"true"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true"`
}

// Opts holds the parsed command line.
var Opts CommandLineOpts
