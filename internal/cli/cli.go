// Package cli contains the command-line interface.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"little3/internal/log"
)

// Command represents a sub-command in the CLI. Each sub-command can have its
// own flags and action to perform.
type Command interface {
	// FlagSet returns a set of command options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief description of the command's function.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command with arguments. Command output should be
	// written to out. It returns an exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander is a CLI command-runner that handles the life cycle of a CLI
// command execution.
type Commander struct {
	ctx context.Context
	log *log.Logger

	help     Command
	def      Command
	commands []Command
}

// New creates a new Commander that can start sub-commands.
func New(ctx context.Context) *Commander {
	return &Commander{
		ctx: ctx,
	}
}

// Execute runs a command. Starting the CLI with no arguments at all is a
// usage error: the help is printed to standard output and the exit code is
// 2. A first argument that names no sub-command is taken to be an image file
// and is handed, with the rest of the arguments, to the default command.
func (cli *Commander) Execute(args []string) int {
	if len(args) == 0 {
		_ = cli.help.Usage(os.Stdout)
		return 2
	}

	var found Command

	for _, cmd := range append([]Command{cli.help}, cli.commands...) {
		if args[0] == cmd.FlagSet().Name() {
			found = cmd
		}
	}

	if found != nil {
		args = args[1:]
	} else if cli.def != nil {
		found = cli.def
	} else {
		found = cli.help
	}

	fs := found.FlagSet()

	if err := fs.Parse(args); err != nil {
		cli.log.Error("parse error", "err", err)
		return 2
	}

	return found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
}

// WithCommands adds a list of commands as sub-commands.
func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

// WithDefault configures the command that runs when the first argument names
// no sub-command.
func (cli *Commander) WithDefault(cmd Command) *Commander {
	cli.def = cmd
	return cli
}

// WithHelp configures the help command.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithLogger configures the logger for the CLI. Logs are kept off standard
// output, which belongs to the running program.
func (cli *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(out)
	cli.log = logger

	log.SetDefault(logger)

	return cli
}

// Type aliases from the standard library.
type (
	Flag    = flag.Flag
	FlagSet = flag.FlagSet
)
