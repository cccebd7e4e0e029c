package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"little3/internal/cli"
	"little3/internal/log"
)

type help struct {
	cmd []cli.Command
}

var _ cli.Command = (*help)(nil)

// Help returns the command that displays usage for the CLI and its
// sub-commands.
func Help(commands []cli.Command) cli.Command {
	return &help{cmd: commands}
}

func (help) Description() string {
	return "display help for commands"
}

func (h help) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("help", flag.ExitOnError)
}

func (h help) Usage(out io.Writer) error {
	fmt.Fprintln(out, "little3 image-file [image-file ...]")
	fmt.Fprintln(out, "little3 command [option ...]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")

	for _, c := range h.cmd {
		fmt.Fprintf(out, "  %-8s %s\n", c.FlagSet().Name(), c.Description())
	}

	fmt.Fprintf(out, "  %-8s %s\n", "help", h.Description())

	return nil
}

func (h help) Run(_ context.Context, args []string, out io.Writer, _ *log.Logger) int {
	if len(args) == 1 {
		for _, c := range h.cmd {
			if c.FlagSet().Name() == args[0] {
				_ = c.Usage(out)
				return 0
			}
		}
	}

	_ = h.Usage(out)

	return 0
}
