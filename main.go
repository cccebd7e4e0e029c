// LITTLE-3 is a user-level LC-3 virtual machine. This root command mirrors
// cmd/little3 so the module can be run directly with go run.
package main

import (
	"context"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"little3/internal/cli"
	"little3/internal/cli/cmd"
	"little3/internal/log"
)

var (
	commands = []cli.Command{
		cmd.Run(),
	}
)

// Entry point.
func main() {
	debug := getopt.BoolLong("debug", 'd', "enable debug logging")
	logPath := getopt.StringLong("log", 'l', "", "append logs to `file` instead of standard error")
	getopt.SetParameters("image-file ...")
	getopt.Parse()

	logOut := os.Stderr

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			getopt.PrintUsage(os.Stderr)
			os.Exit(2)
		}

		logOut = f
	}

	if *debug {
		log.LogLevel.Set(log.Debug)
	}

	result :=
		cli.New(context.Background()).
			WithLogger(logOut).
			WithCommands(commands).
			WithDefault(commands[0]).
			WithHelp(cmd.Help(commands)).
			Execute(getopt.Args())

	os.Exit(result)
}
