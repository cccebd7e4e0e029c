package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"little3/internal/cli"
	"little3/internal/log"
	"little3/internal/tty"
	"little3/internal/vm"
)

// Exit codes of the run command.
const (
	exitOK    = 0   // Normal exit via HALT.
	exitLoad  = 1   // An image could not be loaded.
	exitUsage = 2   // No image files given.
	exitIntr  = 130 // Interrupted.
	exitFault = 255 // Reserved opcode, RTI, unknown trap, or I/O failure.
)

// Run returns the command that loads and executes program images.
func Run() cli.Command {
	return &runner{}
}

type runner struct {
	logLevel slog.Level
	logSet   bool
}

func (runner) Description() string {
	return "run a program image"
}

func (runner) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `run image-file [image-file ...]

Loads one or more program images and executes them until the program halts.
Each image starts with its origin word; later images overwrite earlier ones
where they overlap.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Func("loglevel", "set log `level`", func(s string) error {
		r.logSet = true
		return r.logLevel.UnmarshalText([]byte(s))
	})

	return fs
}

// Run loads the images and executes the machine.
func (r *runner) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if r.logSet {
		log.LogLevel.Set(r.logLevel)
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "little3 image-file [image-file ...]")
		return exitUsage
	}

	images := make([]vm.ObjectCode, 0, len(args))

	for _, path := range args {
		obj, err := readImage(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load image: %s\n", path)
			logger.Error("image load failed", "file", path, "err", err)

			return exitLoad
		}

		images = append(images, obj)
	}

	cons, err := tty.New(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("terminal setup failed", "err", err)
		return exitFault
	}

	defer cons.Restore()

	// The interrupt handler must restore the terminal itself: nothing
	// deferred runs past os.Exit.
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)

	defer signal.Stop(intr)

	go func() {
		<-intr
		cons.Restore()
		os.Exit(exitIntr)
	}()

	machine := vm.New(
		vm.WithLogger(logger),
		vm.WithConsole(cons),
	)

	loader := vm.NewLoader(machine)

	for i := range images {
		if _, err := loader.Load(images[i]); err != nil {
			logger.Error("image load failed", "err", err)
			return exitLoad
		}
	}

	if err := machine.Run(ctx); err != nil {
		return exitFault
	}

	return exitOK
}

// readImage reads and decodes one image file.
func readImage(path string) (vm.ObjectCode, error) {
	obj := vm.ObjectCode{}

	b, err := os.ReadFile(path)
	if err != nil {
		return obj, err
	}

	if err := obj.UnmarshalBinary(b); err != nil {
		return obj, err
	}

	return obj, nil
}
