// Package tty adapts the controlling terminal to the machine's console.
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Console connects the machine to a Unix terminal[^1]. While the console is
// open the terminal has canonical input and echo disabled; Restore puts back
// whatever discipline was in effect before.
//
// Reads come in two flavours to match the machine's I/O model: Poll is the
// non-blocking probe behind the keyboard status register, and ReadKey is the
// blocking read behind the input traps. Writes are buffered; the trap
// services flush.
//
// [^1]: See tty(4), termios(4).
type Console struct {
	in  *os.File
	out *bufio.Writer
	fd  int

	state *term.State // Nil when input is not a terminal.
}

// ErrConsole wraps terminal errors.
var ErrConsole = errors.New("console")

// New opens a console over the given streams. When the input stream is a
// terminal its line discipline is changed; otherwise reads are plain, so
// images can be driven from pipes and tests. Callers are responsible for
// calling [Console.Restore] on every exit path.
func New(in, out *os.File) (*Console, error) {
	c := &Console{
		in:  in,
		out: bufio.NewWriter(out),
		fd:  int(in.Fd()),
	}

	if !term.IsTerminal(c.fd) {
		return c, nil
	}

	state, err := term.GetState(c.fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConsole, err)
	}

	if err := c.setTerminalParams(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConsole, err)
	}

	c.state = state

	return c, nil
}

// setTerminalParams disables canonical input and echo and sets the read
// watermarks so a read returns after a single byte. Output processing is left
// alone.
func (c *Console) setTerminalParams() error {
	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Lflag &^= unix.ICANON | unix.ECHO
	termIO.Cc[unix.VMIN] = 1
	termIO.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO)
}

// Restore returns the terminal to its initial state. It is safe to call more
// than once and on a console that never changed the terminal.
func (c *Console) Restore() {
	if c.state != nil {
		_ = term.Restore(c.fd, c.state)
		c.state = nil
	}
}

// Poll reports whether a key is pending and consumes it when one is. The
// readiness check uses a zero timeout and never blocks.
func (c *Console) Poll() (uint8, bool) {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return 0, false
	}

	key, err := c.readByte()
	if err != nil {
		return 0, false
	}

	return key, true
}

// ReadKey blocks until a key is pressed and returns it without echoing.
func (c *Console) ReadKey() (uint8, error) {
	key, err := c.readByte()
	if err != nil {
		return 0, fmt.Errorf("%w: read: %w", ErrConsole, err)
	}

	return key, nil
}

func (c *Console) readByte() (uint8, error) {
	var buf [1]byte

	for {
		n, err := c.in.Read(buf[:])

		switch {
		case n == 1:
			return buf[0], nil
		case err != nil:
			return 0, err
		}
	}
}

// WriteByte buffers a single byte of program output.
func (c *Console) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

// WriteString buffers a string of program output.
func (c *Console) WriteString(s string) error {
	_, err := c.out.WriteString(s)
	return err
}

// Flush writes buffered output to the terminal.
func (c *Console) Flush() error {
	return c.out.Flush()
}
