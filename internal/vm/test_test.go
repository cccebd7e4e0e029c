package vm

// test_test.go has shared test fixtures: a harness that builds machines
// logging through the test runner, and a scripted console for the I/O traps.

import (
	"bytes"
	"io"
	"testing"

	"little3/internal/log"
)

func NewTestHarness(t *testing.T) *testHarness {
	t.Parallel()

	return &testHarness{T: t}
}

type testHarness struct {
	*testing.T
}

// Make builds a machine that logs through the test runner.
func (t *testHarness) Make() *LC3 {
	return New(WithLogger(t.logger()))
}

// MakeWithConsole builds a machine wired to a scripted console.
func (t *testHarness) MakeWithConsole(cons Console) *LC3 {
	return New(WithLogger(t.logger()), WithConsole(cons))
}

func (t *testHarness) logger() *log.Logger {
	return log.NewFormattedLogger(t)
}

// Write lets the harness act as the log sink.
func (t *testHarness) Write(b []byte) (int, error) {
	t.T.Helper()

	if n := len(b); n > 0 && b[n-1] == '\n' {
		t.T.Log(string(b[:n-1]))
	} else {
		t.T.Log(string(b))
	}

	return len(b), nil
}

// testConsole is a scripted console. Keys are consumed from the front of the
// script; output accumulates in a buffer.
type testConsole struct {
	keys    []uint8
	out     bytes.Buffer
	flushes int
}

var _ Console = (*testConsole)(nil)

func (c *testConsole) Poll() (uint8, bool) {
	if len(c.keys) == 0 {
		return 0, false
	}

	key := c.keys[0]
	c.keys = c.keys[1:]

	return key, true
}

func (c *testConsole) ReadKey() (uint8, error) {
	key, ok := c.Poll()
	if !ok {
		return 0, io.EOF
	}

	return key, nil
}

func (c *testConsole) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

func (c *testConsole) WriteString(s string) error {
	_, err := c.out.WriteString(s)
	return err
}

func (c *testConsole) Flush() error {
	c.flushes++
	return nil
}
