package tty

import (
	"io"
	"os"
	"testing"
)

// The tests drive the console over pipes: input is not a terminal, so the
// line discipline is untouched, but polling, reading and writing behave the
// same way they do on a live terminal.

func TestConsolePoll(t *testing.T) {
	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer inR.Close()
	defer inW.Close()

	_, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer outW.Close()

	cons, err := New(inR, outW)
	if err != nil {
		t.Fatal(err)
	}

	defer cons.Restore()

	// Nothing pending: the poll must not block.
	if _, ok := cons.Poll(); ok {
		t.Error("poll: key reported on empty input")
	}

	if _, err := inW.Write([]byte{'k'}); err != nil {
		t.Fatal(err)
	}

	key, ok := cons.Poll()

	if !ok {
		t.Error("poll: pending key not reported")
	}

	if key != 'k' {
		t.Errorf("poll: want: %q, got: %q", 'k', key)
	}

	// The key was consumed.
	if _, ok := cons.Poll(); ok {
		t.Error("poll: key reported twice")
	}
}

func TestConsoleReadKey(t *testing.T) {
	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer inR.Close()

	_, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer outW.Close()

	cons, err := New(inR, outW)
	if err != nil {
		t.Fatal(err)
	}

	defer cons.Restore()

	if _, err := inW.Write([]byte{'z'}); err != nil {
		t.Fatal(err)
	}

	key, err := cons.ReadKey()
	if err != nil {
		t.Errorf("read: %v", err)
	}

	if key != 'z' {
		t.Errorf("read: want: %q, got: %q", 'z', key)
	}

	// A closed input stream surfaces as an error, not a hang.
	inW.Close()

	if _, err := cons.ReadKey(); err == nil {
		t.Error("read: no error at end of input")
	}
}

func TestConsoleWrite(t *testing.T) {
	inR, _, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer inR.Close()

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer outR.Close()
	defer outW.Close()

	cons, err := New(inR, outW)
	if err != nil {
		t.Fatal(err)
	}

	defer cons.Restore()

	if err := cons.WriteString("ab"); err != nil {
		t.Errorf("write: %v", err)
	}

	if err := cons.WriteByte('c'); err != nil {
		t.Errorf("write: %v", err)
	}

	if err := cons.Flush(); err != nil {
		t.Errorf("flush: %v", err)
	}

	buf := make([]byte, 3)
	if _, err := io.ReadFull(outR, buf); err != nil {
		t.Fatal(err)
	}

	if string(buf) != "abc" {
		t.Errorf("output want: %q, got: %q", "abc", string(buf))
	}
}

func TestConsoleRestoreWithoutTerminal(t *testing.T) {
	inR, _, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer inR.Close()

	_, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer outW.Close()

	cons, err := New(inR, outW)
	if err != nil {
		t.Fatal(err)
	}

	// Restore is safe on a console that never changed the terminal, and
	// safe to call twice.
	cons.Restore()
	cons.Restore()
}
