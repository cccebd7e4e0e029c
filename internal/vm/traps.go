package vm

// traps.go defines trap service routines, or system calls.
//
// On real hardware each trap vector points at a service routine in system
// memory. This machine hosts the six user-level services in the simulator
// instead: TRAP stores the return address in R7 and dispatches here.

import (
	"errors"
	"fmt"
)

// Trap vectors.
const (
	TrapGETC  Word = 0x20 // Read a character, no echo.
	TrapOUT   Word = 0x21 // Write a character.
	TrapPUTS  Word = 0x22 // Write a word-per-character string.
	TrapIN    Word = 0x23 // Prompt, read and echo a character.
	TrapPUTSP Word = 0x24 // Write a packed, two-characters-per-word string.
	TrapHALT  Word = 0x25 // Stop the machine.
)

var (
	// ErrNoService is returned when a program traps with an unknown
	// vector.
	ErrNoService = errors.New("no service for trap")

	// ErrNoConsole is returned when an I/O service runs on a machine with
	// no console attached.
	ErrNoConsole = errors.New("no console attached")
)

// Console is the terminal the trap services talk to. ReadKey blocks until a
// key is pressed and does not echo; writes are buffered until Flush. The
// embedded Poller is the non-blocking probe used by the keyboard device.
type Console interface {
	Poller

	ReadKey() (uint8, error)
	WriteByte(b byte) error
	WriteString(s string) error
	Flush() error
}

// Services dispatches trap vectors to their service routines.
type Services struct {
	cons Console
}

// dispatch runs the service routine for a vector. Unknown vectors are fatal.
func (s *Services) dispatch(vm *LC3, vec Word) error {
	switch vec {
	case TrapGETC:
		return s.getc(vm)
	case TrapOUT:
		return s.out(vm)
	case TrapPUTS:
		return s.puts(vm)
	case TrapIN:
		return s.in(vm)
	case TrapPUTSP:
		return s.putsp(vm)
	case TrapHALT:
		return s.halt(vm)
	default:
		return fmt.Errorf("%w: %s", ErrNoService, vec)
	}
}

// console returns the attached console or fails the service.
func (s *Services) console() (Console, error) {
	if s.cons == nil {
		return nil, ErrNoConsole
	}

	return s.cons, nil
}

// getc reads one character into R0 without echoing it.
func (s *Services) getc(vm *LC3) error {
	cons, err := s.console()
	if err != nil {
		return fmt.Errorf("getc: %w", err)
	}

	key, err := cons.ReadKey()
	if err != nil {
		return fmt.Errorf("getc: %w", err)
	}

	vm.REG[R0] = Register(key)
	vm.COND.Set(vm.REG[R0])

	return nil
}

// out writes the low byte of R0.
func (s *Services) out(vm *LC3) error {
	cons, err := s.console()
	if err != nil {
		return fmt.Errorf("out: %w", err)
	}

	if err := cons.WriteByte(uint8(vm.REG[R0])); err != nil {
		return fmt.Errorf("out: %w", err)
	}

	if err := cons.Flush(); err != nil {
		return fmt.Errorf("out: %w", err)
	}

	return nil
}

// puts writes the zero-terminated string of words addressed by R0, one
// character per word.
func (s *Services) puts(vm *LC3) error {
	cons, err := s.console()
	if err != nil {
		return fmt.Errorf("puts: %w", err)
	}

	// The string is read through the ordinary memory path, so the address
	// wraps and a string crossing the keyboard registers would poll them.
	// Well-formed programs keep strings out of the I/O page.
	addr := Word(vm.REG[R0])

	for {
		vm.Mem.MAR = Register(addr)
		vm.Mem.Fetch()

		w := Word(vm.Mem.MDR)
		if w == 0 {
			break
		}

		if err := cons.WriteByte(uint8(w)); err != nil {
			return fmt.Errorf("puts: %w", err)
		}

		addr++
	}

	if err := cons.Flush(); err != nil {
		return fmt.Errorf("puts: %w", err)
	}

	return nil
}

// in prompts for a character, reads it, echoes it, and places it in R0.
func (s *Services) in(vm *LC3) error {
	cons, err := s.console()
	if err != nil {
		return fmt.Errorf("in: %w", err)
	}

	if err := cons.WriteString("Enter a character: "); err != nil {
		return fmt.Errorf("in: %w", err)
	}

	if err := cons.Flush(); err != nil {
		return fmt.Errorf("in: %w", err)
	}

	key, err := cons.ReadKey()
	if err != nil {
		return fmt.Errorf("in: %w", err)
	}

	if err := cons.WriteByte(key); err != nil {
		return fmt.Errorf("in: %w", err)
	}

	if err := cons.Flush(); err != nil {
		return fmt.Errorf("in: %w", err)
	}

	vm.REG[R0] = Register(key)
	vm.COND.Set(vm.REG[R0])

	return nil
}

// putsp writes the packed string addressed by R0: the low byte of each word,
// then the high byte when it is non-zero, stopping at a zero word.
func (s *Services) putsp(vm *LC3) error {
	cons, err := s.console()
	if err != nil {
		return fmt.Errorf("putsp: %w", err)
	}

	addr := Word(vm.REG[R0])

	for {
		vm.Mem.MAR = Register(addr)
		vm.Mem.Fetch()

		w := Word(vm.Mem.MDR)
		if w == 0 {
			break
		}

		if err := cons.WriteByte(uint8(w)); err != nil {
			return fmt.Errorf("putsp: %w", err)
		}

		if hi := uint8(w >> 8); hi != 0 {
			if err := cons.WriteByte(hi); err != nil {
				return fmt.Errorf("putsp: %w", err)
			}
		}

		addr++
	}

	if err := cons.Flush(); err != nil {
		return fmt.Errorf("putsp: %w", err)
	}

	return nil
}

// halt prints the parting message and clears the run latch. Halting works
// even without a console so headless programs can stop the clock.
func (s *Services) halt(vm *LC3) error {
	if s.cons != nil {
		if err := s.cons.WriteString("\nHALT\n"); err != nil {
			return fmt.Errorf("halt: %w", err)
		}

		if err := s.cons.Flush(); err != nil {
			return fmt.Errorf("halt: %w", err)
		}
	}

	vm.MCR.Stop()

	return nil
}
