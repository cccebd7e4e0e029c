// Package vm provides an emulated CPU.
package vm

import (
	"fmt"

	"little3/internal/log"
)

// LC3 is a little computer simulated in software. It is the user-level
// machine: eight general purpose registers, a program counter, a one-hot
// condition register, a control register holding the run latch, 65 536 words
// of memory with memory-mapped keyboard registers, and a table of trap
// services hosted by the simulator.
type LC3 struct {
	PC   ProgramCounter  // Instruction Pointer.
	IR   Instruction     // Instruction Register.
	COND Condition       // Condition Register.
	MCR  ControlRegister // Master Control Register.
	REG  RegisterFile    // General-purpose Register File.
	Mem  Memory          // All the memory you'll ever need.
	Sys  Services        // Trap service routines.

	log *log.Logger // A record of where we've been.
}

// New creates and initializes a virtual machine. The initial state may be
// adjusted by passing a sequence of OptionFn values; notably, a machine
// without a console can execute any instruction but faults on the traps that
// perform I/O.
func New(opts ...OptionFn) *LC3 {
	vm := LC3{
		PC:   ProgramCounter(UserSpaceAddr),
		IR:   0x0000,
		COND: ConditionZero,
		MCR:  ControlRunning,

		log: log.DefaultLogger(),
	}

	vm.Mem = NewMemory(nil)

	for _, fn := range opts {
		fn(&vm)
	}

	return &vm
}

func (vm *LC3) String() string {
	return fmt.Sprintf("PC:  %s IR:  %s\nCOND: %s MCR: %s\nMAR: %s MDR: %s",
		vm.PC.String(), vm.IR.String(), vm.COND.String(), vm.MCR.String(),
		vm.Mem.MAR.String(), vm.Mem.MDR.String())
}

// An OptionFn modifies the machine during initialization.
type OptionFn func(*LC3)

// WithConsole attaches a console to the machine: the keyboard device polls it
// and the trap services read from and write to it.
func WithConsole(cons Console) OptionFn {
	return func(vm *LC3) {
		vm.Mem.kbd = NewKeyboard(cons)
		vm.Sys.cons = cons
	}
}
