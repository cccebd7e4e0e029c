package vm

// exec.go defines the CPU instruction cycle.

import (
	"context"
	"errors"
	"fmt"

	"little3/internal/log"
)

// ErrHalted is a wrapped error returned when the CPU is stepped while the
// RUN flag in MCR is clear.
var ErrHalted = errors.New("halted")

// Fatal machine faults. The ISA subset defines no way to surface these to
// running code, so they end the program.
var (
	// ErrPrivileged is returned when a user program executes RTI.
	ErrPrivileged = errors.New("privileged instruction")

	// ErrReserved is returned when the reserved opcode is executed.
	ErrReserved = errors.New("reserved opcode")
)

// Run starts and executes the instruction cycle until the program halts, an
// instruction faults, or the context is cancelled.
func (vm *LC3) Run(ctx context.Context) error {
	var err error

	vm.log.Info("START", log.Group("STATE", vm))

	for {
		select {
		case <-ctx.Done():
			vm.log.Warn("CANCELLED")
			return ctx.Err()
		default:
		}

		if !vm.MCR.Running() {
			break
		}

		if err = vm.Step(); err != nil {
			break
		}
	}

	if err != nil {
		vm.log.Error("HALTED (HCF)", "ERR", err, log.Group("STATE", vm))
		return err
	}

	vm.log.Info("HALTED (TRAP)", log.Group("STATE", vm))

	return nil
}

// Step runs a single instruction to completion.
//
// Each operation has as many as five steps:
//
//   - fetch instruction: using the program counter as a pointer, fetch an
//     instruction from memory into the instruction register and increment
//     the program counter.
//
//   - evaluate address: compute the memory address to be accessed.
//
//   - fetch operands: load an operand from memory using the computed address.
//
//   - execute operation: do the thing.
//
//   - store result: store the operation result in memory using the computed
//     address.
//
// An instruction implements methods according to its operational semantics;
// see [operation].
func (vm *LC3) Step() error {
	if !vm.MCR.Running() {
		return fmt.Errorf("ins: %w", ErrHalted)
	}

	vm.Fetch()

	op := vm.Decode()
	vm.EvalAddress(op)
	vm.FetchOperands(op)
	vm.Execute(op)
	vm.Writeback(op)

	if err := op.Err(); err != nil {
		vm.log.Error("instruction error", "OP", op.String(), "ERR", err)
		return fmt.Errorf("ins: %w", err)
	}

	vm.log.Debug("executed", "OP", op.String())

	return nil
}

// Fetch loads the value addressed by PC into IR and increments PC. The
// increment always happens, even when the operation will overwrite PC, and it
// wraps at the top of the address space.
func (vm *LC3) Fetch() {
	vm.Mem.MAR = Register(vm.PC)
	vm.Mem.Fetch()
	vm.IR = Instruction(vm.Mem.MDR)
	vm.PC++

	vm.log.Debug("fetched", "IR", vm.IR)
}

// Decode the instruction from IR.
func (vm *LC3) Decode() operation {
	var oper operation

	switch vm.IR.Opcode() {
	case BR:
		oper = &br{}
	case ADD:
		if vm.IR.Imm() {
			oper = &addImm{}
		} else {
			oper = &add{}
		}
	case LD:
		oper = &ld{}
	case ST:
		oper = &st{}
	case JSR:
		if vm.IR.Relative() {
			oper = &jsr{}
		} else {
			oper = &jsrr{}
		}
	case AND:
		if vm.IR.Imm() {
			oper = &andImm{}
		} else {
			oper = &and{}
		}
	case LDR:
		oper = &ldr{}
	case STR:
		oper = &str{}
	case RTI:
		oper = &rti{}
	case NOT:
		oper = &not{}
	case LDI:
		oper = &ldi{}
	case STI:
		oper = &sti{}
	case JMP:
		oper = &jmp{}
	case RESV:
		oper = &resv{}
	case LEA:
		oper = &lea{}
	case TRAP:
		oper = &trap{}
	}

	oper.Decode(vm)

	return oper
}

// EvalAddress computes a relative memory address if the operation is
// addressable.
func (vm *LC3) EvalAddress(op operation) {
	if op, ok := op.(addressable); ok && op.Err() == nil {
		op.EvalAddress()
	}
}

// FetchOperands reads from memory into a CPU register if the operation is
// fetchable.
func (vm *LC3) FetchOperands(op operation) {
	if op.Err() != nil {
		return
	}

	if op, ok := op.(fetchable); ok {
		vm.Mem.Fetch()
		op.FetchOperands()
	}
}

// Execute does the operation.
func (vm *LC3) Execute(op operation) {
	if op.Err() != nil {
		return
	}

	if op, ok := op.(executable); ok {
		op.Execute()
	}
}

// Writeback writes registers to memory if the operation is storable.
func (vm *LC3) Writeback(op operation) {
	if op.Err() != nil {
		return
	}

	if op, ok := op.(storable); ok {
		op.StoreResult()
		vm.Mem.Store()
	}
}

// An operation represents a single CPU instruction as it is being executed
// by the machine. The instruction's semantics are defined by implementing
// optional interfaces for each execution stage: [addressable], [fetchable],
// [executable], [storable].
type operation interface {
	// Decode initializes the operation from the machine's instruction
	// register.
	Decode(vm *LC3)

	// Fail signals that an error occurred during execution. After it is
	// called with an error, the remaining steps of the operation are
	// skipped.
	Fail(err error)

	// Err returns the error when the instruction cannot continue
	// execution.
	Err() error

	// Stringer for dabugs.
	fmt.Stringer
}

// addressable operations set the memory address register.
type addressable interface {
	operation
	EvalAddress()
}

// fetchable operations load operands from the memory data register.
type fetchable interface {
	addressable
	FetchOperands()
}

// executable operations update CPU state. Some instructions do not,
// surprisingly.
type executable interface {
	operation
	Execute()
}

// storable operations store values to memory.
type storable interface {
	addressable

	// StoreResult is called before writing the memory data register to
	// the address pointed to by the address register.
	StoreResult()
}
