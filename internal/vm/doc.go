/*
Package vm implements a small virtual machine for executing LC-3 machine
code at the user level.

The design leans on the micro-architecture described in the textbooks rather
than on what would be the most direct software rendering. Executing an
instruction runs through explicit stages, and memory access flows through
address and data registers.

# CPU

The machine's CPU is extraordinarily simple. It has just:

  - a few special registers: program counter, instruction, condition, and a
    control register holding the run latch
  - a file of eight general-purpose registers
  - a memory controller

The condition register always holds exactly one of the N, Z and P flags,
chosen by the sign of the most recent result of the instructions that update
it.

# Memory

Memory is where we keep our most precious things: programs and data.
Luckily, there is nearly unlimited memory: 128 kilobytes in a 16-bit address
space of 2-byte words, every address writable.

To read or write, the CPU puts the address into the address register (MAR)
and the data into the data register (MDR) and calls Fetch or Store.
Admittedly a strange design from a software perspective; function arguments
would do. The registers are kept to make the data flow explicit, the way the
reference micro-architecture draws it.

Reading is effectful: a fetch from the keyboard status register polls the
terminal, and the poll outcome lands in the status and data cells before the
value is returned. A passive-array model of memory would miss this.

# Traps

The TRAP instruction stores its return address in R7 and transfers to an
operating-system service routine. This machine hosts the six user-level
services (GETC, OUT, PUTS, IN, PUTSP, HALT) in the simulator itself, talking
to the controlling terminal through a console interface.

# Faults

RTI and the reserved opcode belong to the privileged subset and are fatal
here, as are traps with unknown vectors. The subset defines no way to
deliver an exception to running code, so a fault ends the program.
*/
package vm
