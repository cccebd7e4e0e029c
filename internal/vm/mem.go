package vm

// mem.go contains the machine's memory controller.

// Memory is the machine's store: a flat, fully populated array of 65 536
// words. The data path uses two control registers, the address register (MAR)
// and the data register (MDR); reads and writes go through Fetch and Store.
//
// Reading is not a pure operation. Fetching from the keyboard status address
// probes the keyboard for pending input and updates the status and data cells
// before the value is read back. Stores to the same addresses are ordinary
// stores.
type Memory struct {
	// Memory address register.
	MAR Register

	// Memory data register.
	MDR Register

	cell PhysicalMemory

	kbd *Keyboard
}

// Memory-mapped keyboard register addresses. They exist only on the read
// path; writing to them stores into the underlying cells like any other
// address.
const (
	KBSRAddr Word = 0xfe00 // Keyboard status register.
	KBDRAddr Word = 0xfe02 // Keyboard data register.
)

// UserSpaceAddr is the load address of user programs and the initial program
// counter.
const UserSpaceAddr Word = 0x3000

// AddrSpace is the number of addressable words.
const AddrSpace = 1 << 16

// PhysicalMemory is the backing store for the logical address space.
type PhysicalMemory [AddrSpace]Word

// NewMemory initializes a memory controller. The keyboard may be nil, in
// which case status reads always report no pending input.
func NewMemory(kbd *Keyboard) Memory {
	return Memory{
		MAR: 0xffff,
		MDR: 0x0ff0,
		kbd: kbd,
	}
}

// Fetch loads the data register from the address in the address register.
// Fetching the keyboard status register polls the keyboard first.
func (mem *Memory) Fetch() {
	addr := Word(mem.MAR)

	if addr == KBSRAddr {
		mem.pollKeyboard()
	}

	mem.MDR = Register(mem.cell[addr])
}

// Store writes the word in the data register to the address in the address
// register.
func (mem *Memory) Store() {
	mem.cell[Word(mem.MAR)] = Word(mem.MDR)
}

// pollKeyboard asks the keyboard for a pending key without blocking. If one
// is ready the status cell is marked ready and the data cell receives the
// key; otherwise the status cell is cleared.
func (mem *Memory) pollKeyboard() {
	if key, ok := mem.kbd.Poll(); ok {
		mem.cell[KBSRAddr] = Word(KeyboardReady)
		mem.cell[KBDRAddr] = Word(key)
	} else {
		mem.cell[KBSRAddr] = 0x0000
	}
}

// load reads a word directly, without the address and data registers and
// without the keyboard hook. It is used by tests.
func (mem *Memory) load(addr Word) Word {
	return mem.cell[addr]
}

// store writes a word directly, without the address and data registers.
func (mem *Memory) store(addr Word, cell Word) {
	mem.cell[addr] = cell
}
