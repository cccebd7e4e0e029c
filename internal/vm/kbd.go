package vm

// kbd.go has the keyboard device.

// A Poller is the non-blocking side of a key source. Poll reports whether a
// key is pending and, if so, consumes and returns it. It must never block.
type Poller interface {
	Poll() (uint8, bool)
}

// Keyboard is the machine's input device. The memory controller consults it
// when the keyboard status register is read; the device itself holds no
// state beyond its key source.
type Keyboard struct {
	src Poller
}

// KeyboardReady is the ready bit in the keyboard status register.
const KeyboardReady = Register(1 << 15)

// NewKeyboard creates a keyboard backed by a key source.
func NewKeyboard(src Poller) *Keyboard {
	return &Keyboard{src: src}
}

// Poll probes the key source for a pending key. A nil keyboard or source
// reports no input.
func (k *Keyboard) Poll() (uint8, bool) {
	if k == nil || k.src == nil {
		return 0, false
	}

	return k.src.Poll()
}

func (k *Keyboard) String() string {
	return "Keyboard(ModelM)" // Simply the best.
}
