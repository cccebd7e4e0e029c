package vm

// loader.go holds an object loader.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"little3/internal/log"
)

// Loader takes object code and loads it into the machine's memory.
type Loader struct {
	vm  *LC3
	log *log.Logger
}

// NewLoader creates a new object loader.
func NewLoader(vm *LC3) *Loader {
	return &Loader{
		vm:  vm,
		log: log.DefaultLogger(),
	}
}

// Load stores the object code starting at its origin address. Loading
// several objects in sequence overlays later code on earlier code wherever
// they overlap.
func (l *Loader) Load(obj ObjectCode) (uint16, error) {
	if len(obj.Code) == 0 {
		return 0, fmt.Errorf("%w: object too small", ErrObjectLoader)
	}

	var (
		addr  = obj.Orig
		count = uint16(0)
	)

	for _, code := range obj.Code {
		l.vm.Mem.store(addr, code)

		count++
		addr++
	}

	l.log.Debug("loaded object", "orig", obj.Orig, "words", count)

	return count, nil
}

// ObjectCode is a data structure that holds code and its origin offset in
// memory. Code may be comprised of either instructions or data.
type ObjectCode struct {
	Orig Word
	Code []Word
}

// UnmarshalBinary decodes an object image. The first word is the origin and
// the remainder is code, all big-endian. Images longer than the space between
// the origin and the top of memory are truncated.
func (obj *ObjectCode) UnmarshalBinary(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: object code too small", ErrObjectLoader)
	}

	in := bytes.NewReader(b)

	if err := binary.Read(in, binary.BigEndian, &obj.Orig); err != nil {
		return fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	words := len(b)/2 - 1
	if max := AddrSpace - int(obj.Orig); words > max {
		words = max
	}

	obj.Code = make([]Word, words)

	if err := binary.Read(in, binary.BigEndian, obj.Code); err != nil {
		return fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	return nil
}

var ErrObjectLoader = errors.New("loader error")
