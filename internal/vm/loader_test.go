package vm

import (
	"errors"
	"testing"
)

func TestObjectCodeUnmarshal(tt *testing.T) {
	tt.Parallel()

	obj := ObjectCode{}
	err := obj.UnmarshalBinary([]byte{
		0x30, 0x00, // origin
		0x12, 0x34,
		0xab, 0xcd,
	})

	if err != nil {
		tt.Errorf("err: %v", err)
	}

	if obj.Orig != 0x3000 {
		tt.Errorf("orig want: %s, got: %s", Word(0x3000), obj.Orig)
	}

	if len(obj.Code) != 2 || obj.Code[0] != 0x1234 || obj.Code[1] != 0xabcd {
		tt.Errorf("code want: [%s %s], got: %v", Word(0x1234), Word(0xabcd), obj.Code)
	}
}

func TestObjectCodeTooSmall(tt *testing.T) {
	tt.Parallel()

	obj := ObjectCode{}

	if err := obj.UnmarshalBinary([]byte{0x30}); !errors.Is(err, ErrObjectLoader) {
		tt.Errorf("err want: %v, got: %v", ErrObjectLoader, err)
	}
}

func TestObjectCodeTruncated(tt *testing.T) {
	tt.Parallel()

	// Four words with an origin two words below the top of memory: the
	// image is truncated, silently.
	obj := ObjectCode{}
	err := obj.UnmarshalBinary([]byte{
		0xff, 0xfe, // origin
		0x00, 0x01,
		0x00, 0x02,
		0x00, 0x03,
		0x00, 0x04,
	})

	if err != nil {
		tt.Errorf("err: %v", err)
	}

	if len(obj.Code) != 2 {
		tt.Errorf("code len want: 2, got: %d", len(obj.Code))
	}

	if obj.Code[0] != 0x0001 || obj.Code[1] != 0x0002 {
		tt.Errorf("code want: [%s %s], got: %v", Word(1), Word(2), obj.Code)
	}
}

func TestLoaderLoad(tt *testing.T) {
	var (
		t      = NewTestHarness(tt)
		cpu    = t.Make()
		loader = NewLoader(cpu)
	)

	count, err := loader.Load(ObjectCode{
		Orig: 0x3000,
		Code: []Word{0x1261, 0xf025},
	})

	if err != nil {
		t.Errorf("err: %v", err)
	}

	if count != 2 {
		t.Errorf("count want: 2, got: %d", count)
	}

	if got := cpu.Mem.load(0x3000); got != 0x1261 {
		t.Errorf("mem want: %s, got: %s", Word(0x1261), got)
	}

	if got := cpu.Mem.load(0x3001); got != 0xf025 {
		t.Errorf("mem want: %s, got: %s", Word(0xf025), got)
	}
}

func TestLoaderOverlay(tt *testing.T) {
	var (
		t      = NewTestHarness(tt)
		cpu    = t.Make()
		loader = NewLoader(cpu)
	)

	// Later images overwrite earlier ones where they overlap.
	if _, err := loader.Load(ObjectCode{
		Orig: 0x3000,
		Code: []Word{0x1111, 0x2222, 0x3333},
	}); err != nil {
		t.Errorf("err: %v", err)
	}

	if _, err := loader.Load(ObjectCode{
		Orig: 0x3001,
		Code: []Word{0xaaaa},
	}); err != nil {
		t.Errorf("err: %v", err)
	}

	want := []Word{0x1111, 0xaaaa, 0x3333}
	for i, w := range want {
		if got := cpu.Mem.load(0x3000 + Word(i)); got != w {
			t.Errorf("mem[%s] want: %s, got: %s", Word(0x3000+i), w, got)
		}
	}
}

func TestLoaderEmptyObject(tt *testing.T) {
	var (
		t      = NewTestHarness(tt)
		cpu    = t.Make()
		loader = NewLoader(cpu)
	)

	if _, err := loader.Load(ObjectCode{Orig: 0x3000}); !errors.Is(err, ErrObjectLoader) {
		t.Errorf("err want: %v, got: %v", ErrObjectLoader, err)
	}
}
