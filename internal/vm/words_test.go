package vm

import (
	"math/bits"
	"testing"
)

func TestSext(tt *testing.T) {
	tt.Parallel()

	tcs := []struct {
		have Word
		bits uint8
		want Word
	}{
		{have: 0x001f, bits: 5, want: 0xffff}, // -1
		{have: 0x000f, bits: 5, want: 0x000f}, // +15
		{have: 0x0010, bits: 5, want: 0xfff0}, // -16
		{have: 0x0000, bits: 5, want: 0x0000},
		{have: 0x01ff, bits: 9, want: 0xffff},
		{have: 0x00ff, bits: 9, want: 0x00ff},
		{have: 0x0100, bits: 9, want: 0xff00},
		{have: 0x003f, bits: 6, want: 0xffff},
		{have: 0x07ff, bits: 11, want: 0xffff},
		{have: 0x03ff, bits: 11, want: 0x03ff},
	}

	for _, tc := range tcs {
		got := tc.have
		got.Sext(tc.bits)

		if got != tc.want {
			tt.Errorf("sext(%s, %d): want: %s, got: %s",
				tc.have, tc.bits, tc.want, got)
		}
	}
}

func TestZext(tt *testing.T) {
	tt.Parallel()

	tcs := []struct {
		have Word
		bits uint8
		want Word
	}{
		{have: 0xf025, bits: 8, want: 0x0025},
		{have: 0xffff, bits: 8, want: 0x00ff},
		{have: 0x0042, bits: 8, want: 0x0042},
	}

	for _, tc := range tcs {
		got := tc.have
		got.Zext(tc.bits)

		if got != tc.want {
			tt.Errorf("zext(%s, %d): want: %s, got: %s",
				tc.have, tc.bits, tc.want, got)
		}
	}
}

func TestConditionSet(tt *testing.T) {
	tt.Parallel()

	tcs := []struct {
		val  Register
		want Condition
	}{
		{val: 0x0000, want: ConditionZero},
		{val: 0x0001, want: ConditionPositive},
		{val: 0x7fff, want: ConditionPositive},
		{val: 0x8000, want: ConditionNegative},
		{val: 0xffff, want: ConditionNegative},
	}

	for _, tc := range tcs {
		var cond Condition

		cond.Set(tc.val)

		if cond != tc.want {
			tt.Errorf("cond(%s): want: %s, got: %s", tc.val, tc.want, cond)
		}

		// Exactly one flag, always.
		if bits.OnesCount16(uint16(cond)) != 1 {
			tt.Errorf("cond(%s): not one-hot: %s", tc.val, cond)
		}
	}
}
