package lcd1602

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tstpierre-tc/lcd1602gpio/internal/lcdsim"
)

var bools = []bool{false, true}

func TestEntryModeEncoding(t *testing.T) {
	for _, inc := range bools {
		for _, shift := range bools {
			b := CMD_Entry_Mode | entryModeOptions(inc, shift)
			want := byte(0x04) | optIf(inc, 0x02) | optIf(shift, 0x01)
			if b != want {
				t.Errorf("entry mode inc=%t shift=%t = %#x, want %#x", inc, shift, b, want)
			}
			got := lcdsim.Decode(b)
			if diff := cmp.Diff(got, lcdsim.Instruction{Op: lcdsim.OpEntryMode, Increment: inc, Shift: shift}); diff != "" {
				t.Errorf("Decode(%#x) difference (-got +want):\n%s", b, diff)
			}
		}
	}
}

func TestDisplayControlEncoding(t *testing.T) {
	for _, display := range bools {
		for _, cursor := range bools {
			for _, blink := range bools {
				b := CMD_Display_Control | displayControlOptions(display, cursor, blink)
				want := byte(0x08) | optIf(display, 0x04) | optIf(cursor, 0x02) | optIf(blink, 0x01)
				if b != want {
					t.Errorf("display control %t/%t/%t = %#x, want %#x", display, cursor, blink, b, want)
				}
				got := lcdsim.Decode(b)
				if diff := cmp.Diff(got, lcdsim.Instruction{Op: lcdsim.OpDisplayControl, Display: display, Cursor: cursor, Blink: blink}); diff != "" {
					t.Errorf("Decode(%#x) difference (-got +want):\n%s", b, diff)
				}
			}
		}
	}
}

func TestShiftEncoding(t *testing.T) {
	for _, tc := range []struct {
		display, right bool
		want           byte
	}{
		{false, false, 0x10},
		{false, true, 0x14},
		{true, false, 0x18},
		{true, true, 0x1c},
	} {
		b := shiftInstruction(tc.display, tc.right)
		if b != tc.want {
			t.Errorf("shift display=%t right=%t = %#x, want %#x", tc.display, tc.right, b, tc.want)
		}
		got := lcdsim.Decode(b)
		if diff := cmp.Diff(got, lcdsim.Instruction{Op: lcdsim.OpShift, ShiftDisplay: tc.display, Right: tc.right}); diff != "" {
			t.Errorf("Decode(%#x) difference (-got +want):\n%s", b, diff)
		}
	}
}

func TestFunctionSetEncoding(t *testing.T) {
	for _, eight := range bools {
		for _, two := range bools {
			for _, big := range bools {
				b := CMD_Function_Set | functionSetOptions(eight, two, big)
				want := byte(0x20) | optIf(eight, 0x10) | optIf(two, 0x08) | optIf(big, 0x04)
				if b != want {
					t.Errorf("function set %t/%t/%t = %#x, want %#x", eight, two, big, b, want)
				}
				got := lcdsim.Decode(b)
				if diff := cmp.Diff(got, lcdsim.Instruction{Op: lcdsim.OpFunctionSet, EightBit: eight, TwoLines: two, BigFont: big}); diff != "" {
					t.Errorf("Decode(%#x) difference (-got +want):\n%s", b, diff)
				}
			}
		}
	}
}

func TestAddressEncoding(t *testing.T) {
	for a := 0; a < 0x40; a++ {
		b := cgramInstruction(byte(a))
		if b != 0x40|byte(a) {
			t.Fatalf("cgram %#x = %#x", a, b)
		}
		if got := lcdsim.Decode(b); got.Op != lcdsim.OpSetCGRAM || got.Addr != byte(a) {
			t.Fatalf("Decode(%#x) = %+v", b, got)
		}
	}
	for a := 0; a < 0x80; a++ {
		b := ddramInstruction(byte(a))
		if b != 0x80|byte(a) {
			t.Fatalf("ddram %#x = %#x", a, b)
		}
		if got := lcdsim.Decode(b); got.Op != lcdsim.OpSetDDRAM || got.Addr != byte(a) {
			t.Fatalf("Decode(%#x) = %+v", b, got)
		}
	}
}

func TestFixedInstructions(t *testing.T) {
	if got := lcdsim.Decode(CMD_Clear_Display).Op; got != lcdsim.OpClear {
		t.Errorf("Decode(clear) = %s", got)
	}
	if got := lcdsim.Decode(CMD_Return_Home).Op; got != lcdsim.OpHome {
		t.Errorf("Decode(home) = %s", got)
	}
}
