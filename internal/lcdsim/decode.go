/*
Copyright 2024 Tim St. Pierre
Instruction decoding
*/
package lcdsim

import "fmt"

type Op int

const (
	OpClear Op = iota
	OpHome
	OpEntryMode
	OpDisplayControl
	OpShift
	OpFunctionSet
	OpSetCGRAM
	OpSetDDRAM
	OpNop
)

var opNames = [...]string{"clear", "home", "entry", "control", "shift", "function", "cgram", "ddram", "nop"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Instruction is an instruction byte split into its opcode and options.
// Only the fields belonging to Op are meaningful.
type Instruction struct {
	Op Op

	// OpEntryMode
	Increment bool
	Shift     bool

	// OpDisplayControl
	Display bool
	Cursor  bool
	Blink   bool

	// OpShift
	ShiftDisplay bool
	Right        bool

	// OpFunctionSet
	EightBit bool
	TwoLines bool
	BigFont  bool

	// OpSetCGRAM, OpSetDDRAM
	Addr byte
}

// Decode identifies an instruction by its highest set bit, as the
// controller does. Zero is not an instruction and decodes as OpNop.
func Decode(b byte) Instruction {
	switch {
	case b&0x80 != 0:
		return Instruction{Op: OpSetDDRAM, Addr: b & 0x7f}
	case b&0x40 != 0:
		return Instruction{Op: OpSetCGRAM, Addr: b & 0x3f}
	case b&0x20 != 0:
		return Instruction{Op: OpFunctionSet, EightBit: b&0x10 != 0, TwoLines: b&0x08 != 0, BigFont: b&0x04 != 0}
	case b&0x10 != 0:
		return Instruction{Op: OpShift, ShiftDisplay: b&0x08 != 0, Right: b&0x04 != 0}
	case b&0x08 != 0:
		return Instruction{Op: OpDisplayControl, Display: b&0x04 != 0, Cursor: b&0x02 != 0, Blink: b&0x01 != 0}
	case b&0x04 != 0:
		return Instruction{Op: OpEntryMode, Increment: b&0x02 != 0, Shift: b&0x01 != 0}
	case b&0x02 != 0:
		return Instruction{Op: OpHome}
	case b&0x01 != 0:
		return Instruction{Op: OpClear}
	default:
		return Instruction{Op: OpNop}
	}
}
