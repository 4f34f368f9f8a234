/*
Copyright 2024 Tim St. Pierre
Instruction encoding for the HD44780 controller
*/
package lcd1602

const (
	// Commands
	CMD_Clear_Display        = 0x01
	CMD_Return_Home          = 0x02
	CMD_Entry_Mode           = 0x04
	CMD_Display_Control      = 0x08
	CMD_Cursor_Display_Shift = 0x10
	CMD_Function_Set         = 0x20
	CMD_CGRAM_Set            = 0x40
	CMD_DDRAM_Set            = 0x80

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode 0 = decrement
	OPT_Entry_Shift    = 0x01 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control
	OPT_Enable_Cursor  = 0x02 // CMD_Display_Control
	OPT_Enable_Blink   = 0x01 // CMD_Display_Control
	OPT_Display_Shift  = 0x08 // CMD_Cursor_Display_Shift 0 = move cursor
	OPT_Shift_Right    = 0x04 // CMD_Cursor_Display_Shift 0 = Left
	OPT_8_Bit          = 0x10 // CMD_Function_Set 0 = 4 bit
	OPT_2_Lines        = 0x08 // CMD_Function_Set 0 = 1 line
	OPT_5x10_Dots      = 0x04 // CMD_Function_Set 0 = 5x8 dots

	displayControlMask = OPT_Enable_Display | OPT_Enable_Cursor | OPT_Enable_Blink
	cgramAddrMask      = 0x3f
	ddramAddrMask      = 0x7f
)

func optIf(on bool, bit byte) byte {
	if on {
		return bit
	}
	return 0
}

func entryModeOptions(increment, shift bool) byte {
	return optIf(increment, OPT_Increment) | optIf(shift, OPT_Entry_Shift)
}

func displayControlOptions(display, cursor, blink bool) byte {
	return optIf(display, OPT_Enable_Display) | optIf(cursor, OPT_Enable_Cursor) | optIf(blink, OPT_Enable_Blink)
}

func functionSetOptions(eightBit, twoLines, bigFont bool) byte {
	return optIf(eightBit, OPT_8_Bit) | optIf(twoLines, OPT_2_Lines) | optIf(bigFont, OPT_5x10_Dots)
}

func shiftInstruction(display, right bool) byte {
	return CMD_Cursor_Display_Shift | optIf(display, OPT_Display_Shift) | optIf(right, OPT_Shift_Right)
}

func cgramInstruction(addr byte) byte {
	return CMD_CGRAM_Set | addr&cgramAddrMask
}

// ddramInstruction keeps only 7 address bits; 0x80 wraps to cell 0.
func ddramInstruction(addr byte) byte {
	return CMD_DDRAM_Set | addr&ddramAddrMask
}
