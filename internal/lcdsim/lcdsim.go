/*
Copyright 2024 Tim St. Pierre
Software model of an HD44780 controller driven through GPIO pins
*/

// Package lcdsim emulates the write side of an HD44780 character LCD
// controller. It watches the RS, RW, E and D4 to D7 lines, latches a nibble
// on every falling edge of E and executes the reassembled instructions
// against its own DDRAM and CGRAM.
package lcdsim

import (
	"fmt"
	"io"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

const (
	ddramSize = 0x80
	cgramSize = 0x40
	line2     = 0x40
)

// Transfer is one instruction or data byte as executed by the controller.
type Transfer struct {
	Data  bool // RS high
	Value byte
	// For data transfers, the RAM and address written to.
	CGRAM bool
	Addr  byte
}

func (t Transfer) String() string {
	if !t.Data {
		return fmt.Sprintf("cmd %02x", t.Value)
	}
	ram := "ddram"
	if t.CGRAM {
		ram = "cgram"
	}
	return fmt.Sprintf("data %02x @%s %02x", t.Value, ram, t.Addr)
}

// Controller is the emulated chip. It is not safe for concurrent use; the
// driver under test is the only writer.
type Controller struct {
	cols int

	rs, rw, e *pin
	data      [4]*pin

	// 4-bit interface state
	fourBit bool
	pending bool
	high    byte
	strobes int

	// Registers
	ddram     [ddramSize]byte
	cgram     [cgramSize]byte
	ac        byte
	inCGRAM   bool
	increment bool
	autoShift bool
	displayOn bool
	cursorOn  bool
	blinkOn   bool
	twoLines  bool
	bigFont   bool
	offset    int

	transfers []Transfer
}

// New returns a powered up controller with cols visible columns per line.
func New(cols int) *Controller {
	c := &Controller{cols: cols, increment: true}
	for i := range c.ddram {
		c.ddram[i] = ' '
	}
	c.rs = &pin{Pin: &gpiotest.Pin{N: "RS", Num: 0}}
	c.rw = &pin{Pin: &gpiotest.Pin{N: "RW", Num: 1}}
	c.e = &pin{Pin: &gpiotest.Pin{N: "E", Num: 2}, onFall: c.latch}
	for i := range c.data {
		c.data[i] = &pin{Pin: &gpiotest.Pin{N: fmt.Sprintf("D%d", i+4), Num: i + 4}}
	}
	return c
}

// Pins returns the emulated control lines and D4 to D7.
func (c *Controller) Pins() (rs, rw, e gpio.PinOut, data [4]gpio.PinOut) {
	for i, p := range c.data {
		data[i] = p
	}
	return c.rs, c.rw, c.e, data
}

// Transfers returns every byte executed so far, in order.
func (c *Controller) Transfers() []Transfer {
	return append([]Transfer(nil), c.transfers...)
}

// Strobes is the number of E pulses seen, including those that only
// carried half a byte.
func (c *Controller) Strobes() int {
	return c.strobes
}

// Reset forgets recorded transfers and strobes. RAM and registers are kept.
func (c *Controller) Reset() {
	c.transfers = nil
	c.strobes = 0
}

func (c *Controller) FourBit() bool   { return c.fourBit }
func (c *Controller) DisplayOn() bool { return c.displayOn }
func (c *Controller) CursorOn() bool  { return c.cursorOn }
func (c *Controller) BlinkOn() bool   { return c.blinkOn }
func (c *Controller) TwoLines() bool  { return c.twoLines }
func (c *Controller) Address() byte   { return c.ac }
func (c *Controller) Offset() int     { return c.offset }

// DDRAM returns n bytes of display RAM starting at addr.
func (c *Controller) DDRAM(addr, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = c.ddram[(addr+i)%ddramSize]
	}
	return out
}

// Glyph returns the eight pattern rows of CGRAM character index.
func (c *Controller) Glyph(index int) [8]byte {
	var g [8]byte
	copy(g[:], c.cgram[(index%8)*8:])
	return g
}

func (c *Controller) bus() byte {
	var nibble byte
	for i, p := range c.data {
		if p.level {
			nibble |= 1 << i
		}
	}
	return nibble
}

// latch runs on a falling edge of E.
func (c *Controller) latch() {
	c.strobes++
	if c.rw.level {
		// Reads are not modelled.
		return
	}
	nibble := c.bus()
	if !c.fourBit {
		// In 8-bit mode D0 to D3 are not wired and read as low.
		c.execute(bool(c.rs.level), nibble<<4)
		return
	}
	if !c.pending {
		c.high = nibble
		c.pending = true
		return
	}
	c.pending = false
	c.execute(bool(c.rs.level), c.high<<4|nibble)
}

func (c *Controller) execute(data bool, v byte) {
	if data {
		c.writeData(v)
		return
	}
	c.transfers = append(c.transfers, Transfer{Value: v})
	in := Decode(v)
	switch in.Op {
	case OpClear:
		for i := range c.ddram {
			c.ddram[i] = ' '
		}
		c.ac, c.inCGRAM, c.offset, c.increment = 0, false, 0, true
	case OpHome:
		c.ac, c.inCGRAM, c.offset = 0, false, 0
	case OpEntryMode:
		c.increment, c.autoShift = in.Increment, in.Shift
	case OpDisplayControl:
		c.displayOn, c.cursorOn, c.blinkOn = in.Display, in.Cursor, in.Blink
	case OpShift:
		step := -1
		if in.Right {
			step = 1
		}
		if in.ShiftDisplay {
			// Shifting the display left moves the window right.
			c.offset -= step
		} else {
			c.move(step)
		}
	case OpFunctionSet:
		c.fourBit = !in.EightBit
		c.twoLines, c.bigFont = in.TwoLines, in.BigFont
	case OpSetCGRAM:
		c.ac, c.inCGRAM = in.Addr, true
	case OpSetDDRAM:
		c.ac, c.inCGRAM = in.Addr, false
	}
}

func (c *Controller) writeData(v byte) {
	t := Transfer{Data: true, Value: v, CGRAM: c.inCGRAM, Addr: c.ac}
	c.transfers = append(c.transfers, t)
	step := -1
	if c.increment {
		step = 1
	}
	if c.inCGRAM {
		c.cgram[c.ac%cgramSize] = v & 0x1f
	} else {
		c.ddram[c.ac%ddramSize] = v
		if c.autoShift {
			c.offset += step
		}
	}
	c.move(step)
}

func (c *Controller) move(step int) {
	size := ddramSize
	if c.inCGRAM {
		size = cgramSize
	}
	c.ac = byte((int(c.ac) + step + size) % size)
}

// Lines returns the visible text, one string per display line. Bytes below
// 8 are CGRAM characters and are shown as '#'. A display that is off shows
// blank lines.
func (c *Controller) Lines() []string {
	starts := []int{0}
	if c.twoLines {
		starts = append(starts, line2)
	}
	lines := make([]string, len(starts))
	for i, start := range starts {
		var b strings.Builder
		for col := 0; col < c.cols; col++ {
			ch := c.ddram[((start+col+c.offset)%ddramSize+ddramSize)%ddramSize]
			switch {
			case !c.displayOn:
				ch = ' '
			case ch < 8:
				ch = '#'
			case ch < 0x20 || ch >= 0x7f:
				ch = '?'
			}
			b.WriteByte(ch)
		}
		lines[i] = b.String()
	}
	return lines
}

// Render writes the visible window framed by a border.
func (c *Controller) Render(w io.Writer) error {
	border := "+" + strings.Repeat("-", c.cols) + "+\n"
	if _, err := io.WriteString(w, border); err != nil {
		return err
	}
	for _, l := range c.Lines() {
		if _, err := fmt.Fprintf(w, "|%s|\n", l); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, border)
	return err
}

// pin records the level last driven and reports falling edges.
type pin struct {
	*gpiotest.Pin
	level  gpio.Level
	onFall func()
}

func (p *pin) Out(l gpio.Level) error {
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	fell := p.level == gpio.High && l == gpio.Low
	p.level = l
	if fell && p.onFall != nil {
		p.onFall()
	}
	return nil
}
