/*
Copyright 2024 Tim St. Pierre
Controls a 1602 character LCD display wired directly to GPIO in 4-bit mode
*/
package lcd1602

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const (
	// Longest text accepted by a single write. The controller wraps its
	// address counter around this point.
	MaxText = 80
	// Number of programmable CGRAM characters.
	CGChars = 8
	// Highest address accepted by SetPosition.
	MaxAddress = 0x80

	powerOnDelay = 500 * time.Millisecond
	initDelay    = 10 * time.Millisecond
	homeDelay    = 2 * time.Millisecond

	// Enable pulse timing
	setupDelay  = 1 * time.Microsecond
	pulseWidth  = 40 * time.Microsecond
	settleDelay = 40 * time.Millisecond
)

var (
	ErrNilPin      = errors.New("lcd1602: nil pin")
	ErrNotASCII    = errors.New("lcd1602: text is not ASCII")
	ErrTextTooLong = errors.New("lcd1602: text too long")
	ErrCGIndex     = errors.New("lcd1602: CGRAM index out of range")
	ErrAddress     = errors.New("lcd1602: DDRAM address out of range")
)

// Dev drives an HD44780 compatible controller over a 4-bit parallel bus.
//
// The bus is write only, so Dev keeps a shadow copy of the display control
// register. Dev is not safe for concurrent use.
type Dev struct {
	rs   gpio.PinOut
	rw   gpio.PinOut
	e    gpio.PinOut
	data [4]gpio.PinOut

	// Shadow registers, options only (no opcode bits).
	displayControl byte
	functionSet    byte
	entryMode      byte

	delay Delayer
	log   log.FieldLogger
}

// New returns a driver for the given pins. data holds D4 to D7 in that order.
//
// No pin is touched until Init is called. Use default options if nil is used.
func New(rs, rw, e gpio.PinOut, data [4]gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if rs == nil || rw == nil || e == nil {
		return nil, fmt.Errorf("control pins: %w", ErrNilPin)
	}
	for i, p := range data {
		if p == nil {
			return nil, fmt.Errorf("D%d: %w", i+4, ErrNilPin)
		}
	}
	return &Dev{
		rs:             rs,
		rw:             rw,
		e:              e,
		data:           data,
		displayControl: displayControlOptions(true, true, true),
		functionSet:    functionSetOptions(false, true, false),
		entryMode:      entryModeOptions(true, false),
		delay:          opts.delayer(),
		log:            opts.logger(),
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcd1602{rs=%s, e=%s, d4=%s}", d.rs, d.e, d.data[0])
}

// Halt turns the display off. Contents are kept.
func (d *Dev) Halt() error {
	d.SetDisplay(false)
	return nil
}

// Init runs the power-on sequence for 4-bit operation. It must be called
// once before any other operation. It always ends with display, cursor and
// blink on and the cursor at home.
func (d *Dev) Init() {
	d.log.Info("Initializing display")
	d.delay.Delay(powerOnDelay)
	d.out(d.rs, gpio.Low)
	d.out(d.e, gpio.Low)
	d.out(d.rw, gpio.Low)

	// Reset into 8-bit mode whatever state it was left in.
	for i := 0; i < 3; i++ {
		d.send4bits(0x3)
		d.delay.Delay(initDelay)
	}
	d.send4bits(0x2)

	d.Command(CMD_Function_Set | d.functionSet)
	d.delay.Delay(initDelay)
	d.Command(CMD_Display_Control | displayControlOptions(false, false, false))
	d.delay.Delay(initDelay)
	d.Command(CMD_Clear_Display)
	d.delay.Delay(initDelay)
	d.Command(CMD_Entry_Mode | d.entryMode)
	d.delay.Delay(initDelay)

	on := displayControlOptions(true, true, true)
	d.Command(CMD_Display_Control | on)
	d.displayControl = on
	d.delay.Delay(initDelay)

	d.Home()
	d.log.Info("Display initialized")
}

// Clear blanks the display and returns the cursor home.
func (d *Dev) Clear() {
	d.Command(CMD_Clear_Display)
}

func (d *Dev) Home() {
	d.Command(CMD_Return_Home)
	d.delay.Delay(homeDelay)
}

// DisplayControl returns the display, cursor and blink bits last written.
func (d *Dev) DisplayControl() byte {
	return d.displayControl
}

func (d *Dev) SetDisplay(on bool) {
	d.writeDisplayControl(OPT_Enable_Display, on)
}

func (d *Dev) SetCursor(on bool) {
	d.writeDisplayControl(OPT_Enable_Cursor, on)
}

func (d *Dev) SetBlink(on bool) {
	d.writeDisplayControl(OPT_Enable_Blink, on)
}

// writeDisplayControl changes one bit of the display control register and
// keeps the other two as last written.
func (d *Dev) writeDisplayControl(bit byte, on bool) {
	option := d.displayControl &^ bit & displayControlMask
	if on {
		option |= bit
	}
	d.Command(CMD_Display_Control | option)
	d.displayControl = option
}

func (d *Dev) DisplayShift(right bool) {
	d.Command(shiftInstruction(true, right))
}

func (d *Dev) CursorShift(right bool) {
	d.Command(shiftInstruction(false, right))
}

// SetPosition moves the cursor to a raw DDRAM address.
func (d *Dev) SetPosition(addr byte) error {
	if addr > MaxAddress {
		d.log.Debugf("Rejected DDRAM address %#x", addr)
		return fmt.Errorf("%w: %#x", ErrAddress, addr)
	}
	d.Command(ddramInstruction(addr))
	return nil
}

// CreateChar programs CGRAM character index with pattern, top row first.
// Only bits 4 to 0 of each row are used. The address counter is left in
// CGRAM, so call SetPosition or Home before writing text again.
func (d *Dev) CreateChar(index byte, pattern [8]byte) error {
	if index >= CGChars {
		d.log.Debugf("Rejected CGRAM index %d", index)
		return fmt.Errorf("%w: %d", ErrCGIndex, index)
	}
	d.Command(cgramInstruction(index * 8))
	for _, row := range pattern {
		d.WriteData(row)
	}
	return nil
}

// Write implements io.Writer. Either every byte is written or none is.
func (d *Dev) Write(buf []byte) (int, error) {
	if err := checkText(buf); err != nil {
		d.log.Debugf("Rejected text: %v", err)
		return 0, err
	}
	for _, c := range buf {
		d.WriteData(c)
	}
	return len(buf), nil
}

func (d *Dev) WriteString(text string) error {
	_, err := d.Write([]byte(text))
	return err
}

func checkText(buf []byte) error {
	if len(buf) > MaxText {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTextTooLong, len(buf), MaxText)
	}
	for i, c := range buf {
		if c >= 0x80 {
			return fmt.Errorf("%w: byte %#x at %d", ErrNotASCII, c, i)
		}
	}
	return nil
}

// Command writes a raw instruction byte.
func (d *Dev) Command(cmd byte) {
	d.log.Debugf("Command %02x", cmd)
	d.send(cmd, gpio.Low, gpio.Low)
}

// WriteData writes a raw byte to the current CGRAM or DDRAM address. Bytes 0
// to 7 display the programmable characters.
func (d *Dev) WriteData(b byte) {
	d.log.Debugf("Data %02x", b)
	d.send(b, gpio.High, gpio.Low)
}

func (d *Dev) send(value byte, rs, rw gpio.Level) {
	d.out(d.rs, rs)
	d.out(d.rw, rw)
	d.send4bits(value >> 4)
	d.send4bits(value & 0x0f)
}

// send4bits puts bit 0 of nibble on D4 through bit 3 on D7 and strobes it.
func (d *Dev) send4bits(nibble byte) {
	for i, p := range d.data {
		d.out(p, gpio.Level(nibble>>i&0x01 == 0x01))
	}
	d.enable()
}

func (d *Dev) enable() {
	d.out(d.e, gpio.Low)
	d.delay.Delay(setupDelay)
	d.out(d.e, gpio.High)
	d.delay.Delay(pulseWidth)
	d.out(d.e, gpio.Low)
	d.delay.Delay(settleDelay)
}

// out drives p and drops any error; the bus gives no way to recover.
func (d *Dev) out(p gpio.PinOut, l gpio.Level) {
	if err := p.Out(l); err != nil {
		d.log.WithError(err).Debugf("Pin %s output ignored", p)
	}
}

var _ conn.Resource = &Dev{}
