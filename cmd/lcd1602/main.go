/*
Copyright 2024 Tim St. Pierre
Demo for a 1602 character LCD wired to GPIO in 4-bit mode
*/

// lcd1602 initializes a directly wired LCD and writes text or the demo
// CGRAM characters to it.
//
// Example:
//
//	lcd1602 -rs GPIO4 -rw GPIO5 -e GPIO6 -d GPIO10,GPIO11,GPIO12,GPIO13 -text "Hello World"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	lcd1602 "github.com/tstpierre-tc/lcd1602gpio"
)

var (
	rsPin    = flag.String("rs", "GPIO4", "register select pin")
	rwPin    = flag.String("rw", "GPIO5", "read/write pin")
	ePin     = flag.String("e", "GPIO6", "enable pin")
	dataPins = flag.String("d", "GPIO10,GPIO11,GPIO12,GPIO13", "D4,D5,D6,D7 pins")
	text     = flag.String("text", "Hello World", "text to write")
	glyphs   = flag.Bool("glyphs", false, "program and show the demo CGRAM characters")
	cursor   = flag.Bool("cursor", true, "show the cursor")
	blink    = flag.Bool("blink", true, "blink the cursor")
	verbose  = flag.Bool("v", false, "log every byte sent")
)

// Custom characters, top row first.
var demoGlyphs = [lcd1602.CGChars][8]byte{
	{0b10101, 0b01010, 0b10101, 0b01010, 0b10101, 0b01010, 0b10101, 0b01010}, // checkers
	{0b00100, 0b01110, 0b11111, 0b01110, 0b01110, 0b01110, 0b01110, 0b01110}, // arrow
	{0b00000, 0b00000, 0b01010, 0b11111, 0b01110, 0b00100, 0b00000, 0b00000}, // heart
	{0b00000, 0b00111, 0b00111, 0b00111, 0b00000, 0b11000, 0b01111, 0b00000}, // smiley, left
	{0b00000, 0b11100, 0b11100, 0b11100, 0b00000, 0b00011, 0b11110, 0b00000}, // smiley, right
	{0b00000, 0b00000, 0b00000, 0b00100, 0b01010, 0b10001, 0b10001, 0b11111}, // house
	{0b00000, 0b11111, 0b10001, 0b01010, 0b00100, 0b01010, 0b10001, 0b11111}, // hourglass
	{0b01100, 0b01100, 0b00100, 0b01110, 0b10101, 0b00100, 0b01010, 0b11011}, // stickman
}

func lookup(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("GPIO pin %s not found", name)
	}
	return p, nil
}

func openPins() (rs, rw, e gpio.PinOut, data [4]gpio.PinOut, err error) {
	names := strings.Split(*dataPins, ",")
	if len(names) != 4 {
		return nil, nil, nil, data, fmt.Errorf("-d needs 4 pins, got %d", len(names))
	}
	if rs, err = lookup(*rsPin); err != nil {
		return
	}
	if rw, err = lookup(*rwPin); err != nil {
		return
	}
	if e, err = lookup(*ePin); err != nil {
		return
	}
	for i, n := range names {
		if data[i], err = lookup(strings.TrimSpace(n)); err != nil {
			return
		}
	}
	return
}

func mainImpl() error {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph.io: %w", err)
	}
	rs, rw, e, data, err := openPins()
	if err != nil {
		return err
	}
	dev, err := lcd1602.New(rs, rw, e, data, nil)
	if err != nil {
		return err
	}
	log.Infof("Using %s", dev)
	dev.Init()

	if *glyphs {
		for i, g := range demoGlyphs {
			if err := dev.CreateChar(byte(i), g); err != nil {
				return err
			}
		}
		if err := dev.SetPosition(0); err != nil {
			return err
		}
		for i := range demoGlyphs {
			dev.WriteData(byte(i))
		}
	} else if err := dev.WriteString(*text); err != nil {
		return err
	}

	dev.SetCursor(*cursor)
	dev.SetBlink(*blink)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "lcd1602: %s.\n", err)
		os.Exit(1)
	}
}
