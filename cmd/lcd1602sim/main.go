/*
Copyright 2024 Tim St. Pierre
Runs the lcd1602 driver against an emulated controller
*/

// lcd1602sim drives the real lcd1602 driver against an emulated HD44780 and
// prints what the display would show.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	lcd1602 "github.com/tstpierre-tc/lcd1602gpio"
	"github.com/tstpierre-tc/lcd1602gpio/internal/lcdsim"
)

var (
	cols     = flag.Int("cols", 16, "visible columns")
	text     = flag.String("text", "Hello World", "text for the first line")
	second   = flag.String("line2", "", "text for the second line")
	shift    = flag.Int("shift", 0, "display shifts, negative for left")
	realTime = flag.Bool("realtime", false, "honor protocol delays instead of skipping them")
	trace    = flag.Bool("trace", false, "print every executed transfer")
	verbose  = flag.Bool("v", false, "log every byte sent")
)

const (
	inverse = "\x1b[7m"
	reset   = "\x1b[0m"
)

func render(w io.Writer, c *lcdsim.Controller, ansi bool) error {
	if !ansi {
		return c.Render(w)
	}
	for _, l := range c.Lines() {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", inverse, l, reset); err != nil {
			return err
		}
	}
	return nil
}

func mainImpl() error {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	c := lcdsim.New(*cols)
	rs, rw, e, data := c.Pins()
	opts := lcd1602.Opts{Delay: lcd1602.DelayFunc(func(time.Duration) {})}
	if *realTime {
		opts.Delay = nil
	}
	dev, err := lcd1602.New(rs, rw, e, data, &opts)
	if err != nil {
		return err
	}
	dev.Init()
	if err := dev.WriteString(*text); err != nil {
		return err
	}
	if *second != "" {
		if err := dev.SetPosition(0x40); err != nil {
			return err
		}
		if err := dev.WriteString(*second); err != nil {
			return err
		}
	}
	for i := 0; i < *shift; i++ {
		dev.DisplayShift(true)
	}
	for i := 0; i > *shift; i-- {
		dev.DisplayShift(false)
	}

	if *trace {
		for _, t := range c.Transfers() {
			log.Info(t)
		}
	}
	ansi := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return render(colorable.NewColorableStdout(), c, ansi)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "lcd1602sim: %s.\n", err)
		os.Exit(1)
	}
}
