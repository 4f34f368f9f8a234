/*
Copyright 2024 Tim St. Pierre
Options for lcd1602 character display
*/
package lcd1602

import (
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/host/v3/cpu"
)

// Delayer blocks the caller for at least d.
//
// The controller has no readable busy flag on this bus, so every wait is a
// fixed worst case delay issued through a Delayer.
type Delayer interface {
	Delay(d time.Duration)
}

// DelayFunc adapts a plain function to a Delayer.
type DelayFunc func(d time.Duration)

func (f DelayFunc) Delay(d time.Duration) {
	f(d)
}

// spinDelay spins for sub-millisecond waits, where the scheduler is too
// coarse, and sleeps for everything else.
type spinDelay struct{}

func (spinDelay) Delay(d time.Duration) {
	if d < time.Millisecond {
		cpu.Nanospin(d)
		return
	}
	time.Sleep(d)
}

type Opts struct {
	// Delay is used for every protocol wait. Defaults to a spinning delayer.
	Delay Delayer
	// Logger receives driver diagnostics. Defaults to the logrus standard logger.
	Logger log.FieldLogger
}

var DefaultOpts = Opts{
	Delay:  spinDelay{},
	Logger: log.StandardLogger(),
}

func (o *Opts) delayer() Delayer {
	if o.Delay == nil {
		return DefaultOpts.Delay
	}
	return o.Delay
}

func (o *Opts) logger() log.FieldLogger {
	if o.Logger == nil {
		return DefaultOpts.Logger
	}
	return o.Logger
}
