// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segterm

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

var errNotImplemented = errors.New("segterm: not implemented")

// Pin is one emulated display line. It implements gpio.PinOut by
// forwarding level changes to the Display.
type Pin struct {
	dev     *Display
	name    string
	number  int
	segment bool
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the emulated pin.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the line number within its group.
func (pin *Pin) Number() int {
	return pin.number
}

// Deprecated: returns "Out"
func (pin *Pin) Function() string {
	return "Out"
}

// Out latches the specified gpio.Level into the emulator.
func (pin *Pin) Out(l gpio.Level) error {
	pin.dev.write(pin.segment, pin.number, l)
	return nil
}

// Not implemented.
func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errNotImplemented
}

func (pin *Pin) String() string {
	return pin.name
}

var _ gpio.PinOut = &Pin{}
