// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// HardwareConfig selects how the display commons are driven. It decides
// the logic level that turns a digit line and a segment line on; the
// off level is always the complement.
type HardwareConfig uint8

const (
	// CommonCathode is a common-cathode display with the digit pins
	// wired to the cathodes. Digits are active low, segments active
	// high.
	CommonCathode HardwareConfig = iota
	// CommonAnode is a common-anode display with the digit pins wired
	// to the anodes. Digits are active high, segments active low.
	CommonAnode
	// SwitchedCommonCathode drives the commons through active-high
	// low-side switches, most commonly N-channel FETs.
	SwitchedCommonCathode
	// SwitchedCommonAnode drives the commons through active-low
	// high-side switches, most commonly P-channel FETs.
	SwitchedCommonAnode
)

// Polarity returns the logic levels that illuminate a digit line and a
// segment line for this wiring.
func (h HardwareConfig) Polarity() (digitOn, segmentOn gpio.Level) {
	switch h {
	case CommonCathode:
		return gpio.Low, gpio.High
	case CommonAnode:
		return gpio.High, gpio.Low
	case SwitchedCommonCathode:
		return gpio.High, gpio.High
	default: // SwitchedCommonAnode
		return gpio.Low, gpio.Low
	}
}

func (h HardwareConfig) String() string {
	switch h {
	case CommonCathode:
		return "CommonCathode"
	case CommonAnode:
		return "CommonAnode"
	case SwitchedCommonCathode:
		return "SwitchedCommonCathode"
	case SwitchedCommonAnode:
		return "SwitchedCommonAnode"
	}
	return fmt.Sprintf("HardwareConfig(%d)", uint8(h))
}

// Topology selects where the current-limiting resistors sit, which in
// turn decides the axis the refresh cycle scans.
type Topology uint8

const (
	// ResistorsOnSegments means one resistor per segment line. The
	// refresh cycle scans digit by digit; the cycle length equals the
	// number of digits.
	ResistorsOnSegments Topology = iota
	// ResistorsOnDigits means one resistor per digit line. The refresh
	// cycle scans segment by segment; the cycle length is always eight.
	ResistorsOnDigits
)

func (t Topology) String() string {
	switch t {
	case ResistorsOnSegments:
		return "ResistorsOnSegments"
	case ResistorsOnDigits:
		return "ResistorsOnDigits"
	}
	return fmt.Sprintf("Topology(%d)", uint8(t))
}

const (
	// MaxDigits is the largest supported display width, bounded by the
	// powers-of-ten table used for decimal decomposition.
	MaxDigits = 9

	numSegments = 8
)

// Opts holds the display configuration.
type Opts struct {
	// Config selects the drive polarity. The zero value is
	// CommonCathode.
	Config HardwareConfig
	// Topology selects the scan axis. The zero value is
	// ResistorsOnSegments.
	Topology Topology
	// Clock paces the hold time of full-cycle refreshes. Leave nil for
	// the wall clock; tests inject a fake.
	Clock clockwork.Clock

	_ struct{}
}

// Dev is an open handle to a directly wired seven-segment display.
//
// All state lives in fixed-capacity arrays sized at MaxDigits; nothing
// is allocated after New, so the refresh path is safe to run from a
// timer goroutine on allocation-sensitive hosts.
type Dev struct {
	digitPins   [MaxDigits]gpio.PinOut
	segmentPins [numSegments]gpio.PinOut
	numDigits   int

	digitOn    gpio.Level
	digitOff   gpio.Level
	segmentOn  gpio.Level
	segmentOff gpio.Level

	// Scan strategy, bound once at New. steps is the cycle length:
	// numDigits when scanning digits, numSegments when scanning
	// segments.
	steps     int
	lightsOn  func(step int) error
	lightsOff func(step int) error

	clock  clockwork.Clock
	onTime time.Duration

	digitCodes [MaxDigits]byte
	// common is the scan cursor, used only by Step.
	common int
}

// New configures the display and returns a handle with every line
// driven to its off level and the displayed value set to 0.
//
// digitPins are the common lines, most-significant digit first; between
// 1 and MaxDigits of them. segmentPins are the eight segment lines in
// the order A, B, C, D, E, F, G, DP. Driving a pin with Out both
// configures it as an output and sets its level, so no separate pin
// setup is needed.
func New(digitPins, segmentPins []gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	if opts.Config > SwitchedCommonAnode {
		return nil, fmt.Errorf("sevseg: unknown hardware config %d", opts.Config)
	}
	if opts.Topology > ResistorsOnDigits {
		return nil, fmt.Errorf("sevseg: unknown topology %d", opts.Topology)
	}
	if len(digitPins) == 0 || len(digitPins) > MaxDigits {
		return nil, fmt.Errorf("sevseg: digit pin count must be 1 to %d, got %d", MaxDigits, len(digitPins))
	}
	if len(segmentPins) != numSegments {
		return nil, fmt.Errorf("sevseg: exactly %d segment pins required, got %d", numSegments, len(segmentPins))
	}
	for _, p := range digitPins {
		if p == nil {
			return nil, errors.New("sevseg: nil digit pin")
		}
	}
	for _, p := range segmentPins {
		if p == nil {
			return nil, errors.New("sevseg: nil segment pin")
		}
	}

	d := &Dev{
		numDigits: len(digitPins),
		clock:     opts.Clock,
		// Matches a brightness of 100.
		onTime: 2000 * time.Microsecond,
	}
	if d.clock == nil {
		d.clock = clockwork.NewRealClock()
	}
	d.digitOn, d.segmentOn = opts.Config.Polarity()
	d.digitOff = !d.digitOn
	d.segmentOff = !d.segmentOn
	copy(d.digitPins[:], digitPins)
	copy(d.segmentPins[:], segmentPins)

	switch opts.Topology {
	case ResistorsOnSegments:
		d.steps = d.numDigits
		d.lightsOn = d.digitScanOn
		d.lightsOff = d.digitScanOff
	case ResistorsOnDigits:
		d.steps = numSegments
		d.lightsOn = d.segmentScanOn
		d.lightsOff = d.segmentScanOff
	}

	if err := d.Clear(); err != nil {
		return nil, err
	}
	d.SetNumber(0, 0)
	return d, nil
}

// digitScanOn illuminates one digit: every segment whose bit is set in
// the digit's code is asserted, then the digit's common line.
func (d *Dev) digitScanOn(digit int) error {
	code := d.digitCodes[digit]
	for seg := 0; seg < numSegments; seg++ {
		if code&(1<<seg) != 0 {
			if err := d.segmentPins[seg].Out(d.segmentOn); err != nil {
				return err
			}
		}
	}
	return d.digitPins[digit].Out(d.digitOn)
}

// digitScanOff is the inverse of digitScanOn. The common line drops
// first so no stray segment flashes on a neighboring digit.
func (d *Dev) digitScanOff(digit int) error {
	if err := d.digitPins[digit].Out(d.digitOff); err != nil {
		return err
	}
	for seg := 0; seg < numSegments; seg++ {
		if err := d.segmentPins[seg].Out(d.segmentOff); err != nil {
			return err
		}
	}
	return nil
}

// segmentScanOn illuminates one segment across the display: every digit
// whose code has the segment's bit set is asserted, then the segment
// line itself.
func (d *Dev) segmentScanOn(segment int) error {
	mask := byte(1) << segment
	for digit := 0; digit < d.numDigits; digit++ {
		if d.digitCodes[digit]&mask != 0 {
			if err := d.digitPins[digit].Out(d.digitOn); err != nil {
				return err
			}
		}
	}
	return d.segmentPins[segment].Out(d.segmentOn)
}

// segmentScanOff is the inverse of segmentScanOn, segment line first.
func (d *Dev) segmentScanOff(segment int) error {
	if err := d.segmentPins[segment].Out(d.segmentOff); err != nil {
		return err
	}
	for digit := 0; digit < d.numDigits; digit++ {
		if err := d.digitPins[digit].Out(d.digitOff); err != nil {
			return err
		}
	}
	return nil
}

// Refresh draws one full multiplex cycle and blocks for the
// brightness-controlled hold time on every step. Call it back to back
// from the main loop; any pause longer than a few milliseconds between
// calls shows as flicker.
func (d *Dev) Refresh() error {
	for step := 0; step < d.steps; step++ {
		if err := d.lightsOn(step); err != nil {
			return err
		}
		// Hold with the lights on; this is where brightness comes
		// from.
		d.clock.Sleep(d.onTime)
		if err := d.lightsOff(step); err != nil {
			return err
		}
	}
	return nil
}

// Step extinguishes the current scan position, advances to the next and
// illuminates it, then returns immediately. Call it at a fixed rate
// from a timer goroutine; the interval between calls is the on-time, so
// SetBrightness has no effect in this mode.
func (d *Dev) Step() error {
	if err := d.lightsOff(d.common); err != nil {
		return err
	}
	d.common++
	if d.common == d.steps {
		d.common = 0
	}
	return d.lightsOn(d.common)
}

// Clear drives every digit and segment line to its off level,
// regardless of the current digit codes. With timer-driven refresh this
// guarantees a dark display before, say, powering down the host.
func (d *Dev) Clear() error {
	for digit := 0; digit < d.numDigits; digit++ {
		if err := d.digitPins[digit].Out(d.digitOff); err != nil {
			return err
		}
	}
	for seg := 0; seg < numSegments; seg++ {
		if err := d.segmentPins[seg].Out(d.segmentOff); err != nil {
			return err
		}
	}
	return nil
}

// SetBrightness sets the display brightness as a percentage. The value
// is clamped to [0, 100] and mapped linearly to a hold time of 1µs to
// 2000µs per refresh step. It only affects Refresh; with Step the
// caller's tick interval governs the on-time.
func (d *Dev) SetBrightness(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	d.onTime = time.Duration(1+percent*1999/100) * time.Microsecond
}

func (d *Dev) String() string {
	return fmt.Sprintf("sevseg.Dev{%d digits}", d.numDigits)
}

// Halt blanks the display. It implements conn.Resource.
func (d *Dev) Halt() error {
	return d.Clear()
}

var _ conn.Resource = &Dev{}
