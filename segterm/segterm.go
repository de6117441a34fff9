// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segterm emulates a multiplexed seven-segment LED display on
// the terminal using ANSI color codes.
//
// The emulator hangs off the real driver: it hands out gpio.PinOut
// handles for the digit and segment lines and watches the levels the
// driver writes. Any instant where a digit line and a segment line are
// both at their on-levels marks that segment as lit, mimicking
// persistence of vision. Useful while you are waiting for your LED
// display to come by mail, and for testing refresh logic without
// hardware.
package segterm

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const numSegments = 8

// Cell layout of one displayed position. Each cell holds the segment
// index it belongs to, or -1 for a gap.
var glyphGrid = [5][5]int8{
	{-1, 0, 0, -1, -1},
	{5, -1, -1, 1, -1},
	{-1, 6, 6, -1, -1},
	{4, -1, -1, 2, -1},
	{-1, 3, 3, -1, 7},
}

// Opts represents the options available for the emulator.
type Opts struct {
	// Digits is the number of display positions.
	Digits int
	// DigitOn and SegmentOn are the levels that illuminate a digit and
	// a segment line. They must match the HardwareConfig the driver was
	// created with; sevseg.HardwareConfig.Polarity returns them. The
	// zero values correspond to an active-low high-side switch wiring.
	DigitOn   gpio.Level
	SegmentOn gpio.Level
	// On and Off color the lit and dark segments. Zero values pick LED
	// red over a dim gray.
	On  color.NRGBA
	Off color.NRGBA
	// W receives the rendered frames. Leave nil for stdout.
	W io.Writer
	// Palette translates colors to ANSI codes. Leave nil for the
	// default 256 color palette.
	Palette *ansi256.Palette

	_ struct{}
}

// Display is a seven-segment display emulator that outputs to the
// console.
type Display struct {
	w         io.Writer
	palette   ansi256.Palette
	on        color.NRGBA
	off       color.NRGBA
	digitOn   gpio.Level
	segmentOn gpio.Level

	mu          sync.Mutex
	digitLevel  []gpio.Level
	segLevel    [numSegments]gpio.Level
	accumulated []byte

	buf bytes.Buffer

	digitPins []gpio.PinOut
	segPins   [numSegments]gpio.PinOut
}

// New returns a Display emulating opts.Digits positions at the console.
func New(opts *Opts) (*Display, error) {
	if opts.Digits < 1 {
		return nil, errors.New("segterm: at least one digit required")
	}
	d := &Display{
		w:           opts.W,
		on:          opts.On,
		off:         opts.Off,
		digitOn:     opts.DigitOn,
		segmentOn:   opts.SegmentOn,
		digitLevel:  make([]gpio.Level, opts.Digits),
		accumulated: make([]byte, opts.Digits),
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d.palette = *p
	if d.on == (color.NRGBA{}) {
		d.on = color.NRGBA{R: 255, A: 255}
	}
	if d.off == (color.NRGBA{}) {
		d.off = color.NRGBA{R: 28, G: 28, B: 28, A: 255}
	}
	// Idle lines sit at the complement of their on-level.
	for ix := range d.digitLevel {
		d.digitLevel[ix] = !d.digitOn
	}
	for ix := range d.segLevel {
		d.segLevel[ix] = !d.segmentOn
	}
	d.digitPins = make([]gpio.PinOut, opts.Digits)
	for ix := range d.digitPins {
		d.digitPins[ix] = &Pin{dev: d, name: fmt.Sprintf("SegTerm_DIG%d", ix), number: ix, segment: false}
	}
	for ix := range d.segPins {
		d.segPins[ix] = &Pin{dev: d, name: fmt.Sprintf("SegTerm_SEG%d", ix), number: ix, segment: true}
	}
	return d, nil
}

// DigitPins returns the common lines of the emulated display, most
// significant digit first. Hand them to the driver as its digit pins.
func (d *Display) DigitPins() []gpio.PinOut {
	return d.digitPins
}

// SegmentPins returns the eight segment lines A through DP. Hand them
// to the driver as its segment pins.
func (d *Display) SegmentPins() []gpio.PinOut {
	return d.segPins[:]
}

// write latches a level change and accumulates every digit/segment
// crossing that is currently illuminated.
func (d *Display) write(segment bool, number int, l gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if segment {
		d.segLevel[number] = l
	} else {
		d.digitLevel[number] = l
	}
	for digit, dl := range d.digitLevel {
		if dl != d.digitOn {
			continue
		}
		for seg, sl := range d.segLevel {
			if sl == d.segmentOn {
				d.accumulated[digit] |= 1 << seg
			}
		}
	}
}

// Frame returns the segments lit since the previous call, one code per
// digit, and resets the accumulation. Call it once per refresh cycle.
func (d *Display) Frame() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	frame := make([]byte, len(d.accumulated))
	copy(frame, d.accumulated)
	for ix := range d.accumulated {
		d.accumulated[ix] = 0
	}
	return frame
}

// Render draws one frame of digit codes as colored seven-segment
// glyphs, five terminal rows high. codes is typically the result of
// Frame.
func (d *Display) Render(codes []byte) error {
	// Minimize allocations per call; this runs at frame rate.
	d.buf.Reset()
	for row := 0; row < len(glyphGrid); row++ {
		_, _ = d.buf.WriteString("\033[0m")
		for digit := 0; digit < len(d.digitPins); digit++ {
			var code byte
			if digit < len(codes) {
				code = codes[digit]
			}
			for col := 0; col < len(glyphGrid[row]); col++ {
				seg := glyphGrid[row][col]
				switch {
				case seg < 0:
					_ = d.buf.WriteByte(' ')
				case code&(1<<uint8(seg)) != 0:
					_, _ = io.WriteString(&d.buf, d.palette.Block(d.on))
				default:
					_, _ = io.WriteString(&d.buf, d.palette.Block(d.off))
				}
			}
			_ = d.buf.WriteByte(' ')
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Display) String() string {
	return fmt.Sprintf("SegTerm{%d digits}", len(d.digitPins))
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not left corrupted.
func (d *Display) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

var _ conn.Resource = &Display{}
