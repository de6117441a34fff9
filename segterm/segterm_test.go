// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func TestNewErrors(t *testing.T) {
	if _, err := New(&Opts{}); err == nil {
		t.Error("New() should reject zero digits")
	}
}

func TestAccumulation(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{
		Digits:    2,
		DigitOn:   gpio.Low,
		SegmentOn: gpio.High,
		W:         &buf,
	})
	if err != nil {
		t.Fatal(err)
	}

	digits := d.DigitPins()
	segments := d.SegmentPins()
	if len(digits) != 2 || len(segments) != 8 {
		t.Fatalf("pin counts = %d/%d, want 2/8", len(digits), len(segments))
	}

	// Scan digit 0 with segments A and B, matching what the driver does
	// in the resistors-on-segments topology.
	_ = segments[0].Out(gpio.High)
	_ = segments[1].Out(gpio.High)
	_ = digits[0].Out(gpio.Low)
	_ = digits[0].Out(gpio.High)
	_ = segments[0].Out(gpio.Low)
	_ = segments[1].Out(gpio.Low)
	// Scan digit 1 with segment G.
	_ = segments[6].Out(gpio.High)
	_ = digits[1].Out(gpio.Low)
	_ = digits[1].Out(gpio.High)
	_ = segments[6].Out(gpio.Low)

	if diff := cmp.Diff([]byte{0b11, 0b1000000}, d.Frame()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
	// Frame resets the accumulation.
	if diff := cmp.Diff([]byte{0, 0}, d.Frame()); diff != "" {
		t.Errorf("second frame not empty (-want +got):\n%s", diff)
	}
}

func TestAccumulationSegmentScan(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{
		Digits:    2,
		DigitOn:   gpio.Low,
		SegmentOn: gpio.High,
		W:         &buf,
	})
	if err != nil {
		t.Fatal(err)
	}
	digits := d.DigitPins()
	segments := d.SegmentPins()

	// Resistors-on-digits scan order: digit lines first, then the
	// shared segment line.
	_ = digits[0].Out(gpio.Low)
	_ = digits[1].Out(gpio.Low)
	_ = segments[3].Out(gpio.High)
	_ = segments[3].Out(gpio.Low)
	_ = digits[0].Out(gpio.High)
	_ = digits[1].Out(gpio.High)

	if diff := cmp.Diff([]byte{0b1000, 0b1000}, d.Frame()); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{
		Digits:    1,
		DigitOn:   gpio.Low,
		SegmentOn: gpio.High,
		W:         &buf,
	})
	if err != nil {
		t.Fatal(err)
	}
	// The pattern for "1": segments B and C.
	if err := d.Render([]byte{0b00000110}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "\n"); got != 5 {
		t.Errorf("rendered %d rows, want 5", got)
	}
	if !strings.Contains(out, "\033[") {
		t.Error("output contains no ANSI escapes")
	}
	if !strings.HasSuffix(out, "\033[0m\n") {
		t.Error("output does not reset terminal colors")
	}

	// A shorter code slice than digit count renders dark positions
	// rather than panicking.
	buf.Reset()
	if err := d.Render(nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 5 {
		t.Errorf("rendered %d rows, want 5", got)
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{Digits: 1, W: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "SegTerm{1 digits}" {
		t.Errorf("String() = %q", s)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m" {
		t.Errorf("Halt() wrote %q, want color reset", buf.String())
	}
}

func TestPin(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{Digits: 1, W: &buf})
	if err != nil {
		t.Fatal(err)
	}
	p := d.SegmentPins()[4]
	if p.Name() != "SegTerm_SEG4" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Number() != 4 {
		t.Errorf("Number() = %d", p.Number())
	}
	if err := p.PWM(0, 0); err == nil {
		t.Error("PWM should not be implemented")
	}
}
