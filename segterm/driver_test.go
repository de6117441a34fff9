// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segterm_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/sevseg"
	"periph.io/x/sevseg/segterm"
)

// End to end: whatever codes the driver multiplexes out, the emulator
// must accumulate back, for both scan topologies and a non-default
// polarity.
func TestDriverRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		config   sevseg.HardwareConfig
		topology sevseg.Topology
	}{
		{"common cathode, digit scan", sevseg.CommonCathode, sevseg.ResistorsOnSegments},
		{"common anode, digit scan", sevseg.CommonAnode, sevseg.ResistorsOnSegments},
		{"common cathode, segment scan", sevseg.CommonCathode, sevseg.ResistorsOnDigits},
		{"switched anode, segment scan", sevseg.SwitchedCommonAnode, sevseg.ResistorsOnDigits},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			digitOn, segmentOn := tc.config.Polarity()
			disp, err := segterm.New(&segterm.Opts{
				Digits:    4,
				DigitOn:   digitOn,
				SegmentOn: segmentOn,
				W:         &buf,
			})
			if err != nil {
				t.Fatal(err)
			}
			dev, err := sevseg.New(disp.DigitPins(), disp.SegmentPins(), &sevseg.Opts{
				Config:   tc.config,
				Topology: tc.topology,
			})
			if err != nil {
				t.Fatal(err)
			}
			dev.SetBrightness(0)

			dev.SetNumber(-12, 0)
			// Drop whatever the constructor's pin initialization
			// accumulated.
			disp.Frame()
			if err := dev.Refresh(); err != nil {
				t.Fatal(err)
			}
			want := []byte{
				sevseg.Code(sevseg.Dash),
				sevseg.Code(sevseg.Blank),
				sevseg.Code(1),
				sevseg.Code(2) | sevseg.DecimalPoint,
			}
			if diff := cmp.Diff(want, disp.Frame()); diff != "" {
				t.Errorf("accumulated frame mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// A ticker-style single-step scan must assemble a complete frame after
// one full cycle.
func TestDriverStepCycle(t *testing.T) {
	var buf bytes.Buffer
	digitOn, segmentOn := sevseg.CommonCathode.Polarity()
	disp, err := segterm.New(&segterm.Opts{
		Digits:    2,
		DigitOn:   digitOn,
		SegmentOn: segmentOn,
		W:         &buf,
	})
	if err != nil {
		t.Fatal(err)
	}
	dev, err := sevseg.New(disp.DigitPins(), disp.SegmentPins(), nil)
	if err != nil {
		t.Fatal(err)
	}
	dev.SetNumber(42, 0)
	disp.Frame()

	// Three steps cover both digits regardless of where the cursor
	// starts.
	for step := 0; step < 3; step++ {
		if err := dev.Step(); err != nil {
			t.Fatal(err)
		}
	}
	want := []byte{sevseg.Code(4), sevseg.Code(2) | sevseg.DecimalPoint}
	if diff := cmp.Diff(want, disp.Frame()); diff != "" {
		t.Errorf("frame after a full step cycle (-want +got):\n%s", diff)
	}
}
