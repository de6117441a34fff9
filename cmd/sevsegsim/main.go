// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sevsegsim drives an emulated seven-segment display on the terminal,
// as a wall clock or a counter. It exercises the same multiplexing
// engine that drives real hardware, just against terminal pins.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"periph.io/x/sevseg"
	"periph.io/x/sevseg/segterm"
)

var (
	digits     = flag.Int("digits", 4, "number of display positions")
	brightness = flag.Int("brightness", 100, "brightness percentage, 0 to 100")
	config     = flag.String("config", "cc", "wiring: cc, ca, nfet or pfet")
	topology   = flag.String("topology", "segments", "resistor placement: segments or digits")
	counter    = flag.Bool("counter", false, "count tenths of a second instead of showing the time")
	frames     = flag.Int("frames", 0, "stop after this many frames, 0 to run forever")
)

func hardwareConfig(name string) (sevseg.HardwareConfig, error) {
	switch name {
	case "cc":
		return sevseg.CommonCathode, nil
	case "ca":
		return sevseg.CommonAnode, nil
	case "nfet":
		return sevseg.SwitchedCommonCathode, nil
	case "pfet":
		return sevseg.SwitchedCommonAnode, nil
	}
	return 0, fmt.Errorf("unknown wiring %q", name)
}

func mainImpl() error {
	flag.Parse()

	cfg, err := hardwareConfig(*config)
	if err != nil {
		return err
	}
	topo := sevseg.ResistorsOnSegments
	if *topology == "digits" {
		topo = sevseg.ResistorsOnDigits
	}

	digitOn, segmentOn := cfg.Polarity()
	disp, err := segterm.New(&segterm.Opts{
		Digits:    *digits,
		DigitOn:   digitOn,
		SegmentOn: segmentOn,
	})
	if err != nil {
		return err
	}
	defer disp.Halt()

	dev, err := sevseg.New(disp.DigitPins(), disp.SegmentPins(), &sevseg.Opts{
		Config:   cfg,
		Topology: topo,
	})
	if err != nil {
		return err
	}
	defer dev.Halt()
	dev.SetBrightness(*brightness)

	start := time.Now()
	for frame := 0; *frames == 0 || frame < *frames; frame++ {
		if *counter {
			dev.SetFloat(time.Since(start).Seconds(), 1)
		} else {
			now := time.Now()
			dev.SetNumber(int64(now.Hour()*100+now.Minute()), 2)
		}
		if err := dev.Refresh(); err != nil {
			return err
		}
		if frame > 0 {
			// Frames overdraw each other in place.
			fmt.Print("\033[5A")
		}
		if err := disp.Render(disp.Frame()); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "sevsegsim: %v\n", err)
		os.Exit(1)
	}
}
