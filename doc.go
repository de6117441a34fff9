// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevseg drives multi-digit seven-segment LED displays that are
// wired straight to GPIO pins, without a display controller chip such as
// the MAX7219 or HT16K33.
//
// The display is multiplexed: the driver shares eight segment lines
// across all digits and cycles through the display fast enough that
// persistence of vision shows a steady image. Two wiring topologies are
// supported, selected by where the current-limiting resistors sit. With
// resistors on the segment lines the driver scans one digit at a time;
// with resistors on the digit lines it scans one segment at a time.
// Common-cathode and common-anode displays are supported, directly or
// behind switching transistors.
//
// Refresh can be driven two ways. Refresh draws one full cycle and
// blocks for the brightness-controlled hold time on every step; call it
// from a tight loop. Step advances the scan by a single position and
// returns immediately; call it from a time.Ticker goroutine so that the
// tick interval sets the on-time instead of the brightness setting.
//
// Digit codes may be rewritten with SetNumber, SetFloat or SetSegments
// while another goroutine runs Step. The driver takes no lock on that
// path: a racing update can show a torn frame for at most one refresh
// cycle before the next cycle repaints it, which is below what a viewer
// can perceive.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/Components/LED/7-Segment/YSD-160AB3C-8.pdf
package sevseg
