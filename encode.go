// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"fmt"
	"io"
)

// Symbols accepted by Code beyond the decimal digits 0 to 9.
const (
	// Blank leaves every segment of a position dark.
	Blank byte = 10
	// Dash lights only the middle segment. The encoder uses it for the
	// minus sign and, across the whole display, as the overflow
	// indicator.
	Dash byte = 11

	// DecimalPoint is the decimal point bit. OR it onto a digit code to
	// light the DP segment of that position.
	DecimalPoint byte = 0x80
)

// digitCodeMap holds the segment pattern for each displayable symbol,
// indexed 0-9 then Blank and Dash.
//
// Bit-segment mapping: 0bHGFEDCBA.
//
//	 AAAA          0000
//	F    B        5    1
//	F    B        5    1
//	 GGGG          6666
//	E    C        4    2
//	E    C        4    2        (segment H is the decimal
//	 DDDD  H       3333  7      point, bit 7)
var digitCodeMap = [12]byte{
	0b00111111, // 0
	0b00000110, // 1
	0b01011011, // 2
	0b01001111, // 3
	0b01100110, // 4
	0b01101101, // 5
	0b01111101, // 6
	0b00000111, // 7
	0b01111111, // 8
	0b01101111, // 9
	0b00000000, // Blank
	0b01000000, // Dash
}

// powersOf10 bounds MaxDigits: decimal decomposition divides by
// descending entries of this table.
var powersOf10 = [MaxDigits + 1]int64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000, // 10^MaxDigits
}

// Code returns the segment pattern for a symbol: a decimal digit 0-9,
// Blank or Dash. Other values return a blank pattern.
func Code(symbol byte) byte {
	if int(symbol) >= len(digitCodeMap) {
		return digitCodeMap[Blank]
	}
	return digitCodeMap[symbol]
}

// SetNumber encodes value for display with decimalPlaces digits after
// the decimal point.
//
// Values outside the displayable range show as dashes on every
// position; with N digits that range is [-(10^(N-1)-1), 10^N-1], the
// leading position being reserved for the minus sign when negative.
// decimalPlaces is clamped to [0, N-1]. Leading zeros are blanked down
// to the decimal point. The change takes effect on the next refresh
// step.
func (d *Dev) SetNumber(value int64, decimalPlaces int) {
	decimalPlaces = d.clampDecimals(decimalPlaces)
	var digits [MaxDigits]byte
	d.findDigits(value, &digits)
	d.setDigitCodes(&digits, decimalPlaces)
}

// SetFloat encodes a fractional value: it is scaled by
// 10^decimalPlaces, rounded half away from zero and displayed like the
// equivalent integer. decimalPlaces is clamped to [0, N-1].
func (d *Dev) SetFloat(value float64, decimalPlaces int) {
	decimalPlaces = d.clampDecimals(decimalPlaces)
	scaled := value * float64(powersOf10[decimalPlaces])
	if scaled >= 0 {
		scaled += 0.5
	} else {
		scaled -= 0.5
	}
	var digits [MaxDigits]byte
	d.findDigits(int64(scaled), &digits)
	d.setDigitCodes(&digits, decimalPlaces)
}

// SetSegments bypasses the encoder and installs raw digit codes, for
// custom glyphs and animations. Codes beyond the display width are
// ignored; if fewer codes than digits are given the remaining positions
// keep their current pattern.
func (d *Dev) SetSegments(codes []byte) {
	copy(d.digitCodes[:d.numDigits], codes)
}

// SetSegmentsFrom installs one raw digit code per display position read
// from r. It is the bulk path for code sequences kept in read-only
// storage, like glyph tables compiled into the binary with go:embed.
func (d *Dev) SetSegmentsFrom(r io.Reader) error {
	var codes [MaxDigits]byte
	if _, err := io.ReadFull(r, codes[:d.numDigits]); err != nil {
		return fmt.Errorf("sevseg: reading digit codes: %w", err)
	}
	copy(d.digitCodes[:d.numDigits], codes[:d.numDigits])
	return nil
}

func (d *Dev) clampDecimals(decimalPlaces int) int {
	if decimalPlaces < 0 {
		return 0
	}
	if decimalPlaces > d.numDigits-1 {
		return d.numDigits - 1
	}
	return decimalPlaces
}

// findDigits fills digits with the symbol for each display position:
// one decimal digit per position, a Dash in position 0 for negative
// values, Blank for unnecessary leading zeros, or Dash everywhere when
// the value does not fit.
func (d *Dev) findDigits(value int64, digits *[MaxDigits]byte) {
	maxNum := powersOf10[d.numDigits] - 1
	minNum := -(powersOf10[d.numDigits-1] - 1)

	// Out of range degrades to all dashes; there is no error channel.
	if value > maxNum || value < minNum {
		for digitNum := 0; digitNum < d.numDigits; digitNum++ {
			digits[digitNum] = Dash
		}
		return
	}

	digitNum := 0
	if value < 0 {
		digits[0] = Dash
		digitNum = 1
		value = -value
	}

	// Most-significant digit first, dividing by descending powers of
	// ten.
	for ; digitNum < d.numDigits; digitNum++ {
		factor := powersOf10[d.numDigits-1-digitNum]
		digits[digitNum] = byte(value / factor)
		value -= int64(digits[digitNum]) * factor
	}
}

// blankLeadingZeros replaces unnecessary leading zeros with Blank. The
// scan never crosses the decimal point position, so zeros that carry
// place value stay lit, and it skips over a leading sign dash.
func (d *Dev) blankLeadingZeros(digits *[MaxDigits]byte, decimalPlaces int) {
	for digitNum := 0; digitNum < d.numDigits-1-decimalPlaces; digitNum++ {
		if digits[digitNum] == 0 {
			digits[digitNum] = Blank
		} else if digits[digitNum] <= 9 {
			// First significant digit.
			break
		}
	}
}

// setDigitCodes translates symbols into segment patterns and lights the
// decimal point at its configured position, even over a Blank or Dash.
func (d *Dev) setDigitCodes(digits *[MaxDigits]byte, decimalPlaces int) {
	d.blankLeadingZeros(digits, decimalPlaces)
	for digitNum := 0; digitNum < d.numDigits; digitNum++ {
		code := digitCodeMap[digits[digitNum]]
		if digitNum == d.numDigits-1-decimalPlaces {
			code |= DecimalPoint
		}
		d.digitCodes[digitNum] = code
	}
}
