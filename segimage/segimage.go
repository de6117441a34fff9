// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segimage renders seven-segment digit codes into images, for
// documentation, web frontends and golden-file tests of display logic.
//
// The bit-to-segment mapping matches package sevseg: bits 0 to 6 are
// the segments A to G, bit 7 is the decimal point.
package segimage

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	segThickness = 10.0
	segLength    = 36.0
	segSpan      = 35.0
	cellMargin   = 12.0
	cellWidth    = 78
	cellHeight   = 94
	captionSpace = 20
)

// Opts represents the rendering options.
type Opts struct {
	// On, Off and Background color the lit segments, the dark segments
	// and the backdrop. Zero values pick LED red on near-black.
	On         color.Color
	Off        color.Color
	Background color.Color
	// Caption, when not empty, is drawn under the digits.
	Caption string

	_ struct{}
}

func (o *Opts) withDefaults() Opts {
	out := Opts{}
	if o != nil {
		out = *o
	}
	if out.On == nil {
		out.On = color.NRGBA{R: 255, G: 32, B: 16, A: 255}
	}
	if out.Off == nil {
		out.Off = color.NRGBA{R: 38, G: 38, B: 38, A: 255}
	}
	if out.Background == nil {
		out.Background = color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	}
	return out
}

// Render draws one digit code per display position and returns the
// resulting image. opts may be nil for defaults.
func Render(codes []byte, opts *Opts) image.Image {
	o := opts.withDefaults()
	width := len(codes) * cellWidth
	if width == 0 {
		width = cellWidth
	}
	height := cellHeight
	if o.Caption != "" {
		height += captionSpace
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(o.Background)
	dc.Clear()

	for digit, code := range codes {
		drawDigit(dc, float64(digit*cellWidth), 0, code, o.On, o.Off)
	}
	if o.Caption != "" {
		dc.SetFontFace(basicfont.Face7x13)
		dc.SetColor(o.On)
		dc.DrawString(o.Caption, cellMargin, float64(height)-6)
	}
	return dc.Image()
}

// drawDigit draws the seven segments and the decimal point of one
// position with its top-left corner at (ox, oy).
func drawDigit(dc *gg.Context, ox, oy float64, code byte, on, off color.Color) {
	x0 := ox + cellMargin
	x1 := x0 + segLength
	yTop := oy + cellMargin
	yMid := yTop + segSpan
	yBot := yMid + segSpan

	pick := func(bit uint8) color.Color {
		if code&(1<<bit) != 0 {
			return on
		}
		return off
	}

	dc.SetColor(pick(0))
	hseg(dc, x0, yTop)
	dc.SetColor(pick(6))
	hseg(dc, x0, yMid)
	dc.SetColor(pick(3))
	hseg(dc, x0, yBot)

	dc.SetColor(pick(5))
	vseg(dc, x0, yTop)
	dc.SetColor(pick(1))
	vseg(dc, x1, yTop)
	dc.SetColor(pick(4))
	vseg(dc, x0, yMid)
	dc.SetColor(pick(2))
	vseg(dc, x1, yMid)

	dc.SetColor(pick(7))
	dc.DrawCircle(x1+12, yBot, segThickness/2)
	dc.Fill()
}

// hseg fills a horizontal segment hexagon whose left tip is at (x, y).
func hseg(dc *gg.Context, x, y float64) {
	t := segThickness / 2
	dc.MoveTo(x, y)
	dc.LineTo(x+t, y-t)
	dc.LineTo(x+segLength-t, y-t)
	dc.LineTo(x+segLength, y)
	dc.LineTo(x+segLength-t, y+t)
	dc.LineTo(x+t, y+t)
	dc.ClosePath()
	dc.Fill()
}

// vseg fills a vertical segment hexagon whose top tip is at (x, y).
func vseg(dc *gg.Context, x, y float64) {
	t := segThickness / 2
	dc.MoveTo(x, y)
	dc.LineTo(x+t, y+t)
	dc.LineTo(x+t, y+segSpan-t)
	dc.LineTo(x, y+segSpan)
	dc.LineTo(x-t, y+segSpan-t)
	dc.LineTo(x-t, y+t)
	dc.ClosePath()
	dc.Fill()
}
