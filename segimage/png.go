// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segimage

import (
	"image/png"
	"io"
	"sync"
)

type encoderBufferPool sync.Pool

func (p *encoderBufferPool) Get() *png.EncoderBuffer {
	buf, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return buf
}

func (p *encoderBufferPool) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

var pool encoderBufferPool

var encoder = png.Encoder{
	// Frames are small and flat colored; favor speed.
	CompressionLevel: png.BestSpeed,
	BufferPool:       &pool,
}

// EncodePNG renders codes like Render and writes the result to w as a
// PNG, reusing encoder buffers across calls.
func EncodePNG(w io.Writer, codes []byte, opts *Opts) error {
	return encoder.Encode(w, Render(codes, opts))
}
