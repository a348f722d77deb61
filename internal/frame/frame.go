// Package frame provides the RGB frame buffer produced by the video decoder
// and consumed by the detection pipeline.
package frame

import (
	"fmt"
	"image"
	"image/color"

	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// Frame is a decoded video frame: packed 8-bit RGB triples, row-major, with a
// row stride that may exceed 3*Width due to alignment padding. The pipeline
// treats the pixel data as immutable while the frame is being processed.
type Frame struct {
	Pix    []byte
	Stride int
	Width  int
	Height int
}

// New allocates a frame with a tightly packed stride of 3*width.
func New(width, height int) *Frame {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("frame: non-positive dimensions %dx%d", width, height))
	}
	return &Frame{
		Pix:    make([]byte, 3*width*height),
		Stride: 3 * width,
		Width:  width,
		Height: height,
	}
}

// FromBytes wraps an existing pixel buffer without copying. The buffer must
// hold at least stride*height bytes.
func FromBytes(pix []byte, width, height, stride int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame: non-positive dimensions %dx%d", width, height)
	}
	if stride < 3*width {
		return nil, fmt.Errorf("frame: stride %d too small for width %d", stride, width)
	}
	if len(pix) < stride*height {
		return nil, fmt.Errorf("frame: buffer holds %d bytes, need %d", len(pix), stride*height)
	}
	return &Frame{Pix: pix, Stride: stride, Width: width, Height: height}, nil
}

// Bounds returns the frame's pixel bounds as a rectangle at the origin.
func (f *Frame) Bounds() geometry.RectInt {
	return geometry.RectInt{Width: f.Width, Height: f.Height}
}

// RGBAt returns the red, green and blue channels of the pixel at (x, y).
func (f *Frame) RGBAt(x, y int) (r, g, b byte) {
	i := y*f.Stride + 3*x
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB sets the pixel at (x, y). Used by tests and tooling; the pipeline
// itself never mutates decoded frames.
func (f *Frame) SetRGB(x, y int, r, g, b byte) {
	i := y*f.Stride + 3*x
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = r, g, b
}

// Fill sets every pixel inside rect to the given color.
func (f *Frame) Fill(rect geometry.RectInt, r, g, b byte) {
	for y := rect.Y; y < rect.Bottom(); y++ {
		i := y*f.Stride + 3*rect.X
		for x := 0; x < rect.Width; x++ {
			f.Pix[i] = r
			f.Pix[i+1] = g
			f.Pix[i+2] = b
			i += 3
		}
	}
}

// Crop copies the pixels inside rect into a standalone image.RGBA, suitable
// for handing to an image encoder. The rect must lie within the frame bounds.
func (f *Frame) Crop(rect geometry.RectInt) *image.RGBA {
	if !rect.In(f.Bounds()) {
		panic(fmt.Sprintf("frame: crop rect %+v outside frame bounds %dx%d", rect, f.Width, f.Height))
	}
	img := image.NewRGBA(image.Rect(0, 0, rect.Width, rect.Height))
	for y := 0; y < rect.Height; y++ {
		src := (rect.Y+y)*f.Stride + 3*rect.X
		for x := 0; x < rect.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: f.Pix[src],
				G: f.Pix[src+1],
				B: f.Pix[src+2],
				A: 255,
			})
			src += 3
		}
	}
	return img
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Pix: pix, Stride: f.Stride, Width: f.Width, Height: f.Height}
}
