// Package screen locates the textbox-bearing screen region within a captured
// frame and samples pixel rectangles inside it.
package screen

import (
	"fmt"
	"math"

	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// ReferenceWidth is the width of the hypothetical layout against which all
// sub-rectangle offsets are defined. Actual offsets are reference values
// multiplied by the geometry's scale.
const ReferenceWidth = 256

// Geometry describes where the textbox-bearing screen sits inside a frame and
// how the reference layout maps onto it. Computed once per video stream, after
// the stream dimensions are known, and never recomputed mid-stream.
type Geometry struct {
	// Region is the textbox-bearing screen: the right three quarters of the
	// frame, full height.
	Region geometry.RectInt
	// Scale converts reference-layout pixels to real pixels.
	Scale float64
}

// Resolve computes the geometry for a stream of the given dimensions.
// Non-positive dimensions are a caller bug.
func Resolve(width, height int) Geometry {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("screen: non-positive stream dimensions %dx%d", width, height))
	}
	x := width / 4
	region := geometry.RectInt{X: x, Y: 0, Width: width - x, Height: height}
	return Geometry{
		Region: region,
		Scale:  float64(region.Width) / ReferenceWidth,
	}
}

// Px converts a reference-scale length to real pixels, rounded to nearest.
func (g Geometry) Px(ref float64) int {
	return int(math.Round(g.Scale * ref))
}

// Rect converts a reference-scale rectangle, given relative to the region's
// origin, to an absolute pixel rectangle.
func (g Geometry) Rect(x, y, width, height float64) geometry.RectInt {
	return geometry.RectInt{
		X:      g.Region.X + g.Px(x),
		Y:      g.Region.Y + g.Px(y),
		Width:  g.Px(width),
		Height: g.Px(height),
	}
}
