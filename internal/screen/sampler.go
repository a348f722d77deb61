package screen

import (
	"fmt"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// IsWhite reports whether a rectangle of the frame is predominantly near-white.
//
// A pixel counts as white when all three channels strictly exceed threshold.
// The rectangle passes when tolerance*notWhite <= white: tolerance 1.0 means
// roughly majority-white, 0.02 means near-unanimously white, 50.0 accepts
// sparse white dominance. The same sampler serves very different structural
// checks, so tolerance and threshold are parameters, not constants.
//
// The rectangle must lie within the frame bounds; callers derive it from the
// stream geometry, which guarantees this.
func IsWhite(f *frame.Frame, rect geometry.RectInt, tolerance float64, threshold uint8) bool {
	if !rect.In(f.Bounds()) {
		panic(fmt.Sprintf("screen: sample rect %+v outside frame bounds %dx%d", rect, f.Width, f.Height))
	}

	white, notWhite := 0, 0
	for y := rect.Y; y < rect.Bottom(); y++ {
		i := y*f.Stride + 3*rect.X
		for x := 0; x < rect.Width; x++ {
			if f.Pix[i] > threshold && f.Pix[i+1] > threshold && f.Pix[i+2] > threshold {
				white++
			} else {
				notWhite++
			}
			i += 3
		}
	}
	return tolerance*float64(notWhite) <= float64(white)
}
