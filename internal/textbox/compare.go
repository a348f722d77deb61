package textbox

import (
	"fmt"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
)

// Empty reports whether the textbox content rectangle shows no rendered
// glyphs, i.e. is pure background.
func Empty(f *frame.Frame, g screen.Geometry, p Params) bool {
	return screen.IsWhite(f, p.TextRegion.Rect(g), p.EmptyTolerance, p.EmptyThreshold)
}

// Changed reports whether the textbox content of two frames differs enough to
// count as new dialogue rather than the same text still showing.
//
// A pixel counts as changed when any channel differs by more than the
// configured delta; the threshold on the changed-pixel count scales with the
// textbox's rendered area.
func Changed(old, cur *frame.Frame, g screen.Geometry, p Params) bool {
	rect := p.TextRegion.Rect(g)
	if !rect.In(old.Bounds()) || !rect.In(cur.Bounds()) {
		panic(fmt.Sprintf("textbox: content rect %+v outside frame bounds", rect))
	}

	delta := int(p.DiffChannelDelta)
	changed := 0
	for y := rect.Y; y < rect.Bottom(); y++ {
		oi := y*old.Stride + 3*rect.X
		ci := y*cur.Stride + 3*rect.X
		for x := 0; x < rect.Width; x++ {
			if absDiff(old.Pix[oi], cur.Pix[ci]) > delta ||
				absDiff(old.Pix[oi+1], cur.Pix[ci+1]) > delta ||
				absDiff(old.Pix[oi+2], cur.Pix[ci+2]) > delta {
				changed++
			}
			oi += 3
			ci += 3
		}
	}
	return float64(changed) > p.DiffPixelBudget*g.Scale*g.Scale
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
