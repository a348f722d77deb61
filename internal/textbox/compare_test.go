package textbox

import (
	"testing"

	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// glyphBlock is a patch of dark pixels inside the textbox content rectangle,
// sized between the emptiness cutoff (~178 px at unit scale) and the change
// budget (300 px), and placed clear of every detection strip row.
var glyphBlock = geometry.NewRectInt(120, 170, 20, 10)

func TestEmpty(t *testing.T) {
	g, p := testGeometry(), DefaultParams()

	f := openFrame()
	if !Empty(f, g, p) {
		t.Error("glyph-free textbox not reported empty")
	}

	f.Fill(glyphBlock, 10, 10, 10)
	if Empty(f, g, p) {
		t.Error("textbox with rendered glyphs reported empty")
	}
}

func TestEmptyPureWhite(t *testing.T) {
	// A content rectangle of pure (255,255,255) is empty for any threshold
	// up to 235.
	g := testGeometry()
	f := darkFrame()
	p := DefaultParams()
	f.Fill(p.TextRegion.Rect(g), 255, 255, 255)
	if !Empty(f, g, p) {
		t.Error("pure white content rectangle not reported empty")
	}
}

func TestChangedIdempotent(t *testing.T) {
	g, p := testGeometry(), DefaultParams()
	f := openFrame()
	f.Fill(glyphBlock, 10, 10, 10)
	if Changed(f, f, g, p) {
		t.Error("frame reported as changed against itself")
	}
}

func TestChangedSymmetric(t *testing.T) {
	g, p := testGeometry(), DefaultParams()
	a := openFrame()
	b := openFrame()
	b.Fill(geometry.NewRectInt(100, 155, 40, 25), 10, 10, 10) // 1000 px

	if Changed(a, b, g, p) != Changed(b, a, g, p) {
		t.Error("change detection is not symmetric")
	}
	if !Changed(a, b, g, p) {
		t.Error("1000 changed pixels not detected at unit scale")
	}
}

func TestChangedBudget(t *testing.T) {
	g, p := testGeometry(), DefaultParams()

	// 200 changed pixels: below the 300*scale² budget at unit scale.
	a := openFrame()
	b := openFrame()
	b.Fill(glyphBlock, 10, 10, 10)
	if Changed(a, b, g, p) {
		t.Error("incremental text reveal misreported as content swap")
	}

	// Small channel deltas never count, regardless of how many pixels move.
	c := openFrame()
	c.Fill(p.TextRegion.Rect(g), 215, 215, 215) // delta 30 from 245
	if Changed(a, c, g, p) {
		t.Error("sub-delta pixel drift misreported as content swap")
	}
}
