package screen

import (
	"testing"

	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

func TestResolve(t *testing.T) {
	g := Resolve(800, 480)

	want := geometry.RectInt{X: 200, Y: 0, Width: 600, Height: 480}
	if g.Region != want {
		t.Errorf("Region = %+v, want %+v", g.Region, want)
	}
	if got, wantScale := g.Scale, 600.0/256.0; got != wantScale {
		t.Errorf("Scale = %v, want %v", got, wantScale)
	}
}

func TestResolveUnitScale(t *testing.T) {
	// 341/4 = 85, leaving a 256-wide region: scale exactly 1.
	g := Resolve(341, 192)
	if g.Scale != 1.0 {
		t.Fatalf("Scale = %v, want 1.0", g.Scale)
	}
	if g.Region.X != 85 || g.Region.Width != 256 {
		t.Errorf("Region = %+v", g.Region)
	}
}

func TestResolvePanicsOnBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 480}, {800, 0}, {-800, 480}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Resolve(%d, %d) did not panic", dims[0], dims[1])
				}
			}()
			Resolve(dims[0], dims[1])
		}()
	}
}

func TestPxRoundsToNearest(t *testing.T) {
	g := Resolve(800, 480) // scale 2.34375

	cases := []struct {
		ref  float64
		want int
	}{
		{1, 2},    // 2.34375
		{28, 66},  // 65.625
		{166, 389}, // 389.0625
		{183, 429}, // 428.906...
	}
	for _, c := range cases {
		if got := g.Px(c.ref); got != c.want {
			t.Errorf("Px(%v) = %d, want %d", c.ref, got, c.want)
		}
	}
}

func TestRectIsRegionRelative(t *testing.T) {
	g := Resolve(341, 192)
	r := g.Rect(13, 152, 220, 33)
	want := geometry.RectInt{X: 98, Y: 152, Width: 220, Height: 33}
	if r != want {
		t.Errorf("Rect = %+v, want %+v", r, want)
	}
}
