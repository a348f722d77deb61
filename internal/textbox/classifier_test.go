package textbox

import (
	"testing"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// All classifier tests run at unit scale: 341/4 = 85 leaves a 256-wide
// region, so reference offsets are real pixel offsets.
func testGeometry() screen.Geometry {
	return screen.Resolve(341, 192)
}

func darkFrame() *frame.Frame {
	f := frame.New(341, 192)
	f.Fill(f.Bounds(), 40, 40, 40)
	return f
}

// openFrame paints the fully open textbox presentation: a white box with the
// surrounding screen (including both side borders) dark.
func openFrame() *frame.Frame {
	f := darkFrame()
	f.Fill(geometry.NewRectInt(93, 144, 240, 48), 245, 245, 245)
	return f
}

// paintRow darkens one detection-strip row across the strip x range.
func paintRow(f *frame.Frame, y int) {
	f.Fill(geometry.NewRectInt(113, y, 166, 1), 40, 40, 40)
}

func classify(t *testing.T, f *frame.Frame) State {
	t.Helper()
	return NewClassifier(testGeometry(), DefaultParams(), nil).Classify(f)
}

func TestClassifyClosedScene(t *testing.T) {
	if got := classify(t, darkFrame()); got != StateNone {
		t.Errorf("dark frame = %v, want none", got)
	}
}

func TestClassifyWhiteSceneVetoedByBorders(t *testing.T) {
	f := frame.New(341, 192)
	f.Fill(f.Bounds(), 250, 250, 250)
	if got := classify(t, f); got != StateNone {
		t.Errorf("all-white frame = %v, want none (white borders mean no box)", got)
	}
}

func TestClassifyOpen(t *testing.T) {
	if got := classify(t, openFrame()); got != StateOpen {
		t.Errorf("open frame = %v, want open", got)
	}
}

func TestClassifyScrollStates(t *testing.T) {
	cases := []struct {
		name     string
		darkRows []int
		want     State
	}{
		{"scroll-a", []int{168}, StateScrollA},
		{"scroll-b", []int{168, 164}, StateScrollB},
		{"scroll-c", []int{168, 164, 160}, StateScrollC},
		{"large-text", []int{168, 164, 160, 156}, StateLargeText},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := openFrame()
			for _, y := range c.darkRows {
				paintRow(f, y)
			}
			if got := classify(t, f); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestClassifyAnomalousScrollSignals(t *testing.T) {
	// Between-line gap occupied and bottom thick strip dark, yet the first
	// alternative gap is white: matches no presentation, degrades to none.
	f := openFrame()
	paintRow(f, 168)
	paintRow(f, 182)
	if got := classify(t, f); got != StateNone {
		t.Errorf("got %v, want none", got)
	}
}

func TestClassifyMidWhiteWithoutTopGap(t *testing.T) {
	f := openFrame()
	paintRow(f, 152)
	if got := classify(t, f); got != StateNone {
		t.Errorf("got %v, want none", got)
	}
}

// Classification is a pure function of one frame's pixels and the geometry.
func TestClassifyIsPure(t *testing.T) {
	c := NewClassifier(testGeometry(), DefaultParams(), nil)
	f := openFrame()
	paintRow(f, 168)
	first := c.Classify(f)
	for i := 0; i < 3; i++ {
		if got := c.Classify(f); got != first {
			t.Fatalf("classification changed from %v to %v on re-run", first, got)
		}
	}
}

func TestStatePredicates(t *testing.T) {
	for _, s := range []State{StateOpen, StateLargeText} {
		if !s.IsOpen() || s.IsScrolling() {
			t.Errorf("%v predicates wrong", s)
		}
	}
	for _, s := range []State{StateScrollA, StateScrollB, StateScrollC} {
		if !s.IsScrolling() || s.IsOpen() {
			t.Errorf("%v predicates wrong", s)
		}
	}
	if StateNone.IsOpen() || StateNone.IsScrolling() {
		t.Error("none predicates wrong")
	}
}
