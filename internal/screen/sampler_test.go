package screen

import (
	"testing"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

func uniformFrame(w, h int, v byte) *frame.Frame {
	f := frame.New(w, h)
	f.Fill(f.Bounds(), v, v, v)
	return f
}

func TestIsWhiteThresholdIsStrict(t *testing.T) {
	rect := geometry.NewRectInt(0, 0, 10, 10)

	// Pixels exactly at the threshold never count as white.
	at := uniformFrame(10, 10, 235)
	if IsWhite(at, rect, 1.0, 235) {
		t.Error("pixels at threshold counted as white")
	}

	// One above the threshold always does.
	above := uniformFrame(10, 10, 236)
	if !IsWhite(above, rect, 1.0, 235) {
		t.Error("pixels above threshold not counted as white")
	}
}

func TestIsWhiteRequiresAllChannelsAboveThreshold(t *testing.T) {
	rect := geometry.NewRectInt(0, 0, 4, 4)
	f := frame.New(4, 4)
	f.Fill(rect, 255, 255, 200) // blue channel below threshold
	if IsWhite(f, rect, 1.0, 235) {
		t.Error("pixel with one low channel counted as white")
	}
}

func TestIsWhiteToleranceScaling(t *testing.T) {
	// 40 white pixels, 60 not white.
	f := uniformFrame(10, 10, 240)
	f.Fill(geometry.NewRectInt(0, 0, 10, 6), 50, 50, 50)
	rect := geometry.NewRectInt(0, 0, 10, 10)

	// tolerance 1.0: 60 > 40, rejected.
	if IsWhite(f, rect, 1.0, 235) {
		t.Error("majority-dark region passed at tolerance 1.0")
	}
	// tolerance 0.5: 30 <= 40, accepted.
	if !IsWhite(f, rect, 0.5, 235) {
		t.Error("region rejected at tolerance 0.5")
	}
	// tolerance 50: 3000 > 40, rejected.
	if IsWhite(f, rect, 50.0, 235) {
		t.Error("region passed at tolerance 50")
	}
}

// Raising the tolerance scales the non-white count, so it can only turn an
// accepted region into a rejected one, never the reverse.
func TestIsWhiteToleranceMonotonicity(t *testing.T) {
	f := uniformFrame(12, 12, 240)
	f.Fill(geometry.NewRectInt(0, 0, 12, 3), 10, 10, 10)
	rect := geometry.NewRectInt(0, 0, 12, 12)

	prev := true
	for _, tol := range []float64{0.02, 0.5, 1.0, 2.0, 10.0, 50.0} {
		got := IsWhite(f, rect, tol, 235)
		if got && !prev {
			t.Fatalf("tolerance %v accepted after a smaller tolerance rejected", tol)
		}
		prev = got
	}
}

func TestIsWhitePanicsOutOfBounds(t *testing.T) {
	f := frame.New(10, 10)
	defer func() {
		if recover() == nil {
			t.Error("out-of-bounds sample did not panic")
		}
	}()
	IsWhite(f, geometry.NewRectInt(5, 5, 10, 10), 1.0, 235)
}
