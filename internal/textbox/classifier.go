// Package textbox classifies the textbox presentation of decoded frames and
// quantifies textbox content changes between frames.
package textbox

import (
	"log/slog"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
)

// State is the textbox presentation detected on a single frame.
type State int

const (
	// StateNone means no open textbox was detected.
	StateNone State = iota
	// StateOpen is the static, fully open textbox presentation.
	StateOpen
	// StateScrollA is the first frame of the line-scroll animation.
	StateScrollA
	// StateScrollB is the second frame of the line-scroll animation.
	StateScrollB
	// StateScrollC is the third frame of the line-scroll animation.
	StateScrollC
	// StateLargeText is an open textbox rendered with double-height letters.
	StateLargeText
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateOpen:
		return "open"
	case StateScrollA:
		return "scroll-a"
	case StateScrollB:
		return "scroll-b"
	case StateScrollC:
		return "scroll-c"
	case StateLargeText:
		return "large-text"
	default:
		return "invalid"
	}
}

// IsOpen reports whether the state shows a readable, non-scrolling textbox.
func (s State) IsOpen() bool {
	return s == StateOpen || s == StateLargeText
}

// IsScrolling reports whether the state is one of the scroll animation frames.
func (s State) IsScrolling() bool {
	return s == StateScrollA || s == StateScrollB || s == StateScrollC
}

// Classifier assigns a textbox State to frames of one video stream. The result
// is a pure function of a single frame's pixels and the stream geometry; the
// classifier keeps no cross-frame state.
type Classifier struct {
	geom   screen.Geometry
	params Params
	log    *slog.Logger
}

// NewClassifier creates a classifier for a stream with the given geometry.
func NewClassifier(geom screen.Geometry, params Params, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{geom: geom, params: params, log: log}
}

// Classify walks the strip decision tree and returns the frame's state.
//
// Strip signal combinations that match no recognized presentation are logged
// and degrade to StateNone rather than failing the run.
func (c *Classifier) Classify(f *frame.Frame) State {
	g, p := c.geom, c.params

	// No white strip below the second line means no textbox at all.
	if !p.BottomThin.White(f, g) {
		return StateNone
	}

	// An open textbox has non-white side borders; a white border means the
	// white strip above came from something else. Either side vetoes.
	left, right := p.BorderRects(g)
	if screen.IsWhite(f, left, p.BorderTolerance, p.BorderThreshold) {
		return StateNone
	}
	if screen.IsWhite(f, right, p.BorderTolerance, p.BorderThreshold) {
		return StateNone
	}

	if p.MidStatic.White(f, g) {
		// Static presentation: both text lines in place.
		if p.TopGap.White(f, g) {
			return StateOpen
		}
		c.log.Warn("textbox: between-line gap white but top gap is not, treating as closed")
		return StateNone
	}

	// Between-line gap occupied: mid-scroll, or large letters spanning it.
	thick := p.BottomThick.White(f, g)
	var mid [3]bool
	for i := range p.MidScroll {
		mid[i] = p.MidScroll[i].White(f, g)
	}

	switch {
	case thick && mid[0]:
		return StateScrollA
	case thick && mid[1]:
		return StateScrollB
	case thick && mid[2]:
		return StateScrollC
	case !mid[0] && !mid[1] && !mid[2]:
		if p.TopGap.White(f, g) {
			return StateLargeText
		}
		return StateNone
	default:
		c.log.Warn("textbox: inconsistent scroll strip signals, treating as closed",
			"bottom_thick", thick, "mid_1", mid[0], "mid_2", mid[1], "mid_3", mid[2])
		return StateNone
	}
}

// Geometry returns the stream geometry the classifier was built with.
func (c *Classifier) Geometry() screen.Geometry {
	return c.geom
}

// Params returns the detection parameters the classifier was built with.
func (c *Classifier) Params() Params {
	return c.params
}
