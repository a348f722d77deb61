package textbox

import (
	"fmt"
	"os"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"

	"gopkg.in/yaml.v3"
)

// Strip is one horizontal detection strip: a reference-scale rectangle,
// relative to the screen region's origin, plus the sampler settings used to
// test it for near-whiteness.
type Strip struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Tolerance float64 `yaml:"tolerance"`
	Threshold uint8   `yaml:"threshold"`
}

// Rect returns the strip's absolute pixel rectangle under the given geometry.
func (s Strip) Rect(g screen.Geometry) geometry.RectInt {
	return g.Rect(s.X, s.Y, s.Width, s.Height)
}

// White samples the strip on the given frame.
func (s Strip) White(f *frame.Frame, g screen.Geometry) bool {
	return screen.IsWhite(f, s.Rect(g), s.Tolerance, s.Threshold)
}

// RefRect is a reference-scale rectangle relative to the screen region's origin.
type RefRect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect returns the absolute pixel rectangle under the given geometry.
func (r RefRect) Rect(g screen.Geometry) geometry.RectInt {
	return g.Rect(r.X, r.Y, r.Width, r.Height)
}

// Params holds every tuned constant of the textbox detector: strip positions,
// sampler tolerances and thresholds, the text regions handed to OCR, and the
// change-detection deltas. The defaults are tuned for one game family's
// rendering; a YAML profile can override individual values.
type Params struct {
	// BottomThin is the 1px strip below the second text line. Not white means
	// no open textbox at all.
	BottomThin Strip `yaml:"bottom_thin"`
	// MidStatic is the 1px strip between the two text lines of a fully open
	// textbox. White distinguishes the static presentation from mid-scroll.
	MidStatic Strip `yaml:"mid_static"`
	// BottomThick is the 2px strip below the second line used during scroll
	// detection.
	BottomThick Strip `yaml:"bottom_thick"`
	// MidScroll are the three alternative between-line strip positions, one
	// per scroll animation frame, highest last.
	MidScroll [3]Strip `yaml:"mid_scroll"`
	// TopGap is the 1px strip above the first text line.
	TopGap Strip `yaml:"top_gap"`

	// Border checks: an open textbox has non-white side borders, so a white
	// border vetoes the open states.
	BorderWidth     float64 `yaml:"border_width"`
	BorderTop       float64 `yaml:"border_top"`
	BorderTolerance float64 `yaml:"border_tolerance"`
	BorderThreshold uint8   `yaml:"border_threshold"`

	// TextRegion is the textbox content rectangle captured for OCR.
	TextRegion RefRect `yaml:"text_region"`
	// SecondLine is the sub-rectangle holding only the second text line.
	SecondLine RefRect `yaml:"second_line"`

	// Emptiness test over TextRegion: true means no rendered glyphs.
	EmptyTolerance float64 `yaml:"empty_tolerance"`
	EmptyThreshold uint8   `yaml:"empty_threshold"`

	// Change detection: a pixel counts as changed when any channel differs by
	// more than DiffChannelDelta; the textbox counts as changed when more than
	// DiffPixelBudget*scale² pixels changed.
	DiffChannelDelta uint8   `yaml:"diff_channel_delta"`
	DiffPixelBudget  float64 `yaml:"diff_pixel_budget"`

	// InstaMinRunes is the recognized-text length above which a textbox that
	// appeared with content already rendered counts as an insta-textbox.
	InstaMinRunes int `yaml:"insta_min_runes"`
}

// DefaultParams returns the detection parameters tuned for the target layout.
// The strip offsets are measured on the 256-wide reference screen.
func DefaultParams() Params {
	return Params{
		BottomThin:  Strip{X: 28, Y: 183, Width: 166, Height: 1, Tolerance: 1.0, Threshold: 235},
		MidStatic:   Strip{X: 28, Y: 168, Width: 166, Height: 1, Tolerance: 50.0, Threshold: 225},
		BottomThick: Strip{X: 28, Y: 182, Width: 166, Height: 2, Tolerance: 50.0, Threshold: 225},
		MidScroll: [3]Strip{
			{X: 28, Y: 164, Width: 166, Height: 1, Tolerance: 50.0, Threshold: 225},
			{X: 28, Y: 160, Width: 166, Height: 1, Tolerance: 50.0, Threshold: 225},
			{X: 28, Y: 156, Width: 166, Height: 1, Tolerance: 50.0, Threshold: 225},
		},
		TopGap: Strip{X: 28, Y: 152, Width: 166, Height: 1, Tolerance: 50.0, Threshold: 225},

		BorderWidth:     8,
		BorderTop:       144,
		BorderTolerance: 1.0,
		BorderThreshold: 235,

		TextRegion: RefRect{X: 13, Y: 152, Width: 220, Height: 33},
		SecondLine: RefRect{X: 13, Y: 168, Width: 220, Height: 17},

		EmptyTolerance: 40.0,
		EmptyThreshold: 235,

		DiffChannelDelta: 50,
		DiffPixelBudget:  300,

		InstaMinRunes: 3,
	}
}

// LoadParams reads a YAML detection profile, starting from the defaults so a
// profile only needs to name the values it overrides.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse detection profile %s: %w", path, err)
	}
	return p, nil
}

// Save writes the parameters as a YAML profile.
func (p Params) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal detection profile: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// NamedStrip pairs a detection strip with its role, for reporting tools.
type NamedStrip struct {
	Name  string
	Strip Strip
}

// Strips lists every fixed detection strip in classifier evaluation order.
// The side borders are excluded: their extent depends on the stream geometry.
func (p Params) Strips() []NamedStrip {
	return []NamedStrip{
		{"bottom_thin", p.BottomThin},
		{"mid_static", p.MidStatic},
		{"bottom_thick", p.BottomThick},
		{"mid_scroll_1", p.MidScroll[0]},
		{"mid_scroll_2", p.MidScroll[1]},
		{"mid_scroll_3", p.MidScroll[2]},
		{"top_gap", p.TopGap},
	}
}

// BorderRects returns the left and right border rectangles for the geometry.
func (p Params) BorderRects(g screen.Geometry) (left, right geometry.RectInt) {
	top := g.Px(p.BorderTop)
	w := g.Px(p.BorderWidth)
	h := g.Region.Height - top
	left = geometry.RectInt{X: g.Region.X, Y: g.Region.Y + top, Width: w, Height: h}
	right = geometry.RectInt{X: g.Region.Right() - w, Y: g.Region.Y + top, Width: w, Height: h}
	return left, right
}
