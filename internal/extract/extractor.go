// Package extract decides, frame to frame, when textbox content should be
// captured for recognition and appended to the output.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
	"github.com/GimmyTomas/poketext-gen4/internal/textbox"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// TextReader recognizes text in a rectangular region of a frame. Implemented
// by ocr.Engine; tests substitute a stub.
type TextReader interface {
	ReadRegion(f *frame.Frame, rect geometry.RectInt) (string, error)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Extractor) { e.log = log }
}

// WithGarbageFilter drops captures whose recognized text the given predicate
// rejects. No filter is installed by default.
func WithGarbageFilter(isGarbage func(string) bool) Option {
	return func(e *Extractor) { e.garbage = isGarbage }
}

// Extractor is the per-stream extraction state machine. It consumes every
// decoded frame of one video stream exactly once, in presentation order, and
// appends recognized dialogue to the output writer. It is not safe for
// concurrent use; run one Extractor per stream.
type Extractor struct {
	geom       screen.Geometry
	params     textbox.Params
	classifier *textbox.Classifier
	reader     TextReader
	out        io.Writer
	log        *slog.Logger
	garbage    func(string) bool

	// Cross-frame state. prev is the previous frame's classification.
	// instaTextbox marks an open textbox whose content was already rendered
	// the instant it appeared and must not be re-captured when it closes.
	// pendingSecondLine marks that the first line was already captured before
	// a scroll began, so the next capture takes only the second line.
	prev              textbox.State
	instaTextbox      bool
	pendingSecondLine bool
	history           *frame.History

	frames   int
	captures int
}

// New creates an extractor for one video stream. Output is appended to out;
// the caller owns flushing and closing it.
func New(geom screen.Geometry, params textbox.Params, reader TextReader, out io.Writer, opts ...Option) *Extractor {
	e := &Extractor{
		geom:   geom,
		params: params,
		reader: reader,
		out:    out,
		prev:   textbox.StateNone,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.classifier = textbox.NewClassifier(geom, params, e.log)
	// The region spans to the frame's right edge, so region extent == frame size.
	e.history = frame.NewHistory(geom.Region.Right(), geom.Region.Bottom())
	return e
}

// Process classifies a frame and advances the state machine, emitting zero,
// one or two capture requests.
func (e *Extractor) Process(f *frame.Frame) error {
	return e.step(f, e.classifier.Classify(f))
}

// step advances the state machine with an already-computed classification.
func (e *Extractor) step(f *frame.Frame, cur textbox.State) error {
	e.frames++

	switch {
	case e.prev == textbox.StateNone:
		if cur.IsOpen() {
			// A textbox just appeared. Its text is not captured for output
			// yet, but a box that shows up with substantial text already
			// rendered is a flicker artifact: remember not to capture it
			// again when it closes.
			substantial, err := e.openedSubstantial(f)
			if err != nil {
				return err
			}
			e.instaTextbox = substantial
		}

	case e.prev.IsOpen():
		old := e.history.Previous()

		if cur == textbox.StateNone && !e.instaTextbox {
			// Closed normally: the buffered pre-close frame holds the fully
			// rendered text.
			if err := e.capturePrevious(old); err != nil {
				return err
			}
		}
		if cur.IsOpen() && textbox.Changed(old, f, e.geom, e.params) {
			if e.instaTextbox {
				// The flicker was accounted for when it opened.
				e.instaTextbox = false
			} else {
				// Content swapped without an intervening closed frame:
				// finish the old textbox, then treat the current frame as a
				// fresh open.
				if err := e.capturePrevious(old); err != nil {
					return err
				}
				substantial, err := e.openedSubstantial(f)
				if err != nil {
					return err
				}
				e.instaTextbox = substantial
			}
		}
		if cur.IsScrolling() && !e.instaTextbox {
			// Scroll started: the first line is about to move up, capture
			// what was fully rendered one frame ago.
			if err := e.capturePrevious(old); err != nil {
				return err
			}
		}

	case e.prev.IsScrolling():
		// The first line was captured before the scroll began; whatever gets
		// captured next, only the second line is still unaccounted for.
		e.pendingSecondLine = true
	}

	if cur == textbox.StateNone {
		e.instaTextbox = false
	}

	e.history.Update(f, e.params.TextRegion.Rect(e.geom))
	e.prev = cur
	return nil
}

// openedSubstantial captures the just-opened textbox and reports whether it
// already holds substantial text. An empty textbox is never substantial, no
// matter what the recognizer hallucinates from it.
func (e *Extractor) openedSubstantial(f *frame.Frame) (bool, error) {
	text, err := e.reader.ReadRegion(f, e.params.TextRegion.Rect(e.geom))
	if err != nil {
		return false, fmt.Errorf("capture opened textbox: %w", err)
	}
	if textbox.Empty(f, e.geom, e.params) {
		return false, nil
	}
	substantial := utf8.RuneCountInString(text) > e.params.InstaMinRunes
	if substantial {
		e.log.Debug("insta-textbox detected", "text", text)
	}
	return substantial, nil
}

// capturePrevious captures the buffered previous frame and appends the
// recognized text to the output: the full textbox as a terminated line, or
// only the second line, unterminated, when a scroll already consumed the
// first line.
func (e *Extractor) capturePrevious(old *frame.Frame) error {
	rect := e.params.TextRegion.Rect(e.geom)
	terminated := true
	if e.pendingSecondLine {
		rect = e.params.SecondLine.Rect(e.geom)
		terminated = false
		e.pendingSecondLine = false
	}

	text, err := e.reader.ReadRegion(old, rect)
	if err != nil {
		return fmt.Errorf("capture textbox: %w", err)
	}
	e.captures++

	if e.garbage != nil && e.garbage(text) {
		e.log.Debug("dropped garbage capture", "text", text)
		return nil
	}

	e.log.Debug("captured", "text", text, "second_line_only", !terminated)
	if terminated {
		_, err = fmt.Fprintln(e.out, text)
	} else {
		_, err = fmt.Fprint(e.out, text)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Frames returns the number of frames processed so far.
func (e *Extractor) Frames() int {
	return e.frames
}

// Captures returns the number of capture requests emitted so far, including
// dropped garbage captures but not the open-time insta-textbox probes.
func (e *Extractor) Captures() int {
	return e.captures
}
