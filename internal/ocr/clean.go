package ocr

import (
	"strings"
	"unicode"
)

// Clean normalizes raw Tesseract output: trims surrounding whitespace and
// collapses internal whitespace runs (including the line break between the
// textbox's two text lines) to single spaces, so one capture yields one line.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// IsGarbage reports whether recognized text looks like an OCR artifact from a
// transition frame rather than dialogue. Valid dialogue has alphanumeric
// content or is an ellipsis of at least three dots; artifacts are symbol soup
// with almost no letters.
func IsGarbage(text string) bool {
	if text == "" {
		return true
	}

	stripped := strings.ReplaceAll(text, " ", "")
	alnum := 0
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}

	// Dots-only text is a valid ellipsis at three or more dots; shorter dot
	// runs are transition noise.
	if dotsOnly(stripped) {
		return len(stripped) < 3
	}

	if alnum == 0 {
		return true
	}

	// Long text that is mostly symbols comes from mid-scroll pixel shifts.
	runes := len([]rune(stripped))
	if runes >= 10 && float64(alnum)/float64(runes) < 0.30 {
		return true
	}

	return false
}

func dotsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '.' {
			return false
		}
	}
	return true
}
