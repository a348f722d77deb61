// Package ocr provides OCR (Optical Character Recognition) for captured
// textbox regions.
package ocr

import (
	"bytes"
	"fmt"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/bmp"
)

// DefaultExcludedChars are characters the source font reliably misrenders
// into; Tesseract is told never to emit them.
const DefaultExcludedChars = "*_=+|[]"

// DefaultLanguage is the recognition language. English data gives the best
// results even on Italian footage.
const DefaultLanguage = "eng"

// Engine recognizes text in frame regions using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine with the given recognition language and
// excluded-character set (empty string excludes nothing).
func NewEngine(language, excluded string) (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}
	if excluded != "" {
		if err := client.SetBlacklist(excluded); err != nil {
			client.Close()
			return nil, fmt.Errorf("set OCR excluded characters: %w", err)
		}
	}
	// The capture is always one small block of dialogue text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR page segmentation mode: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadRegion crops the rectangle out of the frame, hands it to Tesseract and
// returns the cleaned recognized text. An empty result is a valid outcome
// (an empty textbox reads as no text), not an error.
func (e *Engine) ReadRegion(f *frame.Frame, rect geometry.RectInt) (string, error) {
	crop := f.Crop(rect)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, crop); err != nil {
		return "", fmt.Errorf("encode capture: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set capture image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return Clean(text), nil
}
