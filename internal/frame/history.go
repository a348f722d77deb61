package frame

import (
	"fmt"

	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"
)

// History retains a copy of the previous frame's pixels so the state machine
// can capture the textbox as it looked one frame ago, before a transition
// began. Only the tracked region is ever copied; the rest of the buffer stays
// at its zero value.
type History struct {
	prev *Frame
}

// NewHistory allocates a history buffer for frames of the given size.
func NewHistory(width, height int) *History {
	return &History{prev: New(width, height)}
}

// Update overwrites the tracked region of the buffer with the same region of
// the given frame. Called once at the end of every frame's processing.
func (h *History) Update(src *Frame, region geometry.RectInt) {
	if src.Width != h.prev.Width || src.Height != h.prev.Height {
		panic(fmt.Sprintf("frame: history %dx%d fed a %dx%d frame",
			h.prev.Width, h.prev.Height, src.Width, src.Height))
	}
	for y := region.Y; y < region.Bottom(); y++ {
		si := y*src.Stride + 3*region.X
		di := y*h.prev.Stride + 3*region.X
		copy(h.prev.Pix[di:di+3*region.Width], src.Pix[si:si+3*region.Width])
	}
}

// Previous returns the buffered frame. The tracked region holds the previous
// frame's pixels; everything else is undefined.
func (h *History) Previous() *Frame {
	return h.prev
}
