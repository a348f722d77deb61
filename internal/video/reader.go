// Package video wraps OpenCV video decoding and hands decoded frames to the
// pipeline as packed RGB buffers.
package video

import (
	"context"
	"fmt"
	"io"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"

	"gocv.io/x/gocv"
)

// Reader decodes a video file into RGB frames in presentation order.
type Reader struct {
	cap *gocv.VideoCapture

	width      int
	height     int
	fps        float64
	frameCount int

	bgr gocv.Mat
	rgb gocv.Mat
	pos int
}

// Open opens a video file and probes its stream properties.
func Open(path string) (*Reader, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}

	r := &Reader{
		cap:        cap,
		width:      int(cap.Get(gocv.VideoCaptureFrameWidth)),
		height:     int(cap.Get(gocv.VideoCaptureFrameHeight)),
		fps:        cap.Get(gocv.VideoCaptureFPS),
		frameCount: int(cap.Get(gocv.VideoCaptureFrameCount)),
		bgr:        gocv.NewMat(),
		rgb:        gocv.NewMat(),
	}
	if r.width <= 0 || r.height <= 0 {
		r.Close()
		return nil, fmt.Errorf("open video %s: no decodable video stream", path)
	}
	return r, nil
}

// Close releases the decoder.
func (r *Reader) Close() error {
	r.bgr.Close()
	r.rgb.Close()
	return r.cap.Close()
}

// Width returns the stream width in pixels.
func (r *Reader) Width() int { return r.width }

// Height returns the stream height in pixels.
func (r *Reader) Height() int { return r.height }

// FPS returns the stream frame rate.
func (r *Reader) FPS() float64 { return r.fps }

// FrameCount returns the container's reported frame count.
func (r *Reader) FrameCount() int { return r.frameCount }

// Pos returns the number of frames read so far (adjusted after Seek).
func (r *Reader) Pos() int { return r.pos }

// Seek positions the reader at the given frame number. Sequential reading
// resumes from there.
func (r *Reader) Seek(frameNum int) {
	r.cap.Set(gocv.VideoCapturePosFrames, float64(frameNum))
	r.pos = frameNum
}

// Read decodes the next frame and returns it as a packed RGB buffer. Returns
// io.EOF when the stream is exhausted.
func (r *Reader) Read() (*frame.Frame, error) {
	if ok := r.cap.Read(&r.bgr); !ok || r.bgr.Empty() {
		return nil, io.EOF
	}
	gocv.CvtColor(r.bgr, &r.rgb, gocv.ColorBGRToRGB)

	// The converted mat is continuous, so the copied buffer is tightly packed.
	f, err := frame.FromBytes(r.rgb.ToBytes(), r.rgb.Cols(), r.rgb.Rows(), 3*r.rgb.Cols())
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", r.pos, err)
	}
	r.pos++
	return f, nil
}

// Result is one decoded frame or the error that ended the stream.
type Result struct {
	Num   int
	Frame *frame.Frame
	Err   error
}

// Stream decodes frames into a bounded channel from its own goroutine, so the
// next frame decodes while the current one is being classified. The channel
// closes after end of stream, a decode error (delivered as the final Result)
// or context cancellation. maxFrames <= 0 means the whole stream.
func (r *Reader) Stream(ctx context.Context, maxFrames int) <-chan Result {
	out := make(chan Result, 8)
	go func() {
		defer close(out)
		for n := 0; maxFrames <= 0 || n < maxFrames; n++ {
			num := r.pos
			f, err := r.Read()
			if err == io.EOF {
				return
			}
			res := Result{Num: num, Frame: f, Err: err}
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}
