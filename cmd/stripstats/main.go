// Command stripstats samples frames of a video and reports brightness
// statistics inside each detection strip, for validating the configured
// thresholds against new footage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/GimmyTomas/poketext-gen4/internal/frame"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
	"github.com/GimmyTomas/poketext-gen4/internal/textbox"
	"github.com/GimmyTomas/poketext-gen4/internal/video"
	"github.com/GimmyTomas/poketext-gen4/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

func main() {
	videoPath := flag.String("video", "", "Path to the video file")
	profile := flag.String("profile", "", "YAML detection profile")
	every := flag.Int("every", 30, "Sample every Nth frame")
	flag.Parse()

	if *videoPath == "" {
		fmt.Println("Usage: stripstats -video <video.mp4> [-profile params.yaml] [-every 30]")
		os.Exit(1)
	}

	params := textbox.DefaultParams()
	if *profile != "" {
		var err error
		if params, err = textbox.LoadParams(*profile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load profile: %v\n", err)
			os.Exit(1)
		}
	}

	reader, err := video.Open(*videoPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open video: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	geom := screen.Resolve(reader.Width(), reader.Height())
	strips := params.Strips()
	fmt.Printf("Video: %dx%d, %d frames, sampling every %d\n\n",
		reader.Width(), reader.Height(), reader.FrameCount(), *every)

	// One brightness sample per strip per sampled frame: the mean of the
	// per-pixel minimum channel, the value the white test thresholds on.
	samples := make([][]float64, len(strips))

	sampled := 0
	for res := range reader.Stream(context.Background(), 0) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed at frame %d: %v\n", res.Num, res.Err)
			os.Exit(1)
		}
		if res.Num%*every != 0 {
			continue
		}
		sampled++
		for i, ns := range strips {
			samples[i] = append(samples[i], stripBrightness(res.Frame, ns.Strip.Rect(geom)))
		}
	}

	fmt.Printf("Sampled %d frames\n\n", sampled)
	fmt.Printf("%-14s %10s %10s %10s %10s\n", "strip", "mean", "stddev", "tolerance", "threshold")
	for i, ns := range strips {
		mean := stat.Mean(samples[i], nil)
		sigma := stat.StdDev(samples[i], nil)
		fmt.Printf("%-14s %10.1f %10.1f %10.1f %10d\n",
			ns.Name, mean, sigma, ns.Strip.Tolerance, ns.Strip.Threshold)
	}
}

// stripBrightness returns the mean over the rect of each pixel's minimum
// channel, the quantity the near-white test compares against its threshold.
func stripBrightness(f *frame.Frame, rect geometry.RectInt) float64 {
	sum := 0
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			r, g, b := f.RGBAt(x, y)
			m := r
			if g < m {
				m = g
			}
			if b < m {
				m = b
			}
			sum += int(m)
		}
	}
	return float64(sum) / float64(rect.Area())
}
