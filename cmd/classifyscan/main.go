// Command classifyscan classifies every frame of a video and reports the
// textbox state transitions, for checking the detector against new footage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/GimmyTomas/poketext-gen4/internal/screen"
	"github.com/GimmyTomas/poketext-gen4/internal/textbox"
	"github.com/GimmyTomas/poketext-gen4/internal/video"
)

func main() {
	videoPath := flag.String("video", "", "Path to the video file")
	profile := flag.String("profile", "", "YAML detection profile")
	start := flag.Float64("start", 0, "Start time in seconds")
	end := flag.Float64("end", 0, "End time in seconds (0 = entire video)")
	flag.Parse()

	if *videoPath == "" {
		fmt.Println("Usage: classifyscan -video <video.mp4> [-profile params.yaml] [-start 0] [-end 0]")
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
	fmt.Printf("Video: %dx%d, %.2f fps, %d frames\n",
		reader.Width(), reader.Height(), reader.FPS(), reader.FrameCount())
	fmt.Printf("Region: x=%d width=%d, scale=%.4f\n\n",
		geom.Region.X, geom.Region.Width, geom.Scale)

	classifier := textbox.NewClassifier(geom, params, nil)

	startFrame := 0
	if *start > 0 {
		startFrame = int(*start * reader.FPS())
		reader.Seek(startFrame)
	}
	maxFrames := 0
	if *end > 0 {
		maxFrames = int(*end*reader.FPS()) - startFrame
	}

	counts := map[textbox.State]int{}
	prev := textbox.StateNone
	prevSince := startFrame

	for res := range reader.Stream(context.Background(), maxFrames) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Decode failed at frame %d: %v\n", res.Num, res.Err)
			os.Exit(1)
		}
		state := classifier.Classify(res.Frame)
		counts[state]++
		if state != prev {
			fmt.Printf("frame %6d  %-10s -> %-10s  (held %d frames)\n",
				res.Num, prev, state, res.Num-prevSince)
			prev = state
			prevSince = res.Num
		}
	}

	fmt.Printf("\nState counts:\n")
	for _, s := range []textbox.State{
		textbox.StateNone, textbox.StateOpen,
		textbox.StateScrollA, textbox.StateScrollB, textbox.StateScrollC,
		textbox.StateLargeText,
	} {
		fmt.Printf("  %-10s %8d\n", s, counts[s])
	}
}
