// Command poketext-gen4 extracts dialogue text from a recorded gameplay video
// by watching for textbox graphics and running OCR captures at the right
// moments.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GimmyTomas/poketext-gen4/internal/extract"
	"github.com/GimmyTomas/poketext-gen4/internal/ocr"
	"github.com/GimmyTomas/poketext-gen4/internal/screen"
	"github.com/GimmyTomas/poketext-gen4/internal/textbox"
	"github.com/GimmyTomas/poketext-gen4/internal/video"
)

func main() {
	videoPath := flag.String("video", "", "Path to the recorded gameplay video")
	outPath := flag.String("out", "", "Output text file (default: <video>_dialogue.txt)")
	profile := flag.String("profile", "", "YAML detection profile overriding default parameters")
	lang := flag.String("lang", ocr.DefaultLanguage, "Tesseract recognition language")
	exclude := flag.String("exclude", ocr.DefaultExcludedChars, "Characters the OCR engine must never emit")
	start := flag.Float64("start", 0, "Start time in seconds")
	end := flag.Float64("end", 0, "End time in seconds (0 = entire video)")
	keepGarbage := flag.Bool("keep-garbage", false, "Keep captures that look like transition artifacts")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if *videoPath == "" {
		fmt.Println("Usage: poketext-gen4 -video <video.mp4> [-out dialogue.txt] [-start 60] [-end 120]")
		os.Exit(1)
	}
	if *outPath == "" {
		*outPath = strings.TrimSuffix(*videoPath, filepath.Ext(*videoPath)) + "_dialogue.txt"
	}

	if err := run(log, *videoPath, *outPath, *profile, *lang, *exclude, *start, *end, *keepGarbage); err != nil {
		log.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, videoPath, outPath, profile, lang, exclude string, start, end float64, keepGarbage bool) error {
	params := textbox.DefaultParams()
	if profile != "" {
		var err error
		if params, err = textbox.LoadParams(profile); err != nil {
			return fmt.Errorf("load detection profile: %w", err)
		}
		log.Info("loaded detection profile", "path", profile)
	}

	reader, err := video.Open(videoPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	geom := screen.Resolve(reader.Width(), reader.Height())
	log.Info("opened video",
		"path", videoPath,
		"size", fmt.Sprintf("%dx%d", reader.Width(), reader.Height()),
		"fps", reader.FPS(),
		"frames", reader.FrameCount(),
		"scale", geom.Scale)

	engine, err := ocr.NewEngine(lang, exclude)
	if err != nil {
		return err
	}
	defer engine.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	opts := []extract.Option{extract.WithLogger(log)}
	if !keepGarbage {
		opts = append(opts, extract.WithGarbageFilter(ocr.IsGarbage))
	}
	extractor := extract.New(geom, params, engine, w, opts...)

	startFrame := 0
	if start > 0 {
		startFrame = int(start * reader.FPS())
		reader.Seek(startFrame)
	}
	maxFrames := 0
	if end > 0 {
		maxFrames = int(end*reader.FPS()) - startFrame
		if maxFrames <= 0 {
			return fmt.Errorf("end time %.2fs is not after start time %.2fs", end, start)
		}
	}

	for res := range reader.Stream(context.Background(), maxFrames) {
		if res.Err != nil {
			return fmt.Errorf("decode frame %d: %w", res.Num, res.Err)
		}
		if err := extractor.Process(res.Frame); err != nil {
			return fmt.Errorf("frame %d: %w", res.Num, err)
		}
		if res.Num%1000 == 0 {
			log.Info("processing", "frame", res.Num, "of", reader.FrameCount())
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	log.Info("done",
		"frames", extractor.Frames(),
		"captures", extractor.Captures(),
		"output", outPath)
	return nil
}
