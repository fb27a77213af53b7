// Command labeldemo replays a label scenario frame by frame and prints the
// visibility timeline of every label.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gookit/color"

	"github.com/gogpu/labels"
	"github.com/gogpu/labels/internal/parallel"
)

func main() {
	var (
		scenario = flag.String("scenario", "testdata/city.toml", "scenario file")
		output   = flag.String("png", "", "write an overlay of the last frame to this PNG file")
		noColor  = flag.Bool("no-color", false, "disable colored output")
		verbose  = flag.Bool("v", false, "log collection events to stderr")
		workers  = flag.Int("workers", 0, "publishing workers (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *noColor {
		color.Enable = false
	}
	if *verbose {
		labels.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sc, err := LoadScenario(*scenario)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	pool := parallel.NewPool(*workers)
	sim := NewSim(sc)
	err = sim.PublishAll(pool)
	pool.Close()
	if err != nil {
		log.Fatalf("Failed to publish: %v", err)
	}

	var last FrameReport
	for i := range sc.Frames {
		rep, err := sim.Step(i)
		if err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
		if err := WriteTimeline(os.Stdout, rep); err != nil {
			log.Fatalf("Failed to write timeline: %v", err)
		}
		last = rep
	}

	st := sim.Measurer().Stats()
	fmt.Printf("measure cache: %d entries, hit rate %.2f\n", st.Len, st.HitRate)

	if *output != "" {
		ov := Overlay{Width: sc.Width, Height: sc.Height, Face: sim.Measurer().Face()}
		if err := ov.WritePNG(*output, last); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Overlay saved to %s (%dx%d)\n", *output, sc.Width, sc.Height)
	}
}
