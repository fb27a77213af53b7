// Package labels decides, frame by frame, which map labels are shown and
// how they fade in and out.
//
// # Overview
//
// Every label carries a small state machine. Each frame runs two passes
// over a Collection: the first projects every label to the screen, the
// second lets an Occluder mark overlapping labels and then advances every
// label's state by the frame delta. Labels never pop: appearing and
// disappearing go through a FadeEffect, and a label that loses occlusion
// halfway through fading out resumes from its current alpha.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/labels"
//		"github.com/gogpu/labels/occlusion"
//	)
//
//	c := labels.NewCollection(labels.WithOccluder(occlusion.New(2)))
//	_ = c.Publish("tile/3/4/2", func(b *labels.Batch) error {
//		b.Add(labels.NewLabel(labels.Pt(120, 80), labels.Pt(64, 14),
//			labels.WithPriority(1)))
//		return nil
//	})
//
//	for {
//		c.Sweep()
//		c.Update(labels.Frame{View: view, ScreenSize: size, Dt: dt})
//		draw(c.RenderSet())
//		if !c.NeedUpdate() {
//			break
//		}
//	}
//
// # Priorities
//
// Lower priority values win occlusion. A child attached with priority
// inheritance gets its parent's priority plus ChildPriorityIncrement, so it
// always loses against the parent it annotates.
//
// # Coordinate System
//
// Screen coordinates follow the usual raster convention:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Concurrency
//
// Publish, Invalidate and Rebuild may be called from worker goroutines.
// Everything else, including every Label method, belongs to the goroutine
// driving Update.
package labels

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
