// Package occlusion provides the default occlusion detector for
// labels.Collection.
//
// The detector resolves screen-space overlap by priority: candidates are
// visited in ascending priority (lower value wins), ties broken by their
// order in the candidate slice, and a candidate is occluded when its bounds
// overlap any candidate accepted before it. The result depends only on the
// priority order and the screen transforms, so it is deterministic.
//
// The scan is quadratic in the number of accepted labels; no spatial index
// is kept.
package occlusion

import (
	"context"
	"log/slog"
	"sort"

	"github.com/gogpu/labels"
)

// Detector implements labels.Occluder.
//
// A Detector reuses its scratch buffers between frames and is therefore not
// safe for concurrent use; give every Collection its own.
type Detector struct {
	// Padding grows every footprint on each side before testing, in
	// screen units. Negative padding shrinks footprints.
	Padding float64

	order    []int
	accepted []labels.Rect
}

// New returns a detector with the given padding.
func New(padding float64) *Detector {
	return &Detector{Padding: padding}
}

// Occlude implements labels.Occluder.
func (d *Detector) Occlude(candidates []*labels.Label) {
	d.order = d.order[:0]
	for i := range candidates {
		d.order = append(d.order, i)
	}
	sort.SliceStable(d.order, func(a, b int) bool {
		return candidates[d.order[a]].Priority() < candidates[d.order[b]].Priority()
	})

	d.accepted = d.accepted[:0]
	occluded := 0
	for _, i := range d.order {
		l := candidates[i]
		box := d.pad(l.Bounds())
		hit := false
		for _, other := range d.accepted {
			if box.Overlaps(other) {
				hit = true
				break
			}
		}
		l.SetOccluded(hit)
		if hit {
			occluded++
			continue
		}
		d.accepted = append(d.accepted, box)
	}

	if lg := labels.Logger(); lg.Enabled(context.Background(), slog.LevelDebug) {
		lg.Debug("occlusion: resolved", "candidates", len(candidates), "occluded", occluded)
	}
}

func (d *Detector) pad(r labels.Rect) labels.Rect {
	if d.Padding == 0 {
		return r
	}
	p := labels.Pt(d.Padding, d.Padding)
	return labels.Rect{Min: r.Min.Sub(p), Max: r.Max.Add(p)}
}
