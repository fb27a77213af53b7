package main

import (
	"fmt"
	"sync"

	"github.com/gogpu/labels"
	"github.com/gogpu/labels/internal/parallel"
	"github.com/gogpu/labels/measure"
	"github.com/gogpu/labels/occlusion"
)

// FrameReport is what one simulated frame produced.
type FrameReport struct {
	Index  int
	Result labels.FrameResult
	Labels []LabelReport
}

// LabelReport is the state of one named label after a frame.
type LabelReport struct {
	Name     string
	State    labels.State
	Alpha    float64
	Rendered bool
	Bounds   labels.Rect
	Text     string
}

// Sim replays a Scenario through a labels.Collection.
type Sim struct {
	sc       *Scenario
	measurer *measure.Measurer
	coll     *labels.Collection
	names    map[*labels.Label]string
	specs    map[string]LabelSpec
	mu       sync.Mutex
}

// NewSim prepares a simulation. No label exists before the first Step.
func NewSim(sc *Scenario) *Sim {
	s := &Sim{
		sc:       sc,
		measurer: measure.New(nil, measure.WithPadding(labels.Pt(sc.Padding, sc.Padding))),
		names:    make(map[*labels.Label]string),
		specs:    make(map[string]LabelSpec),
	}
	s.coll = labels.NewCollection(
		labels.WithProjector(labels.AffineProjector{Margin: sc.Margin}),
		labels.WithOccluder(occlusion.New(0)),
	)
	for _, ls := range sc.Labels {
		s.specs[ls.Name] = ls
	}
	return s
}

// Collection exposes the simulated collection.
func (s *Sim) Collection() *labels.Collection { return s.coll }

// Measurer exposes the footprint measurer.
func (s *Sim) Measurer() *measure.Measurer { return s.measurer }

// PublishAll publishes every source on the pool's workers, the way tile
// workers hand finished label batches to the update loop.
func (s *Sim) PublishAll(pool *parallel.Pool) error {
	sources := s.sc.Sources()
	jobs := make([]parallel.Job, len(sources))
	for i, src := range sources {
		jobs[i] = func() error { return s.publish(src, false) }
	}
	return pool.Run(jobs)
}

// publish queues a batch for source. With skip set the new labels appear
// without fading, like a skip event on labels already in the collection.
func (s *Sim) publish(source string, skip bool) error {
	return s.coll.Publish(source, func(b *labels.Batch) error {
		ids := make(map[string]labels.ID)
		at := make(map[string]labels.Point)
		for _, ls := range s.sc.Labels {
			if ls.Source != source {
				continue
			}
			world := labels.Pt(ls.At[0], ls.At[1])
			if ls.Parent != "" {
				world = at[ls.Parent]
			}
			at[ls.Name] = world
			l := labels.NewLabel(world, s.footprint(ls), ls.options()...)
			if skip {
				l.SkipTransitions()
			}
			var id labels.ID
			if ls.Parent == "" {
				id = b.Add(l)
			} else {
				var err error
				id, err = b.AddChild(l, ids[ls.Parent], ls.InheritPriority)
				if err != nil {
					return fmt.Errorf("label %q: %w", ls.Name, err)
				}
			}
			ids[ls.Name] = id
			s.mu.Lock()
			s.names[l] = ls.Name
			s.mu.Unlock()
		}
		return nil
	})
}

func (s *Sim) footprint(ls LabelSpec) labels.Point {
	if len(ls.Icon) == 2 {
		return s.measurer.Icon(ls.Icon[0], ls.Icon[1])
	}
	return s.measurer.Text(ls.Text)
}

// Step applies the frame's events, updates the collection and releases
// labels that died in the previous frame. A skip event also covers labels
// its source publishes in the same frame; a rebuild in the same frame
// resets the state and wins over it.
func (s *Sim) Step(i int) (FrameReport, error) {
	s.coll.Sweep()

	skipped := make(map[string]bool)
	for _, ev := range s.sc.Events {
		if ev.Frame == i && ev.Action == ActionSkip {
			skipped[ev.Source] = true
		}
	}

	for _, ev := range s.sc.Events {
		if ev.Frame != i {
			continue
		}
		switch ev.Action {
		case ActionInvalidate:
			s.coll.Invalidate(ev.Source)
		case ActionRebuild:
			s.coll.Rebuild(ev.Source)
		case ActionPublish:
			if err := s.publish(ev.Source, skipped[ev.Source]); err != nil {
				return FrameReport{}, err
			}
		case ActionSkip:
			for id, l := range s.coll.AllLabels() {
				if s.coll.Source(labels.ID(id)) == ev.Source {
					l.SkipTransitions()
				}
			}
		}
	}

	frame := labels.Frame{
		View:       s.sc.View(i),
		ScreenSize: labels.Pt(float64(s.sc.Width), float64(s.sc.Height)),
		Dt:         s.sc.Dt,
		AllLabels:  s.sc.AllLabels,
	}
	res := s.coll.Update(frame)

	rendered := make(map[*labels.Label]bool)
	for _, l := range s.coll.RenderSet() {
		rendered[l] = true
	}
	rep := FrameReport{Index: i, Result: res}
	for _, l := range s.coll.AllLabels() {
		name := s.names[l]
		rep.Labels = append(rep.Labels, LabelReport{
			Name:     name,
			State:    l.State(),
			Alpha:    l.Alpha(),
			Rendered: rendered[l],
			Bounds:   l.Bounds(),
			Text:     s.specs[name].Text,
		})
	}
	return rep, nil
}
