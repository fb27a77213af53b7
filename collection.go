package labels

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// Occluder decides, once per frame, which candidates overlap a label that
// wins over them. It must call SetOccluded on every candidate and must be
// deterministic for a fixed priority order and fixed screen transforms.
//
// Candidates are exactly the placed labels for which CanOcclude is true.
type Occluder interface {
	Occlude(candidates []*Label)
}

// OccluderFunc adapts an ordinary function to the Occluder interface.
type OccluderFunc func(candidates []*Label)

// Occlude calls f(candidates).
func (f OccluderFunc) Occlude(candidates []*Label) { f(candidates) }

// CollectionOption configures a Collection during creation.
type CollectionOption func(*Collection)

// WithProjector sets the projection used by the transform pass.
// The default is AffineProjector with no margin.
func WithProjector(p Projector) CollectionOption {
	return func(c *Collection) {
		c.projector = p
	}
}

// WithOccluder sets the occlusion detector. Without one, no label is ever
// reported as occluded.
func WithOccluder(o Occluder) CollectionOption {
	return func(c *Collection) {
		c.occluder = o
	}
}

// FrameResult summarizes one Update.
type FrameResult struct {
	// Placed counts labels whose transform is valid this frame.
	Placed int
	// Occluded counts candidates the detector marked as occluded.
	Occluded int
	// Rendered counts labels in the render set.
	Rendered int
	// Killed counts labels that died while applying queued source changes.
	Killed int
	// Animating is true while any label is fading or changed state, i.e.
	// the caller should request another frame.
	Animating bool
}

// Collection owns the labels of all visible sources and drives their
// per-frame update.
//
// Labels live in an arena indexed by ID. A child's parent ID stays valid for
// as long as the child is in the collection: Sweep kills children of dead
// parents before releasing anything and remaps the surviving IDs.
//
// Publish, Invalidate and Rebuild may be called from any goroutine; their
// effects are queued under a single mutex and applied at the start of the
// next Update. Every other method belongs to the update goroutine.
type Collection struct {
	mu      sync.Mutex
	pending []sourceChange

	labels  []*Label
	sources []string
	placed  []bool

	published mapset.Set[string]

	projector Projector
	occluder  Occluder

	candidates []*Label
	animating  bool
}

type changeKind uint8

const (
	changePublish changeKind = iota
	changeInvalidate
	changeRebuild
)

type sourceChange struct {
	kind   changeKind
	source string
	batch  *Batch
}

// NewCollection creates an empty collection.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{
		published: mapset.New[string](),
		projector: AffineProjector{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of labels held, dead ones included until Sweep.
func (c *Collection) Len() int { return len(c.labels) }

// Label returns the label with the given ID, or nil.
func (c *Collection) Label(id ID) *Label {
	if id < 0 || int(id) >= len(c.labels) {
		return nil
	}
	return c.labels[id]
}

// Source returns the source a label was published by, or "" for labels
// added directly.
func (c *Collection) Source(id ID) string {
	if id < 0 || int(id) >= len(c.sources) {
		return ""
	}
	return c.sources[id]
}

// Add inserts a label that has no parent and returns its ID.
func (c *Collection) Add(l *Label) ID {
	return c.insert(l, "")
}

// AddChild inserts l attached to parent. The anchor composition runs here,
// exactly once. With inheritPriority the child is ordered just after its
// parent.
func (c *Collection) AddChild(l *Label, parent ID, inheritPriority bool) (ID, error) {
	p := c.Label(parent)
	if err := checkParent(l, p, parent); err != nil {
		return NoID, err
	}
	l.attach(p, parent, inheritPriority)
	return c.insert(l, c.Source(parent)), nil
}

func checkParent(child, parent *Label, id ID) error {
	if parent == nil {
		return fmt.Errorf("%w: %d", ErrUnknownParent, id)
	}
	if parent.IsDead() {
		return fmt.Errorf("%w: %d", ErrDeadParent, id)
	}
	if child.parent != NoID {
		return ErrParentAlreadySet
	}
	return nil
}

func (c *Collection) insert(l *Label, source string) ID {
	id := ID(len(c.labels))
	c.labels = append(c.labels, l)
	c.sources = append(c.sources, source)
	c.placed = append(c.placed, false)
	return id
}

// Publish builds a batch of labels for source and queues it for the next
// Update, replacing every label the source published before. build runs on
// the calling goroutine; if it fails nothing is queued.
func (c *Collection) Publish(source string, build func(b *Batch) error) error {
	b := &Batch{}
	if err := build(b); err != nil {
		Logger().Warn("labels: publish rejected", "source", source, "err", err)
		return fmt.Errorf("labels: publish %q: %w", source, err)
	}
	c.enqueue(sourceChange{kind: changePublish, source: source, batch: b})
	return nil
}

// Invalidate queues the death of every label of source, as when its tile
// is evicted.
func (c *Collection) Invalidate(source string) {
	c.enqueue(sourceChange{kind: changeInvalidate, source: source})
}

// Rebuild queues a state reset for every label of source, so occlusion
// history does not carry over rebuilt geometry.
func (c *Collection) Rebuild(source string) {
	c.enqueue(sourceChange{kind: changeRebuild, source: source})
}

func (c *Collection) enqueue(ch sourceChange) {
	c.mu.Lock()
	c.pending = append(c.pending, ch)
	c.mu.Unlock()
}

// applyPending drains the queue and returns how many labels died.
func (c *Collection) applyPending() int {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	killed := 0
	for _, ch := range pending {
		switch ch.kind {
		case changePublish:
			if c.published.Has(ch.source) {
				killed += c.killSource(ch.source)
			}
			base := ID(len(c.labels))
			for _, l := range ch.batch.labels {
				if l.parent != NoID {
					l.parent += base
				}
				c.insert(l, ch.source)
			}
			c.published.Put(ch.source)
			Logger().Info("labels: source published", "source", ch.source, "labels", len(ch.batch.labels))
		case changeInvalidate:
			killed += c.killSource(ch.source)
			c.published.Remove(ch.source)
			Logger().Info("labels: source invalidated", "source", ch.source)
		case changeRebuild:
			for i, l := range c.labels {
				if c.sources[i] == ch.source {
					l.ResetState()
				}
			}
			Logger().Info("labels: source rebuilt", "source", ch.source)
		}
	}
	return killed
}

func (c *Collection) killSource(source string) int {
	n := 0
	for i, l := range c.labels {
		if c.sources[i] == source && !l.IsDead() {
			l.Kill()
			n++
		}
	}
	return n
}

// Update runs one frame in two passes that must stay separate:
//
//  1. the transform pass projects every label for the frame;
//  2. once every transform is known, the occluder marks the eligible
//     labels, then every label evaluates its state machine with frame.Dt.
//     Labels the transform pass could not place evaluate as occluded.
func (c *Collection) Update(frame Frame) FrameResult {
	var res FrameResult
	res.Killed = c.applyPending()

	for i, l := range c.labels {
		c.placed[i] = l.UpdateTransform(c.projector, frame)
		if c.placed[i] {
			res.Placed++
		}
	}

	c.candidates = c.candidates[:0]
	for i, l := range c.labels {
		if c.placed[i] && l.CanOcclude() {
			c.candidates = append(c.candidates, l)
		}
	}
	if c.occluder != nil && len(c.candidates) > 0 {
		c.occluder.Occlude(c.candidates)
	}
	for _, l := range c.candidates {
		if l.Occluded() {
			res.Occluded++
		}
	}

	for i, l := range c.labels {
		if l.EvalState(frame.Dt) {
			res.Animating = true
		}
		if c.placed[i] && l.VisibleState() {
			res.Rendered++
		}
	}
	c.animating = res.Animating

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("labels: frame",
			"labels", len(c.labels),
			"placed", res.Placed,
			"candidates", len(c.candidates),
			"occluded", res.Occluded,
			"rendered", res.Rendered,
			"animating", res.Animating)
	}
	return res
}

// NeedUpdate reports whether the last Update left animations in flight.
func (c *Collection) NeedUpdate() bool { return c.animating }

// RenderSet returns the labels to submit to the renderer for the last
// frame: placed this frame and in a visible state.
func (c *Collection) RenderSet() []*Label {
	var out []*Label
	for i, l := range c.labels {
		if c.placed[i] && l.VisibleState() {
			out = append(out, l)
		}
	}
	return out
}

// AllLabels returns every label regardless of state, for debug overlays.
// The returned slice must not be modified.
func (c *Collection) AllLabels() []*Label { return c.labels }

// LabelsAt returns the IDs of rendered labels whose bounds contain p,
// topmost (lowest priority value) first.
func (c *Collection) LabelsAt(p Point) []ID {
	var ids []ID
	for i, l := range c.labels {
		if c.placed[i] && l.VisibleState() && l.Bounds().Contains(p) {
			ids = append(ids, ID(i))
		}
	}
	sortByPriority(ids, c.labels)
	return ids
}

func sortByPriority(ids []ID, all []*Label) {
	// Insertion sort: pick results are short and stability keeps ID order
	// for equal priorities.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && all[ids[j]].Priority() < all[ids[j-1]].Priority(); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

// Sweep releases dead labels and compacts the arena. Call it after the
// frame in which labels died has been rendered. Children of released
// parents are killed and released with them. Sweep returns the number of
// labels removed; IDs of surviving labels may change.
func (c *Collection) Sweep() int {
	// Parents always precede their children in the arena, so one forward
	// pass propagates deaths down every chain.
	for _, l := range c.labels {
		if l.parent != NoID && c.labels[l.parent].IsDead() {
			l.Kill()
		}
	}

	remap := make([]ID, len(c.labels))
	n := 0
	for i, l := range c.labels {
		if l.IsDead() {
			remap[i] = NoID
			continue
		}
		remap[i] = ID(n)
		c.labels[n] = l
		c.sources[n] = c.sources[i]
		c.placed[n] = c.placed[i]
		n++
	}
	removed := len(c.labels) - n
	for i := n; i < len(c.labels); i++ {
		c.labels[i] = nil
	}
	c.labels = c.labels[:n]
	c.sources = c.sources[:n]
	c.placed = c.placed[:n]

	for _, l := range c.labels {
		if l.parent != NoID {
			l.parent = remap[l.parent]
		}
	}
	if removed > 0 {
		Logger().Debug("labels: sweep", "removed", removed, "remaining", n)
	}
	return removed
}

// Batch collects the labels of one source publication. IDs returned by a
// Batch are local to it; parents must be added to the same batch before
// their children, so no cycle can be formed.
type Batch struct {
	labels []*Label
}

// Add appends a label without parent and returns its batch-local ID.
func (b *Batch) Add(l *Label) ID {
	b.labels = append(b.labels, l)
	return ID(len(b.labels) - 1)
}

// AddChild appends l attached to the batch-local parent. Composition runs
// here, once, on the publishing goroutine.
func (b *Batch) AddChild(l *Label, parent ID, inheritPriority bool) (ID, error) {
	var p *Label
	if parent >= 0 && int(parent) < len(b.labels) {
		p = b.labels[parent]
	}
	if err := checkParent(l, p, parent); err != nil {
		return NoID, err
	}
	l.attach(p, parent, inheritPriority)
	return b.Add(l), nil
}

// Len returns the number of labels in the batch.
func (b *Batch) Len() int { return len(b.labels) }
