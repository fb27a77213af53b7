package labels

// Kind distinguishes regular labels from diagnostic ones.
type Kind uint8

const (
	// KindNormal is a regular text or icon label.
	KindNormal Kind = iota
	// KindDebug labels bypass occlusion entirely and are always visible.
	KindDebug
)

func (k Kind) String() string {
	if k == KindDebug {
		return "debug"
	}
	return "normal"
}

// ID identifies a label inside a Collection.
type ID int

// NoID marks the absence of a label, e.g. a label without parent.
const NoID ID = -1

// Label is a placed map annotation with a visibility lifecycle.
//
// A Label owns its own state machine. It never owns other labels; the
// optional parent is an ID in the owning Collection, valid for as long as
// the Collection holds the child.
//
// Label is not safe for concurrent use. All mutation happens on the update
// goroutine, once per frame.
type Label struct {
	kind    Kind
	world   Point
	size    Point
	anchor  Anchor
	options Options

	// anchorOffset is the offset of the label's center from its projected
	// placement point, composed once at creation or attachment.
	anchorOffset Point
	transform    ScreenTransform

	state             State
	occluded          bool
	occludedLastFrame bool
	// unplaced is set when this frame's projection was invalid. It keeps
	// the label asleep without touching the occlusion history.
	unplaced bool

	parent ID
	fade   FadeEffect
}

// NewLabel creates a label placed at world with the given footprint size.
//
// Labels that do not participate in occlusion (Collide == false or
// KindDebug) start visible with alpha 1. All others start in
// StateWaitingOcclusion with alpha 0.
func NewLabel(world, size Point, opts ...LabelOption) *Label {
	cfg := defaultLabelConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.options.ShowTransition.Duration = sanitizeDuration(cfg.options.ShowTransition.Duration)
	cfg.options.HideTransition.Duration = sanitizeDuration(cfg.options.HideTransition.Duration)

	l := &Label{
		kind:    cfg.kind,
		world:   world,
		size:    size,
		anchor:  cfg.anchor,
		options: cfg.options,
		parent:  NoID,
	}
	l.anchorOffset = AnchorOffset(size, Point{}, cfg.anchor)
	l.transform.Scale = 1

	if l.participates() {
		l.state = StateWaitingOcclusion
		l.transform.Alpha = 0
	} else {
		l.enterState(StateVisible, 1)
	}
	return l
}

// attach composes the label's placement against its parent. It runs once,
// when the owning Collection adds the label as a child.
func (l *Label) attach(parent *Label, id ID, inheritPriority bool) {
	res := ComposeAnchor(
		AnchorInput{Size: l.size, Anchor: l.anchor, Offset: l.options.Offset, Priority: l.options.Priority},
		AnchorInput{Size: parent.size, Anchor: parent.anchor, Offset: parent.options.Offset, Priority: parent.options.Priority},
		inheritPriority,
	)
	l.parent = id
	l.anchorOffset = res.AnchorOffset
	l.options.Offset = res.Offset
	l.options.Priority = res.Priority
}

// participates reports whether the label takes part in occlusion at all.
func (l *Label) participates() bool {
	return l.options.Collide && l.kind != KindDebug
}

// Kind returns the label kind.
func (l *Label) Kind() Kind { return l.kind }

// World returns the label's world placement.
func (l *Label) World() Point { return l.world }

// Size returns the label footprint in screen units.
func (l *Label) Size() Point { return l.size }

// Anchor returns the label's anchor.
func (l *Label) Anchor() Anchor { return l.anchor }

// AnchorOffset returns the composed offset of the label center from its
// placement point.
func (l *Label) AnchorOffset() Point { return l.anchorOffset }

// Options returns the effective options, after parent composition.
func (l *Label) Options() Options { return l.options }

// Priority returns the effective occlusion priority.
func (l *Label) Priority() float64 { return l.options.Priority }

// Parent returns the parent ID, or NoID.
func (l *Label) Parent() ID { return l.parent }

// State returns the current visibility state.
func (l *Label) State() State { return l.state }

// Alpha returns the current alpha in [0, 1].
func (l *Label) Alpha() float64 { return l.transform.Alpha }

// Transform returns the screen transform computed for the current frame.
func (l *Label) Transform() ScreenTransform { return l.transform }

// Occluded reports the occlusion result of the current frame.
func (l *Label) Occluded() bool { return l.occluded }

// OccludedLastFrame reports the occlusion result of the previous frame.
// Frames in which the label could not be placed do not count as occluded.
func (l *Label) OccludedLastFrame() bool { return l.occludedLastFrame }

// Fade returns the active fade effect.
func (l *Label) Fade() FadeEffect { return l.fade }

// Center returns the label center on screen.
func (l *Label) Center() Point {
	t := l.transform
	return t.Position.Add(l.options.Offset).Add(l.anchorOffset.Mul(t.Scale))
}

// Bounds returns the axis-aligned screen footprint for the current frame.
func (l *Label) Bounds() Rect {
	return RectFromCenter(l.Center(), l.size.Mul(l.transform.Scale))
}

// SetOccluded records the occlusion detector's verdict for this frame.
// It is a no-op on a dead label.
func (l *Label) SetOccluded(occluded bool) {
	if l.state == StateDead {
		return
	}
	l.occluded = occluded
}
