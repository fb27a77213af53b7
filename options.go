package labels

// Options holds the per-label placement and transition parameters.
type Options struct {
	// Collide enables occlusion testing. Labels with Collide == false are
	// always visible and never hide other labels.
	Collide bool

	// Priority orders labels for occlusion. Lower values win: a label is
	// hidden only by overlapping labels with a lower (or equal, earlier)
	// priority.
	Priority float64

	// Offset is a screen-space displacement applied after projection.
	Offset Point

	// ShowTransition and HideTransition parameterize the fades.
	ShowTransition Transition
	HideTransition Transition
}

// DefaultOptions returns the options used by NewLabel when no LabelOption
// overrides them: colliding, priority 0, no offset, DefaultTransition fades.
func DefaultOptions() Options {
	return Options{
		Collide:        true,
		ShowTransition: DefaultTransition,
		HideTransition: DefaultTransition,
	}
}

// LabelOption configures a Label during creation.
//
// Example:
//
//	l := labels.NewLabel(labels.Pt(120, 40), labels.Pt(64, 16),
//	    labels.WithPriority(2),
//	    labels.WithAnchor(labels.AnchorTop),
//	    labels.WithShowTransition(labels.Transition{Ease: labels.EaseSine, Duration: 0.5}),
//	)
type LabelOption func(*labelConfig)

// labelConfig holds optional configuration for Label creation.
type labelConfig struct {
	kind    Kind
	anchor  Anchor
	options Options
}

func defaultLabelConfig() labelConfig {
	return labelConfig{
		kind:    KindNormal,
		anchor:  AnchorCenter,
		options: DefaultOptions(),
	}
}

// WithOptions replaces all options at once.
// Later LabelOptions still apply on top of it.
func WithOptions(o Options) LabelOption {
	return func(c *labelConfig) {
		c.options = o
	}
}

// WithKind sets the label kind. Debug labels bypass occlusion.
func WithKind(k Kind) LabelOption {
	return func(c *labelConfig) {
		c.kind = k
	}
}

// WithAnchor sets which side of its placement point the label is drawn on.
func WithAnchor(a Anchor) LabelOption {
	return func(c *labelConfig) {
		c.anchor = a
	}
}

// WithCollide enables or disables occlusion testing.
func WithCollide(collide bool) LabelOption {
	return func(c *labelConfig) {
		c.options.Collide = collide
	}
}

// WithPriority sets the occlusion priority (lower wins).
func WithPriority(p float64) LabelOption {
	return func(c *labelConfig) {
		c.options.Priority = p
	}
}

// WithOffset sets the screen-space offset.
func WithOffset(off Point) LabelOption {
	return func(c *labelConfig) {
		c.options.Offset = off
	}
}

// WithShowTransition sets the fade used when the label appears.
// Negative durations are clamped to zero.
func WithShowTransition(t Transition) LabelOption {
	return func(c *labelConfig) {
		t.Duration = sanitizeDuration(t.Duration)
		c.options.ShowTransition = t
	}
}

// WithHideTransition sets the fade used when the label becomes occluded.
// Negative durations are clamped to zero.
func WithHideTransition(t Transition) LabelOption {
	return func(c *labelConfig) {
		t.Duration = sanitizeDuration(t.Duration)
		c.options.HideTransition = t
	}
}
