package labels

// Frame is the explicit per-frame context passed to every update.
// Nothing in this package reads ambient camera or debug state.
type Frame struct {
	// View maps world placements to screen coordinates.
	View Matrix
	// ScreenSize is the viewport size in screen units.
	ScreenSize Point
	// ZoomFract is the fractional part of the current zoom level.
	ZoomFract float64
	// Dt is the time since the previous frame, in seconds.
	Dt float64
	// AllLabels is the diagnostic switch that keeps dead labels in the
	// transform pass so debug overlays can draw every label.
	AllLabels bool
}

// ScreenTransform is the per-frame placement of a label on screen.
type ScreenTransform struct {
	Position Point
	Rotation float64
	Scale    float64
	Alpha    float64
}

// Projector maps a label's world placement to screen space.
// The boolean result reports whether the projection is valid for the
// frame; false means the label must not be placed this frame.
type Projector interface {
	Project(world Point, frame Frame) (ScreenTransform, bool)
}

// ProjectorFunc adapts an ordinary function to the Projector interface.
type ProjectorFunc func(world Point, frame Frame) (ScreenTransform, bool)

// Project calls f(world, frame).
func (f ProjectorFunc) Project(world Point, frame Frame) (ScreenTransform, bool) {
	return f(world, frame)
}

// AffineProjector projects placements through Frame.View.
//
// A projection is invalid when the view is singular, when the result is not
// finite, or when the point falls outside the screen extended by Margin on
// every side.
type AffineProjector struct {
	Margin float64
}

// Project implements Projector.
func (p AffineProjector) Project(world Point, frame Frame) (ScreenTransform, bool) {
	if !frame.View.IsInvertible() {
		return ScreenTransform{}, false
	}
	pos := frame.View.TransformPoint(world)
	if !pos.IsFinite() {
		return ScreenTransform{}, false
	}
	if pos.X < -p.Margin || pos.Y < -p.Margin ||
		pos.X > frame.ScreenSize.X+p.Margin || pos.Y > frame.ScreenSize.Y+p.Margin {
		return ScreenTransform{}, false
	}
	return ScreenTransform{
		Position: pos,
		Rotation: frame.View.Angle(),
		Scale:    1,
	}, true
}
