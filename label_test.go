package labels

import (
	"math"
	"math/rand"
	"testing"
)

// step feeds one frame of occlusion input to the state machine.
func step(l *Label, occluded bool, dt float64) bool {
	l.SetOccluded(occluded)
	return l.EvalState(dt)
}

func linear(d float64) Transition { return Transition{Ease: EaseLinear, Duration: d} }

var allStates = []State{
	StateWaitingOcclusion,
	StateVisible,
	StateFadingIn,
	StateFadingOut,
	StateSleeping,
	StateSkipTransition,
	StateOutOfScreen,
	StateDead,
}

func TestNewLabelInitialState(t *testing.T) {
	tests := []struct {
		name      string
		opts      []LabelOption
		wantState State
		wantAlpha float64
	}{
		{"colliding", nil, StateWaitingOcclusion, 0},
		{"no collide", []LabelOption{WithCollide(false)}, StateVisible, 1},
		{"debug", []LabelOption{WithKind(KindDebug)}, StateVisible, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLabel(Pt(0, 0), Pt(10, 10), tt.opts...)
			if l.State() != tt.wantState || l.Alpha() != tt.wantAlpha {
				t.Errorf("got (%v, %v), want (%v, %v)", l.State(), l.Alpha(), tt.wantState, tt.wantAlpha)
			}
			if l.Parent() != NoID {
				t.Errorf("Parent() = %v, want NoID", l.Parent())
			}
		})
	}
}

func TestNonCollidingLabelAlwaysVisible(t *testing.T) {
	for _, opt := range []LabelOption{WithCollide(false), WithKind(KindDebug)} {
		l := NewLabel(Pt(0, 0), Pt(10, 10), opt)
		for i := 0; i < 50; i++ {
			step(l, i%3 == 0, 0.05)
			if l.State() != StateVisible || l.Alpha() != 1 {
				t.Fatalf("frame %d: (%v, %v), want (visible, 1)", i, l.State(), l.Alpha())
			}
			if l.CanOcclude() {
				t.Fatal("non-colliding label must not take part in occlusion")
			}
		}
	}
}

func TestFadeInScenario(t *testing.T) {
	show := Transition{Ease: EaseSine, Duration: 0.5}
	l := NewLabel(Pt(0, 0), Pt(10, 10), WithShowTransition(show))

	if !step(l, false, 0.1) {
		t.Error("first frame should report animation")
	}
	if l.State() != StateFadingIn {
		t.Fatalf("state = %v, want fading-in", l.State())
	}
	want := EaseSine.Apply(0.2)
	if !approx(l.Alpha(), want) || l.Alpha() <= 0 || l.Alpha() >= 1 {
		t.Errorf("alpha = %v, want %v in (0,1)", l.Alpha(), want)
	}

	for i := 0; i < 4; i++ {
		step(l, false, 0.1)
	}
	if l.State() != StateVisible || l.Alpha() != 1 {
		t.Errorf("after 0.5s: (%v, %v), want (visible, 1)", l.State(), l.Alpha())
	}
	if step(l, false, 0.1) {
		t.Error("steady visible label should not animate")
	}
}

func TestZeroDurationShowIsImmediate(t *testing.T) {
	l := NewLabel(Pt(0, 0), Pt(10, 10), WithShowTransition(linear(-2)))
	if d := l.Options().ShowTransition.Duration; d != 0 {
		t.Fatalf("negative duration not clamped: %v", d)
	}
	if !step(l, false, 0.016) {
		t.Error("transition should be reported")
	}
	if l.State() != StateVisible || l.Alpha() != 1 {
		t.Errorf("got (%v, %v), want (visible, 1)", l.State(), l.Alpha())
	}
}

// visibleLabel returns a label that is already fully shown.
func visibleLabel(opts ...LabelOption) *Label {
	l := NewLabel(Pt(0, 0), Pt(10, 10), opts...)
	l.SkipTransitions()
	step(l, false, 0)
	return l
}

func TestVisibleOccludedFadesOut(t *testing.T) {
	l := visibleLabel(WithHideTransition(linear(1)))

	if !step(l, true, 0.1) {
		t.Error("transition should be reported")
	}
	if l.State() != StateFadingOut || l.Alpha() != 1 {
		t.Fatalf("got (%v, %v), want (fading-out, 1)", l.State(), l.Alpha())
	}
	if l.CanOcclude() {
		t.Error("fading-out label must not be an occlusion candidate")
	}
	if !l.VisibleState() {
		t.Error("fading-out label must still be rendered")
	}

	step(l, true, 0.5)
	if !approx(l.Alpha(), 0.5) {
		t.Errorf("alpha = %v, want 0.5", l.Alpha())
	}
	step(l, true, 0.5)
	if l.State() != StateSleeping || l.Alpha() != 0 {
		t.Errorf("got (%v, %v), want (sleeping, 0)", l.State(), l.Alpha())
	}
}

func TestFadeRoundTripResumesFromHeldAlpha(t *testing.T) {
	l := visibleLabel(WithHideTransition(linear(1)), WithShowTransition(linear(1)))

	step(l, true, 0.1)  // -> fading-out at 1
	step(l, true, 0.25) // alpha 0.75
	held := l.Alpha()
	if !approx(held, 0.75) {
		t.Fatalf("held alpha = %v, want 0.75", held)
	}

	if !step(l, false, 0.1) {
		t.Error("flip should be reported")
	}
	if l.State() != StateFadingIn {
		t.Fatalf("state = %v, want fading-in", l.State())
	}
	if l.Alpha() != held {
		t.Errorf("alpha jumped to %v at flip, want %v", l.Alpha(), held)
	}

	prev := l.Alpha()
	for l.State() == StateFadingIn {
		step(l, false, 0.05)
		if l.Alpha() < prev {
			t.Fatalf("alpha decreased while fading in: %v < %v", l.Alpha(), prev)
		}
		prev = l.Alpha()
	}
	if l.State() != StateVisible || l.Alpha() != 1 {
		t.Errorf("got (%v, %v), want (visible, 1)", l.State(), l.Alpha())
	}
}

func TestResumedFadeKeepsRate(t *testing.T) {
	l := visibleLabel(WithHideTransition(linear(1)), WithShowTransition(linear(1)))
	step(l, true, 0)
	step(l, true, 0.25) // 0.75
	step(l, false, 0)   // resume at 0.75, 0.25s left

	step(l, false, 0.125)
	if !approx(l.Alpha(), 0.875) {
		t.Errorf("alpha = %v, want 0.875", l.Alpha())
	}
	step(l, false, 0.125)
	if l.State() != StateVisible {
		t.Errorf("state = %v, want visible", l.State())
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from      State
		occluded  bool
		wantState State
		wantAlpha float64
	}{
		{StateFadingIn, true, StateSleeping, 0},
		{StateWaitingOcclusion, true, StateSleeping, 0},
		{StateSkipTransition, true, StateSleeping, 0},
		{StateSkipTransition, false, StateVisible, 1},
		{StateSleeping, true, StateSleeping, 0},
		{StateVisible, false, StateVisible, 1},
		{StateOutOfScreen, false, StateOutOfScreen, 0.5},
		{StateOutOfScreen, true, StateOutOfScreen, 0.5},
	}
	for _, tt := range tests {
		name := tt.from.String() + "/occluded"
		if !tt.occluded {
			name = tt.from.String() + "/clear"
		}
		t.Run(name, func(t *testing.T) {
			l := NewLabel(Pt(0, 0), Pt(10, 10))
			alpha := 0.5
			switch tt.from {
			case StateVisible:
				alpha = 1
			case StateSleeping:
				alpha = 0
			}
			l.enterState(tt.from, alpha)
			l.fade = NewFadeEffect(true, EaseLinear, 1)

			step(l, tt.occluded, 0.1)
			if l.State() != tt.wantState || !approx(l.Alpha(), tt.wantAlpha) {
				t.Errorf("got (%v, %v), want (%v, %v)", l.State(), l.Alpha(), tt.wantState, tt.wantAlpha)
			}
		})
	}
}

func TestSleepingClearStartsFadeIn(t *testing.T) {
	l := NewLabel(Pt(0, 0), Pt(10, 10), WithShowTransition(linear(1)))
	step(l, true, 0.1)
	if l.State() != StateSleeping {
		t.Fatalf("state = %v, want sleeping", l.State())
	}
	if step(l, true, 0.1) {
		t.Error("sleeping occluded label should not animate")
	}

	step(l, false, 0.25)
	if l.State() != StateFadingIn || !approx(l.Alpha(), 0.25) {
		t.Errorf("got (%v, %v), want (fading-in, 0.25)", l.State(), l.Alpha())
	}
}

func TestSkipTransitions(t *testing.T) {
	for _, s := range allStates {
		if s == StateDead {
			continue
		}
		t.Run(s.String(), func(t *testing.T) {
			l := NewLabel(Pt(0, 0), Pt(10, 10))
			l.enterState(s, 0.8)
			l.SkipTransitions()
			if l.State() != StateSkipTransition || l.Alpha() != 0 {
				t.Fatalf("got (%v, %v), want (skip-transition, 0)", l.State(), l.Alpha())
			}
			step(l, false, 0.3)
			if l.State() != StateVisible || l.Alpha() != 1 {
				t.Errorf("got (%v, %v), want (visible, 1)", l.State(), l.Alpha())
			}
		})
	}
}

func TestResetState(t *testing.T) {
	l := visibleLabel()
	l.SetOccluded(true)
	l.UpdateTransform(AffineProjector{Margin: math.Inf(1)}, Frame{View: Identity()})
	l.SetOccluded(true)
	if !l.OccludedLastFrame() || !l.Occluded() {
		t.Fatal("setup: occlusion flags not set")
	}

	l.ResetState()
	if l.State() != StateWaitingOcclusion || l.Alpha() != 0 {
		t.Errorf("got (%v, %v), want (waiting-occlusion, 0)", l.State(), l.Alpha())
	}
	if l.Occluded() || l.OccludedLastFrame() {
		t.Error("occlusion flags not cleared")
	}
}

func TestDeadIsAbsorbing(t *testing.T) {
	l := visibleLabel()
	l.Kill()
	alpha := l.Alpha()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		if step(l, rng.Intn(2) == 0, rng.Float64()) {
			t.Fatal("dead label reported animation")
		}
		switch i % 4 {
		case 0:
			l.SkipTransitions()
		case 1:
			l.ResetState()
		case 2:
			l.UpdateTransform(ProjectorFunc(func(Point, Frame) (ScreenTransform, bool) {
				return ScreenTransform{}, false
			}), Frame{})
		}
		if l.State() != StateDead || l.Alpha() != alpha {
			t.Fatalf("iteration %d: (%v, %v), want (dead, %v)", i, l.State(), l.Alpha(), alpha)
		}
	}
	if l.VisibleState() {
		t.Error("dead label must not be rendered")
	}
}

func TestUpdateTransform(t *testing.T) {
	frame := Frame{View: Translate(10, 20), ScreenSize: Pt(200, 200)}

	t.Run("valid", func(t *testing.T) {
		l := NewLabel(Pt(5, 5), Pt(10, 4))
		l.SetOccluded(true)
		if !l.UpdateTransform(AffineProjector{}, frame) {
			t.Fatal("projection should be valid")
		}
		if l.Transform().Position != Pt(15, 25) {
			t.Errorf("Position = %+v, want (15,25)", l.Transform().Position)
		}
		if !l.OccludedLastFrame() || l.Occluded() {
			t.Error("flags not rotated: want last=true, current=false")
		}
	})

	t.Run("invalid sleeps", func(t *testing.T) {
		l := visibleLabel()
		if l.UpdateTransform(AffineProjector{}, Frame{View: Scale(0, 0)}) {
			t.Fatal("singular view should be invalid")
		}
		if l.State() != StateSleeping || l.Alpha() != 0 {
			t.Errorf("got (%v, %v), want (sleeping, 0)", l.State(), l.Alpha())
		}
		if l.Occluded() {
			t.Error("no detector ran, occlusion flag must stay clear")
		}
		if l.EvalState(0.1) || l.State() != StateSleeping {
			t.Errorf("unplaced label woke up: %v", l.State())
		}
		l.UpdateTransform(AffineProjector{}, Frame{View: Scale(0, 0)})
		if l.OccludedLastFrame() {
			t.Error("an unplaced frame must not be recorded as occluded")
		}
		if l.EvalState(0.1) || l.State() != StateSleeping {
			t.Errorf("second unplaced frame: %v, want sleeping", l.State())
		}
	})

	t.Run("invalid non-colliding stays asleep", func(t *testing.T) {
		l := NewLabel(Pt(5, 5), Pt(10, 4), WithCollide(false))
		l.UpdateTransform(AffineProjector{}, Frame{View: Scale(0, 0)})
		if l.EvalState(0.1) || l.State() != StateSleeping {
			t.Errorf("got %v, want sleeping", l.State())
		}
		l.UpdateTransform(AffineProjector{}, frame)
		if !l.EvalState(0.1) || l.State() != StateVisible || l.Alpha() != 1 {
			t.Errorf("back on screen: (%v, %v), want (visible, 1)", l.State(), l.Alpha())
		}
	})

	t.Run("dead skipped", func(t *testing.T) {
		l := NewLabel(Pt(5, 5), Pt(10, 4))
		l.Kill()
		if l.UpdateTransform(AffineProjector{}, frame) {
			t.Error("dead label should be skipped")
		}
		all := frame
		all.AllLabels = true
		if !l.UpdateTransform(AffineProjector{}, all) {
			t.Error("dead label should be placed in all-labels mode")
		}
		if l.State() != StateDead {
			t.Errorf("state = %v, want dead", l.State())
		}
	})
}

func TestCanOccludeAndVisibleState(t *testing.T) {
	occludable := map[State]bool{
		StateWaitingOcclusion: true,
		StateVisible:          true,
		StateFadingIn:         true,
		StateFadingOut:        false,
		StateSleeping:         true,
		StateSkipTransition:   true,
		StateOutOfScreen:      true,
		StateDead:             true,
	}
	visible := map[State]bool{
		StateVisible:        true,
		StateFadingIn:       true,
		StateFadingOut:      true,
		StateSkipTransition: true,
	}
	for _, s := range allStates {
		t.Run(s.String(), func(t *testing.T) {
			l := NewLabel(Pt(0, 0), Pt(10, 10))
			l.enterState(s, 0)
			if got := l.CanOcclude(); got != occludable[s] {
				t.Errorf("CanOcclude() = %v, want %v", got, occludable[s])
			}
			if got := l.VisibleState(); got != visible[s] {
				t.Errorf("VisibleState() = %v, want %v", got, visible[s])
			}

			off := NewLabel(Pt(0, 0), Pt(10, 10), WithCollide(false))
			off.enterState(s, 0)
			if off.CanOcclude() {
				t.Error("CanOcclude() = true with collision disabled")
			}
		})
	}
}

func TestAlphaAlwaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	eases := []Ease{EaseLinear, EaseCubic, EaseQuint, EaseSine}

	for n := 0; n < 20; n++ {
		l := NewLabel(Pt(0, 0), Pt(10, 10),
			WithShowTransition(Transition{Ease: eases[rng.Intn(4)], Duration: rng.Float64() - 0.2}),
			WithHideTransition(Transition{Ease: eases[rng.Intn(4)], Duration: rng.Float64() - 0.2}),
		)
		for i := 0; i < 300; i++ {
			switch rng.Intn(20) {
			case 0:
				l.SkipTransitions()
			case 1:
				l.ResetState()
			case 2:
				l.UpdateTransform(AffineProjector{}, Frame{View: Identity(), ScreenSize: Pt(1, 1)})
			}
			step(l, rng.Intn(3) == 0, rng.Float64()*0.2-0.02)
			if a := l.Alpha(); a < 0 || a > 1 || math.IsNaN(a) {
				t.Fatalf("label %d frame %d: alpha %v out of [0,1] in %v", n, i, a, l.State())
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	opts := []LabelOption{
		WithShowTransition(Transition{Ease: EaseCubic, Duration: 0.3}),
		WithHideTransition(Transition{Ease: EaseSine, Duration: 0.2}),
	}
	a := NewLabel(Pt(1, 2), Pt(30, 12), opts...)
	b := NewLabel(Pt(1, 2), Pt(30, 12), opts...)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 500; i++ {
		occ := rng.Intn(4) == 0
		dt := rng.Float64() * 0.05
		step(a, occ, dt)
		step(b, occ, dt)
		if a.State() != b.State() || a.Alpha() != b.Alpha() {
			t.Fatalf("step %d diverged: (%v, %v) vs (%v, %v)", i, a.State(), a.Alpha(), b.State(), b.Alpha())
		}
	}
}

func TestBounds(t *testing.T) {
	l := NewLabel(Pt(100, 100), Pt(40, 10), WithAnchor(AnchorTop), WithOffset(Pt(2, 0)))
	l.UpdateTransform(AffineProjector{}, Frame{View: Identity(), ScreenSize: Pt(200, 200)})

	want := Rect{Min: Pt(82, 90), Max: Pt(122, 100)}
	if got := l.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}
