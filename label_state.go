package labels

// CanOcclude reports whether the label takes part in this frame's occlusion
// test, as occluder or occludee.
//
// Labels with collision disabled and debug labels never do. Otherwise every
// state except StateFadingOut is eligible.
func (l *Label) CanOcclude() bool {
	return l.participates() && occludableStates.has(l.state)
}

// VisibleState reports whether the label should be submitted to the renderer.
func (l *Label) VisibleState() bool {
	return renderableStates.has(l.state)
}

// IsDead reports whether the label reached the terminal state.
func (l *Label) IsDead() bool {
	return l.state == StateDead
}

// SkipTransitions makes the label appear on its next unoccluded frame
// without fading. Alpha drops to 0 until then.
func (l *Label) SkipTransitions() {
	l.enterState(StateSkipTransition, 0)
}

// ResetState discards the occlusion history, e.g. after the label's
// geometry was rebuilt, and waits for a fresh occlusion result.
// It is a no-op on a dead label.
func (l *Label) ResetState() {
	if l.state == StateDead {
		return
	}
	l.occludedLastFrame = false
	l.occluded = false
	l.unplaced = false
	l.enterState(StateWaitingOcclusion, 0)
}

// Kill moves the label to the terminal state. The owning Collection
// releases it after the frame in which it died.
func (l *Label) Kill() {
	l.enterState(StateDead, 0)
}

// enterState is the only place where the state tag changes, so state and
// alpha never diverge. It does nothing once the label is dead.
func (l *Label) enterState(s State, alpha float64) {
	if l.state == StateDead {
		return
	}
	l.state = s
	l.setAlpha(alpha)
}

func (l *Label) setAlpha(alpha float64) {
	l.transform.Alpha = clamp01(alpha)
}

// UpdateTransform is the first pass of a frame. It rotates the occlusion
// flags, then recomputes the screen transform through p.
//
// It returns false when the label must not be placed this frame: dead
// labels outside the AllLabels diagnostic mode are skipped, and labels
// whose projection is invalid are put to sleep until they can be placed.
func (l *Label) UpdateTransform(p Projector, frame Frame) bool {
	l.occludedLastFrame = l.occluded
	l.occluded = false
	l.unplaced = false

	if l.state == StateDead {
		if !frame.AllLabels {
			return false
		}
		l.occluded = true
	}

	st, ok := p.Project(l.world, frame)
	if !ok {
		l.unplaced = true
		l.enterState(StateSleeping, 0)
		return false
	}

	st.Alpha = l.transform.Alpha
	if st.Scale == 0 {
		st.Scale = 1
	}
	l.transform = st
	return true
}

// EvalState is the second pass of a frame: it advances the state machine
// by dt seconds using the occlusion flag set for this frame. A label the
// transform pass could not place evaluates as occluded.
//
// It returns true while an animation is in flight or when a transition
// fired, which tells the caller to keep rendering continuously.
func (l *Label) EvalState(dt float64) bool {
	if l.state == StateDead {
		return false
	}
	hidden := l.occluded || l.unplaced

	if !l.participates() {
		if hidden {
			return false
		}
		if l.state != StateVisible {
			l.enterState(StateVisible, 1)
			return true
		}
		return false
	}

	prev := l.state
	animate := false

	switch l.state {
	case StateVisible:
		if hidden {
			hide := l.options.HideTransition
			l.fade = NewFadeEffect(false, hide.Ease, hide.Duration)
			l.enterState(StateFadingOut, 1)
		}
	case StateFadingIn:
		if hidden {
			l.enterState(StateSleeping, 0)
			break
		}
		l.setAlpha(l.fade.Update(dt))
		animate = true
		if l.fade.IsFinished() {
			l.enterState(StateVisible, 1)
		}
	case StateFadingOut:
		if !hidden {
			// Resume from the held alpha with a fresh fade-in.
			alpha := l.transform.Alpha
			show := l.options.ShowTransition
			l.fade = NewFadeEffectFrom(alpha, true, show.Ease, show.Duration)
			l.enterState(StateFadingIn, alpha)
			break
		}
		l.setAlpha(l.fade.Update(dt))
		animate = true
		if l.fade.IsFinished() {
			l.enterState(StateSleeping, 0)
		}
	case StateWaitingOcclusion:
		if hidden {
			l.enterState(StateSleeping, 0)
		} else {
			l.startFadeIn(dt)
		}
	case StateSkipTransition:
		if hidden {
			l.enterState(StateSleeping, 0)
		} else {
			l.enterState(StateVisible, 1)
		}
	case StateSleeping:
		if !hidden {
			l.startFadeIn(dt)
		}
	case StateOutOfScreen:
	}

	return animate || l.state != prev
}

// startFadeIn replaces the fade with a full fade-in and plays the current
// frame's share of it.
func (l *Label) startFadeIn(dt float64) {
	show := l.options.ShowTransition
	l.fade = NewFadeEffect(true, show.Ease, show.Duration)
	l.enterState(StateFadingIn, 0)
	l.setAlpha(l.fade.Update(dt))
	if l.fade.IsFinished() {
		l.enterState(StateVisible, 1)
	}
}
