package labels

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// State is the visibility state of a label.
type State uint8

const (
	// StateWaitingOcclusion is the initial state of a colliding label:
	// it waits for its first occlusion result before fading in.
	StateWaitingOcclusion State = iota
	StateVisible
	StateFadingIn
	StateFadingOut
	StateSleeping
	// StateSkipTransition shows the label on the next unoccluded frame
	// without a fade.
	StateSkipTransition
	StateOutOfScreen
	// StateDead is terminal. No transition leaves it.
	StateDead
)

var stateNames = [...]string{
	StateWaitingOcclusion: "waiting-occlusion",
	StateVisible:          "visible",
	StateFadingIn:         "fading-in",
	StateFadingOut:        "fading-out",
	StateSleeping:         "sleeping",
	StateSkipTransition:   "skip-transition",
	StateOutOfScreen:      "out-of-screen",
	StateDead:             "dead",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// stateSet is a static membership set over the closed State enum.
type stateSet struct {
	set mapset.Set[State]
}

func newStateSet(states ...State) stateSet {
	s := mapset.New[State]()
	for _, st := range states {
		s.Put(st)
	}
	return stateSet{set: s}
}

func (s stateSet) has(st State) bool { return s.set.Has(st) }

var (
	// occludableStates lists the states in which a label is tested by the
	// occlusion detector. StateFadingOut is deliberately absent: a fading
	// label keeps its place on screen without competing for space.
	occludableStates = newStateSet(
		StateVisible,
		StateWaitingOcclusion,
		StateSkipTransition,
		StateFadingIn,
		StateSleeping,
		StateOutOfScreen,
		StateDead,
	)

	// renderableStates lists the states submitted to the renderer.
	renderableStates = newStateSet(
		StateVisible,
		StateFadingIn,
		StateFadingOut,
		StateSkipTransition,
	)
)
