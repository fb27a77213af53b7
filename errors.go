package labels

import "errors"

// Sentinel errors for the labels package.
//
// The visibility state machine itself never fails: anomalies there are
// state transitions. These errors cover construction and configuration.
var (
	// ErrUnknownParent is returned when a child references a label ID
	// that is not part of the collection.
	ErrUnknownParent = errors.New("labels: unknown parent label")

	// ErrDeadParent is returned when a child is attached to a dead label.
	ErrDeadParent = errors.New("labels: parent label is dead")

	// ErrParentAlreadySet is returned when a label that already has a
	// parent is attached a second time.
	ErrParentAlreadySet = errors.New("labels: parent already set")

	// ErrUnknownAnchor is returned by ParseAnchor for unrecognised names.
	ErrUnknownAnchor = errors.New("labels: unknown anchor")

	// ErrUnknownEase is returned by ParseEase for unrecognised names.
	ErrUnknownEase = errors.New("labels: unknown ease")

	// ErrInvalidDuration is returned by ParseTransition when the duration
	// string cannot be read.
	ErrInvalidDuration = errors.New("labels: invalid transition duration")
)
