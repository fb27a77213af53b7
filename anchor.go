package labels

import (
	"fmt"
	"strings"
)

// Anchor names the point of a label's bounding box used as its placement
// origin. Directions follow screen coordinates: y grows downward.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

var anchorNames = [...]string{
	AnchorCenter:      "center",
	AnchorTop:         "top",
	AnchorBottom:      "bottom",
	AnchorLeft:        "left",
	AnchorRight:       "right",
	AnchorTopLeft:     "top-left",
	AnchorTopRight:    "top-right",
	AnchorBottomLeft:  "bottom-left",
	AnchorBottomRight: "bottom-right",
}

var anchorDirections = [...]Point{
	AnchorCenter:      {0, 0},
	AnchorTop:         {0, -1},
	AnchorBottom:      {0, 1},
	AnchorLeft:        {-1, 0},
	AnchorRight:       {1, 0},
	AnchorTopLeft:     {-1, -1},
	AnchorTopRight:    {1, -1},
	AnchorBottomLeft:  {-1, 1},
	AnchorBottomRight: {1, 1},
}

func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("Anchor(%d)", a)
}

// ParseAnchor converts a scene-file anchor name ("top-left", "center", ...)
// to an Anchor. Underscores are accepted in place of dashes.
func ParseAnchor(s string) (Anchor, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if name == "" {
		return AnchorCenter, nil
	}
	for i, n := range anchorNames {
		if n == name {
			return Anchor(i), nil
		}
	}
	return AnchorCenter, fmt.Errorf("%w: %q", ErrUnknownAnchor, s)
}

// Direction returns the anchor's direction from the box center.
// Each component is -1, 0 or 1. Unknown anchors behave as AnchorCenter.
func (a Anchor) Direction() Point {
	if int(a) < len(anchorDirections) {
		return anchorDirections[a]
	}
	return Point{}
}

// AnchorOffset returns the placement offset of a box of the given size
// anchored at anchor, relative to origin.
func AnchorOffset(size, origin Point, anchor Anchor) Point {
	return origin.Add(anchor.Direction().Scale(size).Mul(0.5))
}

// ChildPriorityIncrement is added to a parent's priority when a child
// inherits it. Lower priority values win occlusion, so a child is always
// evaluated directly after its parent and before the next sibling group.
const ChildPriorityIncrement = 0.5

// AnchorInput describes one side of an anchor composition.
type AnchorInput struct {
	Size     Point
	Anchor   Anchor
	Offset   Point
	Priority float64
}

// AnchorResult is the placement a child label receives when attached.
type AnchorResult struct {
	// AnchorOffset is the child's screen offset from the shared placement point.
	AnchorOffset Point
	// Offset is the child's configured offset accumulated with the parent's.
	Offset Point
	// Priority is the child's effective priority.
	Priority float64
}

// ComposeAnchor places child relative to parent.
//
// The parent's anchor direction, stretched over half its footprint, gives
// the origin. The child's own anchor rule is then applied against the
// combined footprint of both labels around that origin. With
// inheritPriority, the child's priority becomes the parent's plus
// ChildPriorityIncrement. ComposeAnchor is pure and deterministic.
func ComposeAnchor(child, parent AnchorInput, inheritPriority bool) AnchorResult {
	origin := parent.Anchor.Direction().Scale(parent.Size).Mul(0.5)

	res := AnchorResult{
		AnchorOffset: AnchorOffset(child.Size.Add(parent.Size), origin, child.Anchor),
		Offset:       child.Offset.Add(parent.Offset),
		Priority:     child.Priority,
	}
	if inheritPriority {
		res.Priority = parent.Priority + ChildPriorityIncrement
	}
	return res
}
