package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/gogpu/labels"
)

var stateStyles = map[labels.State]color.Style{
	labels.StateWaitingOcclusion: {color.FgGray},
	labels.StateVisible:          {color.FgGreen, color.OpBold},
	labels.StateFadingIn:         {color.FgCyan},
	labels.StateFadingOut:        {color.FgYellow},
	labels.StateSleeping:         {color.FgGray, color.OpBold},
	labels.StateSkipTransition:   {color.FgMagenta},
	labels.StateOutOfScreen:      {color.FgBlue},
	labels.StateDead:             {color.FgRed},
}

// WriteTimeline prints one line per frame: the frame summary followed by
// every label's state and alpha.
func WriteTimeline(w io.Writer, rep FrameReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%03d placed=%-3d rendered=%-3d occluded=%-3d", rep.Index,
		rep.Result.Placed, rep.Result.Rendered, rep.Result.Occluded)
	if rep.Result.Animating {
		b.WriteString(" ~")
	} else {
		b.WriteString("  ")
	}
	for _, lr := range rep.Labels {
		style, ok := stateStyles[lr.State]
		if !ok {
			style = color.Style{color.FgDefault}
		}
		b.WriteString(" ")
		b.WriteString(style.Sprintf("%s:%s(%.2f)", lr.Name, lr.State, lr.Alpha))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
