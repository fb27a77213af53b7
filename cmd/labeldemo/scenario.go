package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/labels"
)

// Scenario is a scripted sequence of frames: a camera path, the labels
// each source publishes and lifecycle events applied at given frames.
type Scenario struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Frames    int     `toml:"frames"`
	Dt        float64 `toml:"dt"`
	Padding   float64 `toml:"padding"`
	Margin    float64 `toml:"margin"`
	AllLabels bool    `toml:"all_labels"`

	Camera Camera      `toml:"camera"`
	Labels []LabelSpec `toml:"label"`
	Events []EventSpec `toml:"event"`
}

// Camera moves linearly from Center by Pan every frame.
type Camera struct {
	Center   [2]float64 `toml:"center"`
	Pan      [2]float64 `toml:"pan"`
	Zoom     float64    `toml:"zoom"`
	Rotation float64    `toml:"rotation"`
}

// TransitionSpec is a fade as written in scene files.
type TransitionSpec struct {
	Duration string `toml:"duration"`
	Ease     string `toml:"ease"`
}

// LabelSpec declares one label. Text labels are measured with the demo
// font; Icon gives an explicit footprint instead. A child is placed at its
// parent's position and At is ignored.
type LabelSpec struct {
	Name            string          `toml:"name"`
	Source          string          `toml:"source"`
	Text            string          `toml:"text"`
	Icon            []float64       `toml:"icon"`
	At              [2]float64      `toml:"at"`
	Priority        float64         `toml:"priority"`
	Anchor          string          `toml:"anchor"`
	Offset          [2]float64      `toml:"offset"`
	Collide         *bool           `toml:"collide"`
	Debug           bool            `toml:"debug"`
	Parent          string          `toml:"parent"`
	InheritPriority bool            `toml:"inherit_priority"`
	Show            *TransitionSpec `toml:"show"`
	Hide            *TransitionSpec `toml:"hide"`
}

// EventSpec applies a source lifecycle action before a frame's update.
type EventSpec struct {
	Frame  int    `toml:"frame"`
	Action string `toml:"action"`
	Source string `toml:"source"`
}

// Event actions.
const (
	ActionInvalidate = "invalidate"
	ActionRebuild    = "rebuild"
	ActionSkip       = "skip"
	ActionPublish    = "publish"
)

// ScenarioError reports an invalid scenario entry.
type ScenarioError struct {
	Field string
	Err   error
}

func (e *ScenarioError) Error() string {
	return "scenario: " + e.Field + ": " + e.Err.Error()
}

func (e *ScenarioError) Unwrap() error { return e.Err }

var (
	errMissing   = errors.New("missing value")
	errDuplicate = errors.New("duplicate name")
	errUnknown   = errors.New("unknown reference")
	errRange     = errors.New("out of range")
)

// LoadScenario reads and validates a TOML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeScenario(f)
}

// DecodeScenario reads and validates a TOML scenario.
// Unknown keys are rejected so typos do not silently change a run.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	sc := &Scenario{
		Width:  480,
		Height: 320,
		Frames: 30,
		Dt:     1.0 / 30,
		Camera: Camera{Zoom: 1},
	}
	md, err := toml.NewDecoder(r).Decode(sc)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ScenarioError{Field: strings.Join(keys, ", "), Err: errUnknown}
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return &ScenarioError{Field: "width/height", Err: errRange}
	}
	if sc.Frames <= 0 {
		return &ScenarioError{Field: "frames", Err: errRange}
	}
	if sc.Dt < 0 {
		return &ScenarioError{Field: "dt", Err: errRange}
	}
	if sc.Camera.Zoom == 0 {
		return &ScenarioError{Field: "camera.zoom", Err: errRange}
	}

	seen := make(map[string]LabelSpec, len(sc.Labels))
	for i, ls := range sc.Labels {
		field := fmt.Sprintf("label[%d]", i)
		if ls.Name == "" {
			return &ScenarioError{Field: field + ".name", Err: errMissing}
		}
		if _, dup := seen[ls.Name]; dup {
			return &ScenarioError{Field: field + ".name", Err: fmt.Errorf("%w: %q", errDuplicate, ls.Name)}
		}
		if ls.Text == "" && len(ls.Icon) != 2 {
			return &ScenarioError{Field: field, Err: fmt.Errorf("%w: text or icon [w, h]", errMissing)}
		}
		if ls.Parent != "" {
			p, ok := seen[ls.Parent]
			if !ok {
				return &ScenarioError{Field: field + ".parent", Err: fmt.Errorf("%w: %q must be declared earlier", errUnknown, ls.Parent)}
			}
			if p.Source != ls.Source {
				return &ScenarioError{Field: field + ".parent", Err: fmt.Errorf("%w: %q is in source %q", errUnknown, ls.Parent, p.Source)}
			}
		}
		if _, err := labels.ParseAnchor(ls.Anchor); err != nil {
			return &ScenarioError{Field: field + ".anchor", Err: err}
		}
		for name, t := range map[string]*TransitionSpec{"show": ls.Show, "hide": ls.Hide} {
			if t == nil {
				continue
			}
			if _, err := labels.ParseTransition(t.Duration, t.Ease); err != nil {
				return &ScenarioError{Field: field + "." + name, Err: err}
			}
		}
		seen[ls.Name] = ls
	}

	sources := make(map[string]bool)
	for _, ls := range sc.Labels {
		sources[ls.Source] = true
	}
	for i, ev := range sc.Events {
		field := fmt.Sprintf("event[%d]", i)
		switch ev.Action {
		case ActionInvalidate, ActionRebuild, ActionSkip, ActionPublish:
		default:
			return &ScenarioError{Field: field + ".action", Err: fmt.Errorf("%w: %q", errUnknown, ev.Action)}
		}
		if !sources[ev.Source] {
			return &ScenarioError{Field: field + ".source", Err: fmt.Errorf("%w: %q", errUnknown, ev.Source)}
		}
		if ev.Frame < 0 || ev.Frame >= sc.Frames {
			return &ScenarioError{Field: field + ".frame", Err: errRange}
		}
	}
	sort.SliceStable(sc.Events, func(a, b int) bool { return sc.Events[a].Frame < sc.Events[b].Frame })
	return nil
}

// Sources returns the distinct sources in declaration order.
func (sc *Scenario) Sources() []string {
	var out []string
	seen := make(map[string]bool)
	for _, ls := range sc.Labels {
		if !seen[ls.Source] {
			seen[ls.Source] = true
			out = append(out, ls.Source)
		}
	}
	return out
}

// View returns the camera transform for frame i: pan, then rotate and
// zoom around the screen center.
func (sc *Scenario) View(i int) labels.Matrix {
	cam := sc.Camera
	cx := cam.Center[0] + cam.Pan[0]*float64(i)
	cy := cam.Center[1] + cam.Pan[1]*float64(i)
	return labels.Translate(float64(sc.Width)/2, float64(sc.Height)/2).
		Multiply(labels.Rotate(cam.Rotation)).
		Multiply(labels.Scale(cam.Zoom, cam.Zoom)).
		Multiply(labels.Translate(-cx, -cy))
}

// options converts the entry to label options. DecodeScenario validated it.
func (ls LabelSpec) options() []labels.LabelOption {
	anchor, _ := labels.ParseAnchor(ls.Anchor)
	opts := []labels.LabelOption{
		labels.WithPriority(ls.Priority),
		labels.WithAnchor(anchor),
		labels.WithOffset(labels.Pt(ls.Offset[0], ls.Offset[1])),
	}
	if ls.Collide != nil {
		opts = append(opts, labels.WithCollide(*ls.Collide))
	}
	if ls.Debug {
		opts = append(opts, labels.WithKind(labels.KindDebug))
	}
	if ls.Show != nil {
		t, _ := labels.ParseTransition(ls.Show.Duration, ls.Show.Ease)
		opts = append(opts, labels.WithShowTransition(t))
	}
	if ls.Hide != nil {
		t, _ := labels.ParseTransition(ls.Hide.Duration, ls.Hide.Ease)
		opts = append(opts, labels.WithHideTransition(t))
	}
	return opts
}
