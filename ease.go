package labels

import (
	"fmt"
	"math"
	"strings"
)

// Ease selects the interpolation curve of a fade transition.
type Ease uint8

const (
	// EaseLinear interpolates at constant speed.
	EaseLinear Ease = iota
	// EaseCubic starts slow and accelerates (t^3).
	EaseCubic
	// EaseQuint is a steeper variant of EaseCubic (t^5).
	EaseQuint
	// EaseSine follows a quarter sine wave.
	EaseSine
)

var easeNames = [...]string{
	EaseLinear: "linear",
	EaseCubic:  "cubic",
	EaseQuint:  "quint",
	EaseSine:   "sine",
}

// String returns the scene-file name of the ease.
func (e Ease) String() string {
	if int(e) < len(easeNames) {
		return easeNames[e]
	}
	return fmt.Sprintf("Ease(%d)", e)
}

// ParseEase converts a scene-file ease name to an Ease.
// The empty string selects EaseLinear.
func ParseEase(s string) (Ease, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return EaseLinear, nil
	}
	for i, n := range easeNames {
		if n == name {
			return Ease(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("%w: %q", ErrUnknownEase, s)
}

// Apply maps a normalized time t to a normalized progress value.
// t is clamped to [0, 1]; Apply(0) == 0 and Apply(1) == 1 for every ease.
func (e Ease) Apply(t float64) float64 {
	t = clamp01(t)
	switch e {
	case EaseCubic:
		return t * t * t
	case EaseQuint:
		return t * t * t * t * t
	case EaseSine:
		return math.Sin(t * math.Pi * 0.5)
	default:
		return t
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
