package labels

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// fadeEpsilon absorbs the error of accumulating many small frame deltas,
// so that five 0.1s frames finish a 0.5s fade.
const fadeEpsilon = 1e-9

// FadeEffect is a time-bounded alpha interpolator.
//
// A FadeEffect is a value: the label replaces it whenever a transition
// begins instead of mutating the running one. The only state carried across
// frames is the accumulated elapsed time.
type FadeEffect struct {
	in       bool
	ease     Ease
	from     float64
	duration float64
	elapsed  float64
}

// NewFadeEffect creates a fade toward alpha 1 (in == true) or alpha 0.
// Negative or NaN durations are clamped to zero, which makes the fade
// instantaneous.
func NewFadeEffect(in bool, ease Ease, duration float64) FadeEffect {
	from := 1.0
	if in {
		from = 0
	}
	return FadeEffect{
		in:       in,
		ease:     ease,
		from:     from,
		duration: sanitizeDuration(duration),
	}
}

// NewFadeEffectFrom creates a fade that starts at alpha from instead of at
// the opposite end of the range. The duration is shortened in proportion to
// the remaining distance, so a resumed fade moves at the same rate as a full
// one.
func NewFadeEffectFrom(from float64, in bool, ease Ease, duration float64) FadeEffect {
	f := NewFadeEffect(in, ease, duration)
	f.from = clamp01(from)
	f.duration *= math.Abs(f.Target() - f.from)
	return f
}

// Target returns the alpha the fade converges to.
func (f FadeEffect) Target() float64 {
	if f.in {
		return 1
	}
	return 0
}

// In reports whether the fade moves toward visibility.
func (f FadeEffect) In() bool { return f.in }

// Duration returns the configured duration in seconds.
func (f FadeEffect) Duration() float64 { return f.duration }

// Progress returns the elapsed fraction of the fade in [0, 1].
func (f FadeEffect) Progress() float64 {
	if f.duration <= 0 {
		return 1
	}
	return clamp01(f.elapsed / f.duration)
}

// Update advances the fade by dt seconds and returns the eased alpha.
// Non-positive or non-finite deltas do not advance time.
func (f *FadeEffect) Update(dt float64) float64 {
	if dt > 0 && !math.IsInf(dt, 0) {
		f.elapsed += dt
	}
	return f.Value()
}

// Value returns the alpha for the current elapsed time without advancing it.
func (f FadeEffect) Value() float64 {
	if f.IsFinished() {
		return f.Target()
	}
	v := f.from + (f.Target()-f.from)*f.ease.Apply(f.elapsed/f.duration)
	return clamp01(v)
}

// IsFinished reports whether the elapsed time reached the duration.
// A zero-duration fade is finished from the start.
func (f FadeEffect) IsFinished() bool {
	return f.elapsed >= f.duration-fadeEpsilon
}

func sanitizeDuration(d float64) float64 {
	if math.IsNaN(d) || d < 0 {
		return 0
	}
	return d
}

// Transition configures a show or hide fade: curve and duration in seconds.
type Transition struct {
	Ease     Ease
	Duration float64
}

// DefaultTransition is used for both show and hide fades unless overridden.
var DefaultTransition = Transition{Ease: EaseSine, Duration: 0.2}

// ParseTransition reads a transition the way map scene files express it:
// a duration such as "0.5s", "250ms" or a bare number of seconds, and an
// ease name. Negative durations are clamped to zero.
func ParseTransition(duration, ease string) (Transition, error) {
	e, err := ParseEase(ease)
	if err != nil {
		return Transition{}, err
	}
	d, err := parseSeconds(duration)
	if err != nil {
		return Transition{}, err
	}
	return Transition{Ease: e, Duration: sanitizeDuration(d)}, nil
}

func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &durationError{input: s, err: err}
	}
	return d.Seconds(), nil
}

type durationError struct {
	input string
	err   error
}

func (e *durationError) Error() string {
	return ErrInvalidDuration.Error() + ": " + strconv.Quote(e.input)
}

func (e *durationError) Unwrap() []error { return []error{ErrInvalidDuration, e.err} }
