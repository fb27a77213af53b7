// Package measure computes label footprints for label construction.
//
// Footprints come from font metrics: the width is the advance of the
// string, the height the ascent plus descent of the face. Text shaping is
// not performed. Results are cached per normalized string, so the same
// street name published by many tiles is measured once.
package measure

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/labels"
	"github.com/gogpu/labels/internal/cache"
)

// DefaultCacheSize is the number of footprints kept by New.
const DefaultCacheSize = 1024

// Measurer measures text labels with one font face.
// It is safe for concurrent use. Faces are not, so every read of the face
// goes through faceMu.
type Measurer struct {
	faceMu  sync.Mutex
	face    font.Face
	padding labels.Point
	cache   *cache.Cache[string, labels.Point]
}

// Option configures a Measurer.
type Option func(*Measurer)

// WithPadding adds p on every side of each measured footprint.
func WithPadding(p labels.Point) Option {
	return func(m *Measurer) {
		m.padding = p
	}
}

// WithCacheSize bounds the footprint cache.
func WithCacheSize(n int) Option {
	return func(m *Measurer) {
		m.cache = cache.New[string, labels.Point](n)
	}
}

// New creates a Measurer for face. A nil face selects the built-in
// 7x13 bitmap face.
func New(face font.Face, opts ...Option) *Measurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	m := &Measurer{face: face}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = cache.New[string, labels.Point](DefaultCacheSize)
	}
	return m
}

// Face returns the face used for measuring. Callers that draw with it
// concurrently with measuring need their own face.
func (m *Measurer) Face() font.Face { return m.face }

// Text returns the footprint of s. Canonically equivalent strings (for
// example precomposed and decomposed accents) share one cache entry.
func (m *Measurer) Text(s string) labels.Point {
	key := norm.NFC.String(s)
	size := m.cache.GetOrCreate(key, func() labels.Point {
		return m.measure(key)
	})
	return size.Add(m.padding.Mul(2))
}

// Icon returns the footprint of a w×h icon with the measurer's padding.
func (m *Measurer) Icon(w, h float64) labels.Point {
	return labels.Pt(w, h).Add(m.padding.Mul(2))
}

// Baseline returns the distance from the top of a text footprint to the
// baseline, without padding.
func (m *Measurer) Baseline() float64 {
	m.faceMu.Lock()
	defer m.faceMu.Unlock()
	return fixedToFloat(m.face.Metrics().Ascent)
}

// Stats exposes the footprint cache statistics.
func (m *Measurer) Stats() cache.Stats { return m.cache.Stats() }

func (m *Measurer) measure(s string) labels.Point {
	m.faceMu.Lock()
	defer m.faceMu.Unlock()
	advance := font.MeasureString(m.face, s)
	metrics := m.face.Metrics()
	return labels.Pt(fixedToFloat(advance), fixedToFloat(metrics.Ascent+metrics.Descent))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
