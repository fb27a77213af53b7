package labels

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if !o.Collide || o.Priority != 0 || o.Offset != (Point{}) {
		t.Errorf("DefaultOptions() = %+v", o)
	}
	if o.ShowTransition != DefaultTransition || o.HideTransition != DefaultTransition {
		t.Errorf("transitions = %+v / %+v, want DefaultTransition", o.ShowTransition, o.HideTransition)
	}
}

func TestLabelOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []LabelOption
		check func(t *testing.T, l *Label)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, l *Label) {
				if l.Kind() != KindNormal || l.Anchor() != AnchorCenter || l.Options() != DefaultOptions() {
					t.Errorf("kind/anchor/options = %v/%v/%+v", l.Kind(), l.Anchor(), l.Options())
				}
			},
		},
		{
			name: "with options then override",
			opts: []LabelOption{
				WithOptions(Options{Priority: 7, Collide: true}),
				WithPriority(2),
			},
			check: func(t *testing.T, l *Label) {
				if l.Priority() != 2 {
					t.Errorf("Priority = %v, want 2", l.Priority())
				}
			},
		},
		{
			name: "negative durations clamp",
			opts: []LabelOption{
				WithShowTransition(Transition{Ease: EaseQuint, Duration: -1}),
				WithHideTransition(Transition{Ease: EaseCubic, Duration: -0.5}),
			},
			check: func(t *testing.T, l *Label) {
				o := l.Options()
				if o.ShowTransition != (Transition{Ease: EaseQuint}) || o.HideTransition != (Transition{Ease: EaseCubic}) {
					t.Errorf("transitions = %+v / %+v", o.ShowTransition, o.HideTransition)
				}
			},
		},
		{
			name: "kind anchor offset",
			opts: []LabelOption{WithKind(KindDebug), WithAnchor(AnchorRight), WithOffset(Pt(3, -4))},
			check: func(t *testing.T, l *Label) {
				if l.Kind() != KindDebug || l.Anchor() != AnchorRight || l.Options().Offset != Pt(3, -4) {
					t.Errorf("kind/anchor/offset = %v/%v/%+v", l.Kind(), l.Anchor(), l.Options().Offset)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewLabel(Pt(0, 0), Pt(10, 10), tt.opts...))
		})
	}
}
