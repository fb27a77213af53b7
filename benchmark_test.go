package labels

import "testing"

func BenchmarkEvalStateVisible(b *testing.B) {
	l := visibleLabel()
	b.ReportAllocs()
	for b.Loop() {
		l.SetOccluded(false)
		l.EvalState(0.016)
	}
}

func BenchmarkEvalStateFlicker(b *testing.B) {
	l := visibleLabel()
	b.ReportAllocs()
	occluded := false
	for b.Loop() {
		occluded = !occluded
		l.SetOccluded(occluded)
		l.EvalState(0.016)
	}
}

func BenchmarkCollectionUpdate(b *testing.B) {
	c := NewCollection(WithOccluder(occludeAbove(500)))
	for i := 0; i < 1000; i++ {
		c.Add(NewLabel(Pt(float64(i%40)*12, float64(i/40)*12), Pt(10, 10), WithPriority(float64(i))))
	}
	frame := Frame{View: Identity(), ScreenSize: Pt(500, 500), Dt: 0.016}

	b.ReportAllocs()
	for b.Loop() {
		c.Update(frame)
	}
}
