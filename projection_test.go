package labels

import (
	"math"
	"testing"
)

func TestAffineProjector(t *testing.T) {
	screen := Pt(100, 50)
	tests := []struct {
		name   string
		proj   AffineProjector
		view   Matrix
		world  Point
		wantOK bool
		want   Point
	}{
		{"inside", AffineProjector{}, Identity(), Pt(10, 10), true, Pt(10, 10)},
		{"panned inside", AffineProjector{}, Translate(-50, 0), Pt(120, 10), true, Pt(70, 10)},
		{"right of screen", AffineProjector{}, Identity(), Pt(101, 10), false, Point{}},
		{"within margin", AffineProjector{Margin: 5}, Identity(), Pt(-4, 52), true, Pt(-4, 52)},
		{"singular view", AffineProjector{}, Scale(0, 0), Pt(0, 0), false, Point{}},
		{"non-finite", AffineProjector{Margin: math.Inf(1)}, Identity(), Pt(math.NaN(), 0), false, Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := tt.proj.Project(tt.world, Frame{View: tt.view, ScreenSize: screen})
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && st.Position != tt.want {
				t.Errorf("Position = %+v, want %+v", st.Position, tt.want)
			}
			if ok && st.Scale != 1 {
				t.Errorf("Scale = %v, want 1", st.Scale)
			}
		})
	}
}

func TestAffineProjectorRotation(t *testing.T) {
	view := Translate(50, 50).Multiply(Rotate(math.Pi / 4))
	st, ok := AffineProjector{}.Project(Pt(0, 0), Frame{View: view, ScreenSize: Pt(100, 100)})
	if !ok {
		t.Fatal("projection should be valid")
	}
	if !approx(st.Rotation, math.Pi/4) {
		t.Errorf("Rotation = %v, want pi/4", st.Rotation)
	}
}
