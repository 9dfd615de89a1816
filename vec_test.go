package lightatlas

import (
	"math"
	"testing"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestVec2_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		got    Vec2
		expect Vec2
	}{
		{"add", V2(1, 2).Add(V2(3, 4)), V2(4, 6)},
		{"sub", V2(5, 7).Sub(V2(2, 3)), V2(3, 4)},
		{"mul", V2(1.5, -2).Mul(2), V2(3, -4)},
		{"lerp start", V2(0, 0).Lerp(V2(10, 20), 0), V2(0, 0)},
		{"lerp mid", V2(0, 0).Lerp(V2(10, 20), 0.5), V2(5, 10)},
		{"lerp end", V2(0, 0).Lerp(V2(10, 20), 1), V2(10, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got.X, tt.expect.X, 1e-6) || !approx(tt.got.Y, tt.expect.Y, 1e-6) {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestVec2_Normalize(t *testing.T) {
	if n := V2(3, 4).Normalize(); !approx(n.X, 0.6, 1e-6) || !approx(n.Y, 0.8, 1e-6) {
		t.Errorf("Normalize(3,4) = %v, want (0.6, 0.8)", n)
	}
	if n := V2(0, 0).Normalize(); n != (Vec2{}) {
		t.Errorf("Normalize(0,0) = %v, want zero", n)
	}
	if l := V2(3, 4).Length(); l != 5 {
		t.Errorf("Length(3,4) = %v, want 5", l)
	}
}

func TestVec2_Round(t *testing.T) {
	tests := []struct {
		v      Vec2
		expect IVec2
	}{
		{V2(0.4, -0.4), IV2(0, 0)},
		{V2(0.5, -0.5), IV2(1, -1)},
		{V2(2.6, -3.2), IV2(3, -3)},
		{V2(100, -100), IV2(100, -100)},
	}
	for _, tt := range tests {
		if got := tt.v.Round(); got != tt.expect {
			t.Errorf("%v.Round() = %v, want %v", tt.v, got, tt.expect)
		}
	}
}

func TestIVec2_Clamp(t *testing.T) {
	bound := IV2(4, 3)
	tests := []struct {
		v, expect IVec2
	}{
		{IV2(0, 0), IV2(0, 0)},
		{IV2(2, -2), IV2(2, -2)},
		{IV2(9, -9), IV2(4, -3)},
		{IV2(-5, 3), IV2(-4, 3)},
	}
	for _, tt := range tests {
		if got := tt.v.Clamp(bound); got != tt.expect {
			t.Errorf("%v.Clamp(%v) = %v, want %v", tt.v, bound, got, tt.expect)
		}
	}
	if a := IV2(16, 12).Area(); a != 192 {
		t.Errorf("Area = %d, want 192", a)
	}
}

func TestColor(t *testing.T) {
	c := RGB(1, 0.5, 0).Add(RGB(0, 0.5, 1))
	if c != RGB(1, 1, 1) {
		t.Errorf("Add = %v, want white", c)
	}
	if s := RGB(1, 2, 3).Scale(10); s != RGB(10, 20, 30) {
		t.Errorf("Scale = %v", s)
	}
	if l := RGB(0, 0, 0).Lerp(RGB(4, 8, 12), 0.25); l != RGB(1, 2, 3) {
		t.Errorf("Lerp = %v, want (1,2,3)", l)
	}
	if lum := RGB(1, 1, 1).Luminance(); !approx(lum, 1, 1e-6) {
		t.Errorf("Luminance(white) = %v, want 1", lum)
	}
	if !(Color{}).IsZero() || RGB(0, 0, 1e-9).IsZero() {
		t.Error("IsZero mismatch")
	}
}
