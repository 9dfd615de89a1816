package wide

import (
	"math"
	"testing"
)

func TestSplatF32(t *testing.T) {
	tests := []struct {
		name  string
		value float32
	}{
		{"zero", 0.0},
		{"one", 1.0},
		{"half", 0.5},
		{"negative", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatF32(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("element %d = %f, want %f", i, v, tt.value)
				}
			}
		})
	}
}

func TestF32x8_LoadStore(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	v := LoadF32(src)
	for i := range v {
		if v[i] != src[i] {
			t.Errorf("lane %d = %f, want %f", i, v[i], src[i])
		}
	}

	dst := make([]float32, 10)
	v.Add(SplatF32(1)).Store(dst)
	for i := 0; i < Width; i++ {
		if dst[i] != src[i]+1 {
			t.Errorf("dst[%d] = %f, want %f", i, dst[i], src[i]+1)
		}
	}
	if dst[8] != 0 || dst[9] != 0 {
		t.Errorf("Store wrote past lane 8: %v", dst)
	}
}

func TestF32x8_Arithmetic(t *testing.T) {
	a := F32x8{1, 2, 3, 4, 5, 6, 7, 8}
	b := SplatF32(2)

	tests := []struct {
		name string
		got  F32x8
		want F32x8
	}{
		{"add", a.Add(b), F32x8{3, 4, 5, 6, 7, 8, 9, 10}},
		{"sub", a.Sub(b), F32x8{-1, 0, 1, 2, 3, 4, 5, 6}},
		{"mul", a.Mul(b), F32x8{2, 4, 6, 8, 10, 12, 14, 16}},
		{"mul scalar", a.MulScalar(0.5), F32x8{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4}},
		{"min", a.Min(SplatF32(4)), F32x8{1, 2, 3, 4, 4, 4, 4, 4}},
		{"max", a.Max(SplatF32(4)), F32x8{4, 4, 4, 4, 5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestF32x8_Lerp(t *testing.T) {
	tests := []struct {
		name string
		a    F32x8
		b    F32x8
		t    F32x8
		want F32x8
	}{
		{"t=0", SplatF32(0), SplatF32(10), SplatF32(0), SplatF32(0)},
		{"t=1", SplatF32(0), SplatF32(10), SplatF32(1), SplatF32(10)},
		{"t=0.5", SplatF32(0), SplatF32(10), SplatF32(0.5), SplatF32(5)},
		{"t=0.25", SplatF32(0), SplatF32(100), SplatF32(0.25), SplatF32(25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Lerp(tt.b, tt.t)
			if got != tt.want {
				t.Errorf("Lerp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestF32x8_LessSelect(t *testing.T) {
	a := F32x8{1, 5, 2, 8, 0, 3, 9, 4}
	b := SplatF32(4)
	nan := float32(math.NaN())
	a[7] = nan

	m := a.Less(b)
	want := Mask8{true, false, true, false, true, true, false, false}
	if m != want {
		t.Fatalf("Less() = %v, want %v", m, want)
	}
	if m.Count() != 4 {
		t.Errorf("Count() = %d, want 4", m.Count())
	}
	if !m.Any() {
		t.Error("Any() = false, want true")
	}
	if (Mask8{}).Any() {
		t.Error("empty mask Any() = true")
	}

	got := a.Select(m, b)
	for i := range got {
		if m[i] && got[i] != a[i] {
			t.Errorf("lane %d = %f, want %f", i, got[i], a[i])
		}
		if !m[i] && got[i] != 4 {
			t.Errorf("lane %d = %f, want 4", i, got[i])
		}
	}
}

func TestNormalize(t *testing.T) {
	x := F32x8{3, 0, -2, 0, 1, 0, 0, 5}
	y := F32x8{4, 2, 0, 0, 1, -7, 0, 0}
	fx := SplatF32(1)
	fy := SplatF32(0)

	nx, ny := Normalize(x, y, fx, fy)
	for i := range nx {
		l := math.Hypot(float64(nx[i]), float64(ny[i]))
		if math.Abs(l-1) > 1e-6 {
			t.Errorf("lane %d length = %f, want 1", i, l)
		}
		sx, sy := Normalize1(x[i], y[i], fx[i], fy[i])
		if sx != nx[i] || sy != ny[i] {
			t.Errorf("lane %d: scalar (%f,%f) != batch (%f,%f)", i, sx, sy, nx[i], ny[i])
		}
	}
	if nx[3] != 1 || ny[3] != 0 {
		t.Errorf("zero lane = (%f,%f), want fallback (1,0)", nx[3], ny[3])
	}
	if nx[0] != 0.6 || ny[0] != 0.8 {
		t.Errorf("lane 0 = (%f,%f), want (0.6,0.8)", nx[0], ny[0])
	}
}

func BenchmarkF32x8_Lerp(b *testing.B) {
	a := SplatF32(1)
	c := SplatF32(3)
	f := SplatF32(0.25)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a = a.Lerp(c, f)
	}
	_ = a
}
