package lightatlas

import "testing"

func newTestAtlas(t *testing.T, q Quality) *Atlas {
	t.Helper()
	a, err := NewAtlas(q, newTestEngine(t, WithWorkers(2)))
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func TestNewAtlas(t *testing.T) {
	q := Quality{SampleCount: 16, SkipOneFrame: true, AtlasHeight: 12}
	a := newTestAtlas(t, q)

	g := a.Grid()
	if g.Size() != IV2(16, 12) || g.SampleCount() != 16 {
		t.Errorf("grid %v with %d samples", g.Size(), g.SampleCount())
	}
	if g.AccumulationRate() != 2*DefaultAccumulationRate {
		t.Errorf("rate = %v, want doubled", g.AccumulationRate())
	}
	if a.Quality() != q {
		t.Errorf("Quality = %+v", a.Quality())
	}

	if _, err := NewAtlas(Quality{SampleCount: 16}, nil); err == nil {
		t.Error("zero height accepted")
	}
}

func TestAtlas_FrameSkip(t *testing.T) {
	a := newTestAtlas(t, Quality{SampleCount: 8, SkipOneFrame: true, AtlasHeight: 12})
	for i := 1; i <= 6; i++ {
		fs := a.Tick(V2(0, 0), 1.0/60, nil)
		if fs.Frame != uint64(i) {
			t.Errorf("Frame = %d, want %d", fs.Frame, i)
		}
		if want := i%2 == 1; fs.Updated != want {
			t.Errorf("tick %d: Updated = %v, want %v", i, fs.Updated, want)
		}
	}
	if got := a.Totals().Voxels; got != 3*16*12 {
		t.Errorf("Totals().Voxels = %d, want %d", got, 3*16*12)
	}
}

func TestAtlas_CheckerboardParityAlternates(t *testing.T) {
	a := newTestAtlas(t, Quality{SampleCount: 8, Checkerboard: true, AtlasHeight: 12})
	box := coveringBox(a.Grid(), RGB(1, 1, 1))

	first := a.Tick(V2(0, 0), 1, []Target{box})
	second := a.Tick(V2(0, 0), 1, []Target{box})
	if first.Parity == second.Parity {
		t.Errorf("parity did not alternate: %d, %d", first.Parity, second.Parity)
	}
	if first.Voxels+second.Voxels != 16*12 {
		t.Errorf("two ticks updated %d voxels, want %d", first.Voxels+second.Voxels, 16*12)
	}
	for y := range 12 {
		for x := range 16 {
			if v := a.Grid().Voxel(x, y); v != RGB(DefaultGain, DefaultGain, DefaultGain) {
				t.Fatalf("voxel (%d,%d) = %v after two ticks", x, y, v)
			}
		}
	}

	// A paused tick neither updates nor consumes a parity.
	paused := a.Tick(V2(0, 0), 0, []Target{box})
	if paused.Updated {
		t.Error("paused tick reported an update")
	}
	if next := a.Tick(V2(0, 0), 1, []Target{box}); next.Parity != first.Parity {
		t.Errorf("parity after pause = %d, want %d", next.Parity, first.Parity)
	}
}

func TestAtlas_Moves(t *testing.T) {
	a := newTestAtlas(t, Quality{SampleCount: 8, AtlasHeight: 16})
	if fs := a.Tick(V2(0, 0), 0, nil); fs.Moved {
		t.Error("first tick at the initial center reported a move")
	}
	if fs := a.Tick(V2(3, -2), 0, nil); !fs.Moved {
		t.Error("tick at a new center reported no move")
	}
	if a.Grid().Center() != V2(3, -2) {
		t.Errorf("Center = %v", a.Grid().Center())
	}
}

func TestAtlas_FullyLit(t *testing.T) {
	a := newTestAtlas(t, Quality{SampleCount: 8, AtlasHeight: 12})
	a.SetFullyLit(true)
	if !a.IsFullyLit() {
		t.Fatal("IsFullyLit = false")
	}

	fs := a.Tick(V2(4, 0), 1.0/60, []Target{Box(-100, -100, 100, 100, RGB(1, 0, 0))})
	if fs.Updated || fs.Rays != 0 {
		t.Errorf("fully lit tick ran the engine: %+v", fs)
	}
	for y := range 12 {
		for x := range 16 {
			if v := a.Grid().Voxel(x, y); v != FullyLit {
				t.Fatalf("voxel (%d,%d) = %v, want fully lit", x, y, v)
			}
		}
	}

	a.SetFullyLit(false)
	if !a.Grid().Voxel(0, 0).IsZero() {
		t.Error("leaving fully lit did not clear the grid")
	}
}

func TestAtlas_Texels(t *testing.T) {
	a := newTestAtlas(t, Quality{SampleCount: 8, AtlasHeight: 12})
	a.SetFullyLit(true)
	texels := a.Texels()
	if len(texels) != 16*12*3 {
		t.Fatalf("len = %d", len(texels))
	}
	for i, v := range texels {
		if v != DefaultGain {
			t.Fatalf("texel value %d = %v", i, v)
		}
	}
}
