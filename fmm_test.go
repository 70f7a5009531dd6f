package edt

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFMM_FeaturesFrozenAtZero(t *testing.T) {
	r := mustRaster(t, []string{
		"0010",
		"0110",
		"0000",
	})
	field, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if r.At(x, y) && field.At(x, y) != 0 {
				t.Errorf("feature At(%d,%d) = %v, want 0", x, y, field.At(x, y))
			}
		}
	}
}

func TestFMM_AxisNeighborsExact(t *testing.T) {
	// Along an axis from an isolated feature the first-order update is
	// exact: each step adds exactly 1.
	samples := make([]bool, 9*9)
	samples[4*9+4] = true
	r, _ := NewRaster(samples, 9, 9)

	field, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	for d := 1; d <= 4; d++ {
		for _, p := range []Pos{{4 + d, 4}, {4 - d, 4}, {4, 4 + d}, {4, 4 - d}} {
			if got := field.At(p.X, p.Y); math.Abs(got-float64(d)) > 1e-12 {
				t.Errorf("At(%d,%d) = %v, want %d", p.X, p.Y, got, d)
			}
		}
	}
}

func TestFMM_AllFeatures(t *testing.T) {
	samples := make([]bool, 5*5)
	for i := range samples {
		samples[i] = true
	}
	r, _ := NewRaster(samples, 5, 5)

	field, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	for i, v := range field.Values() {
		if v != 0 {
			t.Errorf("value[%d] = %v, want 0", i, v)
		}
	}
}

func TestFMM_NoFeatures(t *testing.T) {
	r, _ := NewRaster(make([]bool, 5*5), 5, 5)

	field, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	for i, v := range field.Values() {
		if !math.IsInf(v, 1) {
			t.Errorf("value[%d] = %v, want +Inf", i, v)
		}
	}
}

func TestFMM_BoundedErrorVsExact(t *testing.T) {
	// The first-order upwind overestimate peaks at the immediate diagonal
	// of an isolated feature (factor ~1.207); the underestimate peaks
	// right at a concave feature corner (factor sqrt(2)/2 ~ 0.707). The
	// [-30%, +25%] guard is a regression bound on observed behavior, not
	// an algorithmic guarantee.
	for _, seed := range []uint64{3, 11, 29} {
		r := randomRaster(t, 8, 8, seed, 0.15)
		if r.countFeatures() == 0 {
			r.Samples[27] = true
		}

		exact, err := Exact(r)
		if err != nil {
			t.Fatalf("Exact() = %v", err)
		}
		approx, err := FMM(r)
		if err != nil {
			t.Fatalf("FMM() = %v", err)
		}
		for i, want := range exact.Values() {
			got := approx.Values()[i]
			if math.IsNaN(got) || got < 0 {
				t.Fatalf("seed %d: value[%d] = %v", seed, i, got)
			}
			if got < want*0.70-1e-9 {
				t.Errorf("seed %d: value[%d] = %v undershoots exact %v by more than 30%%", seed, i, got, want)
			}
			if got > want*1.25+1e-9 {
				t.Errorf("seed %d: value[%d] = %v exceeds exact %v by more than 25%%", seed, i, got, want)
			}
		}
	}
}

func TestFMM_Deterministic(t *testing.T) {
	r := randomRaster(t, 16, 16, 77, 0.1)
	r.Samples[0] = true

	a, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	b, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	if diff := cmp.Diff(a.Values(), b.Values()); diff != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestFMM_ShapeValidation(t *testing.T) {
	r := &Raster{Samples: make([]bool, 5), Width: 3, Height: 2}
	field, err := FMM(r)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("FMM() error = %v, want ErrShapeMismatch", err)
	}
	if field != nil {
		t.Errorf("FMM() field = %v, want nil", field)
	}
}

func TestFMM_FreezeOrderMonotonic(t *testing.T) {
	r := randomRaster(t, 12, 12, 13, 0.1)
	r.Samples[5] = true

	prev := 0.0
	steps := 0
	_, err := FMM(r, WithProgress(func(s Step) error {
		if s.Value < prev {
			t.Errorf("step %d: froze %v after %v", steps, s.Value, prev)
		}
		if s.Field.At(s.X, s.Y) != s.Value {
			t.Errorf("step %d: field not updated before callback", steps)
		}
		prev = s.Value
		steps++
		return nil
	}))
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}

	want := r.Len() - r.countFeatures()
	if steps != want {
		t.Errorf("callback ran %d times, want one per non-feature pixel (%d)", steps, want)
	}
}

func TestFMM_BandSnapshot(t *testing.T) {
	r := mustRaster(t, []string{
		"00000",
		"00100",
		"00000",
	})

	called := false
	_, err := FMM(r, WithProgress(func(s Step) error {
		if called {
			return nil
		}
		called = true
		for _, p := range s.Band() {
			if p.X < 0 || p.X >= 5 || p.Y < 0 || p.Y >= 3 {
				t.Errorf("band position %v out of bounds", p)
			}
			if s.Field.At(p.X, p.Y) != math.Inf(1) {
				t.Errorf("band position %v already finalized", p)
			}
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	if !called {
		t.Fatal("progress callback never ran")
	}
}

func TestFMM_CallbackAbort(t *testing.T) {
	r := randomRaster(t, 10, 10, 17, 0.1)
	r.Samples[33] = true

	stop := errors.New("enough")
	steps := 0
	field, err := FMM(r, WithProgress(func(s Step) error {
		steps++
		if steps == 5 {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, ErrCallbackAborted) {
		t.Fatalf("FMM() error = %v, want ErrCallbackAborted", err)
	}
	if !errors.Is(err, stop) {
		t.Errorf("FMM() error = %v, does not wrap the callback error", err)
	}
	if steps != 5 {
		t.Errorf("callback ran %d times after abort, want 5", steps)
	}
	if field == nil {
		t.Fatal("FMM() returned no partial field on abort")
	}
	// The partial field holds exactly the frozen pixels: features plus
	// the five freeze events that ran.
	finite := 0
	for _, v := range field.Values() {
		if !math.IsInf(v, 1) {
			finite++
		}
	}
	if want := r.countFeatures() + 5; finite != want {
		t.Errorf("partial field has %d finalized pixels, want %d", finite, want)
	}
}

func TestFMM_SingleRow(t *testing.T) {
	r := mustRaster(t, []string{"01000001"})
	field, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	// 1D marching is exact.
	want := []float64{1, 0, 1, 2, 3, 2, 1, 0}
	if diff := cmp.Diff(want, field.Values()); diff != "" {
		t.Errorf("field mismatch (-want +got):\n%s", diff)
	}
}

func TestFMMWithNearest_SingleFeature(t *testing.T) {
	// With one feature every pixel's estimate descends from the same
	// source, so the reported nearest is exact everywhere.
	samples := make([]bool, 9*7)
	samples[3*9+5] = true
	r, _ := NewRaster(samples, 9, 7)

	field, nearest, err := FMMWithNearest(r)
	if err != nil {
		t.Fatalf("FMMWithNearest() = %v", err)
	}
	feat := P(5, 3)
	for i, p := range nearest {
		if p != feat {
			t.Fatalf("nearest[%d] = %v, want %v", i, p, feat)
		}
	}

	plain, err := FMM(r)
	if err != nil {
		t.Fatalf("FMM() = %v", err)
	}
	if diff := cmp.Diff(plain.Values(), field.Values()); diff != "" {
		t.Errorf("field differs from FMM (-want +got):\n%s", diff)
	}
}

func TestFMMWithNearest_SingleRow(t *testing.T) {
	r := mustRaster(t, []string{"01000001"})
	field, nearest, err := FMMWithNearest(r)
	if err != nil {
		t.Fatalf("FMMWithNearest() = %v", err)
	}
	wantField := []float64{1, 0, 1, 2, 3, 2, 1, 0}
	if diff := cmp.Diff(wantField, field.Values()); diff != "" {
		t.Errorf("field mismatch (-want +got):\n%s", diff)
	}
	// The midpoint at x=4 is equidistant; the left feature wins the tie.
	left, right := P(1, 0), P(7, 0)
	want := []Pos{left, left, left, left, left, right, right, right}
	if diff := cmp.Diff(want, nearest); diff != "" {
		t.Errorf("nearest mismatch (-want +got):\n%s", diff)
	}
}

func TestFMMWithNearest_ReportsFeaturePixels(t *testing.T) {
	r := mustRaster(t, []string{
		"10000000100",
		"00000000000",
		"00010000000",
		"00000000000",
		"00000000001",
	})
	exact, err := Exact(r)
	if err != nil {
		t.Fatalf("Exact() = %v", err)
	}
	field, nearest, err := FMMWithNearest(r)
	if err != nil {
		t.Fatalf("FMMWithNearest() = %v", err)
	}
	for i, p := range nearest {
		x, y := i%r.Width, i/r.Width
		if !r.At(p.X, p.Y) {
			t.Fatalf("nearest[%d,%d] = %v is not a feature pixel", x, y, p)
		}
		// No feature is closer than the true nearest one.
		if d := P(x, y).Dist(p); d < exact.At(x, y)-1e-9 {
			t.Errorf("nearest[%d,%d] = %v at distance %v, exact minimum %v",
				x, y, p, d, exact.At(x, y))
		}
		if math.IsInf(field.At(x, y), 1) {
			t.Errorf("At(%d,%d) = +Inf with features present", x, y)
		}
	}
}

func TestFMMWithNearest_NoFeatures(t *testing.T) {
	r := mustRaster(t, []string{
		"000",
		"000",
	})
	field, nearest, err := FMMWithNearest(r)
	if err != nil {
		t.Fatalf("FMMWithNearest() = %v", err)
	}
	for i := range nearest {
		if nearest[i] != NoNearest {
			t.Errorf("nearest[%d] = %v, want NoNearest", i, nearest[i])
		}
		if !math.IsInf(field.Values()[i], 1) {
			t.Errorf("value[%d] = %v, want +Inf", i, field.Values()[i])
		}
	}
}

func TestFMMWithNearest_ShapeValidation(t *testing.T) {
	field, nearest, err := FMMWithNearest(&Raster{Samples: []bool{true}, Width: 2, Height: 2})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
	if field != nil || nearest != nil {
		t.Errorf("field = %v, nearest = %v, want nil on error", field, nearest)
	}
}
