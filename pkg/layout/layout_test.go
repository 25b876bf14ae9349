package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/basegen/pkg/base"
)

func testConfig(seed uint64) base.Config {
	cfg := base.Default()
	cfg.Seed = seed
	return cfg
}

func TestChoicesAreDeterministic(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		a := New(testConfig(seed))
		b := New(testConfig(seed))
		if !reflect.DeepEqual(a.Plan(), b.Plan()) {
			t.Fatalf("seed %d: plans differ:\n%+v\n%+v", seed, a.Plan(), b.Plan())
		}
	}
}

func TestSeedsProduceVariedPlans(t *testing.T) {
	plans := make(map[Plan]bool)
	for seed := uint64(0); seed < 64; seed++ {
		g := New(testConfig(seed))
		p := g.Plan()
		p.CenterSize, p.CenterHeight = 0, 0 // compare discrete choices only
		plans[p] = true
	}
	if len(plans) < 16 {
		t.Errorf("only %d distinct plans across 64 seeds, expected real variety", len(plans))
	}
}

func TestCorridorDirections(t *testing.T) {
	tests := []struct {
		pattern CorridorPattern
		want    []base.Direction
	}{
		{CorridorCross, []base.Direction{base.North, base.South, base.East, base.West}},
		{CorridorTNorth, []base.Direction{base.North, base.East, base.West}},
		{CorridorTSouth, []base.Direction{base.South, base.East, base.West}},
		{CorridorLNE, []base.Direction{base.North, base.East}},
		{CorridorLSW, []base.Direction{base.South, base.West}},
		{CorridorH, []base.Direction{base.North, base.South}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern.String(), func(t *testing.T) {
			g := &Generator{cfg: testConfig(1), plan: Plan{Corridors: tt.pattern}}
			if got := g.CorridorDirections(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("directions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnPositionCounts(t *testing.T) {
	counts := map[ColumnPattern]int{
		ColumnsCorners: 4,
		ColumnsSides:   4,
		ColumnsRing:    6,
		ColumnsMinimal: 2,
	}

	for pattern, want := range counts {
		g := &Generator{cfg: testConfig(1), plan: Plan{Columns: pattern}}
		if got := len(g.ColumnPositions(28, 28)); got != want {
			t.Errorf("%s: %d positions, want %d", pattern, got, want)
		}
	}
}

func TestColumnPositionsTooTight(t *testing.T) {
	g := &Generator{cfg: testConfig(1), plan: Plan{Columns: ColumnsCorners}}
	if got := g.ColumnPositions(6, 6); got != nil {
		t.Errorf("cramped envelope should yield no columns, got %v", got)
	}
}

func TestRampRun(t *testing.T) {
	got := RampRun(10, 30)
	if math.Abs(got-17.32) > 0.01 {
		t.Errorf("run = %.4f, want ~17.32", got)
	}
}

func TestRampEndpointsRiseOneLevel(t *testing.T) {
	for _, style := range []RampStyle{RampSpiral, RampOpposing, RampCentral, RampCorner} {
		g := &Generator{cfg: testConfig(1), plan: Plan{Ramps: style}}
		for level := 0; level < 5; level++ {
			r := g.RampEndpoints(level)
			rise := r.Z2 - r.Z1
			if math.Abs(rise-14.0) > 1e-9 {
				t.Errorf("%s level %d: rise = %g, want 14", style, level, rise)
			}
			run := math.Hypot(r.X2-r.X1, r.Y2-r.Y1)
			wantRun := RampRun(14, 28)
			if math.Abs(run-wantRun) > 1e-9 {
				t.Errorf("%s level %d: run = %g, want %g", style, level, run, wantRun)
			}
		}
	}
}

func TestSpiralRampRotates(t *testing.T) {
	g := &Generator{cfg: testConfig(1), plan: Plan{Ramps: RampSpiral}}

	positions := make(map[[2]float64]bool)
	for level := 0; level < 4; level++ {
		r := g.RampEndpoints(level)
		positions[[2]float64{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}] = true
	}
	if len(positions) != 4 {
		t.Errorf("spiral should visit 4 distinct positions, got %d", len(positions))
	}

	// level mod 4 repeats the cycle
	r0, r4 := g.RampEndpoints(0), g.RampEndpoints(4)
	if r0.X1 != r4.X1 || r0.Y1 != r4.Y1 {
		t.Error("spiral routing should repeat with period 4")
	}
}

func TestOpposingRampAlternates(t *testing.T) {
	g := &Generator{cfg: testConfig(1), plan: Plan{Ramps: RampOpposing}}
	r0, r1 := g.RampEndpoints(0), g.RampEndpoints(1)
	if r0.X1 == r1.X1 {
		t.Error("opposing ramps should alternate sides")
	}
}

func TestBalconyLayouts(t *testing.T) {
	counts := map[BalconyConfig]int{
		BalconiesFullRing: 4,
		BalconiesOpposing: 2,
		BalconiesSingle:   1,
		BalconiesCorners:  4,
	}

	for config, want := range counts {
		g := &Generator{cfg: testConfig(1), plan: Plan{Balconies: config}}
		if got := len(g.BalconyLayout(0, 70, 70)); got != want {
			t.Errorf("%s: %d balconies, want %d", config, got, want)
		}
	}
}

func TestBalconySkippedWhenCramped(t *testing.T) {
	g := &Generator{cfg: testConfig(1), plan: Plan{Balconies: BalconiesFullRing}}
	// Envelope barely larger than the atrium leaves no platform room.
	if got := g.BalconyLayout(0, 32, 32); len(got) != 0 {
		t.Errorf("cramped level should have no balconies, got %d", len(got))
	}
}

func TestBalconySingleRotates(t *testing.T) {
	g := &Generator{cfg: testConfig(1), plan: Plan{Balconies: BalconiesSingle}}
	sides := make(map[base.Direction]bool)
	for level := 0; level < 4; level++ {
		placements := g.BalconyLayout(level, 70, 70)
		if len(placements) != 1 {
			t.Fatalf("level %d: %d placements, want 1", level, len(placements))
		}
		sides[placements[0].Open] = true
	}
	if len(sides) != 4 {
		t.Errorf("rotating single balcony should cover 4 sides, got %d", len(sides))
	}
}

func TestEntranceLayouts(t *testing.T) {
	counts := map[EntranceConfig]int{
		EntrancesNorthSouth: 2,
		EntrancesAllSides:   4,
		EntrancesSingle:     1,
		EntrancesDiagonal:   2,
	}

	for config, want := range counts {
		g := &Generator{cfg: testConfig(1), plan: Plan{Entrances: config}}
		entrances := g.EntranceLayout()
		if len(entrances) != want {
			t.Errorf("%s: %d entrances, want %d", config, len(entrances), want)
			continue
		}
		for _, e := range entrances {
			if e.Ramp.Z1 != 0 {
				t.Errorf("%s: entrance ramp should start at ground, got z=%g", config, e.Ramp.Z1)
			}
			if e.Ramp.Z2 <= 0 {
				t.Errorf("%s: entrance ramp should climb, got z=%g", config, e.Ramp.Z2)
			}
		}
	}
}
