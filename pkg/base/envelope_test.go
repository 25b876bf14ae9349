package base

import (
	"math"
	"testing"
)

func TestTaperArithmetic(t *testing.T) {
	cfg := Default()
	cfg.BaseWidth = 64
	cfg.BaseHeight = 48
	cfg.WallTaper = 0.3

	taper := TaperAt(cfg.BaseHeight, cfg)
	if math.Abs(taper-14.4) > 1e-9 {
		t.Errorf("taper at full height = %g, want 14.4", taper)
	}

	env := EnvelopeAt(cfg.BaseHeight, cfg)
	if math.Abs(env.ExteriorWidth-35.2) > 1e-9 {
		t.Errorf("top exterior width = %g, want 35.2", env.ExteriorWidth)
	}
}

func TestEnvelopeMonotonicity(t *testing.T) {
	cfg := Default()

	prev := EnvelopeAt(0, cfg)
	for z := 1.0; z <= cfg.BaseHeight; z++ {
		env := EnvelopeAt(z, cfg)
		if env.InteriorWidth > prev.InteriorWidth || env.InteriorDepth > prev.InteriorDepth {
			t.Fatalf("interior grew from %.2fx%.2f to %.2fx%.2f at z=%.0f",
				prev.InteriorWidth, prev.InteriorDepth,
				env.InteriorWidth, env.InteriorDepth, z)
		}
		prev = env
	}
}

func TestEnvelopeInteriorAccountsForWalls(t *testing.T) {
	cfg := Default()
	env := EnvelopeAt(0, cfg)

	if env.ExteriorWidth != cfg.BaseWidth {
		t.Errorf("ground exterior width = %g, want %g", env.ExteriorWidth, cfg.BaseWidth)
	}
	want := cfg.BaseWidth - 2*cfg.ExteriorWallThickness
	if env.InteriorWidth != want {
		t.Errorf("ground interior width = %g, want %g", env.InteriorWidth, want)
	}
}

func TestEnvelopeUsable(t *testing.T) {
	cfg := Default()
	if !EnvelopeAt(0, cfg).Usable() {
		t.Error("ground envelope of the default config should be usable")
	}

	tiny := Envelope{InteriorWidth: 4, InteriorDepth: 4}
	if tiny.Usable() {
		t.Error("a 4x4 interior should be unusable")
	}
}
