package base_test

import (
	"fmt"

	"github.com/matzehuels/basegen/pkg/base"
)

func ExampleEnvelopeAt() {
	cfg := base.Default()
	cfg.BaseWidth = 64
	cfg.BaseHeight = 48
	cfg.WallTaper = 0.3

	top := base.EnvelopeAt(cfg.BaseHeight, cfg)
	fmt.Printf("exterior width at top: %.1f\n", top.ExteriorWidth)
	fmt.Printf("interior width at top: %.1f\n", top.InteriorWidth)
	// Output:
	// exterior width at top: 35.2
	// interior width at top: 27.2
}

func ExampleConfig_ApplyOverrides() {
	cfg := base.Default()
	cfg.ApplyOverrides(map[string]float64{
		"wall_taper":   0.25,
		"unknown_knob": 1.0, // ignored
	})
	fmt.Println(cfg.WallTaper)
	// Output: 0.25
}
