package base

// MinUsableSpan is the smallest interior dimension a feature can occupy.
// Anything computed below this (roughly a doorway's width) must be omitted
// rather than emitted as degenerate geometry.
const MinUsableSpan = 8.0

// Envelope describes the available cross-section at a given height.
type Envelope struct {
	InteriorWidth float64
	InteriorDepth float64
	ExteriorWidth float64
	ExteriorDepth float64
}

// TaperAt returns how far the silhouette has moved inward at height z.
func TaperAt(z float64, cfg Config) float64 {
	if cfg.BaseHeight <= 0 {
		return 0
	}
	return cfg.BaseHeight * cfg.WallTaper * (z / cfg.BaseHeight)
}

// EnvelopeAt returns the exterior and interior cross-section at height z.
// Interior dimensions shrink with both wall thickness and taper; they are
// monotonically non-increasing in z for any valid Config.
func EnvelopeAt(z float64, cfg Config) Envelope {
	taper := TaperAt(z, cfg)
	return Envelope{
		ExteriorWidth: cfg.BaseWidth - 2*taper,
		ExteriorDepth: cfg.BaseDepth - 2*taper,
		InteriorWidth: cfg.BaseWidth - 2*cfg.ExteriorWallThickness - 2*taper,
		InteriorDepth: cfg.BaseDepth - 2*cfg.ExteriorWallThickness - 2*taper,
	}
}

// Usable reports whether the interior cross-section can hold any feature.
func (e Envelope) Usable() bool {
	return e.InteriorWidth > MinUsableSpan && e.InteriorDepth > MinUsableSpan
}
