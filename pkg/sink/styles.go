package sink

import (
	"sync"

	"github.com/matzehuels/basegen/pkg/errors"
)

// Color is an RGB triple in [0, 1].
type Color [3]float64

// Surface is a named material style: base color plus a roughness scalar.
// Surfaces are shared by name; applying the same name twice reuses the
// first definition.
type Surface struct {
	Name      string  `json:"name"`
	Color     Color   `json:"color"`
	Roughness float64 `json:"roughness"`
}

// DefaultRoughness is the matte finish used for all stock surfaces.
const DefaultRoughness = 0.75

// Registry holds surface styles for the lifetime of a process, reusing
// them by name across generation runs.
type Registry struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
}

// NewRegistry returns an empty surface registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*Surface)}
}

// Apply tags the mesh behind a handle with the named surface, creating the
// surface on first use and reusing it afterwards. Color and roughness of an
// existing surface are not overwritten.
func (r *Registry) Apply(store *Store, h Handle, name string, color Color, roughness float64) error {
	m, ok := store.Get(h)
	if !ok {
		return errors.New(errors.ErrCodePartNotFound, "no mesh for handle %q", h)
	}

	r.mu.Lock()
	surf, ok := r.surfaces[name]
	if !ok {
		surf = &Surface{Name: name, Color: color, Roughness: roughness}
		r.surfaces[name] = surf
	}
	r.mu.Unlock()

	m.Surface = surf
	return nil
}

// Get returns a registered surface by name.
func (r *Registry) Get(name string) (*Surface, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.surfaces[name]
	return s, ok
}

// partSurface maps composer part names to their stock surface definitions.
var partSurface = map[string]Surface{
	"Exterior":  {Name: "Exterior", Color: Color{0.38, 0.40, 0.42}},
	"MainHall":  {Name: "Floor", Color: Color{0.32, 0.35, 0.38}},
	"Corridors": {Name: "Corridor", Color: Color{0.30, 0.32, 0.35}},
	"Upper":     {Name: "Upper", Color: Color{0.33, 0.36, 0.39}},
	"Ramps":     {Name: "Ramp", Color: Color{0.40, 0.38, 0.32}},
	"Entrances": {Name: "Entrance", Color: Color{0.40, 0.38, 0.32}},
}

// ApplyDefaults tags a finalized part with its stock surface. Parts without
// a stock surface are left untagged.
func (r *Registry) ApplyDefaults(store *Store, h Handle) error {
	m, ok := store.Get(h)
	if !ok {
		return errors.New(errors.ErrCodePartNotFound, "no mesh for handle %q", h)
	}
	surf, ok := partSurface[m.Name]
	if !ok {
		return nil
	}
	return r.Apply(store, h, surf.Name, surf.Color, DefaultRoughness)
}
