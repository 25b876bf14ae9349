package sink

import (
	"encoding/json"

	"github.com/matzehuels/basegen/pkg/mesh"
)

// jsonDocument is the top-level JSON export shape.
type jsonDocument struct {
	Style  string     `json:"style"`
	Seed   uint64     `json:"seed"`
	Levels int        `json:"levels"`
	Parts  []jsonPart `json:"parts"`
}

type jsonPart struct {
	Handle  string       `json:"handle"`
	Name    string       `json:"name"`
	Surface *Surface     `json:"surface,omitempty"`
	Verts   [][3]float64 `json:"verts"`
	Faces   []mesh.Face  `json:"faces"`
}

// JSONMeta records the generation parameters alongside the geometry so an
// export can be reproduced exactly.
type JSONMeta struct {
	Style  string
	Seed   uint64
	Levels int
}

// RenderJSON exports the meshes with full geometry and surface data,
// enabling integration with external tools and exact reproduction via the
// recorded generation parameters.
func RenderJSON(meshes []*Mesh, meta JSONMeta) ([]byte, error) {
	doc := jsonDocument{
		Style:  meta.Style,
		Seed:   meta.Seed,
		Levels: meta.Levels,
		Parts:  make([]jsonPart, 0, len(meshes)),
	}

	for _, m := range meshes {
		p := jsonPart{
			Handle:  string(m.Handle),
			Name:    m.Name,
			Surface: m.Surface,
			Verts:   make([][3]float64, len(m.Verts)),
			Faces:   m.Faces,
		}
		for i, v := range m.Verts {
			p.Verts[i] = [3]float64{v.X, v.Y, v.Z}
		}
		doc.Parts = append(doc.Parts, p)
	}

	return json.MarshalIndent(doc, "", "  ")
}
