// Package sink finalizes composed mesh parts and exports them.
//
// # Overview
//
// A "sink" transforms finalized meshes into a final output format. This
// package provides:
//
//   - Finalization: vertex welding and outward orientation via [Store.Finalize]
//   - Surface tagging: named material styles via [Registry.Apply]
//   - OBJ: Wavefront geometry plus a companion MTL material library
//   - JSON: full geometry and surface data export for external tools
//
// # Finalization
//
// Builders emit raw vertex/face soup; coincident vertices at solid joints are
// duplicated by construction. [Store.Finalize] welds vertices within a small
// tolerance, re-indexes faces, makes winding consistent across every
// manifold edge, and returns an opaque [Handle]:
//
//	store := sink.NewStore()
//	h := store.Finalize("Exterior", builder)
//
// # Adding New Formats
//
// To add a new output format, write a renderer over []*[Mesh] the way
// RenderOBJ and RenderJSON do, and register it in internal/cli for CLI
// support.
package sink

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/basegen/pkg/mesh"
)

// WeldTolerance is the distance within which coincident vertices are merged
// during finalization.
const WeldTolerance = 0.01

// Handle identifies a finalized mesh within a Store.
type Handle string

// Mesh is a finalized, welded, outward-oriented mesh with an optional
// surface tag.
type Mesh struct {
	Handle  Handle
	Name    string
	Verts   []mesh.Vec3
	Faces   []mesh.Face
	Surface *Surface
}

// Store holds finalized meshes by handle, preserving finalization order.
type Store struct {
	mu     sync.Mutex
	meshes map[Handle]*Mesh
	order  []Handle
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{meshes: make(map[Handle]*Mesh)}
}

// Finalize welds the builder's vertices, orients every connected component
// outward, and registers the result under a fresh handle.
func (s *Store) Finalize(name string, b *mesh.Builder) Handle {
	verts, faces := weld(b.Verts, b.Faces)
	orientConsistent(faces)

	m := &Mesh{
		Handle: Handle(uuid.NewString()),
		Name:   name,
		Verts:  verts,
		Faces:  faces,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes[m.Handle] = m
	s.order = append(s.order, m.Handle)
	return m.Handle
}

// Get returns the mesh for a handle.
func (s *Store) Get(h Handle) (*Mesh, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meshes[h]
	return m, ok
}

// All returns every finalized mesh in finalization order.
func (s *Store) All() []*Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Mesh, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.meshes[h])
	}
	return out
}

// weld merges vertices within WeldTolerance and re-indexes faces. Faces
// collapsed to fewer than three distinct vertices are dropped.
func weld(verts []mesh.Vec3, faces []mesh.Face) ([]mesh.Vec3, []mesh.Face) {
	type cell [3]int64
	seen := make(map[cell]int, len(verts))
	remap := make([]int, len(verts))
	welded := make([]mesh.Vec3, 0, len(verts))

	q := func(v float64) int64 { return int64(math.Round(v / WeldTolerance)) }

	for i, v := range verts {
		c := cell{q(v.X), q(v.Y), q(v.Z)}
		if idx, ok := seen[c]; ok {
			remap[i] = idx
			continue
		}
		seen[c] = len(welded)
		remap[i] = len(welded)
		welded = append(welded, v)
	}

	out := make([]mesh.Face, 0, len(faces))
	for _, f := range faces {
		nf := make(mesh.Face, 0, len(f))
		for _, idx := range f {
			mapped := remap[idx]
			if len(nf) == 0 || nf[len(nf)-1] != mapped {
				nf = append(nf, mapped)
			}
		}
		// The polygon may also close onto its own first vertex.
		if len(nf) > 1 && nf[0] == nf[len(nf)-1] {
			nf = nf[:len(nf)-1]
		}
		if len(nf) >= 3 {
			out = append(out, nf)
		}
	}
	return welded, out
}

type edgeKey struct{ a, b int }

func orderedEdge(a, b int) (edgeKey, bool) {
	if a < b {
		return edgeKey{a, b}, true
	}
	return edgeKey{b, a}, false
}

// orientConsistent flips faces so that every pair of faces sharing a welded
// edge winds that edge in opposite directions. Builders seed each solid with
// outward winding, so propagating consistency keeps the whole component
// outward. Components touching only at a vertex keep their own orientation.
func orientConsistent(faces []mesh.Face) {
	// edge -> faces traversing it, with traversal direction.
	type traversal struct {
		face    int
		forward bool
	}
	edges := make(map[edgeKey][]traversal)
	record := func(fi int) {
		f := faces[fi]
		for i, a := range f {
			b := f[(i+1)%len(f)]
			key, forward := orderedEdge(a, b)
			edges[key] = append(edges[key], traversal{fi, forward})
		}
	}
	for fi := range faces {
		record(fi)
	}

	visited := make([]bool, len(faces))
	for seed := range faces {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			f := faces[cur]
			for i, a := range f {
				b := f[(i+1)%len(f)]
				key, forward := orderedEdge(a, b)
				// Only propagate across manifold edges; edges where
				// separate solids overlap carry no orientation signal.
				if len(edges[key]) != 2 {
					continue
				}
				for _, tr := range edges[key] {
					if tr.face == cur || visited[tr.face] {
						continue
					}
					// Consistent neighbors traverse a shared edge in
					// opposite directions.
					if tr.forward == forward {
						reverse(faces[tr.face])
					}
					visited[tr.face] = true
					queue = append(queue, tr.face)
				}
			}
		}
	}
}

func reverse(f mesh.Face) {
	for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
		f[i], f[j] = f[j], f[i]
	}
}
