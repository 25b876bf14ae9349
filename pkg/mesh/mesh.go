// Package mesh implements the geometry kernel for base generation.
//
// A Builder is a named accumulator of vertices and quad faces. The solid
// builders (boxes, frustums, shells, ramps, columns, balconies, skylight
// ceilings) each append a closed solid to the accumulator; none of them
// perform boolean operations. Overlapping solids are accepted as-is —
// overlap is visually hidden, not geometrically resolved.
//
// Every builder is pure with respect to its accumulator: identical arguments
// emit identical vertices and faces, which is what makes whole-run
// reproducibility testable.
//
// Hollow tapered walls are built from an inner/outer frustum pair (outer
// faces wound outward, inner faces wound inward) rather than by subtracting
// one solid from another. Skylight wells are additive inverted frustum
// inserts. This is the geometric contract; do not replace it with CSG.
package mesh

// Epsilon is the horizontal length below which wall and ramp emissions
// degenerate to no-ops.
const Epsilon = 0.01

// Vec3 is a point in 3-D space.
type Vec3 struct {
	X, Y, Z float64
}

// Face is a polygon described by vertex indices, wound counter-clockwise
// when viewed from outside the solid.
type Face []int

// Builder accumulates vertices and faces for one named mesh part.
type Builder struct {
	Name  string
	Verts []Vec3
	Faces []Face
}

// NewBuilder creates an empty accumulator for the named part.
func NewBuilder(name string) *Builder {
	return &Builder{Name: name}
}

// VertexCount returns the number of accumulated vertices.
func (b *Builder) VertexCount() int { return len(b.Verts) }

// FaceCount returns the number of accumulated faces.
func (b *Builder) FaceCount() int { return len(b.Faces) }

// Empty reports whether nothing has been emitted yet.
func (b *Builder) Empty() bool { return len(b.Faces) == 0 }

// vert appends a vertex and returns its index.
func (b *Builder) vert(x, y, z float64) int {
	b.Verts = append(b.Verts, Vec3{x, y, z})
	return len(b.Verts) - 1
}

// face appends a face from the given vertex indices.
func (b *Builder) face(idx ...int) {
	b.Faces = append(b.Faces, Face(idx))
}

// reversed returns the indices in reverse order, flipping the winding.
func reversed(idx [4]int) []int {
	return []int{idx[3], idx[2], idx[1], idx[0]}
}
