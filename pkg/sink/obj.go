package sink

import (
	"bytes"
	"fmt"
)

// RenderOBJ writes the meshes as a Wavefront OBJ document, one named object
// per mesh, with face indices offset across objects. Surfaces become usemtl
// references into the companion library from RenderMTL.
func RenderOBJ(meshes []*Mesh, mtlLib string) []byte {
	var buf bytes.Buffer
	buf.WriteString("# basegen geometry export\n")
	if mtlLib != "" {
		fmt.Fprintf(&buf, "mtllib %s\n", mtlLib)
	}

	offset := 1 // OBJ indices are 1-based
	for _, m := range meshes {
		fmt.Fprintf(&buf, "\no %s\n", m.Name)
		if m.Surface != nil {
			fmt.Fprintf(&buf, "usemtl %s\n", m.Surface.Name)
		}
		for _, v := range m.Verts {
			fmt.Fprintf(&buf, "v %g %g %g\n", v.X, v.Y, v.Z)
		}
		for _, f := range m.Faces {
			buf.WriteString("f")
			for _, idx := range f {
				fmt.Fprintf(&buf, " %d", idx+offset)
			}
			buf.WriteByte('\n')
		}
		offset += len(m.Verts)
	}
	return buf.Bytes()
}

// RenderMTL writes the material library for the meshes' surfaces, one
// newmtl block per distinct surface. Roughness is written as the Pr PBR
// extension alongside a matte specular baseline.
func RenderMTL(meshes []*Mesh) []byte {
	var buf bytes.Buffer
	buf.WriteString("# basegen material export\n")

	seen := make(map[string]bool)
	for _, m := range meshes {
		s := m.Surface
		if s == nil || seen[s.Name] {
			continue
		}
		seen[s.Name] = true

		fmt.Fprintf(&buf, "\nnewmtl %s\n", s.Name)
		fmt.Fprintf(&buf, "Kd %g %g %g\n", s.Color[0], s.Color[1], s.Color[2])
		buf.WriteString("Ks 0.05 0.05 0.05\n")
		fmt.Fprintf(&buf, "Pr %g\n", s.Roughness)
	}
	return buf.Bytes()
}
