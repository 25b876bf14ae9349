package mesh

import (
	"math"

	"github.com/matzehuels/basegen/pkg/base"
)

// =============================================================================
// Basic Solids
// =============================================================================

// AddBox appends a closed rectangular solid centered at (x, y) with its
// bottom face at z.
func (b *Builder) AddBox(x, y, z, w, d, h float64) {
	hw, hd := w/2, d/2

	vb := [4]int{
		b.vert(x-hw, y-hd, z),
		b.vert(x+hw, y-hd, z),
		b.vert(x+hw, y+hd, z),
		b.vert(x-hw, y+hd, z),
	}
	vt := [4]int{
		b.vert(x-hw, y-hd, z+h),
		b.vert(x+hw, y-hd, z+h),
		b.vert(x+hw, y+hd, z+h),
		b.vert(x-hw, y+hd, z+h),
	}

	b.face(reversed(vb)...) // bottom
	b.face(vt[0], vt[1], vt[2], vt[3])
	for i := 0; i < 4; i++ {
		ni := (i + 1) % 4
		b.face(vb[i], vb[ni], vt[ni], vt[i])
	}
}

// AddTaperedBox appends a closed frustum centered on the Z axis: a quad
// bottom face at zBase, a quad top face at zBase+height, and four
// trapezoidal sides. Used as a solid exterior mass; see AddTaperedShell for
// the hollow-wall variant.
func (b *Builder) AddTaperedBox(baseW, baseD, topW, topD, height, zBase float64) {
	bw, bd := baseW/2, baseD/2
	tw, td := topW/2, topD/2
	z0, z1 := zBase, zBase+height

	vb := [4]int{
		b.vert(-bw, -bd, z0),
		b.vert(bw, -bd, z0),
		b.vert(bw, bd, z0),
		b.vert(-bw, bd, z0),
	}
	vt := [4]int{
		b.vert(-tw, -td, z1),
		b.vert(tw, -td, z1),
		b.vert(tw, td, z1),
		b.vert(-tw, td, z1),
	}

	b.face(reversed(vb)...)
	b.face(vt[0], vt[1], vt[2], vt[3])
	for i := 0; i < 4; i++ {
		ni := (i + 1) % 4
		b.face(vb[i], vb[ni], vt[ni], vt[i])
	}
}

// AddTaperedShell appends a hollow tapered wall: an outer frustum wound
// outward and an inner frustum, offset inward by thickness, wound inward.
// Together they form a closed wall of uniform horizontal thickness that
// tapers with height.
func (b *Builder) AddTaperedShell(baseW, baseD, topW, topD, height, thickness, zBase float64) {
	bw, bd := baseW/2, baseD/2
	tw, td := topW/2, topD/2
	z0, z1 := zBase, zBase+height

	// Outer frustum
	vob := [4]int{
		b.vert(-bw, -bd, z0),
		b.vert(bw, -bd, z0),
		b.vert(bw, bd, z0),
		b.vert(-bw, bd, z0),
	}
	vot := [4]int{
		b.vert(-tw, -td, z1),
		b.vert(tw, -td, z1),
		b.vert(tw, td, z1),
		b.vert(-tw, td, z1),
	}
	b.face(reversed(vob)...)
	b.face(vot[0], vot[1], vot[2], vot[3])
	for i := 0; i < 4; i++ {
		ni := (i + 1) % 4
		b.face(vob[i], vob[ni], vot[ni], vot[i])
	}

	// Inner frustum, wound the other way so its faces point into the cavity.
	ibw, ibd := bw-thickness, bd-thickness
	itw, itd := tw-thickness, td-thickness
	vib := [4]int{
		b.vert(-ibw, -ibd, z0),
		b.vert(ibw, -ibd, z0),
		b.vert(ibw, ibd, z0),
		b.vert(-ibw, ibd, z0),
	}
	vit := [4]int{
		b.vert(-itw, -itd, z1),
		b.vert(itw, -itd, z1),
		b.vert(itw, itd, z1),
		b.vert(-itw, itd, z1),
	}
	b.face(vib[0], vib[1], vib[2], vib[3])
	b.face(reversed(vit)...)
	for i := 0; i < 4; i++ {
		ni := (i + 1) % 4
		b.face(vib[ni], vib[i], vit[i], vit[ni])
	}
}

// =============================================================================
// Floors and Platforms
// =============================================================================

// AddFloorSlab appends a closed slab whose top surface sits at z.
func (b *Builder) AddFloorSlab(x, y, z, w, d, thickness float64) {
	b.AddBox(x, y, z-thickness, w, d, thickness)
}

// AddPlatform appends a floor slab bordered by four raised edge boxes along
// its perimeter, marking the walkable boundary.
func (b *Builder) AddPlatform(x, y, z, w, d, floorThick, edgeHeight, edgeWidth float64) {
	hw, hd := w/2, d/2

	b.AddFloorSlab(x, y, z, w, d, floorThick)

	b.AddBox(x, y+hd-edgeWidth/2, z, w, edgeWidth, edgeHeight)
	b.AddBox(x, y-hd+edgeWidth/2, z, w, edgeWidth, edgeHeight)
	b.AddBox(x+hw-edgeWidth/2, y, z, edgeWidth, d-edgeWidth*2, edgeHeight)
	b.AddBox(x-hw+edgeWidth/2, y, z, edgeWidth, d-edgeWidth*2, edgeHeight)
}

// =============================================================================
// Columns
// =============================================================================

// Column base and cap are slightly wider than the shaft.
const (
	columnBaseScale = 1.4
	columnCapScale  = 1.3
)

// AddColumn appends a column as three stacked boxes: a widened base, the
// shaft, and a widened cap.
func (b *Builder) AddColumn(x, y, zBase, zTop, width, baseHeight, capHeight float64) {
	shaftHeight := zTop - zBase - baseHeight - capHeight
	if shaftHeight <= 0 {
		return
	}

	b.AddBox(x, y, zBase, width*columnBaseScale, width*columnBaseScale, baseHeight)
	b.AddBox(x, y, zBase+baseHeight, width, width, shaftHeight)
	b.AddBox(x, y, zTop-capHeight, width*columnCapScale, width*columnCapScale, capHeight)
}

// =============================================================================
// Walls with Trim Bands
// =============================================================================

// AddWallRun appends a straight wall between two XY points with numBands
// protruding horizontal trim bands. The height is partitioned into
// numBands+1 slots; each slot carries a base-thickness section topped by a
// trim section at increased thickness, with the final slot untrimmed.
func (b *Builder) AddWallRun(x1, y1, x2, y2, zBase, height, thickness, trimHeight, trimInset float64, numBands int) {
	dx, dy := x2-x1, y2-y1
	if math.Hypot(dx, dy) < Epsilon {
		return
	}

	spacing := height / float64(numBands+1)

	for i := 0; i <= numBands; i++ {
		sectionZ := zBase + float64(i)*spacing
		sectionH := spacing
		if i < numBands {
			sectionH = spacing - trimHeight
		}
		if sectionH > 0 {
			b.wallSection(x1, y1, x2, y2, sectionZ, sectionH, thickness)
		}
	}

	trimThick := thickness + trimInset*2
	for i := 1; i <= numBands; i++ {
		trimZ := zBase + float64(i)*spacing - trimHeight
		b.wallSection(x1, y1, x2, y2, trimZ, trimHeight, trimThick)
	}
}

// wallSection appends one closed wall segment between two XY points.
func (b *Builder) wallSection(x1, y1, x2, y2, z, h, thickness float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length < Epsilon || h < Epsilon {
		return
	}

	px, py := -dy/length*thickness/2, dx/length*thickness/2

	vb := [4]int{
		b.vert(x1-px, y1-py, z),
		b.vert(x1+px, y1+py, z),
		b.vert(x2+px, y2+py, z),
		b.vert(x2-px, y2-py, z),
	}
	vt := [4]int{
		b.vert(x1-px, y1-py, z+h),
		b.vert(x1+px, y1+py, z+h),
		b.vert(x2+px, y2+py, z+h),
		b.vert(x2-px, y2-py, z+h),
	}

	b.face(reversed(vb)...)
	b.face(vt[0], vt[1], vt[2], vt[3])
	b.face(vb[0], vb[3], vt[3], vt[0]) // outer
	b.face(vb[1], vt[1], vt[2], vb[2]) // inner
	b.face(vb[0], vt[0], vt[1], vb[1]) // start cap
	b.face(vb[2], vt[2], vt[3], vb[3]) // end cap
}

// =============================================================================
// Ramps
// =============================================================================

const railWidth = 0.4

// AddRamp appends a sloped traversal surface between two 3-D points: a quad
// top, a parallel bottom offset by thickness, four connecting faces, and —
// when edgeHeight > 0 — a closed rail box along each long edge.
// A ramp whose horizontal projection is shorter than Epsilon is a no-op.
func (b *Builder) AddRamp(x1, y1, z1, x2, y2, z2, width, thickness, edgeHeight float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length < Epsilon {
		return
	}

	px, py := -dy/length*width/2, dx/length*width/2

	vt := [4]int{
		b.vert(x1-px, y1-py, z1),
		b.vert(x1+px, y1+py, z1),
		b.vert(x2+px, y2+py, z2),
		b.vert(x2-px, y2-py, z2),
	}
	vb := [4]int{
		b.vert(x1-px, y1-py, z1-thickness),
		b.vert(x1+px, y1+py, z1-thickness),
		b.vert(x2+px, y2+py, z2-thickness),
		b.vert(x2-px, y2-py, z2-thickness),
	}

	b.face(vt[0], vt[1], vt[2], vt[3])
	b.face(reversed(vb)...)
	b.face(vt[0], vt[3], vb[3], vb[0])
	b.face(vt[1], vb[1], vb[2], vt[2])
	b.face(vt[0], vb[0], vb[1], vt[1])
	b.face(vt[2], vb[2], vb[3], vt[3])

	if edgeHeight <= 0 {
		return
	}

	epx, epy := -dy/length*railWidth/2, dx/length*railWidth/2

	// Left rail
	b.rampRail(x1-px+epx, y1-py+epy, z1, x2-px+epx, y2-py+epy, z2, railWidth, edgeHeight)
	// Right rail
	b.rampRail(x1+px-epx, y1+py-epy, z1, x2+px-epx, y2+py-epy, z2, railWidth, edgeHeight)
}

// rampRail appends a closed sloped rail box along a ramp edge.
func (b *Builder) rampRail(x1, y1, z1, x2, y2, z2, width, height float64) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length < Epsilon {
		return
	}

	px, py := -dy/length*width/2, dx/length*width/2

	v1 := [4]int{
		b.vert(x1-px, y1-py, z1),
		b.vert(x1+px, y1+py, z1),
		b.vert(x1+px, y1+py, z1+height),
		b.vert(x1-px, y1-py, z1+height),
	}
	v2 := [4]int{
		b.vert(x2-px, y2-py, z2),
		b.vert(x2+px, y2+py, z2),
		b.vert(x2+px, y2+py, z2+height),
		b.vert(x2-px, y2-py, z2+height),
	}

	b.face(v1[0], v1[1], v2[1], v2[0]) // bottom
	b.face(v1[3], v2[3], v2[2], v1[2]) // top
	b.face(v1[0], v2[0], v2[3], v1[3]) // outer
	b.face(v1[1], v1[2], v2[2], v2[1]) // inner
	b.face(v1[0], v1[1], v1[2], v1[3]) // start cap
	b.face(reversed(v2)...)            // end cap
}

// =============================================================================
// Balconies
// =============================================================================

// One post per quarter of the open edge, plus the two ends.
const balconyPostCount = 5

// AddBalcony appends a bordered platform with a railing on exactly one side
// (the open side, facing the interior void): evenly spaced posts, a top
// rail, and a mid rail. The other three sides keep the platform's raised
// edge as a low barrier.
func (b *Builder) AddBalcony(x, y, z, w, d float64, openSide base.Direction, railHeight, railThickness, floorThick float64) {
	b.AddPlatform(x, y, z, w, d, floorThick, 0.4, 0.3)

	rt := railThickness

	switch openSide {
	case base.South, base.North:
		ry := y - d/2 + rt/2
		if openSide == base.North {
			ry = y + d/2 - rt/2
		}
		for i := 0; i < balconyPostCount; i++ {
			px := x - w/2 + float64(i)*w/4
			b.AddBox(px, ry, z, rt, rt, railHeight)
		}
		b.AddBox(x, ry, z+railHeight-rt/2, w, rt, rt)
		b.AddBox(x, ry, z+railHeight*0.5, w, rt, rt*0.8)

	case base.East, base.West:
		rx := x + w/2 - rt/2
		if openSide == base.West {
			rx = x - w/2 + rt/2
		}
		for i := 0; i < balconyPostCount; i++ {
			py := y - d/2 + float64(i)*d/4
			b.AddBox(rx, py, z, rt, rt, railHeight)
		}
		b.AddBox(rx, y, z+railHeight-rt/2, rt, d, rt)
		b.AddBox(rx, y, z+railHeight*0.5, rt, d, rt*0.8)
	}
}

// =============================================================================
// Ceilings with Skylight Wells
// =============================================================================

// Well opening shrinks to this fraction of its base at the top.
const wellTopScale = 0.6

// AddCeilingWithWells appends a solid ceiling slab with a rows x cols grid
// of inward-tapering skylight wells. Wells are additive inverted frustum
// inserts rising from the slab's top surface, not boolean cuts.
func (b *Builder) AddCeilingWithWells(x, y, z, w, d, thickness, wellSize, wellDepth float64, rows, cols int) {
	hw, hd := w/2, d/2

	b.AddBox(x, y, z, w, d, thickness)

	spacingX := w / float64(cols+1)
	spacingY := d / float64(rows+1)

	for ix := 0; ix < cols; ix++ {
		for iy := 0; iy < rows; iy++ {
			sx := x - hw + spacingX*float64(ix+1)
			sy := y - hd + spacingY*float64(iy+1)
			b.skylightWell(sx, sy, z, wellSize, wellDepth)
		}
	}
}

// skylightWell appends the four angled sides and top opening of one well.
func (b *Builder) skylightWell(x, y, z, size, depth float64) {
	hs := size / 2
	ths := hs * wellTopScale

	vb := [4]int{
		b.vert(x-hs, y-hs, z),
		b.vert(x+hs, y-hs, z),
		b.vert(x+hs, y+hs, z),
		b.vert(x-hs, y+hs, z),
	}
	vt := [4]int{
		b.vert(x-ths, y-ths, z+depth),
		b.vert(x+ths, y-ths, z+depth),
		b.vert(x+ths, y+ths, z+depth),
		b.vert(x-ths, y+ths, z+depth),
	}

	for i := 0; i < 4; i++ {
		ni := (i + 1) % 4
		b.face(vb[i], vt[i], vt[ni], vb[ni])
	}
	b.face(vt[0], vt[1], vt[2], vt[3])
}

// =============================================================================
// Recessed Wall Panels
// =============================================================================

// AddWallPanel appends a recessed framed panel giving flat walls visual
// depth: four frame boxes around a thin back panel, protruding toward the
// facing direction.
func (b *Builder) AddWallPanel(x, y, z, w, h float64, facing base.Direction, recessDepth, frameWidth float64) {
	innerW := w - frameWidth*2
	innerH := h - frameWidth*2

	switch facing {
	case base.North, base.South:
		sign := 1.0
		if facing == base.South {
			sign = -1.0
		}
		b.AddBox(x, y+sign*recessDepth/2, z+h-frameWidth/2, w, recessDepth, frameWidth)
		b.AddBox(x, y+sign*recessDepth/2, z+frameWidth/2, w, recessDepth, frameWidth)
		b.AddBox(x-w/2+frameWidth/2, y+sign*recessDepth/2, z+h/2, frameWidth, recessDepth, innerH)
		b.AddBox(x+w/2-frameWidth/2, y+sign*recessDepth/2, z+h/2, frameWidth, recessDepth, innerH)
		b.AddBox(x, y, z+h/2, innerW, 0.2, innerH)

	case base.East, base.West:
		sign := 1.0
		if facing == base.West {
			sign = -1.0
		}
		b.AddBox(x+sign*recessDepth/2, y, z+h-frameWidth/2, recessDepth, w, frameWidth)
		b.AddBox(x+sign*recessDepth/2, y, z+frameWidth/2, recessDepth, w, frameWidth)
		b.AddBox(x+sign*recessDepth/2, y-w/2+frameWidth/2, z+h/2, recessDepth, frameWidth, innerH)
		b.AddBox(x+sign*recessDepth/2, y+w/2-frameWidth/2, z+h/2, recessDepth, frameWidth, innerH)
		b.AddBox(x, y, z+h/2, 0.2, innerW, innerH)
	}
}
