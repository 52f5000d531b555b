package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-starflight/pkg/physics"
)

// Heightfield is a regular-grid terrain geometry: one height sample per grid
// cell corner, bilinear interpolation between them. Raycasts march the ray
// in fixed steps until it dips below the interpolated surface, then bisect
// the crossing interval.
type Heightfield struct {
	heights  [][]float64
	cellSize float64
	origin   mgl64.Vec3

	// step is the ray-march increment in world units.
	step float64
}

// NewHeightfield creates a heightfield. Rows index Z, columns index X; the
// grid corner (0,0) sits at origin.
func NewHeightfield(heights [][]float64, cellSize float64, origin mgl64.Vec3) *Heightfield {
	step := cellSize / 2
	if step <= 0 {
		step = 1
	}
	return &Heightfield{
		heights:  heights,
		cellSize: cellSize,
		origin:   origin,
		step:     step,
	}
}

// HeightAt returns the interpolated surface height at a world XZ position.
// Positions outside the grid clamp to the border samples.
func (h *Heightfield) HeightAt(x, z float64) float64 {
	fx := (x - h.origin.X()) / h.cellSize
	fz := (z - h.origin.Z()) / h.cellSize

	rows := len(h.heights)
	if rows == 0 {
		return h.origin.Y()
	}
	cols := len(h.heights[0])
	if cols == 0 {
		return h.origin.Y()
	}

	ix, tx := splitCell(fx, cols)
	iz, tz := splitCell(fz, rows)

	h00 := h.heights[iz][ix]
	h10 := h.heights[iz][min(ix+1, cols-1)]
	h01 := h.heights[min(iz+1, rows-1)][ix]
	h11 := h.heights[min(iz+1, rows-1)][min(ix+1, cols-1)]

	top := physics.Lerp(h00, h10, tx)
	bottom := physics.Lerp(h01, h11, tx)
	return h.origin.Y() + physics.Lerp(top, bottom, tz)
}

// Raycast implements Geometry.
func (h *Heightfield) Raycast(origin, dir mgl64.Vec3, maxDist float64) (physics.Hit, bool, error) {
	if dir.Len() == 0 {
		return physics.Hit{}, false, nil
	}
	dir = dir.Normalize()

	prev := origin
	prevAbove := origin.Y() >= h.HeightAt(origin.X(), origin.Z())
	if !prevAbove {
		// Started below the surface: immediate hit at the entry point.
		return h.hitAt(origin, origin), true, nil
	}

	for travelled := h.step; travelled <= maxDist; travelled += h.step {
		pos := origin.Add(dir.Mul(travelled))
		if pos.Y() < h.HeightAt(pos.X(), pos.Z()) {
			point := h.bisect(prev, pos)
			return h.hitAt(origin, point), true, nil
		}
		prev = pos
	}
	return physics.Hit{}, false, nil
}

// bisect narrows an above/below interval down to the surface crossing.
func (h *Heightfield) bisect(above, below mgl64.Vec3) mgl64.Vec3 {
	for i := 0; i < 16; i++ {
		mid := physics.LerpVec3(above, below, 0.5)
		if mid.Y() >= h.HeightAt(mid.X(), mid.Z()) {
			above = mid
		} else {
			below = mid
		}
	}
	return above
}

// hitAt builds the Hit record for a surface point, with the normal from
// central height differences.
func (h *Heightfield) hitAt(rayOrigin, point mgl64.Vec3) physics.Hit {
	d := h.cellSize / 2
	dx := h.HeightAt(point.X()+d, point.Z()) - h.HeightAt(point.X()-d, point.Z())
	dz := h.HeightAt(point.X(), point.Z()+d) - h.HeightAt(point.X(), point.Z()-d)
	normal := mgl64.Vec3{-dx, 2 * d, -dz}.Normalize()

	return physics.Hit{
		Point:    point,
		Normal:   normal,
		Distance: physics.Distance(rayOrigin, point),
	}
}

// splitCell clamps a fractional grid coordinate into an index and the
// interpolation fraction within that cell.
func splitCell(f float64, n int) (int, float64) {
	if f <= 0 {
		return 0, 0
	}
	if f >= float64(n-1) {
		return n - 1, 0
	}
	i := int(f)
	return i, f - float64(i)
}
