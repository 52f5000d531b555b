package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Hit describes a geometry intersection returned by a terrain query.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// RaycastFunc is the terrain geometry boundary. It returns the nearest hit
// within maxDist, or ok=false when nothing is hit. Query failures are the
// caller's concern and must surface here as ok=false.
type RaycastFunc func(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)

// probeDirections are the craft-local rays cast against terrain each frame:
// down, forward, left, right, back.
var probeDirections = []mgl64.Vec3{
	{0, -1, 0},
	{0, 0, 1},
	{-1, 0, 0},
	{1, 0, 0},
	{0, 0, -1},
}

// TerrainConfig tunes terrain collision correction.
type TerrainConfig struct {
	// BoundingRadius is the craft's collision radius against terrain.
	BoundingRadius float64
	// Overshoot scales the push-out distance so the corrected position has a
	// little clearance beyond exact contact.
	Overshoot float64
}

// ResolveTerrain corrects the tentative position against terrain geometry.
// Each probe direction is cast from the tentative position; any hit closer
// than the bounding radius pushes the position out along the hit normal by
// the penetration depth times the overshoot factor. If a second check still
// reports penetration after correction, the whole frame's translation is
// discarded and the pre-frame position returned, which prevents tunneling
// through re-entrant geometry.
func ResolveTerrain(prev, next mgl64.Vec3, orientation mgl64.Quat, cfg TerrainConfig, raycast RaycastFunc) mgl64.Vec3 {
	if raycast == nil {
		return next
	}

	corrected, penetrated := correctOnce(next, orientation, cfg, raycast)
	if !penetrated {
		return next
	}
	if _, again := correctOnce(corrected, orientation, cfg, raycast); again {
		return prev
	}
	return corrected
}

// correctOnce runs one round of directional probes, accumulating push-out
// corrections. It reports whether any probe found penetration.
func correctOnce(pos mgl64.Vec3, orientation mgl64.Quat, cfg TerrainConfig, raycast RaycastFunc) (mgl64.Vec3, bool) {
	penetrated := false
	for _, local := range probeDirections {
		dir := orientation.Rotate(local)
		hit, ok := raycast(pos, dir, cfg.BoundingRadius)
		if !ok || hit.Distance >= cfg.BoundingRadius {
			continue
		}
		depth := cfg.BoundingRadius - hit.Distance
		pos = pos.Add(hit.Normal.Mul(depth * cfg.Overshoot))
		penetrated = true
	}
	return pos, penetrated
}
