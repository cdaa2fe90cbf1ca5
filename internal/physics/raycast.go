package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/world"
)

// MaxRaySteps bounds the grid traversal; at one cell per step this is
// also the reach limit in blocks along an axis.
const MaxRaySteps = 100

// RaycastResult holds the first non-air cell along a ray and the cell
// the ray was in just before entering it. The adjacent cell is the
// face neighbor used as the placement position.
type RaycastResult struct {
	Hit      bool
	HitPos   [3]int
	Adjacent [3]int
}

// Raycast walks the voxel grid from origin along dir using
// Amanatides-Woo DDA: at each step it advances across the nearest
// cell boundary, keeping per-axis crossing distances so cells are
// visited in exact ray order.
func Raycast(s *world.Store, origin, dir mgl32.Vec3) RaycastResult {
	if dir.LenSqr() < 1e-4 {
		return RaycastResult{}
	}

	cur := [3]int{floorI(origin.X()), floorI(origin.Y()), floorI(origin.Z())}
	step := [3]int{signI(dir.X()), signI(dir.Y()), signI(dir.Z())}

	tDelta := [3]float32{
		absInv(dir.X()), absInv(dir.Y()), absInv(dir.Z()),
	}
	var tMax [3]float32
	for a := 0; a < 3; a++ {
		switch {
		case dir[a] > 0:
			tMax[a] = (float32(cur[a]) + 1 - origin[a]) * tDelta[a]
		case dir[a] < 0:
			tMax[a] = (origin[a] - float32(cur[a])) * tDelta[a]
		default:
			tMax[a] = tDelta[a]
		}
	}

	var last [3]int
	for i := 0; i < MaxRaySteps; i++ {
		last = cur

		if tMax[0] < tMax[1] {
			if tMax[0] < tMax[2] {
				cur[0] += step[0]
				tMax[0] += tDelta[0]
			} else {
				cur[2] += step[2]
				tMax[2] += tDelta[2]
			}
		} else {
			if tMax[1] < tMax[2] {
				cur[1] += step[1]
				tMax[1] += tDelta[1]
			} else {
				cur[2] += step[2]
				tMax[2] += tDelta[2]
			}
		}

		if s.GetBlock(cur[0], cur[1], cur[2]) != world.BlockAir {
			return RaycastResult{Hit: true, HitPos: cur, Adjacent: last}
		}
	}
	return RaycastResult{}
}

func signI(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// absInv returns 1/|v|; +Inf when v is zero, which keeps the axis
// from ever being selected by the traversal.
func absInv(v float32) float32 {
	if v == 0 {
		return float32(math.Inf(1))
	}
	return 1 / float32(math.Abs(float64(v)))
}
