// Package physics resolves player movement against the voxel grid and
// picks blocks along view rays.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/world"
)

// Player bounding box dimensions, in blocks.
const (
	PlayerWidth    = 0.6
	PlayerHeight   = 1.8
	PlayerEyeLevel = 1.6

	// Keeps the resolved box from re-touching the face it was pushed
	// off of.
	collisionEpsilon = 1e-4
)

// CollisionResult reports which vertical contacts occurred while
// resolving a displacement.
type CollisionResult struct {
	HitGround  bool
	HitCeiling bool
}

// PlayerAABB returns the bounding box for a player standing at pos
// (feet-centered: pos is the bottom center of the box).
func PlayerAABB(pos mgl32.Vec3) (min, max mgl32.Vec3) {
	half := float32(PlayerWidth / 2)
	min = mgl32.Vec3{pos.X() - half, pos.Y(), pos.Z() - half}
	max = mgl32.Vec3{pos.X() + half, pos.Y() + PlayerHeight, pos.Z() + half}
	return min, max
}

// ResolveCollisions sweeps the player box through solid voxels one
// axis at a time, in X, Z, Y order. Each axis applies its
// displacement, then snaps the position out of any solid cell the box
// overlaps. Water is not solid. The returned position's box overlaps
// no solid block; vertical contacts are reported so the caller can
// zero vertical velocity and track ground state.
func ResolveCollisions(s *world.Store, pos, delta mgl32.Vec3) (mgl32.Vec3, CollisionResult) {
	var res CollisionResult
	half := float32(PlayerWidth / 2)

	pos[0] += delta[0]
	forEachOverlappingSolid(s, &pos, func(bx, by, bz int) {
		if delta[0] > 0 {
			pos[0] = float32(bx) - half - collisionEpsilon
		} else if delta[0] < 0 {
			pos[0] = float32(bx+1) + half + collisionEpsilon
		}
	})

	pos[2] += delta[2]
	forEachOverlappingSolid(s, &pos, func(bx, by, bz int) {
		if delta[2] > 0 {
			pos[2] = float32(bz) - half - collisionEpsilon
		} else if delta[2] < 0 {
			pos[2] = float32(bz+1) + half + collisionEpsilon
		}
	})

	pos[1] += delta[1]
	forEachOverlappingSolid(s, &pos, func(bx, by, bz int) {
		if delta[1] > 0 {
			pos[1] = float32(by) - PlayerHeight - collisionEpsilon
			res.HitCeiling = true
		} else if delta[1] < 0 {
			pos[1] = float32(by + 1)
			res.HitGround = true
		}
	})

	return pos, res
}

// forEachOverlappingSolid visits every solid cell whose unit AABB
// overlaps the player box, recomputing the box after each resolve so
// a single pass converges.
func forEachOverlappingSolid(s *world.Store, pos *mgl32.Vec3, resolve func(bx, by, bz int)) {
	min, max := PlayerAABB(*pos)
	for by := floorI(min.Y()); by <= floorI(max.Y()); by++ {
		for bx := floorI(min.X()); bx <= floorI(max.X()); bx++ {
			for bz := floorI(min.Z()); bz <= floorI(max.Z()); bz++ {
				if !s.GetBlock(bx, by, bz).Solid() {
					continue
				}
				if max.X() > float32(bx) && min.X() < float32(bx+1) &&
					max.Y() > float32(by) && min.Y() < float32(by+1) &&
					max.Z() > float32(bz) && min.Z() < float32(bz+1) {
					resolve(bx, by, bz)
					min, max = PlayerAABB(*pos)
				}
			}
		}
	}
}

func floorI(v float32) int {
	return int(math.Floor(float64(v)))
}
