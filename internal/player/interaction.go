package player

import (
	"sandvox/internal/physics"
	"sandvox/internal/world"
)

// Pick casts a ray from the eye along the view direction and returns
// the first hit cell plus its entry neighbor.
func (p *Player) Pick() physics.RaycastResult {
	return physics.Raycast(p.store, p.EyePosition(), p.Front())
}

// BreakBlock removes the block under the crosshair.
func (p *Player) BreakBlock() {
	if r := p.Pick(); r.Hit {
		p.store.SetBlock(r.HitPos[0], r.HitPos[1], r.HitPos[2], world.BlockAir)
	}
}

// PlaceBlock puts k into the cell the crosshair ray entered the hit
// block from. Placing air is a no-op.
func (p *Player) PlaceBlock(k world.BlockKind) {
	if k == world.BlockAir {
		return
	}
	if r := p.Pick(); r.Hit {
		p.store.SetBlock(r.Adjacent[0], r.Adjacent[1], r.Adjacent[2], k)
	}
}
