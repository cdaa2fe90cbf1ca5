package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/physics"
	"sandvox/internal/world"
)

// Update advances the player one tick: flight toggle, environment
// sampling, locomotion, and collision resolution.
func (p *Player) Update(dt float64, in Input) {
	p.updateFlyToggle(dt, in)

	// Environment: in water when the head cell holds water.
	eye := p.EyePosition()
	head := p.store.GetBlock(floorI(eye.X()), floorI(eye.Y()), floorI(eye.Z()))
	p.InWater = head == world.BlockWater

	move := p.inputDirection(in)

	switch {
	case p.Flying:
		p.Velocity[1] = 0
		if in.Jump {
			p.Velocity[1] = FlySpeed
		} else if in.Descend {
			p.Velocity[1] = -FlySpeed
		}
		p.applyHorizontal(move, FlySpeed)

	case p.InWater:
		p.OnGround = false
		p.Velocity[1] += float32(WaterGravity * dt)
		if in.Jump {
			p.Velocity[1] = SwimVelocity
		}
		if p.Velocity[1] < MaxSinkSpeed {
			p.Velocity[1] = MaxSinkSpeed
		}
		p.applyHorizontal(move, MoveSpeed*WaterSpeedFactor)

	default:
		p.Velocity[1] += float32(Gravity * dt)
		if in.Jump && p.OnGround {
			p.Velocity[1] = JumpVelocity
			p.OnGround = false
		}
		p.applyHorizontal(move, MoveSpeed)
	}

	delta := p.Velocity.Mul(float32(dt))
	pos, res := physics.ResolveCollisions(p.store, p.Position, delta)
	p.Position = pos

	if res.HitGround || res.HitCeiling {
		p.Velocity[1] = 0
	}
	p.OnGround = res.HitGround && !p.Flying
}

// updateFlyToggle runs the double-tap detector: two jump presses
// within the tap window flip flight mode.
func (p *Player) updateFlyToggle(dt float64, in Input) {
	if p.lastJumpTap >= 0 {
		p.lastJumpTap += dt
		if p.lastJumpTap > flyTapWindow {
			p.lastJumpTap = -1
		}
	}
	if in.JumpPressed {
		if p.lastJumpTap >= 0 && p.lastJumpTap < flyTapWindow {
			p.Flying = !p.Flying
			if p.Flying {
				p.Velocity[1] = 0
			}
			p.lastJumpTap = -1
		} else {
			p.lastJumpTap = 0
		}
	}
}

// inputDirection maps WASD intent onto the horizontal camera basis.
func (p *Player) inputDirection(in Input) mgl32.Vec3 {
	var dir mgl32.Vec3
	if in.Forward {
		dir = dir.Add(p.flatFront())
	}
	if in.Backward {
		dir = dir.Sub(p.flatFront())
	}
	if in.Right {
		dir = dir.Add(p.flatRight())
	}
	if in.Left {
		dir = dir.Sub(p.flatRight())
	}
	return dir
}

// applyHorizontal sets the horizontal velocity to the normalized
// movement direction at the given speed.
func (p *Player) applyHorizontal(dir mgl32.Vec3, speed float32) {
	if dir.LenSqr() > 0 {
		dir = dir.Normalize().Mul(speed)
	}
	p.Velocity[0] = dir.X()
	p.Velocity[2] = dir.Z()
}

func floorI(v float32) int {
	return int(math.Floor(float64(v)))
}
