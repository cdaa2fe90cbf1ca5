// Package player implements the player controller: walking, swimming
// and flying locomotion over the collision resolver, view direction,
// and block interaction through the raycaster.
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/physics"
	"sandvox/internal/world"
)

// Locomotion constants, in block-units per second (or per second
// squared for the gravities).
const (
	Gravity      = -28.0
	JumpVelocity = 9.0
	MoveSpeed    = 5.0
	FlySpeed     = 10.0

	WaterGravity     = -6.0
	SwimVelocity     = 3.0
	MaxSinkSpeed     = -4.0
	WaterSpeedFactor = 0.6

	// Double-tap window for toggling flight, in seconds.
	flyTapWindow = 0.3

	pitchLimit = 89.0
)

// Input is one tick's worth of movement intent, already decoupled
// from physical keys.
type Input struct {
	Forward, Backward, Left, Right bool
	Jump, Descend                  bool

	// JumpPressed is edge-triggered: true only on the tick the jump
	// key went down. Drives the double-tap flight toggle.
	JumpPressed bool
}

// Player holds position, velocity and movement state. Position is the
// bottom center of the bounding box; the eye sits EyeLevel above it.
type Player struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3

	Yaw   float64 // degrees, -90 looks down -z
	Pitch float64 // degrees, clamped to ±pitchLimit

	OnGround bool
	InWater  bool
	Flying   bool

	store       *world.Store
	lastJumpTap float64 // seconds since first tap; -1 when idle
}

// New creates a player at the given spawn position.
func New(store *world.Store, spawn mgl32.Vec3) *Player {
	return &Player{
		Position:    spawn,
		Yaw:         -90,
		store:       store,
		lastJumpTap: -1,
	}
}

// EyePosition returns the camera origin.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, physics.PlayerEyeLevel, 0})
}

// Front returns the normalized view direction from yaw and pitch.
func (p *Player) Front() mgl32.Vec3 {
	yaw := p.Yaw * math.Pi / 180
	pitch := p.Pitch * math.Pi / 180
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// flatFront and flatRight are the horizontal movement basis.
func (p *Player) flatFront() mgl32.Vec3 {
	yaw := p.Yaw * math.Pi / 180
	return mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(math.Sin(yaw))}
}

func (p *Player) flatRight() mgl32.Vec3 {
	f := p.flatFront()
	return f.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// ProcessMouseDelta applies a mouse movement to yaw/pitch with the
// given sensitivity, clamping pitch short of vertical.
func (p *Player) ProcessMouseDelta(dx, dy, sensitivity float64) {
	p.Yaw += dx * sensitivity
	p.Pitch += dy * sensitivity
	if p.Pitch > pitchLimit {
		p.Pitch = pitchLimit
	}
	if p.Pitch < -pitchLimit {
		p.Pitch = -pitchLimit
	}
}

// ViewMatrix builds the camera view matrix from the eye position and
// view direction.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	eye := p.EyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.Front()), mgl32.Vec3{0, 1, 0})
}
