package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/world"
)

const tickDt = 1.0 / 120.0

// groundedPlayer stands on a stone slab at y=4, settled onto it.
func groundedPlayer(t *testing.T) (*Player, *world.Store) {
	t.Helper()
	s := world.NewEmptyStore(2)
	for x := -8; x <= 8; x++ {
		for z := -8; z <= 8; z++ {
			s.SetBlock(x, 4, z, world.BlockStone)
		}
	}
	p := New(s, mgl32.Vec3{0.5, 5.01, 0.5})
	for i := 0; i < 30 && !p.OnGround; i++ {
		p.Update(tickDt, Input{})
	}
	if !p.OnGround {
		t.Fatal("player did not settle onto the slab")
	}
	return p, s
}

func TestJumpSetsVelocity(t *testing.T) {
	p, _ := groundedPlayer(t)

	p.Update(tickDt, Input{Jump: true})
	if math.Abs(float64(p.Velocity.Y()-JumpVelocity)) > 1e-4 {
		t.Fatalf("vy after jump tick = %v, want %v", p.Velocity.Y(), JumpVelocity)
	}
	if p.OnGround {
		t.Error("still grounded right after jumping")
	}
}

func TestJumpApexTime(t *testing.T) {
	p, _ := groundedPlayer(t)

	p.Update(tickDt, Input{Jump: true})
	elapsed := 0.0
	for p.Velocity.Y() > 0 {
		p.Update(tickDt, Input{})
		elapsed += tickDt
		if elapsed > 1 {
			t.Fatal("never reached apex")
		}
	}

	want := JumpVelocity / -Gravity // ~0.321s
	if math.Abs(elapsed-want) > 3*tickDt {
		t.Fatalf("apex at %.3fs, want about %.3fs", elapsed, want)
	}
}

func TestJumpRequiresGround(t *testing.T) {
	s := world.NewEmptyStore(2)
	p := New(s, mgl32.Vec3{0.5, 40, 0.5})

	p.Update(tickDt, Input{Jump: true})
	if p.Velocity.Y() > 0 {
		t.Fatalf("airborne jump set vy=%v", p.Velocity.Y())
	}
}

func TestDoubleTapTogglesFlight(t *testing.T) {
	p, _ := groundedPlayer(t)

	p.Update(tickDt, Input{JumpPressed: true, Jump: true})
	p.Update(tickDt, Input{})
	p.Update(tickDt, Input{JumpPressed: true, Jump: true})
	if !p.Flying {
		t.Fatal("quick double tap did not enable flight")
	}

	// Two more quick taps land back in normal mode.
	p.Update(tickDt, Input{JumpPressed: true, Jump: true})
	p.Update(tickDt, Input{JumpPressed: true, Jump: true})
	if p.Flying {
		t.Fatal("second double tap did not disable flight")
	}
}

func TestSlowTapsDoNotToggleFlight(t *testing.T) {
	p, _ := groundedPlayer(t)

	p.Update(tickDt, Input{JumpPressed: true, Jump: true})
	// Let the tap window lapse.
	for i := 0; i < 60; i++ {
		p.Update(tickDt, Input{})
	}
	p.Update(tickDt, Input{JumpPressed: true, Jump: true})
	if p.Flying {
		t.Fatal("slow taps toggled flight")
	}
}

func TestFlightIgnoresGravity(t *testing.T) {
	s := world.NewEmptyStore(2)
	p := New(s, mgl32.Vec3{0.5, 40, 0.5})
	p.Flying = true

	p.Update(tickDt, Input{})
	if p.Velocity.Y() != 0 {
		t.Fatalf("hovering vy = %v, want 0", p.Velocity.Y())
	}

	p.Update(tickDt, Input{Jump: true})
	if p.Velocity.Y() != FlySpeed {
		t.Fatalf("ascend vy = %v, want %v", p.Velocity.Y(), FlySpeed)
	}

	p.Update(tickDt, Input{Descend: true})
	if p.Velocity.Y() != -FlySpeed {
		t.Fatalf("descend vy = %v, want %v", p.Velocity.Y(), -FlySpeed)
	}
}

// waterPlayer floats with its head inside a water pocket.
func waterPlayer(t *testing.T) *Player {
	t.Helper()
	s := world.NewEmptyStore(2)
	s.SetBlock(0, 4, 0, world.BlockStone)
	for y := 5; y <= 7; y++ {
		s.SetBlock(0, y, 0, world.BlockWater)
	}
	p := New(s, mgl32.Vec3{0.5, 5.2, 0.5})
	p.Update(tickDt, Input{})
	if !p.InWater {
		t.Fatal("player head is not in water")
	}
	return p
}

func TestSwimVelocity(t *testing.T) {
	p := waterPlayer(t)
	p.Update(tickDt, Input{Jump: true})
	if p.Velocity.Y() != SwimVelocity {
		t.Fatalf("swim vy = %v, want %v", p.Velocity.Y(), SwimVelocity)
	}
}

func TestSinkSpeedClamped(t *testing.T) {
	p := waterPlayer(t)
	for i := 0; i < 300; i++ {
		p.Update(tickDt, Input{})
		if !p.InWater {
			break
		}
		if p.Velocity.Y() < MaxSinkSpeed {
			t.Fatalf("sink speed %v below clamp %v", p.Velocity.Y(), MaxSinkSpeed)
		}
	}
}

func TestHorizontalSpeed(t *testing.T) {
	p, _ := groundedPlayer(t)
	p.Update(tickDt, Input{Forward: true})

	h := math.Hypot(float64(p.Velocity.X()), float64(p.Velocity.Z()))
	if math.Abs(h-MoveSpeed) > 1e-3 {
		t.Fatalf("walk speed %v, want %v", h, MoveSpeed)
	}

	// Diagonal input normalizes instead of stacking.
	p.Update(tickDt, Input{Forward: true, Right: true})
	h = math.Hypot(float64(p.Velocity.X()), float64(p.Velocity.Z()))
	if math.Abs(h-MoveSpeed) > 1e-3 {
		t.Fatalf("diagonal speed %v, want %v", h, MoveSpeed)
	}
}

func TestPitchClamp(t *testing.T) {
	s := world.NewEmptyStore(2)
	p := New(s, mgl32.Vec3{0.5, 20, 0.5})

	p.ProcessMouseDelta(0, 10000, 0.1)
	if p.Pitch != 89 {
		t.Errorf("pitch %v, want clamp at 89", p.Pitch)
	}
	p.ProcessMouseDelta(0, -100000, 0.1)
	if p.Pitch != -89 {
		t.Errorf("pitch %v, want clamp at -89", p.Pitch)
	}
}

func TestBreakAndPlace(t *testing.T) {
	s := world.NewEmptyStore(2)
	for x := -4; x <= 4; x++ {
		for z := -4; z <= 4; z++ {
			s.SetBlock(x, 3, z, world.BlockStone)
			s.SetBlock(x, 4, z, world.BlockStone)
		}
	}
	p := New(s, mgl32.Vec3{0.5, 5.01, 0.5})
	p.Pitch = -60 // look down at the slab ahead

	r := p.Pick()
	if !r.Hit {
		t.Fatal("nothing under the crosshair")
	}

	p.BreakBlock()
	if b := s.GetBlock(r.HitPos[0], r.HitPos[1], r.HitPos[2]); b != world.BlockAir {
		t.Fatalf("break left %v", b)
	}

	r2 := p.Pick()
	if !r2.Hit {
		t.Fatal("nothing to place against")
	}
	p.PlaceBlock(world.BlockDirt)
	if b := s.GetBlock(r2.Adjacent[0], r2.Adjacent[1], r2.Adjacent[2]); b != world.BlockDirt {
		t.Fatalf("place left %v", b)
	}

	// Placing air is a no-op.
	p.PlaceBlock(world.BlockAir)
}
