// Package game wires the simulation together: world generation,
// lighting, the player, and the mesh-job pipeline, behind a
// Tick(dt, input) boundary the platform shim drives.
package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/config"
	"sandvox/internal/inventory"
	"sandvox/internal/light"
	"sandvox/internal/meshing"
	"sandvox/internal/player"
	"sandvox/internal/profiling"
	"sandvox/internal/world"
)

// Input is everything the platform layer feeds into one tick.
type Input struct {
	Move player.Input

	// Mouse deltas while the cursor is captured.
	MouseDX, MouseDY float64

	// Edge-triggered clicks.
	BreakBlock bool
	PlaceBlock bool

	// Hotbar: direct selection (-1 for none) and wheel steps.
	SelectSlot int
	CycleSlots int
}

// Session owns the simulation state.
type Session struct {
	Store     *world.Store
	Lights    *light.Engine
	Player    *player.Player
	Inventory *inventory.Inventory

	pool *meshing.Pool
	cfg  config.Settings
}

// NewSession generates the world, seeds lighting, and starts the
// mesher pool.
func NewSession(cfg config.Settings) (*Session, error) {
	store := world.NewStore()
	gen := world.NewGenerator(cfg.WorldSeed)
	if err := world.Generate(store, gen, cfg.WorldChunks); err != nil {
		return nil, err
	}

	lights := light.NewEngine(store)
	lights.SeedSky()
	store.AttachLights(lights)

	pool := meshing.NewPool(store, cfg.MeshWorkers, cfg.MeshQueueSize, meshing.Options{
		DoubleSidedWaterTop: cfg.DoubleSidedWaterTop,
	})

	spawn := spawnPosition(gen)
	return &Session{
		Store:     store,
		Lights:    lights,
		Player:    player.New(store, spawn),
		Inventory: inventory.New(),
		pool:      pool,
		cfg:       cfg,
	}, nil
}

// spawnPosition drops the player onto the terrain surface at the
// origin.
func spawnPosition(gen *world.Generator) mgl32.Vec3 {
	h := gen.HeightAt(0, 0)
	if h < world.SeaLevel {
		h = world.SeaLevel
	}
	y := math.Min(float64(h+1), world.ChunkHeight-2)
	return mgl32.Vec3{0.5, float32(y), 0.5}
}

// Tick advances the simulation one step. Edits (and the lighting they
// trigger) complete before mesh jobs are dispatched, so every job
// observes the post-edit light field.
func (s *Session) Tick(dt float64, in Input) {
	defer profiling.Track("game.Tick")()

	s.Lights.Drain(s.cfg.LightBudget)

	if in.MouseDX != 0 || in.MouseDY != 0 {
		s.Player.ProcessMouseDelta(in.MouseDX, in.MouseDY, s.cfg.MouseSensitivity)
	}

	s.Player.Update(dt, in.Move)

	if in.SelectSlot >= 0 {
		s.Inventory.Select(in.SelectSlot)
	}
	for i := 0; i < in.CycleSlots; i++ {
		s.Inventory.Next()
	}
	for i := 0; i > in.CycleSlots; i-- {
		s.Inventory.Prev()
	}

	if in.BreakBlock {
		s.Player.BreakBlock()
	}
	if in.PlaceBlock {
		s.Player.PlaceBlock(s.Inventory.Selected())
	}

	s.dispatchMeshJobs()
}

// dispatchMeshJobs scans for chunks needing a remesh and hands them
// to the pool. The building flag keeps at most one job in flight per
// chunk; a full queue re-marks the chunk for next tick.
func (s *Session) dispatchMeshJobs() {
	defer profiling.Track("game.DispatchMeshJobs")()
	for _, c := range s.Store.DirtyChunks() {
		if c.Building() {
			continue
		}
		c.SetBuilding(true)
		c.SetClean()
		if !s.pool.Submit(c) {
			c.SetBuilding(false)
			c.MarkDirty()
		}
	}
}

// DrainReady hands finished chunks to upload, then releases their
// staging buffers and clears the building flag. Call once per tick
// from the render thread.
func (s *Session) DrainReady(upload func(*world.Chunk)) {
	s.pool.DrainReady(func(c *world.Chunk) {
		if upload != nil {
			upload(c)
		}
		c.ReleaseStagedMeshes()
		c.SetBuilding(false)
	})
}

// Close stops the mesher pool.
func (s *Session) Close() {
	s.pool.Shutdown()
}
