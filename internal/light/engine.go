// Package light maintains the per-voxel light field: a single scalar
// channel in [0, 15] where 15 is full daylight. Light spreads by BFS
// flood fill over the 6-neighborhood, losing one level per step, and
// is removed by a BFS darkening pass that re-propagates from
// surviving sources.
package light

import (
	"sandvox/internal/profiling"
	"sandvox/internal/world"
)

// DefaultDrainBudget bounds how many queue pops the initial sky fill
// performs per tick, so startup lighting spreads across frames
// instead of stalling the first one.
const DefaultDrainBudget = 20000

// Node is the unit of work enqueued during flood fill.
type Node struct {
	X, Y, Z int
	Level   uint8
}

// Engine runs lighting over a chunk store. It is the sole writer of
// the light field. Edit-driven updates run synchronously on the
// simulation thread; only the initial sky fill is deferred through
// the pending queue.
type Engine struct {
	store   *world.Store
	pending []Node
}

// NewEngine creates a lighting engine over the given store.
func NewEngine(s *world.Store) *Engine {
	return &Engine{store: s}
}

var neighborOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// SeedSky performs the initial seeding after world generation: every
// column is scanned top-down, transparent cells receive full sky
// light, and the scan stops at the first opaque cell. Seeds that can
// actually push light somewhere (a transparent neighbor dimmer than
// their own level minus one) accumulate in the pending queue; cells
// deep in open sky are skipped since popping them would be a no-op.
// Call Drain each tick to spread the queue.
//
// Runs before the mesher pool starts, so chunk-local access here
// needs no store lock.
func (e *Engine) SeedSky() {
	chunks := e.store.Chunks()
	for _, c := range chunks {
		for lx := 0; lx < world.ChunkSizeX; lx++ {
			for lz := 0; lz < world.ChunkSizeZ; lz++ {
				for ly := world.ChunkHeight - 1; ly >= 0; ly-- {
					if !c.Block(lx, ly, lz).Transparent() {
						break
					}
					c.SetLight(lx, ly, lz, world.MaxLight)
				}
			}
		}
	}
	for _, c := range chunks {
		for lx := 0; lx < world.ChunkSizeX; lx++ {
			for lz := 0; lz < world.ChunkSizeZ; lz++ {
				for ly := world.ChunkHeight - 1; ly >= 0; ly-- {
					if !c.Block(lx, ly, lz).Transparent() {
						break
					}
					wx, wy, wz := world.WorldCoords(c.Coord, lx, ly, lz)
					if e.hasDimmerNeighbor(wx, wy, wz, world.MaxLight) {
						e.pending = append(e.pending, Node{wx, wy, wz, world.MaxLight})
					}
				}
			}
		}
	}
}

// hasDimmerNeighbor reports whether any face neighbor is transparent
// with light below level-1, i.e. whether propagating from this cell
// would do anything.
func (e *Engine) hasDimmerNeighbor(wx, wy, wz int, level uint8) bool {
	for _, d := range neighborOffsets {
		nx, ny, nz := wx+d[0], wy+d[1], wz+d[2]
		if ny < 0 || ny >= world.ChunkHeight {
			continue
		}
		if !e.store.GetBlock(nx, ny, nz).Transparent() {
			continue
		}
		if e.store.GetLight(nx, ny, nz) < level-1 {
			return true
		}
	}
	return false
}

// Pending returns the number of queued propagation nodes.
func (e *Engine) Pending() int { return len(e.pending) }

// Drain pops at most budget nodes off the pending queue and
// propagates them. Returns the number of pops performed.
func (e *Engine) Drain(budget int) int {
	if len(e.pending) == 0 {
		return 0
	}
	defer profiling.Track("light.Drain")()
	q := e.pending
	i := 0
	for i < len(q) && i < budget {
		n := q[i]
		i++
		q = e.spread(n, q)
	}
	e.pending = q[i:]
	return i
}

// spread pushes a node's light onto dimmer transparent neighbors,
// appending new work to q.
func (e *Engine) spread(n Node, q []Node) []Node {
	if n.Level <= 1 {
		return q
	}
	next := n.Level - 1
	for _, d := range neighborOffsets {
		nx, ny, nz := n.X+d[0], n.Y+d[1], n.Z+d[2]
		if ny < 0 || ny >= world.ChunkHeight {
			continue
		}
		if !e.store.GetBlock(nx, ny, nz).Transparent() {
			continue
		}
		// Absent chunks read as full sky light and are never dimmer.
		if e.store.GetLight(nx, ny, nz) >= next {
			continue
		}
		e.store.SetLight(nx, ny, nz, next)
		q = append(q, Node{nx, ny, nz, next})
	}
	return q
}

// propagate runs a seed queue to completion.
func (e *Engine) propagate(q []Node) {
	for i := 0; i < len(q); i++ {
		q = e.spread(q[i], q)
	}
}

// removeAndRefill drains a darkening queue, clearing every cell whose
// light came from the removed source, then feeds the surviving
// brighter frontier back into propagation so independent sources
// refill the darkened volume.
func (e *Engine) removeAndRefill(q []Node) {
	var refill []Node
	for i := 0; i < len(q); i++ {
		n := q[i]
		for _, d := range neighborOffsets {
			nx, ny, nz := n.X+d[0], n.Y+d[1], n.Z+d[2]
			if ny < 0 || ny >= world.ChunkHeight {
				continue
			}
			lv := e.store.GetLight(nx, ny, nz)
			if lv == 0 {
				continue
			}
			if lv < n.Level {
				e.store.SetLight(nx, ny, nz, 0)
				q = append(q, Node{nx, ny, nz, lv})
			} else {
				refill = append(refill, Node{nx, ny, nz, lv})
			}
		}
	}
	e.propagate(refill)
}

// skyOpen reports whether the column from fromY up to the top of the
// world is entirely transparent.
func (e *Engine) skyOpen(wx, fromY, wz int) bool {
	for y := fromY; y < world.ChunkHeight; y++ {
		if !e.store.GetBlock(wx, y, wz).Transparent() {
			return false
		}
	}
	return true
}

// BlockChanged implements world.LightUpdater. It runs the edit
// protocol for a voxel write and completes before returning, so any
// mesh job dispatched in the same tick observes the post-edit light
// field.
func (e *Engine) BlockChanged(wx, wy, wz int, old, now world.BlockKind) {
	wasTransparent := old.Transparent()
	isTransparent := now.Transparent()
	if wasTransparent == isTransparent {
		return
	}

	// An edit invalidates any still-queued initial fill: stale queued
	// nodes would otherwise overwrite the edit's local result. The
	// cost is visually incomplete startup lighting near a very early
	// edit; the world relights correctly around every edit from here
	// on.
	e.pending = e.pending[:0]

	if !isTransparent {
		e.darken(wx, wy, wz)
	} else {
		e.relight(wx, wy, wz)
	}
}

// darken handles a transparent cell turning opaque.
func (e *Engine) darken(wx, wy, wz int) {
	old := e.store.GetLight(wx, wy, wz)
	e.store.SetLight(wx, wy, wz, 0)
	removal := []Node{{wx, wy, wz, old}}

	// If the cell was capping a sky column, the cells below lose
	// their sky seeding: clear the run of full-light transparent
	// cells underneath so the removal pass can rebuild from real
	// sources.
	if e.skyOpen(wx, wy+1, wz) {
		for y := wy - 1; y >= 0; y-- {
			if !e.store.GetBlock(wx, y, wz).Transparent() {
				break
			}
			if e.store.GetLight(wx, y, wz) != world.MaxLight {
				break
			}
			e.store.SetLight(wx, y, wz, 0)
			removal = append(removal, Node{wx, y, wz, world.MaxLight})
		}
	}

	e.removeAndRefill(removal)
}

// relight handles an opaque cell turning transparent.
func (e *Engine) relight(wx, wy, wz int) {
	var seeds []Node

	// A newly opened sky column floods with full light down to the
	// next opaque cell.
	if e.skyOpen(wx, wy+1, wz) {
		for y := wy; y >= 0; y-- {
			if !e.store.GetBlock(wx, y, wz).Transparent() {
				break
			}
			e.store.SetLight(wx, y, wz, world.MaxLight)
			seeds = append(seeds, Node{wx, y, wz, world.MaxLight})
		}
	}

	// Otherwise the strongest neighbor feeds the cell.
	best := uint8(0)
	for _, d := range neighborOffsets {
		ny := wy + d[1]
		if ny < 0 || ny >= world.ChunkHeight {
			continue
		}
		if lv := e.store.GetLight(wx+d[0], ny, wz+d[2]); lv > best {
			best = lv
		}
	}
	if best > 1 && e.store.GetLight(wx, wy, wz) < best-1 {
		e.store.SetLight(wx, wy, wz, best-1)
		seeds = append(seeds, Node{wx, wy, wz, best - 1})
	}

	e.propagate(seeds)
}
