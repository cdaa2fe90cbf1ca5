package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandvox/internal/config"
	"sandvox/internal/world"
)

func testConfig() config.Settings {
	cfg := config.Default()
	cfg.WorldChunks = 2
	cfg.MeshWorkers = 2
	cfg.MeshQueueSize = 64
	return cfg
}

func buildingCount(s *Session) int {
	n := 0
	for _, c := range s.Store.Chunks() {
		if c.Building() {
			n++
		}
	}
	return n
}

// settle ticks and drains until lighting has quiesced and every mesh
// job has completed, returning the set of chunks that came through
// the ready list.
func settle(t *testing.T, s *Session, timeout time.Duration) map[world.ChunkCoord]bool {
	t.Helper()
	seen := map[world.ChunkCoord]bool{}
	deadline := time.Now().Add(timeout)
	for {
		require.False(t, time.Now().After(deadline), "pipeline did not settle: %d meshed, %d pending light, %d dirty, %d building",
			len(seen), s.Lights.Pending(), len(s.Store.DirtyChunks()), buildingCount(s))

		s.Tick(1.0/60.0, Input{SelectSlot: -1})
		s.DrainReady(func(c *world.Chunk) { seen[c.Coord] = true })

		if s.Lights.Pending() == 0 && len(s.Store.DirtyChunks()) == 0 && buildingCount(s) == 0 {
			return seen
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionMeshesWorld(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	defer s.Close()

	chunks := s.Store.Chunks()
	require.Len(t, chunks, 4)

	seen := settle(t, s, 15*time.Second)
	assert.Len(t, seen, 4, "every chunk came through the ready list")

	for _, c := range chunks {
		assert.False(t, c.Building())
		assert.False(t, c.Dirty())
		assert.Nil(t, c.OpaqueMesh, "staging buffers released after upload")
		assert.Nil(t, c.TransparentMesh)
	}
}

func TestSessionEditRemeshes(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	defer s.Close()
	settle(t, s, 15*time.Second)

	s.Store.SetBlock(4, 100, 4, world.BlockStone)
	c := s.Store.Chunk(world.ChunkCoord{X: 0, Z: 0})
	require.True(t, c.Dirty(), "edit did not mark the chunk dirty")

	seen := settle(t, s, 15*time.Second)
	assert.True(t, seen[c.Coord], "edited chunk was not remeshed")
}

func TestSessionEditLightPrecedesMesh(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	defer s.Close()
	settle(t, s, 15*time.Second)

	// Cap a sky column high above the terrain. The lighting update
	// runs inside SetBlock, so the dark cell below is in place before
	// the remesh dispatch ever sees the chunk.
	s.Store.SetBlock(4, 100, 4, world.BlockStone)
	assert.Equal(t, uint8(0), s.Store.GetLight(4, 100, 4))
	assert.Equal(t, uint8(14), s.Store.GetLight(4, 99, 4))
}

func TestSessionPlayerSpawnsOnSurface(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	defer s.Close()

	p := s.Player.Position
	require.Greater(t, p.Y(), float32(0))
	b := s.Store.GetBlock(0, int(p.Y()), 0)
	assert.False(t, b.Solid(), "spawned inside %v", b)
}

func TestSessionHotbarInput(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	defer s.Close()

	s.Tick(1.0/60.0, Input{SelectSlot: 2})
	assert.Equal(t, 2, s.Inventory.SelectedSlot())

	s.Tick(1.0/60.0, Input{SelectSlot: -1, CycleSlots: 2})
	assert.Equal(t, 4, s.Inventory.SelectedSlot())

	s.Tick(1.0/60.0, Input{SelectSlot: -1, CycleSlots: -1})
	assert.Equal(t, 3, s.Inventory.SelectedSlot())
}

func TestSessionInitialLighting(t *testing.T) {
	s, err := NewSession(testConfig())
	require.NoError(t, err)
	defer s.Close()
	settle(t, s, 15*time.Second)

	// Above the terrain everything is sky-lit. The floor cell of the
	// origin column stays dark when it is buried terrain; when the
	// column is open water all the way down it is sky-lit instead.
	assert.Equal(t, uint8(world.MaxLight), s.Store.GetLight(0, 120, 0))
	wantFloor := uint8(0)
	if s.Store.GetBlock(0, 0, 0).Transparent() {
		wantFloor = world.MaxLight
	}
	assert.Equal(t, wantFloor, s.Store.GetLight(0, 0, 0))
}
