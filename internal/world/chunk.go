package world

const MaxLight = 15

// Chunk is a 16x128x16 column of voxels with a parallel light field.
// Voxel and light data are accessed by chunk-local coordinates; the
// store resolves world addressing.
type Chunk struct {
	Coord ChunkCoord

	blocks [ChunkVolume]BlockKind
	light  [ChunkVolume]uint8

	dirtyMesh bool
	building  bool

	// Staging buffers written by a mesher job, consumed by the render
	// thread on GPU upload. Interleaved position/uv/light floats.
	OpaqueMesh      []float32
	TransparentMesh []float32
}

// NewChunk creates an all-air chunk column at the given coordinate.
// New chunks start dirty so they get meshed once populated.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord, dirtyMesh: true}
}

func cellIndex(lx, ly, lz int) int {
	return (lx*ChunkHeight+ly)*ChunkSizeZ + lz
}

func inLocalBounds(lx, ly, lz int) bool {
	return lx >= 0 && lx < ChunkSizeX && ly >= 0 && ly < ChunkHeight && lz >= 0 && lz < ChunkSizeZ
}

// Block returns the voxel at local coordinates, or Air when out of
// bounds.
func (c *Chunk) Block(lx, ly, lz int) BlockKind {
	if !inLocalBounds(lx, ly, lz) {
		return BlockAir
	}
	return c.blocks[cellIndex(lx, ly, lz)]
}

// setBlock writes a voxel and reports whether the value changed.
func (c *Chunk) setBlock(lx, ly, lz int, k BlockKind) bool {
	if !inLocalBounds(lx, ly, lz) {
		return false
	}
	idx := cellIndex(lx, ly, lz)
	if c.blocks[idx] == k {
		return false
	}
	c.blocks[idx] = k
	c.dirtyMesh = true
	return true
}

// Light returns the stored light level at local coordinates, or 0
// when out of bounds.
func (c *Chunk) Light(lx, ly, lz int) uint8 {
	if !inLocalBounds(lx, ly, lz) {
		return 0
	}
	return c.light[cellIndex(lx, ly, lz)]
}

// SetLight writes a light level, clamped to [0, MaxLight]. A change
// marks the chunk for remeshing. The lighting engine is the only
// writer of the light field.
func (c *Chunk) SetLight(lx, ly, lz int, v uint8) {
	if !inLocalBounds(lx, ly, lz) {
		return
	}
	if v > MaxLight {
		v = MaxLight
	}
	idx := cellIndex(lx, ly, lz)
	if c.light[idx] == v {
		return
	}
	c.light[idx] = v
	c.dirtyMesh = true
}

// Dirty reports whether the chunk needs remeshing.
func (c *Chunk) Dirty() bool { return c.dirtyMesh }

// MarkDirty flags the chunk for remeshing.
func (c *Chunk) MarkDirty() { c.dirtyMesh = true }

// SetClean clears the remesh flag; called when a mesh job is
// dispatched.
func (c *Chunk) SetClean() { c.dirtyMesh = false }

// Building reports whether a mesher job is in flight for this chunk.
func (c *Chunk) Building() bool { return c.building }

// SetBuilding toggles the in-flight flag. Only the simulation thread
// touches it, so no two jobs ever run for one chunk concurrently.
func (c *Chunk) SetBuilding(b bool) { c.building = b }

// ReleaseStagedMeshes drops the staging buffers after GPU upload.
func (c *Chunk) ReleaseStagedMeshes() {
	c.OpaqueMesh = nil
	c.TransparentMesh = nil
}
