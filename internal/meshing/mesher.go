// Package meshing turns chunk voxel data into triangle vertex streams
// for GPU rendering. Faces are culled against neighbor transparency,
// take their brightness from the cell they face, and split into an
// opaque stream and a transparent (water) stream per chunk.
package meshing

import (
	"sandvox/internal/world"
)

// VertexStride is the number of float32 per vertex:
// position x,y,z; uv u,v; light.
const VertexStride = 6

// Face indices, also used to pick grass tiles.
const (
	FaceFront  = 0 // +z
	FaceBack   = 1 // -z
	FaceTop    = 2 // +y
	FaceBottom = 3 // -y
	FaceRight  = 4 // +x
	FaceLeft   = 5 // -x
)

var faceNeighbors = [6][3]int{
	{0, 0, 1}, {0, 0, -1}, {0, 1, 0}, {0, -1, 0}, {1, 0, 0}, {-1, 0, 0},
}

// Four corners per face, wound so the outward normal points at the
// neighbor. Coordinates are the unit cube in the block's local frame.
var faceCorners = [6][4][3]float32{
	{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, // front  (+z)
	{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}, // back   (-z)
	{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}, // top    (+y)
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, // bottom (-y)
	{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, // right  (+x)
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, // left   (-x)
}

// waterSurfaceDrop is how far the top of a water surface sinks below
// the block boundary when air sits above it.
const waterSurfaceDrop = float32(0.2)

// Options tunes mesh generation.
type Options struct {
	// DoubleSidedWaterTop additionally emits the water top face with
	// reversed winding, making the surface visible from below.
	DoubleSidedWaterTop bool
}

// BuildChunkMesh produces the two vertex streams for one chunk.
// Vertex positions are chunk-local; the draw call translates by the
// chunk origin. Neighbor lookups may cross into adjacent chunks via
// the store; it only reads, and only this chunk's staging buffers are
// ever written by the caller.
func BuildChunkMesh(s *world.Store, c *world.Chunk, opts Options) (opaque, transparent []float32) {
	baseX := c.Coord.X * world.ChunkSizeX
	baseZ := c.Coord.Z * world.ChunkSizeZ

	// All reads go through the store so the job sees each cell under
	// the store's lock, even while the simulation thread edits.
	blockAt := func(lx, ly, lz int) world.BlockKind {
		return s.GetBlock(baseX+lx, ly, baseZ+lz)
	}
	lightAt := func(lx, ly, lz int) uint8 {
		return s.GetLight(baseX+lx, ly, baseZ+lz)
	}

	for lx := 0; lx < world.ChunkSizeX; lx++ {
		for ly := 0; ly < world.ChunkHeight; ly++ {
			for lz := 0; lz < world.ChunkSizeZ; lz++ {
				b := blockAt(lx, ly, lz)
				if b == world.BlockAir {
					continue
				}
				isWater := b == world.BlockWater

				for face := 0; face < 6; face++ {
					d := faceNeighbors[face]
					nb := blockAt(lx+d[0], ly+d[1], lz+d[2])

					// Water hides faces against itself but still draws
					// against air and solids; opaque blocks draw only
					// against transparent neighbors.
					if isWater {
						if nb == world.BlockWater {
							continue
						}
					} else if !nb.Transparent() {
						continue
					}

					// The face takes the light of the cell it faces.
					light := float32(lightAt(lx+d[0], ly+d[1], lz+d[2])) / float32(world.MaxLight)

					u0 := float32(tileFor(b, face)) * TileWidth
					u1 := u0 + TileWidth

					var vx, vy, vz [4]float32
					for i := 0; i < 4; i++ {
						corner := faceCorners[face][i]
						vx[i] = float32(lx) + corner[0]
						vy[i] = float32(ly) + corner[1]
						vz[i] = float32(lz) + corner[2]
					}

					// Sink the exposed water surface.
					if isWater && blockAt(lx, ly+1, lz) == world.BlockAir {
						for i := 0; i < 4; i++ {
							if faceCorners[face][i][1] == 1 {
								vy[i] -= waterSurfaceDrop
							}
						}
					}

					us := [4]float32{u0, u1, u1, u0}
					vs := [4]float32{0, 0, 1, 1}

					dst := &opaque
					if isWater {
						dst = &transparent
					}
					emitQuad(dst, vx, vy, vz, us, vs, light)
					if isWater && face == FaceTop && opts.DoubleSidedWaterTop {
						emitQuadReversed(dst, vx, vy, vz, us, vs, light)
					}
				}
			}
		}
	}
	return opaque, transparent
}

// emitQuad appends the two triangles v0-v1-v2 and v0-v2-v3.
func emitQuad(dst *[]float32, vx, vy, vz, us, vs [4]float32, light float32) {
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		*dst = append(*dst, vx[i], vy[i], vz[i], us[i], vs[i], light)
	}
}

// emitQuadReversed appends the same quad with opposite winding.
func emitQuadReversed(dst *[]float32, vx, vy, vz, us, vs [4]float32, light float32) {
	for _, i := range [6]int{0, 2, 1, 0, 3, 2} {
		*dst = append(*dst, vx[i], vy[i], vz[i], us[i], vs[i], light)
	}
}
