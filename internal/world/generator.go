package world

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
	"golang.org/x/sync/errgroup"
)

// Terrain shaping parameters. Height is a sum of simplex octaves whose
// sample coordinates are pushed around by a low-frequency Perlin warp
// field, which breaks up the grid-aligned look of plain octave noise.
const (
	SeaLevel = 8

	noiseOctaves     = 5
	noisePersistence = 0.5
	noiseLacunarity  = 2.2
	baseFrequency    = 0.1
	baseAmplitude    = 20.0

	warpFrequency = 0.05
	warpStrength  = 10.0

	// Decorrelates the two warp axes.
	warpOffsetX = 543.21
	warpOffsetZ = -123.45

	dirtDepth = 5
)

// Generator fills chunk columns from deterministic 2D noise. The same
// seed always produces the same world.
type Generator struct {
	base opensimplex.Noise
	warp *perlin.Perlin
}

// NewGenerator creates a terrain generator for the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		base: opensimplex.New(seed),
		warp: perlin.NewPerlin(2, 2, 3, seed),
	}
}

// HeightAt computes the terrain surface height at a world (x, z).
func (g *Generator) HeightAt(wx, wz int) int {
	fx := float64(wx)
	fz := float64(wz)

	dx := g.warp.Noise2D(fx*warpFrequency, fz*warpFrequency) * warpStrength
	dz := g.warp.Noise2D((fx+warpOffsetX)*warpFrequency, (fz+warpOffsetZ)*warpFrequency) * warpStrength

	total := 0.0
	frequency := baseFrequency
	amplitude := baseAmplitude
	for i := 0; i < noiseOctaves; i++ {
		total += g.base.Eval2(fx*frequency+dx, fz*frequency+dz) * amplitude
		amplitude *= noisePersistence
		frequency *= noiseLacunarity
	}

	return int(math.Floor(total)) + SeaLevel
}

// Populate fills a chunk column's voxels from the height field. It
// writes blocks only; lighting is seeded afterwards by the light
// engine.
func (g *Generator) Populate(c *Chunk) {
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			wx, _, wz := WorldCoords(c.Coord, lx, 0, lz)
			height := g.HeightAt(wx, wz)

			for ly := 0; ly < ChunkHeight; ly++ {
				k := BlockAir
				switch {
				case ly > height:
					if ly <= SeaLevel {
						k = BlockWater
					}
				case ly == height && ly > SeaLevel:
					k = BlockGrass
				case ly > height-dirtDepth:
					k = BlockDirt
				default:
					k = BlockStone
				}
				if k != BlockAir {
					c.setBlock(lx, ly, lz, k)
				}
			}
		}
	}
	c.MarkDirty()
}

// Generate builds the resident grid: size x size chunk columns
// centered on the origin. Columns generate in parallel; each worker
// owns its chunk until it is installed in the store.
func Generate(s *Store, g *Generator, size int) error {
	var eg errgroup.Group
	for x := -size / 2; x < (size+1)/2; x++ {
		for z := -size / 2; z < (size+1)/2; z++ {
			coord := ChunkCoord{X: x, Z: z}
			eg.Go(func() error {
				c := NewChunk(coord)
				g.Populate(c)
				s.AddChunk(c)
				return nil
			})
		}
	}
	return eg.Wait()
}
