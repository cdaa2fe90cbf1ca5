package world

// BlockKind identifies a voxel type.
type BlockKind uint8

const (
	BlockAir BlockKind = iota
	BlockStone
	BlockDirt
	BlockGrass
	BlockWater
)

// Solid reports whether the block participates in collision.
// Water is swimmable, not solid.
func (k BlockKind) Solid() bool {
	switch k {
	case BlockStone, BlockDirt, BlockGrass:
		return true
	default:
		return false
	}
}

// Transparent reports whether the block does not fully occlude its
// neighbors for meshing and light propagation.
func (k BlockKind) Transparent() bool {
	return k == BlockAir || k == BlockWater
}

func (k BlockKind) String() string {
	switch k {
	case BlockAir:
		return "air"
	case BlockStone:
		return "stone"
	case BlockDirt:
		return "dirt"
	case BlockGrass:
		return "grass"
	case BlockWater:
		return "water"
	default:
		return "unknown"
	}
}
