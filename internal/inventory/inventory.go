// Package inventory holds the hotbar data model: nine slots of block
// kinds and a selection cursor. Drawing the hotbar is the platform
// layer's business.
package inventory

import (
	"sandvox/internal/world"
)

const Slots = 9

// Inventory is the player's hotbar.
type Inventory struct {
	slots    [Slots]world.BlockKind
	selected int
}

// New returns a hotbar pre-filled with the placeable block kinds.
func New() *Inventory {
	inv := &Inventory{}
	inv.slots[0] = world.BlockStone
	inv.slots[1] = world.BlockDirt
	inv.slots[2] = world.BlockGrass
	inv.slots[3] = world.BlockWater
	return inv
}

// Selected returns the block kind in the selected slot.
func (inv *Inventory) Selected() world.BlockKind {
	return inv.slots[inv.selected]
}

// SelectedSlot returns the selection index.
func (inv *Inventory) SelectedSlot() int {
	return inv.selected
}

// Select moves the cursor to the given slot; out-of-range indices are
// ignored.
func (inv *Inventory) Select(i int) {
	if i >= 0 && i < Slots {
		inv.selected = i
	}
}

// Next advances the cursor, wrapping around.
func (inv *Inventory) Next() {
	inv.selected = (inv.selected + 1) % Slots
}

// Prev moves the cursor back, wrapping around.
func (inv *Inventory) Prev() {
	inv.selected = (inv.selected - 1 + Slots) % Slots
}

// Slot returns the block kind in slot i, or Air when out of range.
func (inv *Inventory) Slot(i int) world.BlockKind {
	if i < 0 || i >= Slots {
		return world.BlockAir
	}
	return inv.slots[i]
}
