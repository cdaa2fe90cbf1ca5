package inventory

import (
	"testing"

	"sandvox/internal/world"
)

func TestDefaultSlots(t *testing.T) {
	inv := New()
	want := []world.BlockKind{world.BlockStone, world.BlockDirt, world.BlockGrass, world.BlockWater}
	for i, k := range want {
		if inv.Slot(i) != k {
			t.Errorf("slot %d = %v, want %v", i, inv.Slot(i), k)
		}
	}
	for i := len(want); i < Slots; i++ {
		if inv.Slot(i) != world.BlockAir {
			t.Errorf("slot %d = %v, want air", i, inv.Slot(i))
		}
	}
}

func TestSelectionWraps(t *testing.T) {
	inv := New()
	inv.Prev()
	if inv.SelectedSlot() != Slots-1 {
		t.Errorf("prev from 0 = %d, want %d", inv.SelectedSlot(), Slots-1)
	}
	inv.Next()
	if inv.SelectedSlot() != 0 {
		t.Errorf("next wrap = %d, want 0", inv.SelectedSlot())
	}
}

func TestSelectBounds(t *testing.T) {
	inv := New()
	inv.Select(5)
	if inv.SelectedSlot() != 5 {
		t.Errorf("select = %d, want 5", inv.SelectedSlot())
	}
	inv.Select(-1)
	inv.Select(Slots)
	if inv.SelectedSlot() != 5 {
		t.Errorf("out-of-range select moved cursor to %d", inv.SelectedSlot())
	}
	if inv.Selected() != world.BlockAir {
		t.Errorf("slot 5 holds %v, want air", inv.Selected())
	}
}

func TestSlotOutOfRange(t *testing.T) {
	inv := New()
	if inv.Slot(-1) != world.BlockAir || inv.Slot(Slots) != world.BlockAir {
		t.Error("out-of-range slots should read as air")
	}
}
