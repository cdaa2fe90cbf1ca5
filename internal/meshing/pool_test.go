package meshing

import (
	"testing"
	"time"

	"sandvox/internal/world"
)

func TestPoolMeshesSubmittedChunk(t *testing.T) {
	s := world.NewEmptyStore(1)
	s.SetBlock(4, 50, 4, world.BlockStone)
	c := s.Chunk(world.ChunkCoord{X: 0, Z: 0})

	p := NewPool(s, 2, 8, Options{})
	defer p.Shutdown()

	if !p.Submit(c) {
		t.Fatal("submit rejected with empty queue")
	}

	var got []*world.Chunk
	deadline := time.Now().Add(5 * time.Second)
	for len(got) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("mesh job never completed")
		}
		p.DrainReady(func(c *world.Chunk) { got = append(got, c) })
		time.Sleep(time.Millisecond)
	}

	if got[0] != c {
		t.Fatal("ready list delivered the wrong chunk")
	}
	if len(c.OpaqueMesh) == 0 {
		t.Fatal("job did not stage an opaque mesh")
	}
	if faceCount(c.OpaqueMesh) != 6 {
		t.Fatalf("staged mesh has %d faces, want 6", faceCount(c.OpaqueMesh))
	}
}

func TestPoolSubmitRejectsWhenFull(t *testing.T) {
	s := world.NewEmptyStore(1)
	c := s.Chunk(world.ChunkCoord{X: 0, Z: 0})

	// Zero workers: nothing drains the queue.
	p := NewPool(s, 0, 1, Options{})
	defer p.Shutdown()

	if !p.Submit(c) {
		t.Fatal("first submit should fit the queue")
	}
	if p.Submit(c) {
		t.Fatal("second submit should report a full queue")
	}
	if p.QueueLen() != 1 {
		t.Fatalf("queue length %d, want 1", p.QueueLen())
	}
}
