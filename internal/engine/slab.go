package engine

import (
	"fmt"

	"fortio.org/safecast"
)

// slabBlockSize is how many adjacency nodes a single pool growth adds.
// Adjacency churn per edit can reach one node per cell of a range, so nodes
// come from fixed-size blocks and are recycled through a free list instead of
// going back to the allocator.
const slabBlockSize = 1024

// nodeRef addresses a node inside the slab. The zero ref is the nil list
// terminator; slot 0 of the backing slice is reserved for it.
type nodeRef int32

const nilRef nodeRef = 0

type slabNode struct {
	data int32 // cell index of a dependent
	next nodeRef
}

// slab is the arena all adjacency-list nodes live in. Nodes are handed out
// from the free list and returned to it on removal; backing memory is never
// released before process exit.
type slab struct {
	nodes []slabNode
	free  nodeRef
}

func newSlab() *slab {
	return &slab{nodes: make([]slabNode, 1, slabBlockSize+1)}
}

// grow links a fresh block of nodes onto the free list.
func (s *slab) grow() {
	start := len(s.nodes)
	last := start + slabBlockSize - 1
	if _, err := safecast.Conv[nodeRef](last); err != nil {
		panic(fmt.Errorf("adjacency slab overflow: %w", err))
	}
	for i := start; i < last; i++ {
		s.nodes = append(s.nodes, slabNode{next: nodeRef(i + 1)})
	}
	s.nodes = append(s.nodes, slabNode{next: s.free})
	s.free = nodeRef(start)
}

// alloc takes a node off the free list, filling a fresh block in first when
// the list is empty.
func (s *slab) alloc(data int32, next nodeRef) nodeRef {
	if s.free == nilRef {
		s.grow()
	}
	ref := s.free
	n := &s.nodes[ref]
	s.free = n.next
	n.data = data
	n.next = next
	return ref
}

// release prepends the node to the free list.
func (s *slab) release(ref nodeRef) {
	s.nodes[ref].next = s.free
	s.free = ref
}

func (s *slab) at(ref nodeRef) *slabNode { return &s.nodes[ref] }
