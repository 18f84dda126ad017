package engine

import "testing"

func TestSlabAllocGrowth(t *testing.T) {
	s := newSlab()
	if s.free != nilRef {
		t.Fatalf("fresh slab should have an empty free list")
	}
	ref := s.alloc(42, nilRef)
	if ref == nilRef {
		t.Fatalf("alloc returned the nil ref")
	}
	if got := s.at(ref).data; got != 42 {
		t.Fatalf("node data = %d, want 42", got)
	}
	if len(s.nodes) != slabBlockSize+1 {
		t.Fatalf("backing slice length = %d, want %d", len(s.nodes), slabBlockSize+1)
	}
}

func TestSlabFreeListReuse(t *testing.T) {
	s := newSlab()
	a := s.alloc(1, nilRef)
	s.release(a)
	b := s.alloc(2, nilRef)
	if a != b {
		t.Fatalf("released node not reused: got %d, want %d", b, a)
	}
}

func TestSlabSecondBlock(t *testing.T) {
	s := newSlab()
	refs := make([]nodeRef, 0, slabBlockSize+1)
	for i := 0; i < slabBlockSize+1; i++ {
		refs = append(refs, s.alloc(int32(i), nilRef))
	}
	if len(s.nodes) != 2*slabBlockSize+1 {
		t.Fatalf("backing slice length = %d, want %d", len(s.nodes), 2*slabBlockSize+1)
	}
	seen := make(map[nodeRef]bool, len(refs))
	for _, r := range refs {
		if seen[r] {
			t.Fatalf("ref %d handed out twice", r)
		}
		seen[r] = true
	}
}

func TestSlabChaining(t *testing.T) {
	s := newSlab()
	head := s.alloc(1, nilRef)
	head = s.alloc(2, head)
	head = s.alloc(3, head)

	var got []int32
	for ref := head; ref != nilRef; ref = s.at(ref).next {
		got = append(got, s.at(ref).data)
	}
	want := []int32{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list = %v, want %v", got, want)
		}
	}
}
