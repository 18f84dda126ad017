package engine

import (
	"gridcalc/internal/cell"
	"gridcalc/internal/sheet"
)

// adjacency is the per-cell list of dependents. head anchors the intrusive
// list; ptr is the traversal cursor the cycle walk advances. Between commands
// ptr == head.
type adjacency struct {
	head nodeRef
	ptr  nodeRef
}

// graph tracks, for every cell x, the cells whose current formula reads x.
// Edges point from a cell to its dependents.
type graph struct {
	adj  []adjacency
	pool *slab
}

func newGraph(cells int) *graph {
	return &graph{adj: make([]adjacency, cells), pool: newSlab()}
}

// forEachRef calls fn with the index of every cell the formula references:
// the masked scalar arguments, or every cell of the rectangle for range ops.
func forEachRef(d sheet.Dims, f cell.Formula, fn func(x int)) {
	if f.Op.IsRange() {
		r1, c1 := d.Coords(int(f.Arg[0]))
		r2, c2 := d.Coords(int(f.Arg[1]))
		for r := r1; r <= r2; r++ {
			for c := c1; c <= c2; c++ {
				fn(d.Index(r, c))
			}
		}
		return
	}
	for i := 0; i < 2; i++ {
		if f.CellArg(i) {
			fn(int(f.Arg[i]))
		}
	}
}

// link records target as a dependent of every cell f references. Insertion is
// prepend-only; the traversal cursor is re-anchored on every touched list.
func (g *graph) link(d sheet.Dims, target int32, f cell.Formula) {
	forEachRef(d, f, func(x int) {
		a := &g.adj[x]
		a.head = g.pool.alloc(target, a.head)
		a.ptr = a.head
	})
}

// unlink removes one occurrence of target from the dependent list of every
// cell f references. Symmetric to link when f equals the stored formula.
func (g *graph) unlink(d sheet.Dims, target int32, f cell.Formula) {
	forEachRef(d, f, func(x int) {
		a := &g.adj[x]
		g.remove(a, target)
		a.ptr = a.head
	})
}

// remove unlinks the first node carrying target and returns it to the pool.
func (g *graph) remove(a *adjacency, target int32) bool {
	prev := nilRef
	for ref := a.head; ref != nilRef; {
		n := g.pool.at(ref)
		next := n.next
		if n.data == target {
			if prev == nilRef {
				a.head = next
			} else {
				g.pool.at(prev).next = next
			}
			g.pool.release(ref)
			return true
		}
		prev = ref
		ref = next
	}
	return false
}
