package engine

import (
	"gridcalc/internal/cell"
	"gridcalc/internal/sheet"
)

// walker runs the pre-commit cycle check and, when the edit is safe, leaves
// behind the order cells must be re-evaluated in.
//
// Both work lists share one buffer of length rows*cols: the DFS stack grows
// up from index 0 and the topological order grows down from the end. A cell
// is pushed to at most one of them during a walk, so the two never collide.
type walker struct {
	buf      []int32
	stackTop int // entries in the DFS stack
	orderPtr int // first used slot of the order region; len(buf) when empty
}

func newWalker(cells int) *walker {
	return &walker{buf: make([]int32, cells), orderPtr: cells}
}

// dependsOn is the hypothetical-edge check: would the target cell, with
// formula f installed, read cell u?
func dependsOn(d sheet.Dims, f cell.Formula, u int32) bool {
	if f.Op.IsRange() {
		row, col := d.Coords(int(u))
		r1, c1 := d.Coords(int(f.Arg[0]))
		r2, c2 := d.Coords(int(f.Arg[1]))
		return row >= r1 && row <= r2 && col >= c1 && col <= c2
	}
	return (f.CellArg(0) && f.Arg[0] == u) || (f.CellArg(1) && f.Arg[1] == u)
}

// walk runs an iterative DFS over dependent edges starting at target,
// pretending formula f is already installed there. It reports false as soon
// as a cycle is found. On success buf[orderPtr:] holds the cells to
// re-evaluate, dependencies first.
//
// The traversal must stay iterative: at the maximum grid size the dependent
// chain can be tens of millions of cells deep, far beyond any goroutine
// stack.
func (w *walker) walk(s *sheet.Sheet, g *graph, target int32, f cell.Formula) bool {
	s.At(int(target)).Visit = cell.InStack
	w.buf[0] = target
	w.stackTop = 1

	for w.stackTop > 0 {
		u := w.buf[w.stackTop-1]

		// Installing f at target while target is reachable from u (u is on
		// the stack) closes a loop.
		if dependsOn(s.Dims, f, u) {
			return false
		}

		a := &g.adj[u]
		if a.ptr != nilRef {
			n := g.pool.at(a.ptr)
			v := n.data
			a.ptr = n.next

			switch s.At(int(v)).Visit {
			case cell.InStack:
				return false
			case cell.NotVisited:
				s.At(int(v)).Visit = cell.InStack
				w.buf[w.stackTop] = v
				w.stackTop++
			}
			// Visited dependents are already ordered.
			continue
		}

		// Cursor exhausted: every dependent is ordered, so u is too.
		s.At(int(u)).Visit = cell.Visited
		w.stackTop--
		w.orderPtr--
		w.buf[w.orderPtr] = u
	}
	return true
}

// order returns the re-evaluation sequence left by a successful walk. The
// target comes first, its transitive dependents after the cells they read.
func (w *walker) order() []int32 { return w.buf[w.orderPtr:] }

// reset restores the between-commands invariant after either walk outcome:
// every touched cell back to NotVisited with its cursor re-anchored, both
// stack pointers cleared.
func (w *walker) reset(s *sheet.Sheet, g *graph) {
	for i := 0; i < w.stackTop; i++ {
		x := w.buf[i]
		s.At(int(x)).Visit = cell.NotVisited
		g.adj[x].ptr = g.adj[x].head
	}
	for i := w.orderPtr; i < len(w.buf); i++ {
		x := w.buf[i]
		s.At(int(x)).Visit = cell.NotVisited
		g.adj[x].ptr = g.adj[x].head
	}
	w.stackTop = 0
	w.orderPtr = len(w.buf)
}
