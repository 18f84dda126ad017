// Package engine implements the dependency-graph recomputation core: the
// adjacency lists tracking which cells read which, the pre-commit cycle
// check, the topological recompute that follows every accepted edit, and the
// formula evaluator.
package engine

import (
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"

	"gridcalc/internal/cell"
	"gridcalc/internal/sheet"
)

// ErrCycle is returned by Commit when installing the formula would make the
// target cell depend, directly or transitively, on itself.
var ErrCycle = errors.New("cyclic dependency")

// Engine owns the cell store, the dependency graph, and the walker buffer.
// It is single-threaded by design: one command is applied at a time and a
// recomputation always runs to completion, so no locking exists anywhere.
type Engine struct {
	sheet  *sheet.Sheet
	graph  *graph
	walker *walker
	sleep  func(time.Duration) // stubbed in tests
}

// New allocates the store and adjacency table for a rows x cols grid.
func New(rows, cols int) (*Engine, error) {
	s, err := sheet.New(rows, cols)
	if err != nil {
		return nil, err
	}
	n := s.Len()
	return &Engine{
		sheet:  s,
		graph:  newGraph(n),
		walker: newWalker(n),
		sleep:  time.Sleep,
	}, nil
}

// Dims returns the grid dimensions for bound checks in surrounding code.
func (e *Engine) Dims() sheet.Dims { return e.sheet.Dims }

// Read returns the value and invalid flag at (row, col) for the renderer.
func (e *Engine) Read(row, col int) (value int32, invalid bool) {
	c := e.sheet.Get(e.sheet.Index(row, col))
	return c.Value, c.Invalid
}

// Formula returns the formula currently stored at cell index target.
func (e *Engine) Formula(target int) cell.Formula {
	return e.sheet.Get(target).Formula
}

// Commit installs formula f at the target cell index.
//
// The sequence is strict: the cycle walk runs first against the hypothetical
// graph, so on failure nothing has been mutated and the walk state is rolled
// back, leaving the engine bit-identical to before the call. On success the
// old formula's edges are removed, the new ones added, the descriptor stored,
// and every cell the walk ordered is re-evaluated, target first.
func (e *Engine) Commit(target int, f cell.Formula) error {
	t, err := safecast.Conv[int32](target)
	if err != nil {
		panic(fmt.Errorf("cell index overflow: %w", err))
	}

	if !e.walker.walk(e.sheet, e.graph, t, f) {
		e.walker.reset(e.sheet, e.graph)
		return ErrCycle
	}

	e.graph.unlink(e.sheet.Dims, t, e.sheet.At(target).Formula)
	e.graph.link(e.sheet.Dims, t, f)
	e.sheet.At(target).Formula = f

	for _, i := range e.walker.order() {
		e.eval(int(i))
	}
	e.walker.reset(e.sheet, e.graph)
	return nil
}
