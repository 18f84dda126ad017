// Package history keeps the undo/redo log of formula edits.
package history

import "gridcalc/internal/cell"

// Edit is one committed formula change on a single cell.
type Edit struct {
	Cell int
	Old  cell.Formula
	New  cell.Formula
}

// Log holds two stacks of edits. Recording a fresh edit discards the redo
// stack, so history is always a straight line.
type Log struct {
	undo []Edit
	redo []Edit
}

func New() *Log { return &Log{} }

// Record appends a committed edit and clears any pending redos.
func (l *Log) Record(e Edit) {
	l.undo = append(l.undo, e)
	l.redo = l.redo[:0]
}

// Undo pops the most recent edit. The caller re-commits e.Old and, on
// success, the edit becomes redoable.
func (l *Log) Undo() (Edit, bool) {
	n := len(l.undo)
	if n == 0 {
		return Edit{}, false
	}
	e := l.undo[n-1]
	l.undo = l.undo[:n-1]
	l.redo = append(l.redo, e)
	return e, true
}

// Redo pops the most recently undone edit back onto the undo stack.
func (l *Log) Redo() (Edit, bool) {
	n := len(l.redo)
	if n == 0 {
		return Edit{}, false
	}
	e := l.redo[n-1]
	l.redo = l.redo[:n-1]
	l.undo = append(l.undo, e)
	return e, true
}

// Len reports how many edits are undoable.
func (l *Log) Len() int { return len(l.undo) }
