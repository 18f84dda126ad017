// Package sheet holds the dense cell store and the index arithmetic shared by
// the engine, the parser, and the renderer.
package sheet

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"gridcalc/internal/cell"
)

// Grid size limits. MaxCols is the A..ZZZ column-letter space.
const (
	MaxRows = 1000
	MaxCols = 18278
)

// Dims carries the fixed grid dimensions together with the row-major index
// math. Cell index = row*Cols + col.
type Dims struct {
	Rows int
	Cols int
}

// Len returns the total number of cells.
func (d Dims) Len() int { return d.Rows * d.Cols }

// Index maps (row, col) to the linear cell index.
func (d Dims) Index(row, col int) int { return row*d.Cols + col }

// Coords maps a linear cell index back to (row, col).
func (d Dims) Coords(i int) (row, col int) { return i / d.Cols, i % d.Cols }

// ValidCell reports whether (row, col) lies inside the grid.
func (d Dims) ValidCell(row, col int) bool {
	return row >= 0 && row < d.Rows && col >= 0 && col < d.Cols
}

// ValidRange reports whether (i1, i2) are the top-left and bottom-right
// corners of an axis-aligned rectangle.
func (d Dims) ValidRange(i1, i2 int) bool {
	return i1 <= i2 && i1%d.Cols <= i2%d.Cols && i1/d.Cols <= i2/d.Cols
}

// Sheet is the dense row-major store of cell records. Records are created
// once at construction and mutated in place; they are never destroyed.
type Sheet struct {
	Dims
	cells []cell.Cell
}

// New allocates a sheet of rows x cols cells, each initialized to a valid
// literal zero.
func New(rows, cols int) (*Sheet, error) {
	if rows < 1 || rows > MaxRows {
		return nil, fmt.Errorf("rows must be in [1, %d], got %d", MaxRows, rows)
	}
	if cols < 1 || cols > MaxCols {
		return nil, fmt.Errorf("cols must be in [1, %d], got %d", MaxCols, cols)
	}
	d := Dims{Rows: rows, Cols: cols}
	return &Sheet{Dims: d, cells: make([]cell.Cell, d.Len())}, nil
}

// At returns a pointer to the cell record at index i.
func (s *Sheet) At(i int) *cell.Cell { return &s.cells[i] }

// Get returns a copy of the cell record at index i.
func (s *Sheet) Get(i int) cell.Cell { return s.cells[i] }

// Set overwrites the cell record at index i.
func (s *Sheet) Set(i int, c cell.Cell) { s.cells[i] = c }

// ParseDimensions reads the rows/cols command-line arguments. Both must be
// positive and within the global limits.
func ParseDimensions(rowsStr, colsStr string) (rows, cols int, err error) {
	r, err := strconv.ParseUint(rowsStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number of rows %q", rowsStr)
	}
	c, err := strconv.ParseUint(colsStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid number of columns %q", colsStr)
	}
	rows, err = safecast.Conv[int](r)
	if err != nil {
		return 0, 0, fmt.Errorf("rows overflow: %w", err)
	}
	cols, err = safecast.Conv[int](c)
	if err != nil {
		return 0, 0, fmt.Errorf("columns overflow: %w", err)
	}
	if rows < 1 || rows > MaxRows {
		return 0, 0, fmt.Errorf("rows must be in [1, %d], got %d", MaxRows, rows)
	}
	if cols < 1 || cols > MaxCols {
		return 0, 0, fmt.Errorf("columns must be in [1, %d], got %d", MaxCols, cols)
	}
	return rows, cols, nil
}
