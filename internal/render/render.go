// Package render draws a fixed window of the grid as text.
package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"gridcalc/internal/colname"
	"gridcalc/internal/engine"
	"gridcalc/internal/sheet"
)

// Window is the default number of rows and columns shown at once. The
// sheet.toml [view] section may override it.
const Window = 10

const cellWidth = 11

// Viewport is the top-left corner of the visible window.
type Viewport struct {
	Row int
	Col int
}

// Scroll moves the corner by a relative amount, clamped so a window of the
// given size never leaves the grid. On grids smaller than the window the
// corner stays at the origin.
func (v Viewport) Scroll(d sheet.Dims, dRow, dCol, window int) Viewport {
	return Viewport{
		Row: clamp(v.Row+dRow, d.Rows-window),
		Col: clamp(v.Col+dCol, d.Cols-window),
	}
}

// JumpTo puts the corner on the given cell index without clamping to the
// window, matching the scroll_to command.
func (v Viewport) JumpTo(d sheet.Dims, index int) Viewport {
	row, col := d.Coords(index)
	return Viewport{Row: row, Col: col}
}

func clamp(v, max int) int {
	if max < 0 {
		max = 0
	}
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Grid renders a window x window view. The header row carries the column
// names, each data row starts with its 1-based row number, and every cell is
// right-aligned in a fixed-width slot. Invalid cells show ERR.
func Grid(e *engine.Engine, v Viewport, window int) string {
	d := e.Dims()
	rows := min(v.Row+window, d.Rows)
	cols := min(v.Col+window, d.Cols)

	var b strings.Builder
	b.WriteString("    ")
	for c := v.Col; c < cols; c++ {
		b.WriteString(runewidth.FillLeft(colname.Letters(c), cellWidth))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')

	for r := v.Row; r < rows; r++ {
		b.WriteString(runewidth.FillLeft(strconv.Itoa(r+1), 3))
		b.WriteByte(' ')
		for c := v.Col; c < cols; c++ {
			value, invalid := e.Read(r, c)
			s := "ERR"
			if !invalid {
				s = strconv.FormatInt(int64(value), 10)
			}
			b.WriteString(runewidth.FillLeft(s, cellWidth))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
