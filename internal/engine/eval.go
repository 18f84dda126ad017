package engine

import (
	"math"
	"time"

	"gridcalc/internal/cell"
)

// evalTable dispatches evaluation by opcode. Indexed directly by cell.Op.
var evalTable = [cell.OpCount]func(*Engine, *cell.Cell){
	cell.OpAssign: (*Engine).evalAssign,
	cell.OpSleep:  (*Engine).evalSleep,
	cell.OpAdd:    (*Engine).evalAdd,
	cell.OpSub:    (*Engine).evalSub,
	cell.OpMul:    (*Engine).evalMul,
	cell.OpDiv:    (*Engine).evalDiv,
	cell.OpMin:    (*Engine).evalMin,
	cell.OpMax:    (*Engine).evalMax,
	cell.OpSum:    (*Engine).evalSum,
	cell.OpAvg:    (*Engine).evalAvg,
	cell.OpStdev:  (*Engine).evalStdev,
}

// eval re-dispatches the cell at index i through the opcode table.
func (e *Engine) eval(i int) {
	c := e.sheet.At(i)
	evalTable[c.Formula.Op](e, c)
}

// operand resolves argument i of the formula to a value and its invalid flag.
func (e *Engine) operand(f cell.Formula, i int) (int32, bool) {
	if f.CellArg(i) {
		src := e.sheet.Get(int(f.Arg[i]))
		return src.Value, src.Invalid
	}
	return f.Arg[i], false
}

func (e *Engine) evalAssign(c *cell.Cell) {
	v, invalid := e.operand(c.Formula, 0)
	c.Invalid = invalid
	if !invalid {
		c.Value = v
	}
}

func (e *Engine) evalSleep(c *cell.Cell) {
	e.evalAssign(c)
	if !c.Invalid && c.Value > 0 {
		e.sleep(time.Duration(c.Value) * time.Second)
	}
}

func (e *Engine) evalAdd(c *cell.Cell) {
	v1, i1 := e.operand(c.Formula, 0)
	v2, i2 := e.operand(c.Formula, 1)
	c.Invalid = i1 || i2
	if !c.Invalid {
		c.Value = v1 + v2
	}
}

func (e *Engine) evalSub(c *cell.Cell) {
	v1, i1 := e.operand(c.Formula, 0)
	v2, i2 := e.operand(c.Formula, 1)
	c.Invalid = i1 || i2
	if !c.Invalid {
		c.Value = v1 - v2
	}
}

func (e *Engine) evalMul(c *cell.Cell) {
	v1, i1 := e.operand(c.Formula, 0)
	v2, i2 := e.operand(c.Formula, 1)
	c.Invalid = i1 || i2
	if !c.Invalid {
		c.Value = v1 * v2
	}
}

// evalDiv truncates toward zero. A zero divisor marks the cell invalid
// instead of failing the command.
func (e *Engine) evalDiv(c *cell.Cell) {
	v1, i1 := e.operand(c.Formula, 0)
	v2, i2 := e.operand(c.Formula, 1)
	c.Invalid = i1 || i2 || v2 == 0
	if !c.Invalid {
		c.Value = v1 / v2
	}
}

// rangeScan walks the formula's rectangle, feeding each referenced cell's
// value to fn. It reports false, with the cell already marked invalid, as
// soon as any input is invalid.
func (e *Engine) rangeScan(c *cell.Cell, fn func(v int32)) bool {
	d := e.sheet.Dims
	r1, c1 := d.Coords(int(c.Formula.Arg[0]))
	r2, c2 := d.Coords(int(c.Formula.Arg[1]))
	for r := r1; r <= r2; r++ {
		for col := c1; col <= c2; col++ {
			src := e.sheet.Get(d.Index(r, col))
			if src.Invalid {
				c.Invalid = true
				return false
			}
			fn(src.Value)
		}
	}
	c.Invalid = false
	return true
}

// rangeCount is the number of cells inside the formula's rectangle.
func (e *Engine) rangeCount(f cell.Formula) int64 {
	d := e.sheet.Dims
	r1, c1 := d.Coords(int(f.Arg[0]))
	r2, c2 := d.Coords(int(f.Arg[1]))
	return int64(r2-r1+1) * int64(c2-c1+1)
}

func (e *Engine) evalMin(c *cell.Cell) {
	best := int32(math.MaxInt32)
	if e.rangeScan(c, func(v int32) {
		if v < best {
			best = v
		}
	}) {
		c.Value = best
	}
}

func (e *Engine) evalMax(c *cell.Cell) {
	best := int32(math.MinInt32)
	if e.rangeScan(c, func(v int32) {
		if v > best {
			best = v
		}
	}) {
		c.Value = best
	}
}

func (e *Engine) evalSum(c *cell.Cell) {
	var sum int64
	if e.rangeScan(c, func(v int32) { sum += int64(v) }) {
		// Accumulate wide, narrow with wrap on store.
		c.Value = int32(sum)
	}
}

func (e *Engine) evalAvg(c *cell.Cell) {
	var sum int64
	if e.rangeScan(c, func(v int32) { sum += int64(v) }) {
		c.Value = int32(sum / e.rangeCount(c.Formula))
	}
}

// evalStdev computes the population standard deviation with the integer mean,
// rounded to the nearest integer.
func (e *Engine) evalStdev(c *cell.Cell) {
	var sum, sumSquares int64
	if !e.rangeScan(c, func(v int32) {
		sum += int64(v)
		sumSquares += int64(v) * int64(v)
	}) {
		return
	}
	n := e.rangeCount(c.Formula)
	mean := sum / n
	variance := float64(sumSquares-2*mean*sum+mean*mean*n) / float64(n)
	c.Value = int32(math.Round(math.Sqrt(variance)))
}
