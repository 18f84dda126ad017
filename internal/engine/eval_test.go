package engine

import (
	"math"
	"testing"

	"gridcalc/internal/cell"
)

func TestArithmeticOps(t *testing.T) {
	cases := []struct {
		op   cell.Op
		a, b int32
		want int32
	}{
		{cell.OpAdd, 2, 3, 5},
		{cell.OpSub, 2, 3, -1},
		{cell.OpMul, -4, 3, -12},
		{cell.OpDiv, 7, 2, 3},
		{cell.OpDiv, -7, 2, -3}, // truncation toward zero
		{cell.OpDiv, 7, -2, -3},
	}
	for _, tc := range cases {
		e := newTestEngine(t, 2, 2)
		mustCommit(t, e, 0, bin(tc.op, 0, tc.a, tc.b))
		wantValue(t, e, 0, tc.want)
	}
}

func TestArithmeticWrapAround(t *testing.T) {
	e := newTestEngine(t, 2, 2)
	mustCommit(t, e, 0, bin(cell.OpAdd, 0, math.MaxInt32, 1))
	wantValue(t, e, 0, math.MinInt32)
}

func TestDivisionByZeroLiteral(t *testing.T) {
	e := newTestEngine(t, 2, 2)
	mustCommit(t, e, 0, bin(cell.OpDiv, 0, 1, 0))
	wantInvalid(t, e, 0)
}

func TestAssignMirrorsInvalid(t *testing.T) {
	e := newTestEngine(t, 2, 2)
	mustCommit(t, e, 0, bin(cell.OpDiv, 0, 1, 0))
	mustCommit(t, e, 1, ref(0))
	wantInvalid(t, e, 1)

	mustCommit(t, e, 0, lit(6))
	wantValue(t, e, 1, 6)
}

func fillColumn(t *testing.T, e *Engine, values []int32) {
	t.Helper()
	for i, v := range values {
		mustCommit(t, e, e.sheet.Index(i, 0), lit(v))
	}
}

func TestRangeAggregates(t *testing.T) {
	cases := []struct {
		op     cell.Op
		values []int32
		want   int32
	}{
		{cell.OpMin, []int32{5, -2, 9}, -2},
		{cell.OpMax, []int32{5, -2, 9}, 9},
		{cell.OpSum, []int32{5, -2, 9}, 12},
		{cell.OpAvg, []int32{5, -2, 9}, 4},
		{cell.OpAvg, []int32{-5, 2}, -1},            // truncation toward zero
		{cell.OpStdev, []int32{2, 4, 4, 4, 5, 5, 7, 9}, 2},
		{cell.OpStdev, []int32{1, 1, 1}, 0},
	}
	for _, tc := range cases {
		e := newTestEngine(t, len(tc.values), 2)
		fillColumn(t, e, tc.values)
		target := e.sheet.Index(0, 1)
		last := e.sheet.Index(len(tc.values)-1, 0)
		mustCommit(t, e, target, rng(tc.op, 0, last))
		v, invalid := readAt(t, e, target)
		if invalid {
			t.Fatalf("%v over %v: unexpectedly invalid", tc.op, tc.values)
		}
		if v != tc.want {
			t.Fatalf("%v over %v = %d, want %d", tc.op, tc.values, v, tc.want)
		}
	}
}

func TestRangeInvalidAbsorbing(t *testing.T) {
	for _, op := range []cell.Op{cell.OpMin, cell.OpMax, cell.OpSum, cell.OpAvg, cell.OpStdev} {
		e := newTestEngine(t, 3, 2)
		fillColumn(t, e, []int32{1, 2, 3})
		mid := e.sheet.Index(1, 0)
		mustCommit(t, e, mid, bin(cell.OpDiv, 0, 1, 0))

		target := e.sheet.Index(0, 1)
		mustCommit(t, e, target, rng(op, 0, e.sheet.Index(2, 0)))
		if _, invalid := readAt(t, e, target); !invalid {
			t.Fatalf("%v over a range with an invalid cell should be invalid", op)
		}
	}
}

func TestSumWideAccumulation(t *testing.T) {
	// Two MaxInt32 values overflow 32 bits; the 64-bit sum narrows with wrap.
	e := newTestEngine(t, 2, 2)
	fillColumn(t, e, []int32{math.MaxInt32, math.MaxInt32})
	target := e.sheet.Index(0, 1)
	mustCommit(t, e, target, rng(cell.OpSum, 0, e.sheet.Index(1, 0)))
	wantValue(t, e, target, -2)
}

func TestAvgWideAccumulation(t *testing.T) {
	// The intermediate sum exceeds int32 but the mean fits.
	e := newTestEngine(t, 2, 2)
	fillColumn(t, e, []int32{math.MaxInt32, math.MaxInt32 - 2})
	target := e.sheet.Index(0, 1)
	mustCommit(t, e, target, rng(cell.OpAvg, 0, e.sheet.Index(1, 0)))
	wantValue(t, e, target, math.MaxInt32-1)
}

func TestRectangularRange(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	// 2x2 block with values 1..4.
	vals := map[int]int32{0: 1, 1: 2, 3: 3, 4: 4}
	for i, v := range vals {
		mustCommit(t, e, i, lit(v))
	}
	target := 8
	mustCommit(t, e, target, rng(cell.OpSum, 0, 4))
	wantValue(t, e, target, 10)
}
