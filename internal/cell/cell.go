package cell

// Op identifies the operation a formula performs. The numeric values are
// load-bearing: the evaluator dispatches through a table indexed by Op.
type Op uint8

const (
	OpAssign Op = iota // copy a literal or another cell's value
	OpSleep            // assign, then block for the computed value in seconds
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMin
	OpMax
	OpSum
	OpAvg
	OpStdev

	OpCount // number of opcodes; keep last
)

var opNames = [OpCount]string{
	OpAssign: "assign",
	OpSleep:  "sleep",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpMin:    "min",
	OpMax:    "max",
	OpSum:    "sum",
	OpAvg:    "avg",
	OpStdev:  "stdev",
}

func (op Op) String() string {
	if op < OpCount {
		return opNames[op]
	}
	return "op(?)"
}

// IsRange reports whether the operation aggregates over a cell rectangle.
// For range ops both formula arguments are cell indices naming the inclusive
// top-left and bottom-right corners.
func (op Op) IsRange() bool { return op >= OpMin && op <= OpStdev }

// IsArithmetic reports whether the operation combines two scalar operands.
func (op Op) IsArithmetic() bool { return op >= OpAdd && op <= OpDiv }

// Argument mask bits. Bit i set means Arg[i] is a cell index, not a literal.
const (
	Arg0IsCell uint8 = 1 << 0
	Arg1IsCell uint8 = 1 << 1
)

// Formula is the compact descriptor of a cell's expression: an opcode, two
// 32-bit arguments, and a mask saying which arguments name cells.
type Formula struct {
	Op      Op
	ArgMask uint8
	Arg     [2]int32
}

// CellArg reports whether argument i references a cell.
func (f Formula) CellArg(i int) bool { return f.ArgMask&(1<<i) != 0 }

// Literal returns a formula assigning the constant v.
func Literal(v int32) Formula {
	return Formula{Op: OpAssign, Arg: [2]int32{v, 0}}
}

// Visit is the three-state tag used by the cycle walk. Between commands every
// cell's tag is NotVisited.
type Visit uint8

const (
	NotVisited Visit = iota
	InStack
	Visited
)

// Cell is one grid position.
type Cell struct {
	Value   int32
	Invalid bool
	Visit   Visit
	Formula Formula
}
