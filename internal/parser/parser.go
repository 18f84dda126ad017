// Package parser turns input lines into commands for the session: formula
// edits for the engine, viewport moves, output toggles, undo/redo, quit.
//
// The grammar is deliberately rigid. A cell reference is one to three
// uppercase letters followed by a row number 1..999 without leading zeros;
// the right-hand side of an edit is a single value, a binary expression over
// two values, a range aggregate over two references, or a SLEEP call.
package parser

import (
	"strconv"
	"strings"

	"gridcalc/internal/cell"
	"gridcalc/internal/colname"
	"gridcalc/internal/sheet"
	"gridcalc/internal/status"
)

// ScrollStep is how many rows or columns the w/a/s/d keys move the viewport.
const ScrollStep = 10

const maxRowDigits = 3

// Parser validates lines against the grid dimensions.
type Parser struct {
	dims sheet.Dims
}

func New(d sheet.Dims) *Parser { return &Parser{dims: d} }

// Parse consumes one input line. Errors are *ParseError values carrying the
// status code to display; the engine is never touched here.
func (p *Parser) Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return Command{}, errCode(status.InvalidCommand)
	case "q":
		return Command{Kind: KindQuit}, nil
	case "w":
		return Command{Kind: KindScroll, DRow: -ScrollStep}, nil
	case "s":
		return Command{Kind: KindScroll, DRow: ScrollStep}, nil
	case "a":
		return Command{Kind: KindScroll, DCol: -ScrollStep}, nil
	case "d":
		return Command{Kind: KindScroll, DCol: ScrollStep}, nil
	case "undo":
		return Command{Kind: KindUndo}, nil
	case "redo":
		return Command{Kind: KindRedo}, nil
	case "enable_output":
		return Command{Kind: KindOutput, Show: true}, nil
	case "disable_output":
		return Command{Kind: KindOutput, Show: false}, nil
	}

	if rest, ok := strings.CutPrefix(line, "scroll_to "); ok {
		target, err := p.cellRef(rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindScrollTo, Target: target}, nil
	}

	eq := strings.IndexByte(line, '=')
	if eq <= 0 {
		return Command{}, errCode(status.InvalidCommand)
	}
	target, err := p.cellRef(line[:eq])
	if err != nil {
		return Command{}, err
	}
	f, err := p.expression(line[eq+1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindEdit, Target: target, Formula: f}, nil
}

var rangeFuncs = []struct {
	name string
	op   cell.Op
}{
	{"MIN", cell.OpMin},
	{"MAX", cell.OpMax},
	{"SUM", cell.OpSum},
	{"AVG", cell.OpAvg},
	{"STDEV", cell.OpStdev},
}

// expression parses the right-hand side of an edit.
func (p *Parser) expression(s string) (cell.Formula, error) {
	if inner, ok := cutCall(s, "SLEEP"); ok {
		v, isCell, rest, err := p.scanValue(inner)
		if err != nil {
			return cell.Formula{}, err
		}
		if rest != "" {
			return cell.Formula{}, errCode(status.InvalidCommand)
		}
		f := cell.Formula{Op: cell.OpSleep, Arg: [2]int32{v, 0}}
		if isCell {
			f.ArgMask = cell.Arg0IsCell
		}
		return f, nil
	}

	for _, rf := range rangeFuncs {
		inner, ok := cutCall(s, rf.name)
		if !ok {
			continue
		}
		first, second, found := strings.Cut(inner, ":")
		if !found {
			return cell.Formula{}, errCode(status.InvalidCommand)
		}
		i1, err := p.cellRef(first)
		if err != nil {
			return cell.Formula{}, err
		}
		i2, err := p.cellRef(second)
		if err != nil {
			return cell.Formula{}, err
		}
		if !p.dims.ValidRange(i1, i2) {
			return cell.Formula{}, errCode(status.InvalidRange)
		}
		return cell.Formula{
			Op:      rf.op,
			ArgMask: cell.Arg0IsCell | cell.Arg1IsCell,
			Arg:     [2]int32{int32(i1), int32(i2)},
		}, nil
	}

	v1, c1, rest, err := p.scanValue(s)
	if err != nil {
		return cell.Formula{}, err
	}
	if rest == "" {
		f := cell.Formula{Op: cell.OpAssign, Arg: [2]int32{v1, 0}}
		if c1 {
			f.ArgMask = cell.Arg0IsCell
		}
		return f, nil
	}

	opIdx := strings.IndexByte("+-*/", rest[0])
	if opIdx < 0 {
		return cell.Formula{}, errCode(status.InvalidCommand)
	}
	v2, c2, rest, err := p.scanValue(rest[1:])
	if err != nil {
		return cell.Formula{}, err
	}
	if rest != "" {
		return cell.Formula{}, errCode(status.InvalidCommand)
	}

	f := cell.Formula{Op: cell.OpAdd + cell.Op(opIdx), Arg: [2]int32{v1, v2}}
	if c1 {
		f.ArgMask |= cell.Arg0IsCell
	}
	if c2 {
		f.ArgMask |= cell.Arg1IsCell
	}
	return f, nil
}

// cutCall strips "NAME(...)" and returns the argument text.
func cutCall(s, name string) (string, bool) {
	rest, ok := strings.CutPrefix(s, name)
	if !ok || len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}

// scanValue reads a leading cell reference or integer literal and returns
// the unconsumed remainder. For references the returned value is the cell
// index and isCell is true.
func (p *Parser) scanValue(s string) (v int32, isCell bool, rest string, err error) {
	if s == "" {
		return 0, false, "", errCode(status.InvalidCommand)
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		idx, rem, err := p.scanRef(s)
		if err != nil {
			return 0, false, "", err
		}
		return int32(idx), true, rem, nil
	}
	v, rest, err = scanInt(s)
	return v, false, rest, err
}

// scanRef reads a leading cell reference and bound-checks it.
func (p *Parser) scanRef(s string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i > colname.MaxLetters {
		return 0, "", errCode(status.InvalidCell)
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	digits := s[i:j]
	if len(digits) == 0 || len(digits) > maxRowDigits || digits[0] == '0' {
		return 0, "", errCode(status.InvalidCell)
	}

	col, ok := colname.Number(s[:i])
	if !ok {
		return 0, "", errCode(status.InvalidCell)
	}
	row, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", errCode(status.InvalidCell)
	}
	row--
	if !p.dims.ValidCell(row, col) {
		return 0, "", errCode(status.InvalidCell)
	}
	return p.dims.Index(row, col), s[j:], nil
}

// cellRef parses a string that must be exactly one cell reference.
func (p *Parser) cellRef(s string) (int, error) {
	idx, rest, err := p.scanRef(s)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, errCode(status.InvalidCell)
	}
	return idx, nil
}

// scanInt reads a leading signed integer literal. Values outside int32 are
// rejected with the overflow status.
func scanInt(s string) (int32, string, error) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, "", errCode(status.InvalidCommand)
	}
	v, err := strconv.ParseInt(s[:j], 10, 32)
	if err != nil {
		return 0, "", errCode(status.Overflow)
	}
	return int32(v), s[j:], nil
}
