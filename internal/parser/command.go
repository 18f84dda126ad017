package parser

import (
	"gridcalc/internal/cell"
	"gridcalc/internal/status"
)

// Kind discriminates the commands a line can produce.
type Kind uint8

const (
	KindEdit     Kind = iota // assign a formula to a cell
	KindScroll               // move the viewport by a relative amount
	KindScrollTo             // jump the viewport to a cell
	KindOutput               // toggle grid redraw
	KindUndo
	KindRedo
	KindQuit
)

// Command is one parsed input line.
type Command struct {
	Kind    Kind
	Target  int          // edit: target cell index; scroll_to: destination
	Formula cell.Formula // edit only
	DRow    int          // scroll only
	DCol    int
	Show    bool // output toggle only
}

// ParseError carries the status code a rejected line maps to.
type ParseError struct {
	Code status.Code
}

func (e *ParseError) Error() string { return e.Code.String() }

func errCode(c status.Code) error { return &ParseError{Code: c} }
