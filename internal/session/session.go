// Package session drives one interactive spreadsheet: it feeds input lines
// through the parser, applies the resulting commands to the engine, and keeps
// the viewport, the undo log, and the status line for the next prompt.
package session

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"gridcalc/internal/engine"
	"gridcalc/internal/history"
	"gridcalc/internal/parser"
	"gridcalc/internal/render"
	"gridcalc/internal/status"
)

var (
	okColor  = color.New(color.FgGreen)
	errColor = color.New(color.FgRed)
)

// Session owns all mutable state behind the prompt.
type Session struct {
	eng    *engine.Engine
	parse  *parser.Parser
	log    *history.Log
	view   render.Viewport
	timer  *status.Timer
	code   status.Code
	show   bool
	window int
}

// New wraps an engine. Grid output starts enabled with the default window.
func New(e *engine.Engine) *Session {
	return &Session{
		eng:    e,
		parse:  parser.New(e.Dims()),
		log:    history.New(),
		timer:  status.NewTimer(),
		show:   true,
		window: render.Window,
	}
}

// SetWindow overrides the displayed window size, as configured in the
// sheet.toml [view] section. Values below 1 are ignored.
func (s *Session) SetWindow(n int) {
	if n >= 1 {
		s.window = n
	}
}

// HandleLine executes one input line and reports whether the user quit. The
// status code and timer are updated on every call, so the next Prompt always
// describes this line.
func (s *Session) HandleLine(line string) (quit bool) {
	s.timer.Restart()

	cmd, err := s.parse.Parse(line)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			s.code = pe.Code
		} else {
			s.code = status.InvalidCommand
		}
		return false
	}

	s.code = status.Ok
	switch cmd.Kind {
	case parser.KindQuit:
		return true
	case parser.KindEdit:
		old := s.eng.Formula(cmd.Target)
		if err := s.eng.Commit(cmd.Target, cmd.Formula); err != nil {
			s.code = status.CyclicDependency
			return false
		}
		s.log.Record(history.Edit{Cell: cmd.Target, Old: old, New: cmd.Formula})
	case parser.KindScroll:
		s.view = s.view.Scroll(s.eng.Dims(), cmd.DRow, cmd.DCol, s.window)
	case parser.KindScrollTo:
		s.view = s.view.JumpTo(s.eng.Dims(), cmd.Target)
	case parser.KindOutput:
		s.show = cmd.Show
	case parser.KindUndo:
		s.undo()
	case parser.KindRedo:
		s.redo()
	}
	return false
}

// undo re-commits the previous formula of the newest edit. Edits made since
// can have rewired the graph, so the commit may legitimately hit a cycle; the
// log is restored in that case.
func (s *Session) undo() {
	e, ok := s.log.Undo()
	if !ok {
		s.code = status.NothingToUndo
		return
	}
	if err := s.eng.Commit(e.Cell, e.Old); err != nil {
		s.log.Redo()
		s.code = status.CyclicDependency
	}
}

func (s *Session) redo() {
	e, ok := s.log.Redo()
	if !ok {
		s.code = status.NothingToRedo
		return
	}
	if err := s.eng.Commit(e.Cell, e.New); err != nil {
		s.log.Undo()
		s.code = status.CyclicDependency
	}
}

// Grid renders the current window, or reports false while output is
// disabled.
func (s *Session) Grid() (string, bool) {
	if !s.show {
		return "", false
	}
	return render.Grid(s.eng, s.view, s.window), true
}

// Prompt formats the status line shown before reading the next command:
// elapsed seconds for the last command and its status message.
func (s *Session) Prompt() string {
	msg := s.code.String()
	if s.code.IsError() {
		msg = errColor.Sprint(msg)
	} else {
		msg = okColor.Sprint(msg)
	}
	return fmt.Sprintf("[%.1f] (%s) > ", s.timer.Seconds(), msg)
}

// Code returns the status of the last handled line.
func (s *Session) Code() status.Code { return s.code }

// Viewport returns the current window corner.
func (s *Session) Viewport() render.Viewport { return s.view }
