package session

import (
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"

	"gridcalc/internal/engine"
	"gridcalc/internal/render"
	"gridcalc/internal/status"
)

func newSession(t *testing.T, rows, cols int) *Session {
	t.Helper()
	e, err := engine.New(rows, cols)
	if err != nil {
		t.Fatalf("engine.New(%d, %d) failed: %v", rows, cols, err)
	}
	return New(e)
}

func handle(t *testing.T, s *Session, line string, want status.Code) {
	t.Helper()
	if quit := s.HandleLine(line); quit {
		t.Fatalf("HandleLine(%q) quit", line)
	}
	if s.Code() != want {
		t.Fatalf("HandleLine(%q) code = %v, want %v", line, s.Code(), want)
	}
}

func gridText(t *testing.T, s *Session) string {
	t.Helper()
	g, ok := s.Grid()
	if !ok {
		t.Fatal("grid output disabled")
	}
	return g
}

func TestEditUpdatesGrid(t *testing.T) {
	s := newSession(t, 5, 5)
	handle(t, s, "A1=5", status.Ok)
	handle(t, s, "B1=A1+3", status.Ok)

	g := gridText(t, s)
	if !strings.Contains(g, "          5 ") || !strings.Contains(g, "          8 ") {
		t.Fatalf("grid missing values:\n%s", g)
	}
}

func TestRejectedLineLeavesGrid(t *testing.T) {
	s := newSession(t, 5, 5)
	handle(t, s, "A1=5", status.Ok)
	before := gridText(t, s)

	handle(t, s, "gibberish", status.InvalidCommand)
	handle(t, s, "A1=A1", status.CyclicDependency)
	handle(t, s, "Z99=1", status.InvalidCell)

	if after := gridText(t, s); after != before {
		t.Fatalf("grid changed by rejected lines:\n%s", after)
	}
}

func TestQuit(t *testing.T) {
	s := newSession(t, 2, 2)
	if !s.HandleLine("q") {
		t.Fatal("q did not quit")
	}
	if s.HandleLine("A1=1") {
		t.Fatal("edit quit")
	}
}

func TestUndoRedo(t *testing.T) {
	s := newSession(t, 5, 5)
	handle(t, s, "A1=5", status.Ok)
	handle(t, s, "A1=7", status.Ok)

	handle(t, s, "undo", status.Ok)
	if g := gridText(t, s); !strings.Contains(g, "          5 ") {
		t.Fatalf("undo did not restore 5:\n%s", g)
	}
	handle(t, s, "undo", status.Ok)
	handle(t, s, "undo", status.NothingToUndo)

	handle(t, s, "redo", status.Ok)
	handle(t, s, "redo", status.Ok)
	if g := gridText(t, s); !strings.Contains(g, "          7 ") {
		t.Fatalf("redo did not restore 7:\n%s", g)
	}
	handle(t, s, "redo", status.NothingToRedo)
}

func TestUndoRecomputesDependents(t *testing.T) {
	s := newSession(t, 5, 5)
	handle(t, s, "A1=5", status.Ok)
	handle(t, s, "B1=A1*2", status.Ok)
	handle(t, s, "A1=10", status.Ok)
	if g := gridText(t, s); !strings.Contains(g, "         20 ") {
		t.Fatalf("dependent not recomputed:\n%s", g)
	}

	handle(t, s, "undo", status.Ok)
	if g := gridText(t, s); !strings.Contains(g, "         10 ") {
		t.Fatalf("undo did not ripple to dependent:\n%s", g)
	}
}

func TestEditClearsRedo(t *testing.T) {
	s := newSession(t, 5, 5)
	handle(t, s, "A1=1", status.Ok)
	handle(t, s, "undo", status.Ok)
	handle(t, s, "A1=2", status.Ok)
	handle(t, s, "redo", status.NothingToRedo)
}

func TestScrolling(t *testing.T) {
	s := newSession(t, 40, 40)
	handle(t, s, "s", status.Ok)
	if v := s.Viewport(); v.Row != render.Window {
		t.Fatalf("s moved to row %d", v.Row)
	}
	handle(t, s, "w", status.Ok)
	handle(t, s, "w", status.Ok)
	if v := s.Viewport(); v.Row != 0 {
		t.Fatalf("w clamped wrong, row %d", v.Row)
	}

	handle(t, s, "scroll_to B3", status.Ok)
	if v := s.Viewport(); v.Row != 2 || v.Col != 1 {
		t.Fatalf("scroll_to = %+v", v)
	}
	handle(t, s, "d", status.Ok)
	if v := s.Viewport(); v.Col != 11 {
		t.Fatalf("d from col 1 moved to %d", v.Col)
	}
}

func TestOutputToggle(t *testing.T) {
	s := newSession(t, 5, 5)
	handle(t, s, "disable_output", status.Ok)
	if _, ok := s.Grid(); ok {
		t.Fatal("grid still shown after disable_output")
	}
	handle(t, s, "enable_output", status.Ok)
	if _, ok := s.Grid(); !ok {
		t.Fatal("grid hidden after enable_output")
	}
}

func TestPrompt(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	s := newSession(t, 5, 5)
	handle(t, s, "A1=5", status.Ok)
	ok := regexp.MustCompile(`^\[\d+\.\d\] \(ok\) > $`)
	if p := s.Prompt(); !ok.MatchString(p) {
		t.Fatalf("prompt = %q", p)
	}

	handle(t, s, "nope", status.InvalidCommand)
	if p := s.Prompt(); !strings.Contains(p, "(invalid command)") {
		t.Fatalf("prompt = %q", p)
	}
}
