// Package status defines the result codes surfaced after each command and
// the wall-clock timer shown in the prompt.
package status

import "time"

// Code classifies the outcome of the most recent command.
type Code uint8

const (
	Ok Code = iota
	InvalidCommand
	Overflow
	InvalidCell
	InvalidRange
	CyclicDependency
	NothingToUndo
	NothingToRedo
	OutOfBounds
	InvalidValue

	codeCount
)

var messages = [codeCount]string{
	Ok:               "ok",
	InvalidCommand:   "invalid command",
	Overflow:         "overflow",
	InvalidCell:      "invalid cell",
	InvalidRange:     "invalid range",
	CyclicDependency: "cyclic dependency",
	NothingToUndo:    "nothing to undo",
	NothingToRedo:    "nothing to redo",
	OutOfBounds:      "scrolling out of sheet",
	InvalidValue:     "invalid value",
}

func (c Code) String() string {
	if c < codeCount {
		return messages[c]
	}
	return "internal error"
}

// IsError reports whether the code describes a rejected command.
func (c Code) IsError() bool { return c != Ok }

// Timer measures elapsed wall-clock time since the last accepted command.
// The prompt displays its reading in seconds.
type Timer struct {
	start time.Time
	now   func() time.Time // stubbed in tests
}

// NewTimer returns a running timer.
func NewTimer() *Timer {
	t := &Timer{now: time.Now}
	t.Restart()
	return t
}

// Restart marks the acceptance of a new command.
func (t *Timer) Restart() {
	if t.now == nil {
		t.now = time.Now
	}
	t.start = t.now()
}

// Seconds returns the elapsed time since the last restart.
func (t *Timer) Seconds() float64 {
	return t.now().Sub(t.start).Seconds()
}
