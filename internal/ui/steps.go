package ui

import (
	"fmt"
	"io"
)

// Steps reports the progress of a fixed number of sequential steps.
type Steps struct {
	out     io.Writer
	total   int
	current int
	palette Palette
}

// NewSteps creates a progress reporter for n steps.
func NewSteps(out io.Writer, total int, p Palette) *Steps {
	return &Steps{out: out, total: total, palette: p}
}

// Done marks one step as completed.
func (s *Steps) Done(label string) {
	s.current++
	_, _ = fmt.Fprintf(s.out, "[%d/%d] %s\n", s.current, s.total, label)
}

// Fail marks one step as failed.
func (s *Steps) Fail(label string) {
	s.current++
	_, _ = fmt.Fprintf(s.out, "[%d/%d] %s\n", s.current, s.total, s.palette.Error(label))
}

// Log prints an informational message between steps.
func (s *Steps) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}
