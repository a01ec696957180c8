package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns. Empty cells print as "-".
type Table struct {
	w    *tabwriter.Writer
	cols int
	rows int
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw, cols: len(headers)}
}

// Row appends a row of values. Missing trailing values are left empty.
func (t *Table) Row(values ...any) {
	n := t.cols
	if len(values) > n {
		n = len(values)
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "-"
		if i < len(values) {
			if s := fmt.Sprintf("%v", values[i]); s != "" {
				parts[i] = s
			}
		}
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
	t.rows++
}

// Len returns the number of rows written so far, excluding the header.
func (t *Table) Len() int { return t.rows }

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
