// Package errsink implements the scanner's error sink collaborator: it
// receives positioned diagnostics and is responsible for formatting and
// display, while the scanner itself never interrupts scanning to report an
// error (spec.md §5, §7).
//
// Grounded on drun's internal/errors.ParseError/ParseErrorList: the same
// colored "file:line:col" + caret rendering, generalized from a parser-only
// concern into a sink the scanner can report through at construction time.
package errsink

import (
	"fmt"
	"strings"

	"github.com/phillarmonic/synlex/internal/positions"
)

// Record is a single positioned diagnostic.
type Record struct {
	Message string
	Pos     positions.Info
}

// Sink receives diagnostics as the scanner produces them. Report must not
// block or panic; the scanner calls it inline and keeps scanning regardless
// of what the sink does with the record.
type Sink interface {
	Report(pos positions.Info, message string)
}

// Buffer accumulates diagnostics for later inspection — the sink tests and
// tools reach for when they want to assert on what the scanner reported
// rather than look at a terminal.
type Buffer struct {
	records []Record
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Report implements Sink.
func (b *Buffer) Report(pos positions.Info, message string) {
	b.records = append(b.records, Record{Message: message, Pos: pos})
}

// Records returns every diagnostic reported so far, in order.
func (b *Buffer) Records() []Record { return b.records }

// HasErrors reports whether any diagnostic was recorded.
func (b *Buffer) HasErrors() bool { return len(b.records) > 0 }

// Console formats diagnostics with ANSI color and a caret pointing at the
// offending column, the same shape as drun's ParseError.FormatError, capped
// to the first maxShown records so a badly mixed-indentation file doesn't
// flood the terminal.
type Console struct {
	maxShown int
	shown    int
	total    int
}

// NewConsole creates a Console sink. maxShown <= 0 means unlimited.
func NewConsole(maxShown int) *Console {
	return &Console{maxShown: maxShown}
}

// Report implements Sink.
func (c *Console) Report(pos positions.Info, message string) {
	c.total++
	if c.maxShown > 0 && c.shown >= c.maxShown {
		return
	}
	c.shown++

	var out strings.Builder
	out.WriteString(fmt.Sprintf("\033[31mError\033[0m: %s\n", message))
	out.WriteString(fmt.Sprintf("  \033[36m--> %s\033[0m\n", pos))
	if pos.LineText != "" {
		lineNumStr := fmt.Sprintf("%d", pos.Line)
		out.WriteString(fmt.Sprintf("   \033[34m%s\033[0m | %s\n", lineNumStr, pos.LineText))
		spaces := strings.Repeat(" ", len(lineNumStr)) + " | " + strings.Repeat(" ", max0(pos.Column-1))
		out.WriteString(fmt.Sprintf("   %s\033[31m^\033[0m\n", spaces))
	}
	fmt.Print(out.String())
}

// Total reports how many diagnostics were reported, shown or not.
func (c *Console) Total() int {
	return c.total
}

// Omitted reports how many diagnostics were suppressed past maxShown.
func (c *Console) Omitted() int {
	if c.total <= c.shown {
		return 0
	}
	return c.total - c.shown
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
