// Package positions implements the position registry the scanner stamps
// every token and diagnostic with.
//
// A registry hands out a monotonically increasing scalar Pos for every
// character consumed across every source file the scanner opens. Pos values
// are cheap to pass around and compare; the (file, line, column, line text)
// tuple is only reconstructed on demand, through Info, when a diagnostic or
// a token actually needs to be displayed.
package positions

import "fmt"

// Pos is an opaque, monotonically increasing source position.
type Pos uint64

// Info describes the human-readable coordinates of a Pos.
type Info struct {
	File     string
	Line     int
	Column   int
	LineText string
}

func (i Info) String() string {
	return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
}

type fileSpan struct {
	name  string
	start Pos // position of the first byte of this file
}

type lineEntry struct {
	pos  Pos // position of the first byte of the line
	text []byte
}

// Registry tracks the current scan position and maps positions back to
// (file, line, column, line text) for diagnostics. The scanner advances it
// one character at a time via Step; it never rewinds.
type Registry struct {
	current Pos
	files   []fileSpan
	lines   []lineEntry
	curLine []byte
}

// NewRegistry creates an empty registry. The first OpenSourceFile call
// establishes the first file span.
func NewRegistry() *Registry {
	return &Registry{lines: []lineEntry{{pos: 0}}}
}

// OpenSourceFile registers a filename boundary at the current position.
// Every subsequent Step is attributed to this file until the next
// OpenSourceFile call.
func (r *Registry) OpenSourceFile(name string) {
	r.files = append(r.files, fileSpan{name: name, start: r.current})
}

// CurrentPosition returns the position of the next character to be read.
func (r *Registry) CurrentPosition() Pos {
	return r.current
}

// Step advances the registry by one consumed character. Pass the byte that
// was just consumed so line boundaries can be tracked; pass 0 for a
// position that does not correspond to an actual input byte (never done by
// the scanner in practice, but kept for callers outside this package).
func (r *Registry) Step(c byte) {
	r.current++
	r.curLine = append(r.curLine, c)
	if c == '\n' {
		r.lines[len(r.lines)-1].text = r.curLine
		r.curLine = nil
		r.lines = append(r.lines, lineEntry{pos: r.current})
	}
}

// Info resolves a Pos into file/line/column/line-text coordinates.
func (r *Registry) Info(p Pos) Info {
	file := "<input>"
	for _, f := range r.files {
		if p >= f.start {
			file = f.name
		}
	}

	// Binary search would be appropriate for large files; linear scan keeps
	// this registry dependency-free and is fast enough for the scanner's
	// access pattern (always near the end of r.lines).
	lineNo := 1
	lineStart := Pos(0)
	lineText := r.lines[0].text
	for idx, ln := range r.lines {
		if ln.pos > p {
			break
		}
		lineNo = idx + 1
		lineStart = ln.pos
		lineText = ln.text
	}
	if lineNo == len(r.lines) {
		lineText = r.curLine
	}

	col := int(p-lineStart) + 1
	text := string(lineText)
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}

	return Info{File: file, Line: lineNo, Column: col, LineText: text}
}
