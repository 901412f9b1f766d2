package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/phillarmonic/synlex/internal/positions"
)

// charReader is the pull-based byte source described in spec.md §4.1. It
// wraps an io.Reader (the Go-idiomatic shape of the abstract
// "(stream, nbytes, buffer) -> nread" callback) and supports up to two
// characters of pushback, consumed LIFO.
type charReader struct {
	positions *positions.Registry
	src       *bufio.Reader
	open      bool
	pending   []byte // stack, at most 2 entries; top = last pushed
}

func newCharReader(reg *positions.Registry) *charReader {
	return &charReader{positions: reg}
}

// openStream binds a new input stream. Opening is rejected if one is
// already open (spec.md §3 lifecycle).
func (r *charReader) openStream(src io.Reader) error {
	if r.open {
		return errors.New("lexer: a stream is already open")
	}
	r.src = bufio.NewReader(src)
	r.open = true
	r.pending = r.pending[:0]
	return nil
}

// closeStream clears the reader so subsequent getchar calls report EOF.
func (r *charReader) closeStream() {
	r.src = nil
	r.open = false
	r.pending = r.pending[:0]
}

// getchar drains pending pushback first; otherwise pulls one byte from the
// reader. On reader EOF the reader is cleared, per spec.md §4.1.
func (r *charReader) getchar() (byte, bool) {
	if n := len(r.pending); n > 0 {
		c := r.pending[n-1]
		r.pending = r.pending[:n-1]
		return c, true
	}
	if !r.open || r.src == nil {
		return 0, false
	}
	c, err := r.src.ReadByte()
	if err != nil {
		r.closeStream()
		return 0, false
	}
	r.positions.Step(c)
	return c, true
}

// ungetchar pushes a character back. At most two characters of pushback are
// ever needed (spec.md §9); a third is a programming error.
func (r *charReader) ungetchar(c byte) {
	if len(r.pending) >= 2 {
		panic(fmt.Sprintf("lexer: ungetchar overflow, both pushback slots full (tried to push %q)", c))
	}
	r.pending = append(r.pending, c)
}

// position returns the registry's current position minus the count of
// pending pushback characters, so diagnostics refer to the position of the
// next unread character rather than the position already consumed from the
// underlying stream (spec.md §4.1).
func (r *charReader) position() positions.Pos {
	return r.positions.CurrentPosition() - positions.Pos(len(r.pending))
}
