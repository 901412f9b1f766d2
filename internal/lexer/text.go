package lexer

import (
	"fmt"
	"unicode/utf8"
)

// scanText implements spec.md §4.4. eos is the opening quote character,
// '"' for TEXT or '\'' for CHARACTER.
func (s *Scanner) scanText(eos byte) Token {
	s.appendSource(eos)
	var payload []byte

	for {
		c, ok := s.reader.getchar()
		if !ok {
			s.reportError("End of input in the middle of a text")
			break
		}
		if c == eos {
			next, hasNext := s.reader.getchar()
			if hasNext && next == eos {
				payload = append(payload, eos)
				s.appendSource(eos)
				s.appendSource(eos)
				continue
			}
			if hasNext {
				s.reader.ungetchar(next)
			}
			s.appendSource(eos)
			break
		}
		payload = append(payload, c)
		s.appendSource(c)
	}

	if eos == '\'' {
		r, size := utf8.DecodeRune(payload)
		if size != len(payload) || len(payload) == 0 || r == utf8.RuneError {
			s.reportError(fmt.Sprintf("Character constant '%s' should contain one character", payload))
			if len(payload) > 0 {
				r, _ = utf8.DecodeRune(payload)
			} else {
				r = 0
			}
		}
		return s.characterToken(r)
	}
	return s.textToken(string(payload))
}
