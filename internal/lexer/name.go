package lexer

import "strings"

// isIdentStart reports whether b can start an identifier: an ASCII letter,
// or any byte that is part of a multi-byte UTF-8 sequence. Per spec.md's
// Non-goals ("no Unicode normalization beyond UTF-8 boundary detection"),
// non-ASCII bytes are accepted by their boundary alone, with no further
// Unicode classification.
func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9') || b == '_'
}

// isPunctByte reports whether b can be part of a symbol run: any byte that
// is neither whitespace, an identifier character (letters, digits, '_' and
// non-ASCII bytes), nor a quote. '$' and brackets are punctuation here.
func isPunctByte(b byte) bool {
	if isSpaceByte(b) || b == '\n' {
		return false
	}
	if isIdentContinue(b) {
		return false
	}
	if b == '"' || b == '\'' {
		return false
	}
	return true
}

// scanName implements the identifier-run half of spec.md §4.5, enforcing
// the name validity predicate of §4.6: no two consecutive '_', and no
// trailing '_' (spec.md §9 Q3 — this implementation enforces the rule the
// original left as dead code).
func (s *Scanner) scanName(first byte) Token {
	s.appendSource(first)
	lastUnderscore := first == '_'
	for {
		c, ok := s.reader.getchar()
		if !ok {
			break
		}
		if !isIdentContinue(c) {
			s.reader.ungetchar(c)
			s.hadSpaceAfter = isSpaceByte(c) || c == '\n'
			break
		}
		if c == '_' {
			if lastUnderscore {
				s.reportError("Two '_' characters in a row look ugly")
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		s.appendSource(c)
	}
	if lastUnderscore {
		s.reportError("A name cannot end with '_'")
	}
	return s.finishNameOrSymbol(string(s.source))
}

// scanSymbol implements the punctuation-run half of spec.md §4.5.
func (s *Scanner) scanSymbol(first byte) Token {
	s.appendSource(first)
	for {
		c, ok := s.reader.getchar()
		if !ok {
			break
		}
		if !isPunctByte(c) {
			s.reader.ungetchar(c)
			s.hadSpaceAfter = isSpaceByte(c) || c == '\n'
			break
		}
		candidate := string(s.source) + string(c)
		if s.syntax != nil && !s.syntax.IsOperator(candidate) {
			s.reader.ungetchar(c)
			break
		}
		s.appendSource(c)
	}
	return s.finishNameOrSymbol(string(s.source))
}

// normalize applies spec.md §4.5's normalization: strip '_', fold ASCII
// uppercase to lowercase. Reuses the source string unchanged when it is
// already normalized, satisfying P5 (normalization idempotence) trivially.
func normalize(spelling string) string {
	needsWork := false
	for i := 0; i < len(spelling); i++ {
		c := spelling[i]
		if c == '_' || (c >= 'A' && c <= 'Z') {
			needsWork = true
			break
		}
	}
	if !needsWork {
		return spelling
	}
	var b strings.Builder
	b.Grow(len(spelling))
	for i := 0; i < len(spelling); i++ {
		c := spelling[i]
		if c == '_' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// finishNameOrSymbol applies normalization (for identifier spellings) and
// block detection (spec.md §4.5), consulting the syntax table when present.
func (s *Scanner) finishNameOrSymbol(spelling string) Token {
	isIdent := len(spelling) > 0 && isIdentStart(spelling[0])
	name := spelling
	if isIdent {
		name = normalize(spelling)
	}

	if s.syntax != nil {
		if closing, ok := s.syntax.IsBlock(name); ok {
			s.blockClose = closing
			return s.nameToken(OPEN, name)
		}
		if s.blockClose != "" && name == s.blockClose {
			s.blockClose = ""
			return s.nameToken(CLOSE, name)
		}
	}

	if isIdent {
		return s.nameToken(NAME, name)
	}
	return s.nameToken(SYMBOL, name)
}
