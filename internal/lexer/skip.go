package lexer

// Skip implements spec.md §4.7, the scan-ahead used for comments and
// long-text literals: it reads until eoc is matched, using a KMP-style
// failure function so a self-similar delimiter (e.g. "**/") backtracks into
// overlapping re-matches instead of restarting from scratch, and returns the
// accumulated text without the trailing eoc.
//
// Indentation elision (§9 Q2, resolved in SPEC_FULL.md): leading whitespace
// on each line of the skipped text is elided one character at a time, up to
// the scanner's current indent column, with no tab-stop expansion — the same
// character-counting rule the main indentation state machine uses.
func (s *Scanner) Skip(eoc string) string {
	if eoc == "" {
		return ""
	}
	failure := buildKMPFailure(eoc)
	matched := 0
	var out []byte

	eliding := true
	elided := 0
	indent := s.currentIndent()

	for {
		c, ok := s.reader.getchar()
		if !ok {
			s.reportError("End of input in the middle of a text")
			return string(out)
		}

		for matched > 0 && c != eoc[matched] {
			matched = failure[matched-1]
		}
		if c == eoc[matched] {
			matched++
		} else {
			matched = 0
		}
		if matched == len(eoc) {
			return string(out[:len(out)-(len(eoc)-1)])
		}

		if c == '\n' {
			out = append(out, c)
			eliding = true
			elided = 0
			continue
		}
		if eliding && isSpaceByte(c) && elided < indent {
			elided++
			continue
		}
		eliding = false
		out = append(out, c)
	}
}

func buildKMPFailure(pat string) []int {
	f := make([]int, len(pat))
	k := 0
	for i := 1; i < len(pat); i++ {
		for k > 0 && pat[i] != pat[k] {
			k = f[k-1]
		}
		if pat[i] == pat[k] {
			k++
		}
		f[i] = k
	}
	return f
}
