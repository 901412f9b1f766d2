package lexer

import (
	"strings"
	"testing"

	"github.com/phillarmonic/synlex/internal/positions"
	"github.com/phillarmonic/synlex/internal/syntaxtable"
)

func newTestScanner(t *testing.T, input string) *Scanner {
	t.Helper()
	reg := positions.NewRegistry()
	s := New(reg, nil, nil)
	if err := s.Open(strings.NewReader(input), "test.syn"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func newTestScannerWithTable(t *testing.T, input string, table syntaxtable.Table) *Scanner {
	t.Helper()
	reg := positions.NewRegistry()
	s := New(reg, table, nil)
	if err := s.Open(strings.NewReader(input), "test.syn"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestScanner_NaturalWithUnderscore(t *testing.T) {
	s := newTestScanner(t, "12_345")

	tok := s.Read()
	if tok.Kind != NATURAL || tok.Value.Natural != 12345 {
		t.Fatalf("expected NATURAL(12345), got %s", tok)
	}
	if tok = s.Read(); tok.Kind != EOF {
		t.Fatalf("expected EOF, got %s", tok)
	}
}

func TestScanner_BasedNumberThenExponent(t *testing.T) {
	for _, input := range []string{"16#FF#E2", "16#FF#e2"} {
		s := newTestScanner(t, input)
		tok := s.Read()
		if tok.Kind != NATURAL || tok.Value.Natural != 65280 {
			t.Fatalf("%s: expected NATURAL(65280), got %s", input, tok)
		}
	}
}

func TestScanner_AmbiguousDot(t *testing.T) {
	s := newTestScanner(t, "1..3")

	tok := s.Read()
	if tok.Kind != NATURAL || tok.Value.Natural != 1 {
		t.Fatalf("expected NATURAL(1), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != SYMBOL || tok.Value.Name != ".." {
		t.Fatalf("expected SYMBOL(..), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != NATURAL || tok.Value.Natural != 3 {
		t.Fatalf("expected NATURAL(3), got %s", tok)
	}
}

func TestScanner_Blob(t *testing.T) {
	s := newTestScanner(t, "$16#DEADBEEF$")

	tok := s.Read()
	if tok.Kind != BLOB {
		t.Fatalf("expected BLOB, got %s", tok)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if string(tok.Value.Blob) != string(want) {
		t.Fatalf("expected %x, got %x", want, tok.Value.Blob)
	}
}

func TestScanner_DoubledQuoteText(t *testing.T) {
	s := newTestScanner(t, `"hello ""world"""`)

	tok := s.Read()
	if tok.Kind != TEXT {
		t.Fatalf("expected TEXT, got %s", tok)
	}
	want := `hello "world"`
	if tok.Value.Text != want {
		t.Fatalf("expected %q, got %q", want, tok.Value.Text)
	}
}

func TestScanner_IndentUnindent(t *testing.T) {
	input := "a\n  b\n  c\nd"
	s := newTestScanner(t, input)

	expected := []struct {
		kind Kind
		name string
	}{
		{NAME, "a"},
		{INDENT, ""},
		{NAME, "b"},
		{NEWLINE, ""},
		{NAME, "c"},
		{UNINDENT, ""},
		{NAME, "d"},
		{EOF, ""},
	}

	for i, want := range expected {
		tok := s.Read()
		if tok.Kind != want.kind {
			t.Fatalf("token %d: expected kind %s, got %s (%s)", i, want.kind, tok.Kind, tok)
		}
		if want.name != "" && tok.Value.Name != want.name {
			t.Fatalf("token %d: expected name %q, got %q", i, want.name, tok.Value.Name)
		}
	}
}

func TestScanner_Real(t *testing.T) {
	s := newTestScanner(t, "3.14e-2")

	tok := s.Read()
	if tok.Kind != REAL {
		t.Fatalf("expected REAL, got %s", tok)
	}
	const want = 0.0314
	if diff := tok.Value.Real - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected ~%v, got %v", want, tok.Value.Real)
	}
}

func TestScanner_NormalizationFoldsCaseAndUnderscore(t *testing.T) {
	s1 := newTestScanner(t, "If_Then")
	s2 := newTestScanner(t, "ifthen")

	tok1 := s1.Read()
	tok2 := s2.Read()
	if tok1.Kind != NAME || tok2.Kind != NAME {
		t.Fatalf("expected NAME tokens, got %s and %s", tok1, tok2)
	}
	if tok1.Value.Name != tok2.Value.Name {
		t.Fatalf("expected normalized names to match: %q vs %q", tok1.Value.Name, tok2.Value.Name)
	}
}

func TestScanner_NormalizationIdempotent(t *testing.T) {
	if got := normalize("already_normal"); normalize(got) != got {
		t.Fatalf("normalize not idempotent: %q -> %q", got, normalize(got))
	}
}

func TestScanner_MultiLevelDedentBalance(t *testing.T) {
	input := "a\n  b\n    c\nd"
	s := newTestScanner(t, input)

	var indents, unindents int
	for {
		tok := s.Read()
		if tok.Kind == EOF {
			break
		}
		switch tok.Kind {
		case INDENT:
			indents++
		case UNINDENT:
			unindents++
		}
	}
	if indents != unindents {
		t.Fatalf("unbalanced indent/unindent: %d INDENT vs %d UNINDENT", indents, unindents)
	}
	if indents != 2 {
		t.Fatalf("expected 2 levels of indent, got %d", indents)
	}
}

func TestScanner_MixedTabsAndSpacesReported(t *testing.T) {
	buf := &recordingSink{}
	reg := positions.NewRegistry()
	s := New(reg, nil, buf)
	if err := s.Open(strings.NewReader("a\n \tb"), "test.syn"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := 0; i < 3; i++ {
		s.Read()
	}
	if len(buf.messages) == 0 {
		t.Fatalf("expected a diagnostic for mixed indentation")
	}
	if buf.messages[0] != "Mixed tabs and spaces in indentation" {
		t.Fatalf("unexpected diagnostic: %q", buf.messages[0])
	}
}

func TestScanner_CharacterLiteral(t *testing.T) {
	s := newTestScanner(t, "'x'")
	tok := s.Read()
	if tok.Kind != CHARACTER || tok.Value.Character != 'x' {
		t.Fatalf("expected CHARACTER('x'), got %s", tok)
	}
}

func TestScanner_Skip(t *testing.T) {
	s := newTestScanner(t, "comment */ after")
	text := s.Skip("*/")
	if text != "comment " {
		t.Fatalf("expected %q, got %q", "comment ", text)
	}
	tok := s.Read()
	if tok.Kind != NAME || tok.Value.Name != "after" {
		t.Fatalf("expected NAME(after) after skip, got %s", tok)
	}
}

func TestScanner_BlockOpenAndClose(t *testing.T) {
	table, err := syntaxtable.Parse([]byte("blocks:\n  - open: if\n    close: then\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := newTestScannerWithTable(t, "if x then", table)

	tok := s.Read()
	if tok.Kind != OPEN || tok.Value.Name != "if" {
		t.Fatalf("expected OPEN(if), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != NAME || tok.Value.Name != "x" {
		t.Fatalf("expected NAME(x), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != CLOSE || tok.Value.Name != "then" {
		t.Fatalf("expected CLOSE(then), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != EOF {
		t.Fatalf("expected EOF, got %s", tok)
	}
}

func TestScanner_OperatorPrefixMatching(t *testing.T) {
	table, err := syntaxtable.Parse([]byte("operators:\n  - \"->\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := newTestScannerWithTable(t, "a->b", table)

	tok := s.Read()
	if tok.Kind != NAME || tok.Value.Name != "a" {
		t.Fatalf("expected NAME(a), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != SYMBOL || tok.Value.Name != "->" {
		t.Fatalf("expected SYMBOL(->), got %s", tok)
	}
	tok = s.Read()
	if tok.Kind != NAME || tok.Value.Name != "b" {
		t.Fatalf("expected NAME(b), got %s", tok)
	}
}

func TestScanner_TrailingUnderscoreReported(t *testing.T) {
	buf := &recordingSink{}
	reg := positions.NewRegistry()
	s := New(reg, nil, buf)
	if err := s.Open(strings.NewReader("ab_"), "test.syn"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	tok := s.Read()
	if tok.Kind != NAME || tok.Value.Name != "ab" {
		t.Fatalf("expected NAME(ab), got %s", tok)
	}
	if len(buf.messages) == 0 || buf.messages[0] != "A name cannot end with '_'" {
		t.Fatalf("expected trailing-underscore diagnostic, got %v", buf.messages)
	}
}

func TestScanner_DoubledUnderscoreReported(t *testing.T) {
	buf := &recordingSink{}
	reg := positions.NewRegistry()
	s := New(reg, nil, buf)
	if err := s.Open(strings.NewReader("a__b"), "test.syn"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	tok := s.Read()
	if tok.Kind != NAME || tok.Value.Name != "ab" {
		t.Fatalf("expected NAME(ab), got %s", tok)
	}
	if len(buf.messages) == 0 || buf.messages[0] != "Two '_' characters in a row look ugly" {
		t.Fatalf("expected doubled-underscore diagnostic, got %v", buf.messages)
	}
}

func BenchmarkScanner_Number(b *testing.B) {
	reg := positions.NewRegistry()
	s := New(reg, nil, nil)
	for i := 0; i < b.N; i++ {
		if err := s.Open(strings.NewReader("16#DEAD_BEEF#E10"), "bench.syn"); err != nil {
			b.Fatalf("Open: %v", err)
		}
		for {
			if s.Read().Kind == EOF {
				break
			}
		}
		s.Close()
	}
}

func BenchmarkScanner_IndentStack(b *testing.B) {
	var src strings.Builder
	for i := 0; i < 20; i++ {
		src.WriteString(strings.Repeat("  ", i))
		src.WriteString("line\n")
	}
	input := src.String()

	reg := positions.NewRegistry()
	s := New(reg, nil, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Open(strings.NewReader(input), "bench.syn"); err != nil {
			b.Fatalf("Open: %v", err)
		}
		for {
			if s.Read().Kind == EOF {
				break
			}
		}
		s.Close()
	}
}

type recordingSink struct {
	messages []string
}

func (r *recordingSink) Report(_ positions.Info, message string) {
	r.messages = append(r.messages, message)
}
