package lexer

import (
	"io"

	"github.com/phillarmonic/synlex/internal/errsink"
	"github.com/phillarmonic/synlex/internal/positions"
	"github.com/phillarmonic/synlex/internal/syntaxtable"
)

// Scanner is the lexical scanner of spec.md §3: single-threaded, not
// reentrant, one input stream open at a time. It shares a position registry
// and an (optional) syntax table with its caller, and owns its own indent
// stack, pushback buffer, and in-flight token state.
type Scanner struct {
	positions *positions.Registry
	syntax    syntaxtable.Table // nil means discovery mode, spec.md §4.5
	sink      errsink.Sink

	reader *charReader

	source []byte // raw spelling of the token currently being assembled

	indents          []int
	blockClose       string
	column           int
	indentChar       byte
	checkingIndent   bool
	settingIndent    bool
	pendingUnindents int
	hadSpaceBefore   bool
	hadSpaceAfter    bool

	tokenPos positions.Pos
}

// New creates a Scanner bound to reg for position tracking and sink for
// diagnostics. syntax may be nil, putting the scanner in discovery mode.
func New(reg *positions.Registry, syntax syntaxtable.Table, sink errsink.Sink) *Scanner {
	return &Scanner{
		positions: reg,
		syntax:    syntax,
		sink:      sink,
		reader:    newCharReader(reg),
	}
}

// Open binds src as the scanner's input stream, registering name with the
// position registry. Rejected if a stream is already open (spec.md §3).
func (s *Scanner) Open(src io.Reader, name string) error {
	if err := s.reader.openStream(src); err != nil {
		return err
	}
	s.positions.OpenSourceFile(name)
	s.indents = nil
	s.blockClose = ""
	s.column = 0
	s.indentChar = 0
	s.checkingIndent = false
	s.settingIndent = false
	s.pendingUnindents = 0
	s.hadSpaceBefore = false
	s.hadSpaceAfter = false
	return nil
}

// Close releases the current input stream so a new one may be opened.
func (s *Scanner) Close() {
	s.reader.closeStream()
}

// Read returns the next token, per spec.md §4.8's Public Token API. It
// never returns an error: lexical problems are reported through the sink
// and surface as an ERROR token or a best-effort recovery (spec.md §7).
func (s *Scanner) Read() Token {
	s.source = s.source[:0]
	if tok, produced := s.processIndentation(); produced {
		return tok
	}
	return s.scanToken()
}

// scanToken dispatches on the first non-whitespace character of the token,
// per spec.md §4 (4.3–4.5).
func (s *Scanner) scanToken() Token {
	s.tokenPos = s.reader.position()
	s.hadSpaceAfter = false

	c, ok := s.reader.getchar()
	if !ok {
		return s.token(EOF, "")
	}

	switch {
	case c == '$':
		return s.scanBlob()
	case c >= '0' && c <= '9':
		return s.scanNumber(c)
	case c == '"' || c == '\'':
		return s.scanText(c)
	case isIdentStart(c):
		return s.scanName(c)
	default:
		return s.scanSymbol(c)
	}
}

func (s *Scanner) appendSource(c byte) {
	s.source = append(s.source, c)
}

func (s *Scanner) reportError(message string) {
	if s.sink == nil {
		return
	}
	s.sink.Report(s.positions.Info(s.reader.position()), message)
}

// token builds a structural token (NEWLINE/INDENT/UNINDENT/EOF/ERROR)
// carrying the single-character control-token name spec.md §4.6 describes,
// falling back to it when leading whitespace produced no source bytes.
func (s *Scanner) token(kind Kind, controlSpelling string) Token {
	spacing := Spacing{Before: s.hadSpaceBefore, After: s.hadSpaceAfter}
	s.hadSpaceBefore = false
	s.hadSpaceAfter = false

	src := string(s.source)
	if src == "" {
		src = controlSpelling
	}
	var value Value
	if controlSpelling != "" {
		value = Value{Kind: NameValue, Name: controlSpelling}
	}
	return Token{Kind: kind, Source: src, Pos: uint64(s.tokenPos), Value: value, Spacing: spacing}
}

func (s *Scanner) naturalToken(n uint64) Token {
	return s.literalToken(NATURAL, Value{Kind: NaturalValue, Natural: n})
}

func (s *Scanner) realToken(r float64) Token {
	return s.literalToken(REAL, Value{Kind: RealValue, Real: r})
}

func (s *Scanner) textToken(text string) Token {
	return s.literalToken(TEXT, Value{Kind: TextValue, Text: text})
}

func (s *Scanner) characterToken(r rune) Token {
	return s.literalToken(CHARACTER, Value{Kind: CharacterValue, Character: r})
}

func (s *Scanner) blobToken(b []byte) Token {
	return s.literalToken(BLOB, Value{Kind: BlobValue, Blob: b})
}

func (s *Scanner) nameToken(kind Kind, name string) Token {
	return s.literalToken(kind, Value{Kind: NameValue, Name: name})
}

func (s *Scanner) literalToken(kind Kind, value Value) Token {
	spacing := Spacing{Before: s.hadSpaceBefore, After: s.hadSpaceAfter}
	s.hadSpaceBefore = false
	s.hadSpaceAfter = false
	return Token{Kind: kind, Source: string(s.source), Pos: uint64(s.tokenPos), Value: value, Spacing: spacing}
}
