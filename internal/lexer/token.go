// Package lexer implements the lexical scanner described in spec.md: an
// indentation-aware tokenizer that turns a byte stream into NAME, SYMBOL,
// NATURAL, REAL, TEXT, CHARACTER, BLOB, NEWLINE, INDENT, UNINDENT, OPEN,
// CLOSE, EOF and ERROR tokens for a downstream parser to assemble.
//
// The scanner is single-threaded and not reentrant (spec.md §5): one
// *Scanner processes one input stream at a time. It shares a position
// registry and a syntax table with its caller but owns its own indent
// stack, pending-literal value, and pushback buffer.
package lexer

import "fmt"

// Kind is the closed set of token kinds the scanner produces.
type Kind int

const (
	EOF Kind = iota
	ERROR
	NAME
	SYMBOL
	NATURAL
	REAL
	TEXT
	CHARACTER
	BLOB
	NEWLINE
	INDENT
	UNINDENT
	OPEN
	CLOSE
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case ERROR:
		return "ERROR"
	case NAME:
		return "NAME"
	case SYMBOL:
		return "SYMBOL"
	case NATURAL:
		return "NATURAL"
	case REAL:
		return "REAL"
	case TEXT:
		return "TEXT"
	case CHARACTER:
		return "CHARACTER"
	case BLOB:
		return "BLOB"
	case NEWLINE:
		return "NEWLINE"
	case INDENT:
		return "INDENT"
	case UNINDENT:
		return "UNINDENT"
	case OPEN:
		return "OPEN"
	case CLOSE:
		return "CLOSE"
	default:
		return "UNKNOWN"
	}
}

// ValueKind discriminates the exclusive union of typed literal values a
// token may carry. It stands in for the reference-counted tagged tree nodes
// of the original implementation (spec.md §9) — here just a plain struct,
// since ownership/lifetime management is the tree node memory model's job
// and out of scope for the scanner (spec.md §1).
type ValueKind int

const (
	NoValue ValueKind = iota
	NameValue
	TextValue
	NaturalValue
	RealValue
	CharacterValue
	BlobValue
)

// Value is the typed literal produced alongside a literal-bearing token.
// Exactly one field is meaningful, selected by Kind.
type Value struct {
	Kind      ValueKind
	Name      string
	Text      string
	Natural   uint64
	Real      float64
	Character rune
	Blob      []byte
}

func (v Value) String() string {
	switch v.Kind {
	case NameValue:
		return v.Name
	case TextValue:
		return v.Text
	case NaturalValue:
		return fmt.Sprintf("%d", v.Natural)
	case RealValue:
		return fmt.Sprintf("%g", v.Real)
	case CharacterValue:
		return string(v.Character)
	case BlobValue:
		return fmt.Sprintf("<%d bytes>", len(v.Blob))
	default:
		return ""
	}
}

// Token is one lexical token: its kind, its exact source spelling, the
// position of its first character, and (for literal-bearing kinds) its
// typed value.
type Token struct {
	Kind    Kind
	Source  string
	Pos     uint64
	Value   Value
	Spacing Spacing
}

// Spacing records the whitespace context around a token, which the parser
// needs to disambiguate things like `f (x)` (space before the paren) from
// `f(x)` (no space) in an extensible grammar.
type Spacing struct {
	Before bool
	After  bool
}

func (t Token) String() string {
	if t.Value.Kind == NoValue {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Source)
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}
