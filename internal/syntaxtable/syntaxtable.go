// Package syntaxtable implements the external syntax table collaborator the
// scanner queries to classify operator spellings and block delimiter pairs.
//
// The scanner only ever calls the two predicates on the Table interface. A
// nil Table puts the scanner in "discovery mode" (spec.md §4.5): punctuation
// runs are consumed greedily instead of checked against known operators, and
// no name ever opens or closes a block.
package syntaxtable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table classifies operator spellings and block delimiter names.
type Table interface {
	// IsBlock reports whether name opens a block and, if so, the closing
	// name required to end it.
	IsBlock(name string) (closing string, ok bool)

	// IsOperator reports whether spelling is a known operator, or a prefix
	// of one, so the symbol scanner can decide whether to keep consuming
	// punctuation.
	IsOperator(spelling string) bool
}

// document is the YAML shape a syntax table file is loaded from.
//
//	operators:
//	  - ".."
//	  - "->"
//	blocks:
//	  - open: if
//	    close: then
type document struct {
	Operators []string    `yaml:"operators"`
	Blocks    []blockPair `yaml:"blocks"`
}

type blockPair struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// staticTable is a Table built once from a document and never mutated.
type staticTable struct {
	operators map[string]bool
	blocks    map[string]string
}

// Load reads a syntax table definition from a YAML file.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("syntaxtable: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Table from YAML bytes (used directly by callers that
// already have the document in memory, e.g. after a remote fetch).
func Parse(data []byte) (Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("syntaxtable: parse: %w", err)
	}

	t := &staticTable{
		operators: make(map[string]bool, len(doc.Operators)),
		blocks:    make(map[string]string, len(doc.Blocks)),
	}
	for _, op := range doc.Operators {
		t.operators[op] = true
		// Every proper prefix of a multi-character operator must also
		// report true from IsOperator, or the symbol scanner could never
		// accumulate enough characters to reach the full spelling.
		for i := 1; i < len(op); i++ {
			t.operators[op[:i]] = true
		}
	}
	for _, b := range doc.Blocks {
		if b.Open == "" || b.Close == "" {
			return nil, fmt.Errorf("syntaxtable: block pair missing open or close name")
		}
		t.blocks[b.Open] = b.Close
	}
	return t, nil
}

func (t *staticTable) IsBlock(name string) (string, bool) {
	closing, ok := t.blocks[name]
	return closing, ok
}

func (t *staticTable) IsOperator(spelling string) bool {
	return t.operators[spelling]
}
