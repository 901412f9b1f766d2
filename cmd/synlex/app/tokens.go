package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phillarmonic/synlex/internal/errsink"
	"github.com/phillarmonic/synlex/internal/lexer"
	"github.com/phillarmonic/synlex/internal/positions"
	"github.com/phillarmonic/synlex/internal/syntaxtable"
)

// Domain: Token Inspection
// This file contains the `tokens` subcommand: lex one file and print what
// the scanner produced.

type tokenRow struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Value  string `json:"value,omitempty"`
	Pos    string `json:"pos"`
}

// NewTokensCmd builds the `synlex tokens` command.
func NewTokensCmd() *cobra.Command {
	var tablePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Lex a file and print every token it produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(args[0], tablePath, asJSON)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Syntax table YAML file (discovery mode if omitted)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tokens as a JSON array")
	return cmd
}

func runTokens(path, tablePath string, asJSON bool) error {
	syntax, err := loadSyntaxTable(tablePath)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reg := positions.NewRegistry()
	sink := errsink.NewConsole(0)
	s := lexer.New(reg, syntax, sink)
	if err := s.Open(f, path); err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer s.Close()

	var rows []tokenRow
	for {
		tok := s.Read()
		info := reg.Info(positions.Pos(tok.Pos))
		row := tokenRow{Kind: tok.Kind.String(), Source: tok.Source, Pos: info.String()}
		if tok.Value.Kind != lexer.NoValue {
			row.Value = tok.Value.String()
		}
		if asJSON {
			rows = append(rows, row)
		} else {
			fmt.Printf("%-10s %-20q %s\n", row.Kind, row.Source, row.Pos)
		}
		if tok.Kind == lexer.EOF {
			break
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return nil
}

// loadSyntaxTable loads the syntax table at path, or returns nil (discovery
// mode) when path is empty.
func loadSyntaxTable(path string) (syntaxtable.Table, error) {
	if path == "" {
		return nil, nil
	}
	return syntaxtable.Load(path)
}
