package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phillarmonic/synlex/internal/errsink"
	"github.com/phillarmonic/synlex/internal/lexer"
	"github.com/phillarmonic/synlex/internal/positions"
)

// Domain: Lexical Validation
// This file contains the `check` subcommand, the scanner-level analogue of
// drun's dry-run/explain flags: lex files and report only whether each one
// is lexically clean.

// NewCheckCmd builds the `synlex check` command.
func NewCheckCmd() *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Lex files and report lexical errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args, tablePath)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Syntax table YAML file (discovery mode if omitted)")
	return cmd
}

func runCheck(paths []string, tablePath string) error {
	syntax, err := loadSyntaxTable(tablePath)
	if err != nil {
		return err
	}

	total := 0
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			total++
			continue
		}

		reg := positions.NewRegistry()
		sink := errsink.NewConsole(20)
		s := lexer.New(reg, syntax, sink)
		if err := s.Open(f, path); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			total++
			continue
		}

		for {
			tok := s.Read()
			if tok.Kind == lexer.EOF {
				break
			}
		}
		s.Close()
		f.Close()

		if n := sink.Total(); n > 0 {
			fmt.Printf("%s: %d error(s)\n", path, n)
			total += n
		}
	}

	if total > 0 {
		return fmt.Errorf("%d error(s) found", total)
	}
	fmt.Printf("%d file(s) checked, no errors\n", len(paths))
	return nil
}
