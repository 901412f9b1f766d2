package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phillarmonic/synlex/internal/archivescan"
)

// Domain: Archive Scanning
// This file contains the `archive` subcommand: lex every member of an
// archive matching a glob, without extracting it to disk.

// NewArchiveCmd builds the `synlex archive` command.
func NewArchiveCmd() *cobra.Command {
	var tablePath string
	var glob string

	cmd := &cobra.Command{
		Use:   "archive <path>",
		Short: "Lex every matching file inside an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(args[0], tablePath, glob)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Syntax table YAML file (discovery mode if omitted)")
	cmd.Flags().StringVar(&glob, "glob", "", "Only lex members whose name matches this glob (default: all)")
	return cmd
}

func runArchive(path, tablePath, glob string) error {
	syntax, err := loadSyntaxTable(tablePath)
	if err != nil {
		return err
	}

	results, err := archivescan.Scan(context.Background(), path, glob, syntax)
	if err != nil {
		return err
	}

	errorTotal := 0
	for _, r := range results {
		fmt.Printf("%-40s %6d tokens  %4d errors\n", r.Name, r.Tokens, r.Errors)
		errorTotal += r.Errors
	}
	fmt.Printf("%d file(s) scanned, %d lexical error(s)\n", len(results), errorTotal)
	if errorTotal > 0 {
		return fmt.Errorf("%d lexical error(s) found", errorTotal)
	}
	return nil
}
