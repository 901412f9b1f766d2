// Package archivescan lexes every matching member of an archive without
// extracting it to disk: `synlex archive <path>` opens a zip/tar/7z/etc.
// file, walks its members through mholt/archives, and runs each one that
// matches a glob through a lexer.Scanner.
//
// Grounded on drun's internal/engine/helpers_download.go extractArchive:
// the same archives.Identify + archives.Extractor.Extract shape, narrowed
// to a read-only walk (each member is opened and scanned in memory; nothing
// is ever written back out).
package archivescan

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/mholt/archives"

	"github.com/phillarmonic/synlex/internal/errsink"
	"github.com/phillarmonic/synlex/internal/lexer"
	"github.com/phillarmonic/synlex/internal/positions"
	"github.com/phillarmonic/synlex/internal/syntaxtable"
)

// FileResult reports the outcome of lexing one archive member.
type FileResult struct {
	Name   string
	Tokens int
	Errors int
}

// Scan opens the archive at archivePath and lexes every member whose name
// matches glob (a path.Match pattern against the in-archive name), reporting
// one FileResult per matched member in the order archives.Extractor visits
// them. A member that does not match glob is skipped without being opened.
func Scan(ctx context.Context, archivePath, glob string, syntax syntaxtable.Table) ([]FileResult, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("archivescan: open %s: %w", archivePath, err)
	}
	defer f.Close()

	format, reader, err := archives.Identify(ctx, archivePath, f)
	if err != nil {
		return nil, fmt.Errorf("archivescan: identify %s: %w", archivePath, err)
	}

	extractor, ok := format.(archives.Extractor)
	if !ok {
		return nil, fmt.Errorf("archivescan: %s does not contain multiple members to walk", archivePath)
	}

	var results []FileResult
	handler := func(_ context.Context, fi archives.FileInfo) error {
		if fi.IsDir() {
			return nil
		}
		if glob != "" {
			matched, err := path.Match(glob, fi.NameInArchive)
			if err != nil {
				return fmt.Errorf("archivescan: bad glob %q: %w", glob, err)
			}
			if !matched {
				return nil
			}
		}

		rc, err := fi.Open()
		if err != nil {
			return fmt.Errorf("archivescan: open member %s: %w", fi.NameInArchive, err)
		}
		defer rc.Close()

		reg := positions.NewRegistry()
		sink := errsink.NewBuffer()
		s := lexer.New(reg, syntax, sink)
		if err := s.Open(rc, fi.NameInArchive); err != nil {
			return fmt.Errorf("archivescan: %s: %w", fi.NameInArchive, err)
		}

		tokens := 0
		for {
			tok := s.Read()
			if tok.Kind == lexer.EOF {
				break
			}
			tokens++
		}
		s.Close()

		results = append(results, FileResult{
			Name:   fi.NameInArchive,
			Tokens: tokens,
			Errors: len(sink.Records()),
		})
		return nil
	}

	if err := extractor.Extract(ctx, reader, handler); err != nil {
		return nil, fmt.Errorf("archivescan: extract %s: %w", archivePath, err)
	}
	return results, nil
}
