package gqlproject

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Extractor pulls embedded query blocks out of a single file. Native
// query files return one block covering the whole file; host-language
// files return zero or more blocks. Implemented by
// pkg/extract; declared here as an interface so the core never imports
// the extractor package (avoiding a cycle) and stays agnostic to how
// blocks were found.
type Extractor interface {
	Extract(path string) ([]ExtractedBlock, error)
}

type fileResult struct {
	blocks []ExtractedBlock
	parsed []*ParsedDocument
	err    error
}

// LoadDocuments resolves the given file paths through extractor,
// concurrently parses every extracted block, then builds a fresh
// DocumentIndex from the clean ones. Blocks whose parse had syntax
// errors are skipped from indexing but are not treated
// as a load failure. The index keeps no tree for such a block, so callers
// that validate indexed trees (graphql-lint validate) do not report its
// syntax errors.
//
// Parsing happens concurrently across files (golang.org/x/sync/errgroup)
// because it is pure CPU work with no shared state; the DocumentIndex
// itself is built single-threaded afterwards, so no locking is needed to
// keep it internally consistent.
func LoadDocuments(ctx context.Context, files []string, extractor Extractor) (*DocumentIndex, error) {
	results := make([]fileResult, len(files))

	g, _ := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			blocks, err := extractor.Extract(f)
			if err != nil {
				results[i] = fileResult{err: err}
				return nil
			}
			parsed := make([]*ParsedDocument, len(blocks))
			for j, b := range blocks {
				parsed[j] = ParseDocument(b.File, b.Source)
			}
			results[i] = fileResult{blocks: blocks, parsed: parsed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	di := NewDocumentIndex()
	for _, r := range results {
		if r.err != nil {
			// Extraction failure for one file does not fail the whole load;
			// it simply contributes nothing to the index.
			continue
		}
		for i, block := range r.blocks {
			pd := r.parsed[i]
			if !pd.Clean() {
				continue
			}
			di.AddParsedBlock(block, pd)
		}
	}
	return di, nil
}
