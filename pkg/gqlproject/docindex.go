package gqlproject

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// OperationKind mirrors the query language's three root operation types.
type OperationKind string

const (
	OperationQuery        OperationKind = "QUERY"
	OperationMutation     OperationKind = "MUTATION"
	OperationSubscription OperationKind = "SUBSCRIPTION"
)

func operationKindOf(op ast.Operation) OperationKind {
	switch op {
	case ast.Mutation:
		return OperationMutation
	case ast.Subscription:
		return OperationSubscription
	default:
		return OperationQuery
	}
}

// OperationSite is one declaration of a named (or anonymous) operation.
type OperationSite struct {
	Name   string // "" for anonymous
	Kind   OperationKind
	File   string
	Line   int
	Column int
}

// FragmentSite is one declaration of a fragment.
type FragmentSite struct {
	Name          string
	TypeCondition string
	File          string
	Line          int
	Column        int
}

// DocumentIndex is the operation/fragment catalog built by scanning every
// configured document glob. Name lookups return a list of sites because
// duplicate names are legal at the indexing level; they are a lint
// error, not an indexing error.
type DocumentIndex struct {
	operations  map[string][]OperationSite
	fragments   map[string][]FragmentSite
	parsedTrees map[string]*ParsedDocument // file -> parsed CST, shared/immutable
}

// NewDocumentIndex returns an empty index; callers populate it via Add*
// while iterating extracted blocks, then treat it as immutable.
func NewDocumentIndex() *DocumentIndex {
	return &DocumentIndex{
		operations:  make(map[string][]OperationSite),
		fragments:   make(map[string][]FragmentSite),
		parsedTrees: make(map[string]*ParsedDocument),
	}
}

// AddParsedBlock indexes one already-parsed, clean block's operations and
// fragments, and caches its tree under block.File. A block whose parse
// had errors should never reach this method; those are skipped silently
// by the caller instead.
func (di *DocumentIndex) AddParsedBlock(block ExtractedBlock, pd *ParsedDocument) {
	di.parsedTrees[block.File] = pd
	if pd.AST == nil {
		return
	}

	for _, op := range pd.AST.Operations {
		pos := absoluteNamePosition(block, nameOffsetWithin(pd.Source.Input, op.Position, op.Name))
		site := OperationSite{
			Name:   op.Name,
			Kind:   operationKindOf(op.Operation),
			File:   block.File,
			Line:   pos.Line,
			Column: pos.Column,
		}
		di.operations[op.Name] = append(di.operations[op.Name], site)
	}

	for _, frag := range pd.AST.Fragments {
		pos := absoluteNamePosition(block, nameOffsetWithin(pd.Source.Input, frag.Position, frag.Name))
		site := FragmentSite{
			Name:          frag.Name,
			TypeCondition: frag.TypeCondition,
			File:          block.File,
			Line:          pos.Line,
			Column:        pos.Column,
		}
		di.fragments[frag.Name] = append(di.fragments[frag.Name], site)
	}
}

// nameOffsetWithin locates name starting at pos within src and returns its
// 0-based (line, column) position relative to the start of src.
func nameOffsetWithin(src string, pos *ast.Position, name string) Position {
	if name == "" || pos == nil {
		if pos == nil {
			return Position{}
		}
		return Position{Line: pos.Line - 1, Column: pos.Column - 1}
	}
	start, _ := identifierRange(src, posOffset(pos), name)
	return NewLineIndex(src).OffsetToPosition(start)
}

// Operations returns every declared site of name, in index order.
func (di *DocumentIndex) Operations(name string) []OperationSite {
	return di.operations[name]
}

// Fragments returns every declared site of name, in index order.
func (di *DocumentIndex) Fragments(name string) []FragmentSite {
	return di.fragments[name]
}

// AllFragmentNames returns every fragment name the index knows about.
func (di *DocumentIndex) AllFragmentNames() []string {
	names := make([]string, 0, len(di.fragments))
	for n := range di.fragments {
		names = append(names, n)
	}
	return names
}

// Tree returns the cached parsed document for file, or nil.
func (di *DocumentIndex) Tree(file string) *ParsedDocument {
	return di.parsedTrees[file]
}

// Files returns every file with a cached tree, unordered.
func (di *DocumentIndex) Files() []string {
	files := make([]string, 0, len(di.parsedTrees))
	for f := range di.parsedTrees {
		files = append(files, f)
	}
	return files
}
