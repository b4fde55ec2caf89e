package lint

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

// UniqueNamesRule flags duplicate operation names and duplicate fragment
// names within a single extracted block. Anonymous
// operations are exempt — two anonymous operations never conflict.
type UniqueNamesRule struct{}

// NewUniqueNamesRule returns the unique-names rule.
func NewUniqueNamesRule() *UniqueNamesRule { return &UniqueNamesRule{} }

func (r *UniqueNamesRule) Name() string             { return "unique_names" }
func (r *UniqueNamesRule) DefaultSeverity() Severity { return SeverityError }

func (r *UniqueNamesRule) Check(pd *gqlproject.ParsedDocument, schema *gqlproject.SchemaIndex, filePath string) []Diagnostic {
	var out []Diagnostic
	src := pd.Source.Input

	byName := make(map[string][]*ast.OperationDefinition)
	for _, op := range pd.AST.Operations {
		if op.Name == "" {
			continue
		}
		byName[op.Name] = append(byName[op.Name], op)
	}
	for name, ops := range byName {
		if len(ops) < 2 {
			continue
		}
		for _, op := range ops {
			out = append(out, diagnosticAt(src, filePath, gqlproject.PosOffset(op.Position), name,
				fmt.Sprintf("operation %q is not unique", name)))
		}
	}

	fragsByName := make(map[string][]*ast.FragmentDefinition)
	for _, frag := range pd.AST.Fragments {
		fragsByName[frag.Name] = append(fragsByName[frag.Name], frag)
	}
	for name, frags := range fragsByName {
		if len(frags) < 2 {
			continue
		}
		for _, frag := range frags {
			out = append(out, diagnosticAt(src, filePath, gqlproject.PosOffset(frag.Position), name,
				fmt.Sprintf("fragment %q is not unique", name)))
		}
	}

	return out
}

func diagnosticAt(src, file string, fromByte int, name, message string) Diagnostic {
	start, end := gqlproject.IdentifierRange(src, fromByte, name)
	pos := gqlproject.NewLineIndex(src).OffsetToPosition(start)
	return Diagnostic{File: file, Message: message, Line: pos.Line, Column: pos.Column, Width: end - start}
}
