package lint

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

// DeprecatedFieldRule flags every field selection whose schema record
// carries a deprecation. It only follows fragment spreads
// defined within the same extracted block; a spread to a fragment
// declared elsewhere is picked up when that file is linted on its own
// selection, since the rule runs per-block by design.
type DeprecatedFieldRule struct{}

// NewDeprecatedFieldRule returns the deprecated-field rule.
func NewDeprecatedFieldRule() *DeprecatedFieldRule { return &DeprecatedFieldRule{} }

func (r *DeprecatedFieldRule) Name() string             { return "deprecated_field" }
func (r *DeprecatedFieldRule) DefaultSeverity() Severity { return SeverityWarn }

func (r *DeprecatedFieldRule) Check(pd *gqlproject.ParsedDocument, schema *gqlproject.SchemaIndex, filePath string) []Diagnostic {
	var out []Diagnostic
	src := pd.Source.Input

	localFragments := make(map[string]*ast.FragmentDefinition, len(pd.AST.Fragments))
	for _, frag := range pd.AST.Fragments {
		localFragments[frag.Name] = frag
	}
	resolveSpread := func(name string) (ast.SelectionSet, string) {
		frag := localFragments[name]
		if frag == nil {
			return nil, ""
		}
		return frag.SelectionSet, frag.TypeCondition
	}

	visit := func(parentType string, field *ast.Field) {
		rec := schema.FindFieldDefinition(parentType, field.Name)
		if rec == nil || rec.Deprecation == nil {
			return
		}
		start, end := gqlproject.IdentifierRange(src, gqlproject.PosOffset(field.Position), field.Name)
		pos := gqlproject.NewLineIndex(src).OffsetToPosition(start)
		out = append(out, Diagnostic{
			File:    filePath,
			Message: fmt.Sprintf("%q is deprecated: %s", field.Name, rec.Deprecation.Reason),
			Line:    pos.Line,
			Column:  pos.Column,
			Width:   end - start,
		})
	}

	for _, op := range pd.AST.Operations {
		walkSelections(schema, op.SelectionSet, schema.RootFor(op.Operation), visit, resolveSpread)
	}
	for _, frag := range pd.AST.Fragments {
		walkSelections(schema, frag.SelectionSet, frag.TypeCondition, visit, resolveSpread)
	}

	return out
}
