package lint

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

// fieldVisitor is called for every field selection encountered during a
// selection-set walk, with the type it is selected against.
type fieldVisitor func(parentType string, field *ast.Field)

// walkSelections descends sels, resolving each field's declared type from
// schema to keep walking into nested selections. resolveSpread, if
// non-nil, is consulted for fragment spreads so a caller with access to
// the whole project can follow them into their defining file; a nil
// resolveSpread simply skips spreads.
func walkSelections(schema *gqlproject.SchemaIndex, sels ast.SelectionSet, parentType string, visit fieldVisitor, resolveSpread func(name string) (ast.SelectionSet, string)) {
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ast.Field:
			visit(parentType, s)
			if rec := schema.FindFieldDefinition(parentType, s.Name); rec != nil {
				childType := gqlproject.BaseType(rec.TypeExpr)
				walkSelections(schema, s.SelectionSet, childType, visit, resolveSpread)
			}
		case *ast.InlineFragment:
			childType := parentType
			if s.TypeCondition != "" {
				childType = s.TypeCondition
			}
			walkSelections(schema, s.SelectionSet, childType, visit, resolveSpread)
		case *ast.FragmentSpread:
			if resolveSpread == nil {
				continue
			}
			if spreadSels, typeCondition := resolveSpread(s.Name); spreadSels != nil {
				walkSelections(schema, spreadSels, typeCondition, visit, resolveSpread)
			}
		}
	}
}
