package lint

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

// UnusedFieldsRule flags object/interface fields never selected by any
// operation or fragment in the project. Root operation
// types and introspection types/fields are excluded.
type UnusedFieldsRule struct{}

// NewUnusedFieldsRule returns the unused-fields rule.
func NewUnusedFieldsRule() *UnusedFieldsRule { return &UnusedFieldsRule{} }

func (r *UnusedFieldsRule) Name() string             { return "unused_fields" }
func (r *UnusedFieldsRule) DefaultSeverity() Severity { return SeverityWarn }

type usageKey struct {
	typeName  string
	fieldName string
}

func (r *UnusedFieldsRule) CheckProject(docs *gqlproject.DocumentIndex, schema *gqlproject.SchemaIndex) []Diagnostic {
	used := make(map[usageKey]bool)

	fragmentLookup := func(name string) (ast.SelectionSet, string) {
		sites := docs.Fragments(name)
		if len(sites) == 0 {
			return nil, ""
		}
		pd := docs.Tree(sites[0].File)
		if pd == nil || pd.AST == nil {
			return nil, ""
		}
		for _, frag := range pd.AST.Fragments {
			if frag.Name == name {
				return frag.SelectionSet, frag.TypeCondition
			}
		}
		return nil, ""
	}

	for _, file := range docs.Files() {
		pd := docs.Tree(file)
		if pd == nil || !pd.Clean() {
			continue
		}
		visit := func(parentType string, field *ast.Field) {
			used[usageKey{parentType, field.Name}] = true
		}
		visited := make(map[string]bool)
		guarded := func(name string) (ast.SelectionSet, string) {
			if visited[name] {
				return nil, ""
			}
			visited[name] = true
			return fragmentLookup(name)
		}
		for _, op := range pd.AST.Operations {
			walkSelections(schema, op.SelectionSet, schema.RootFor(op.Operation), visit, guarded)
		}
		for _, frag := range pd.AST.Fragments {
			walkSelections(schema, frag.SelectionSet, frag.TypeCondition, visit, guarded)
		}
	}

	roots := schema.RootTypes()
	isRoot := func(typeName string) bool {
		return typeName == roots.Query || typeName == roots.Mutation || typeName == roots.Subscription
	}

	types := schema.AllTypes()
	typeNames := make([]string, 0, len(types))
	for name := range types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	var out []Diagnostic
	for _, typeName := range typeNames {
		rec := types[typeName]
		if rec.Kind != gqlproject.KindObject && rec.Kind != gqlproject.KindInterface {
			continue
		}
		if isRoot(typeName) || gqlproject.IsIntrospectionType(typeName) {
			continue
		}
		for _, field := range schema.GetFields(typeName) {
			if gqlproject.IsIntrospectionField(field.Name) {
				continue
			}
			if used[usageKey{typeName, field.Name}] {
				continue
			}
			loc := field.Location
			if loc == nil {
				continue
			}
			out = append(out, Diagnostic{
				File:    loc.File,
				Message: fmt.Sprintf("%s.%s is never selected", typeName, field.Name),
				Line:    loc.Line,
				Column:  loc.Column,
				Width:   len(field.Name),
			})
		}
	}
	return out
}
