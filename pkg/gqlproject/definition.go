package gqlproject

import "unicode/utf8"

// DefinitionResolver dispatches an Element to its definition site(s)
// using the schema and document indexes. Every returned
// location spans the identifier token (width = rune count of the name).
type DefinitionResolver struct {
	schema *SchemaIndex
	docs   *DocumentIndex
}

// NewDefinitionResolver builds a resolver against one project snapshot.
func NewDefinitionResolver(schema *SchemaIndex, docs *DocumentIndex) *DefinitionResolver {
	return &DefinitionResolver{schema: schema, docs: docs}
}

// Location is declared in schemaindex.go; DefinitionLocation pairs one
// with the resolved width (the character length of the name token).
type DefinitionLocation struct {
	File   string
	Line   int
	Column int
	Width  int
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Resolve returns every definition site for el, or nil if el's kind is
// not resolvable in this revision (Variable, EnumValue).
func (r *DefinitionResolver) Resolve(el Element) []DefinitionLocation {
	switch e := el.(type) {
	case FragmentSpread:
		return r.fragmentSites(e.Name)
	case FragmentDefinition:
		return r.fragmentSites(e.Name)
	case Operation:
		if e.Name == "" {
			return nil
		}
		var out []DefinitionLocation
		for _, s := range r.docs.Operations(e.Name) {
			out = append(out, DefinitionLocation{File: s.File, Line: s.Line, Column: s.Column, Width: runeLen(s.Name)})
		}
		return out
	case TypeReference:
		loc := r.schema.FindTypeDefinition(e.Name)
		if loc == nil {
			return nil
		}
		return []DefinitionLocation{{File: loc.File, Line: loc.Line, Column: loc.Column, Width: runeLen(e.Name)}}
	case Field:
		rec := r.schema.FindFieldDefinition(e.ParentType, e.Name)
		if rec == nil || rec.Location == nil {
			return nil
		}
		return []DefinitionLocation{{File: rec.Location.File, Line: rec.Location.Line, Column: rec.Location.Column, Width: runeLen(e.Name)}}
	case Argument:
		rec := r.schema.FindFieldDefinition(e.ParentType, e.FieldName)
		if rec == nil {
			return nil
		}
		for _, a := range rec.Arguments {
			if a.Name == e.Name && a.Location != nil {
				return []DefinitionLocation{{File: a.Location.File, Line: a.Location.Line, Column: a.Location.Column, Width: runeLen(e.Name)}}
			}
		}
		return nil
	case Directive:
		d := r.schema.GetDirective(e.Name)
		if d == nil || d.Location == nil {
			return nil
		}
		return []DefinitionLocation{{File: d.Location.File, Line: d.Location.Line, Column: d.Location.Column, Width: runeLen(e.Name)}}
	case Variable, EnumValue:
		// TODO: variable and enum-value definition sites are not resolved yet.
		return nil
	default:
		return nil
	}
}

func (r *DefinitionResolver) fragmentSites(name string) []DefinitionLocation {
	sites := r.docs.Fragments(name)
	out := make([]DefinitionLocation, 0, len(sites))
	for _, s := range sites {
		out = append(out, DefinitionLocation{File: s.File, Line: s.Line, Column: s.Column, Width: runeLen(name)})
	}
	return out
}
