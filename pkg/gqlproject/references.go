package gqlproject

import "github.com/vektah/gqlparser/v2/ast"

// ReferenceLocation is one use or declaration site found by ReferenceSearch.
type ReferenceLocation struct {
	File   string
	Line   int
	Column int
	Width  int
}

// ReferenceSearch finds every reference to an element across the whole
// project. A document whose cached tree has parse errors is
// skipped, exactly as at index-build time.
type ReferenceSearch struct {
	schema *SchemaIndex
	docs   *DocumentIndex
}

// NewReferenceSearch builds a search against one project snapshot.
func NewReferenceSearch(schema *SchemaIndex, docs *DocumentIndex) *ReferenceSearch {
	return &ReferenceSearch{schema: schema, docs: docs}
}

// Find returns every reference to el. includeDeclaration additionally
// includes every definition site known to the indexes: Find(el, true) is
// always a superset of Find(el, false).
func (r *ReferenceSearch) Find(el Element, includeDeclaration bool) []ReferenceLocation {
	switch e := el.(type) {
	case FragmentSpread:
		return r.findFragmentReferences(e.Name, includeDeclaration)
	case FragmentDefinition:
		return r.findFragmentReferences(e.Name, includeDeclaration)
	case TypeReference:
		return r.findTypeReferences(e.Name, includeDeclaration)
	default:
		return nil
	}
}

func (r *ReferenceSearch) findFragmentReferences(name string, includeDeclaration bool) []ReferenceLocation {
	var out []ReferenceLocation

	for _, file := range r.docs.Files() {
		pd := r.docs.Tree(file)
		if pd == nil || !pd.Clean() {
			continue
		}
		for _, op := range pd.AST.Operations {
			out = append(out, collectFragmentSpreads(op.SelectionSet, name, pd.Source.Input, file)...)
		}
		for _, frag := range pd.AST.Fragments {
			out = append(out, collectFragmentSpreads(frag.SelectionSet, name, pd.Source.Input, file)...)
		}
	}

	if includeDeclaration {
		for _, s := range r.docs.Fragments(name) {
			out = append(out, ReferenceLocation{File: s.File, Line: s.Line, Column: s.Column, Width: runeLen(name)})
		}
	}
	return out
}

func collectFragmentSpreads(sels ast.SelectionSet, name, src, file string) []ReferenceLocation {
	var out []ReferenceLocation
	for _, s := range sels {
		switch sel := s.(type) {
		case *ast.FragmentSpread:
			if sel.Name == name {
				start, end := identifierRange(src, posOffset(sel.Position), sel.Name)
				li := NewLineIndex(src)
				pos := li.OffsetToPosition(start)
				out = append(out, ReferenceLocation{File: file, Line: pos.Line, Column: pos.Column, Width: end - start})
			}
		case *ast.Field:
			out = append(out, collectFragmentSpreads(sel.SelectionSet, name, src, file)...)
		case *ast.InlineFragment:
			out = append(out, collectFragmentSpreads(sel.SelectionSet, name, src, file)...)
		}
	}
	return out
}

func (r *ReferenceSearch) findTypeReferences(name string, includeDeclaration bool) []ReferenceLocation {
	var out []ReferenceLocation

	for file, doc := range r.schema.SchemaDocs() {
		var defs []*ast.Definition
		defs = append(defs, doc.Definitions...)
		defs = append(defs, doc.Extensions...)

		for _, def := range defs {
			src := sourceOf(def.Position)
			if src == "" {
				continue
			}

			if includeDeclaration && def.Name == name {
				start, end := identifierRange(src, posOffset(def.Position), name)
				pos := NewLineIndex(src).OffsetToPosition(start)
				out = append(out, ReferenceLocation{File: file, Line: pos.Line, Column: pos.Column, Width: end - start})
			}

			for _, iface := range def.Interfaces {
				if iface == name {
					out = append(out, locateIdentifier(src, file, posOffset(def.Position), name))
				}
			}
			for _, member := range def.Types {
				if member == name {
					out = append(out, locateIdentifier(src, file, posOffset(def.Position), name))
				}
			}
			for _, f := range def.Fields {
				if BaseType(f.Type.String()) == name {
					out = append(out, locateIdentifier(src, file, posOffset(f.Position), name))
				}
				for _, a := range f.Arguments {
					if BaseType(a.Type.String()) == name {
						out = append(out, locateIdentifier(src, file, posOffset(a.Position), name))
					}
				}
			}
		}
	}
	return out
}

func sourceOf(pos *ast.Position) string {
	if pos == nil || pos.Src == nil {
		return ""
	}
	return pos.Src.Input
}

func locateIdentifier(src, file string, fromByte int, name string) ReferenceLocation {
	start, end := identifierRange(src, fromByte, name)
	pos := NewLineIndex(src).OffsetToPosition(start)
	return ReferenceLocation{File: file, Line: pos.Line, Column: pos.Column, Width: end - start}
}
