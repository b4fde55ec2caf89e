// Package gqlproject is the project model: an indexed, queryable
// representation of a schema plus a set of documents, together with the
// cursor-driven analyses built on it (definition resolution, reference
// search, completion context inference, hover synthesis).
package gqlproject

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParsedDocument is the CST access layer's view of one parsed query
// document: the AST gqlparser produced plus any syntax errors. Consumers
// that require a clean tree (the classifier, most lint rules) treat a
// non-empty Errors as "return empty" rather than guess.
type ParsedDocument struct {
	AST     *ast.QueryDocument
	Source  *ast.Source
	Errors  gqlerror.List
}

// Clean reports whether the parse produced no syntax errors.
func (p *ParsedDocument) Clean() bool {
	return p != nil && len(p.Errors) == 0
}

// ParseDocument parses a single query/fragment document (one extracted
// block's text). filename is used for error locations and as the source
// name that definition sites are reported against.
func ParseDocument(filename, text string) *ParsedDocument {
	src := &ast.Source{Name: filename, Input: text}
	doc, err := parser.ParseQuery(src)
	pd := &ParsedDocument{Source: src}
	if err != nil {
		pd.Errors = gqlerror.List{err}
		return pd
	}
	pd.AST = doc
	return pd
}

// ParseSchemaDocument parses a single schema source into its raw AST,
// without merging it against any other schema sources. Used by the
// SchemaIndex builder to retain per-source definition-site positions.
func ParseSchemaDocument(filename, text string) (*ast.SchemaDocument, gqlerror.List) {
	src := &ast.Source{Name: filename, Input: text, BuiltIn: false}
	doc, err := parser.ParseSchema(src)
	if err != nil {
		return nil, gqlerror.List{err}
	}
	return doc, nil
}

// identifierRange scans src starting at fromByte for the first occurrence
// of name as a whole identifier token (not a substring of a longer
// identifier) and returns its absolute [start, end) byte range.
//
// gqlparser's node Position sometimes marks a leading keyword ("type",
// "query", ...) rather than the name token itself, so resolvers rescan
// forward from the reported position instead of trusting it literally.
// Falls back to a zero-width range at fromByte if name is never found.
func identifierRange(src string, fromByte int, name string) (int, int) {
	if name == "" || fromByte < 0 || fromByte > len(src) {
		return fromByte, fromByte
	}
	for i := fromByte; i+len(name) <= len(src); i++ {
		if src[i:i+len(name)] != name {
			continue
		}
		if i > 0 && isIdentByte(src[i-1]) {
			continue
		}
		end := i + len(name)
		if end < len(src) && isIdentByte(src[end]) {
			continue
		}
		return i, end
	}
	return fromByte, fromByte
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// posOffset returns the 0-based byte offset of a gqlparser AST position,
// or 0 if pos is nil.
func posOffset(pos *ast.Position) int {
	if pos == nil {
		return 0
	}
	return pos.Start
}

// IdentifierRange exposes identifierRange to sibling packages (the
// linter) that need to anchor a diagnostic at a name token rather than
// whatever leading keyword gqlparser's Position happens to mark.
func IdentifierRange(src string, fromByte int, name string) (int, int) {
	return identifierRange(src, fromByte, name)
}

// PosOffset exposes posOffset to sibling packages.
func PosOffset(pos *ast.Position) int {
	return posOffset(pos)
}
