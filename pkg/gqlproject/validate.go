package gqlproject

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// ValidationDiagnostic is one error from the full query-language
// validator, which is wired in as the sole source of truth rather than
// stubbed out.
type ValidationDiagnostic struct {
	File    string
	Line    int
	Column  int
	Message string
	Rule    string
}

// Validator wraps gqlparser's validation package against one compiled
// schema. Building it performs full cross-type validation (unlike
// SchemaIndex, which stays tolerant of dangling references) because a
// document can only be meaningfully checked against a schema that is
// itself internally consistent.
type Validator struct {
	schema    *ast.Schema
	schemaErr error
}

// NewValidator compiles sources (plus the builtin preamble) into a
// validated schema. A malformed schema is not an error here — Validate
// simply reports it is unavailable: a schema with parse errors yields
// empty query results rather than a guess.
func NewValidator(sources []SchemaSource) *Validator {
	srcs := make([]*ast.Source, 0, len(sources)+1)
	srcs = append(srcs, &ast.Source{Name: builtinSourceName, Input: BuiltinPreamble, BuiltIn: true})
	for _, s := range sources {
		srcs = append(srcs, &ast.Source{Name: s.Name, Input: s.Content})
	}
	schema, err := gqlparser.LoadSchema(srcs...)
	return &Validator{schema: schema, schemaErr: err}
}

// SchemaAvailable reports whether the compiled schema is usable.
func (v *Validator) SchemaAvailable() bool {
	return v.schemaErr == nil && v.schema != nil
}

// Validate parses and fully validates one document against the compiled
// schema. A syntax error yields a single diagnostic at its location; an
// unavailable schema yields no diagnostics (empty, not an error) so a
// caller iterating many documents does not need special-case handling.
func (v *Validator) Validate(file, source string) []ValidationDiagnostic {
	if !v.SchemaAvailable() {
		return nil
	}

	src := &ast.Source{Name: file, Input: source}
	doc, err := parser.ParseQuery(src)
	if err != nil {
		return []ValidationDiagnostic{diagnosticFromGQLError(file, err)}
	}

	errs := validator.Validate(v.schema, doc)
	diags := make([]ValidationDiagnostic, 0, len(errs))
	for _, e := range errs {
		diags = append(diags, diagnosticFromGQLError(file, e))
	}
	return diags
}

func diagnosticFromGQLError(file string, e *gqlerror.Error) ValidationDiagnostic {
	d := ValidationDiagnostic{File: file, Message: e.Message}
	if len(e.Locations) > 0 {
		d.Line = e.Locations[0].Line - 1
		d.Column = e.Locations[0].Column - 1
	}
	if e.Extensions != nil {
		if rule, ok := e.Extensions["rule"].(string); ok {
			d.Rule = rule
		}
	}
	return d
}
