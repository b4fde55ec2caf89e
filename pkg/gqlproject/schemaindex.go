package gqlproject

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// TypeKind mirrors the query language's named-type categories.
type TypeKind string

const (
	KindObject      TypeKind = "OBJECT"
	KindInterface   TypeKind = "INTERFACE"
	KindUnion       TypeKind = "UNION"
	KindEnum        TypeKind = "ENUM"
	KindInputObject TypeKind = "INPUT_OBJECT"
	KindScalar      TypeKind = "SCALAR"
)

// Location is a definition site: an absolute file path plus a 0-based
// line and column pointing at the start of the identifier token.
type Location struct {
	File   string
	Line   int
	Column int
}

// Deprecation holds the reason string from an @deprecated(reason: ...)
// directive. A present-but-empty reason is distinguished from "not
// deprecated" by the caller checking for a nil *Deprecation.
type Deprecation struct {
	Reason string
}

// ArgRecord describes one argument of a field or directive.
type ArgRecord struct {
	Name         string
	TypeExpr     string
	Description  string
	DefaultValue string
	Location     *Location
}

// TypeRecord describes one named-type declaration.
type TypeRecord struct {
	Kind        TypeKind
	Description string
	Location    *Location // nil for built-ins
	Deprecation *Deprecation
	Interfaces  []string // for Object: implements clause
	UnionMembers []string // for Union
}

// FieldRecord describes one field declaration on a composite type.
type FieldRecord struct {
	Name        string
	TypeExpr    string // as written, e.g. "[User!]!"
	Description string
	Deprecation *Deprecation
	Location    *Location
	Arguments   []ArgRecord
}

// DirectiveRecord describes one directive declaration.
type DirectiveRecord struct {
	Name        string
	Description string
	Locations   []string
	Arguments   []ArgRecord
	Location    *Location // nil for built-ins
}

// EnumValueRecord describes one member of an enum type.
type EnumValueRecord struct {
	Name        string
	Description string
	Deprecation *Deprecation
	Location    *Location
}

// RootTypes names the type that serves as each operation root, when known.
type RootTypes struct {
	Query        string
	Mutation     string
	Subscription string
}

// SchemaIndex is the type/field/argument/directive/enum catalog built
// from one or more concatenated schema sources. It is immutable once
// built; a reload produces a new SchemaIndex rather than mutating this
// one (see Project).
type SchemaIndex struct {
	types      map[string]*TypeRecord
	fields     map[fieldKey]*FieldRecord
	fieldOrder map[string][]string // typeName -> field names, declaration order
	directives map[string]*DirectiveRecord
	enumValues map[string][]EnumValueRecord
	roots      RootTypes
	schemaDocs map[string]*ast.SchemaDocument // file -> raw AST, for reference search
}

type fieldKey struct {
	typeName  string
	fieldName string
}

// SchemaSource is one schema file's name and SDL content.
type SchemaSource struct {
	Name    string
	Content string
}

// BuiltinPreamble is prepended to every schema load. It carries the
// language's built-in scalars and directives plus the client-side
// directives used by popular GraphQL client ecosystems (Apollo Client's
// @client/@export/@connection), since those tag documents this tool is
// expected to index without erroring on an "unknown directive".
const BuiltinPreamble = `
scalar String
scalar Int
scalar Float
scalar Boolean
scalar ID

directive @deprecated(reason: String = "No longer supported") on FIELD_DEFINITION | ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION | ENUM_VALUE
directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
directive @include(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
directive @specifiedBy(url: String!) on SCALAR
directive @client(always: Boolean) on FIELD | QUERY | MUTATION
directive @export(as: String!) on FIELD
directive @connection(key: String, filter: [String]) on FIELD
`

const builtinSourceName = "<builtin>"

// BuildSchemaIndex parses and indexes the given schema sources, with the
// builtin preamble prepended. Unlike a full schema load, this tolerates
// dangling type references: it never fails because a field's type or an
// interface name does not (yet) resolve to a declared type.
func BuildSchemaIndex(sources []SchemaSource) (*SchemaIndex, gqlerror.List) {
	idx := &SchemaIndex{
		types:      make(map[string]*TypeRecord),
		fields:     make(map[fieldKey]*FieldRecord),
		fieldOrder: make(map[string][]string),
		directives: make(map[string]*DirectiveRecord),
		enumValues: make(map[string][]EnumValueRecord),
		schemaDocs: make(map[string]*ast.SchemaDocument),
	}

	all := make([]SchemaSource, 0, len(sources)+1)
	all = append(all, SchemaSource{Name: builtinSourceName, Content: BuiltinPreamble})
	all = append(all, sources...)

	var errs gqlerror.List
	for _, s := range all {
		doc, perErrs := ParseSchemaDocument(s.Name, s.Content)
		if len(perErrs) > 0 {
			errs = append(errs, perErrs...)
			continue
		}
		idx.merge(s.Name, doc)
		if s.Name != builtinSourceName {
			idx.schemaDocs[s.Name] = doc
		}
	}

	if idx.roots.Query == "" {
		if _, ok := idx.types["Query"]; ok {
			idx.roots.Query = "Query"
		}
	}
	if idx.roots.Mutation == "" {
		if _, ok := idx.types["Mutation"]; ok {
			idx.roots.Mutation = "Mutation"
		}
	}
	if idx.roots.Subscription == "" {
		if _, ok := idx.types["Subscription"]; ok {
			idx.roots.Subscription = "Subscription"
		}
	}

	return idx, errs
}

func (idx *SchemaIndex) merge(file string, doc *ast.SchemaDocument) {
	builtin := file == builtinSourceName

	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case ast.Query:
				idx.roots.Query = op.Type
			case ast.Mutation:
				idx.roots.Mutation = op.Type
			case ast.Subscription:
				idx.roots.Subscription = op.Type
			}
		}
	}

	for _, def := range doc.Definitions {
		idx.mergeDefinition(file, builtin, def)
	}
	for _, ext := range doc.Extensions {
		idx.mergeDefinition(file, builtin, ext)
	}
	for _, dd := range doc.Directives {
		idx.mergeDirective(file, builtin, dd)
	}
}

func (idx *SchemaIndex) mergeDefinition(file string, builtin bool, def *ast.Definition) {
	kind, ok := defKind(def.Kind)
	if !ok {
		return
	}

	rec := &TypeRecord{
		Kind:        kind,
		Description: def.Description,
		Location:    locationOf(file, builtin, def.Position),
	}
	if kind == KindObject {
		rec.Interfaces = append(rec.Interfaces, def.Interfaces...)
	}
	if kind == KindUnion {
		rec.UnionMembers = append(rec.UnionMembers, def.Types...)
	}
	idx.types[def.Name] = rec

	switch kind {
	case KindObject, KindInterface, KindInputObject:
		for _, f := range def.Fields {
			idx.addField(file, builtin, def.Name, f)
		}
	case KindEnum:
		for _, v := range def.EnumValues {
			idx.enumValues[def.Name] = append(idx.enumValues[def.Name], EnumValueRecord{
				Name:        v.Name,
				Description: v.Description,
				Deprecation: deprecationOf(v.Directives),
				Location:    locationOf(file, builtin, v.Position),
			})
		}
	}
}

func (idx *SchemaIndex) addField(file string, builtin bool, typeName string, f *ast.FieldDefinition) {
	rec := &FieldRecord{
		Name:        f.Name,
		TypeExpr:    f.Type.String(),
		Description: f.Description,
		Deprecation: deprecationOf(f.Directives),
		Location:    locationOf(file, builtin, f.Position),
	}
	for _, a := range f.Arguments {
		rec.Arguments = append(rec.Arguments, ArgRecord{
			Name:         a.Name,
			TypeExpr:     a.Type.String(),
			Description:  a.Description,
			DefaultValue: valueString(a.DefaultValue),
			Location:     locationOf(file, builtin, a.Position),
		})
	}

	key := fieldKey{typeName: typeName, fieldName: f.Name}
	if _, exists := idx.fields[key]; !exists {
		idx.fieldOrder[typeName] = append(idx.fieldOrder[typeName], f.Name)
	}
	idx.fields[key] = rec
}

func (idx *SchemaIndex) mergeDirective(file string, builtin bool, dd *ast.DirectiveDefinition) {
	rec := &DirectiveRecord{
		Name:        dd.Name,
		Description: dd.Description,
		Location:    locationOf(file, builtin, dd.Position),
	}
	for _, loc := range dd.Locations {
		rec.Locations = append(rec.Locations, string(loc))
	}
	for _, a := range dd.Arguments {
		rec.Arguments = append(rec.Arguments, ArgRecord{
			Name:         a.Name,
			TypeExpr:     a.Type.String(),
			Description:  a.Description,
			DefaultValue: valueString(a.DefaultValue),
			Location:     locationOf(file, builtin, a.Position),
		})
	}
	idx.directives[dd.Name] = rec
}

func defKind(k ast.DefinitionKind) (TypeKind, bool) {
	switch k {
	case ast.Object:
		return KindObject, true
	case ast.Interface:
		return KindInterface, true
	case ast.Union:
		return KindUnion, true
	case ast.Enum:
		return KindEnum, true
	case ast.InputObject:
		return KindInputObject, true
	case ast.Scalar:
		return KindScalar, true
	default:
		return "", false
	}
}

func locationOf(file string, builtin bool, pos *ast.Position) *Location {
	if builtin || pos == nil {
		return nil
	}
	return &Location{File: file, Line: pos.Line - 1, Column: pos.Column - 1}
}

func deprecationOf(directives ast.DirectiveList) *Deprecation {
	d := directives.ForName("deprecated")
	if d == nil {
		return nil
	}
	reason := "No longer supported"
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		reason = arg.Value.Raw
	}
	return &Deprecation{Reason: reason}
}

func valueString(v *ast.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// GetType returns the type record for name, or nil if unknown.
func (idx *SchemaIndex) GetType(name string) *TypeRecord {
	return idx.types[name]
}

// AllTypes returns every indexed type, unordered.
func (idx *SchemaIndex) AllTypes() map[string]*TypeRecord {
	return idx.types
}

// AllDirectives returns every indexed directive, unordered.
func (idx *SchemaIndex) AllDirectives() map[string]*DirectiveRecord {
	return idx.directives
}

// GetDirective returns the directive record for name, or nil if unknown.
func (idx *SchemaIndex) GetDirective(name string) *DirectiveRecord {
	return idx.directives[name]
}

// GetFields returns the fields of typeName in declaration order.
func (idx *SchemaIndex) GetFields(typeName string) []FieldRecord {
	names := idx.fieldOrder[typeName]
	out := make([]FieldRecord, 0, len(names))
	for _, n := range names {
		if f := idx.fields[fieldKey{typeName, n}]; f != nil {
			out = append(out, *f)
		}
	}
	return out
}

// FindFieldDefinition returns the field record for (typeName, fieldName),
// or nil if unknown.
func (idx *SchemaIndex) FindFieldDefinition(typeName, fieldName string) *FieldRecord {
	return idx.fields[fieldKey{typeName, fieldName}]
}

// FindTypeDefinition returns the definition location of name, or nil.
func (idx *SchemaIndex) FindTypeDefinition(name string) *Location {
	t := idx.types[name]
	if t == nil {
		return nil
	}
	return t.Location
}

// GetEnumValues returns the declared values of enum name, in declaration
// order.
func (idx *SchemaIndex) GetEnumValues(name string) []EnumValueRecord {
	return idx.enumValues[name]
}

// RootFor returns the root type name for the given operation kind,
// falling back to "Query" when no schema block declared a root and a
// type named "Query" was never found either (a permissive default so
// the classifier can still descend into a partial schema).
func (idx *SchemaIndex) RootFor(kind ast.Operation) string {
	switch kind {
	case ast.Mutation:
		if idx.roots.Mutation != "" {
			return idx.roots.Mutation
		}
	case ast.Subscription:
		if idx.roots.Subscription != "" {
			return idx.roots.Subscription
		}
	default:
		if idx.roots.Query != "" {
			return idx.roots.Query
		}
	}
	return "Query"
}

// SchemaDocs returns the raw, per-file schema AST used for reference
// search across schema declarations.
func (idx *SchemaIndex) SchemaDocs() map[string]*ast.SchemaDocument {
	return idx.schemaDocs
}

// RootTypes returns the schema's declared root type names.
func (idx *SchemaIndex) RootTypes() RootTypes {
	return idx.roots
}

// BaseType strips list ([]) and non-null (!) wrappers from a type
// expression as written, e.g. "[User!]!" -> "User".
func BaseType(typeExpr string) string {
	start, end := 0, len(typeExpr)
	for start < end {
		switch {
		case typeExpr[start] == '[':
			start++
			for end > start && typeExpr[end-1] != ']' {
				end--
			}
			if end > start {
				end--
			}
		case typeExpr[end-1] == '!':
			end--
		default:
			return typeExpr[start:end]
		}
	}
	return typeExpr[start:end]
}

// IsIntrospectionType reports whether name is one of the `__`-prefixed
// meta-schema entities the query language provides intrinsically.
func IsIntrospectionType(name string) bool {
	switch name {
	case "__Schema", "__Type", "__Field", "__InputValue", "__EnumValue", "__TypeKind", "__Directive", "__DirectiveLocation":
		return true
	}
	return false
}

// IsIntrospectionField reports whether fieldName is one of the
// intrinsic introspection entry-point fields.
func IsIntrospectionField(fieldName string) bool {
	switch fieldName {
	case "__typename", "__schema", "__type":
		return true
	}
	return false
}

func (k fieldKey) String() string {
	return fmt.Sprintf("%s.%s", k.typeName, k.fieldName)
}
