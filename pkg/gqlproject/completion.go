package gqlproject

import "sort"

// CompletionItemKind mirrors the handful of kinds this engine produces;
// a language-server adapter maps these onto its own wire enum.
type CompletionItemKind string

const (
	CompletionKindField     CompletionItemKind = "FIELD"
	CompletionKindFragment  CompletionItemKind = "FRAGMENT"
	CompletionKindType      CompletionItemKind = "TYPE"
	CompletionKindDirective CompletionItemKind = "DIRECTIVE"
	CompletionKindArgument  CompletionItemKind = "ARGUMENT"
	CompletionKindEnumValue CompletionItemKind = "ENUM_VALUE"
)

// CompletionItem is one candidate. Fields, arguments and enum values
// come in declaration order; fragments, types and directives are sorted
// by name. Any further ranking is left to the front-end, which filters
// by the token being typed.
type CompletionItem struct {
	Label       string
	Kind        CompletionItemKind
	Detail      string
	Doc         string
	Deprecated  bool
	InsertText  string // differs from Label only for directives ("@name")
}

// CompletionEngine expands an Element, interpreted as a completion
// context, into its candidate list.
type CompletionEngine struct {
	schema *SchemaIndex
	docs   *DocumentIndex
}

// NewCompletionEngine builds an engine against one project snapshot.
func NewCompletionEngine(schema *SchemaIndex, docs *DocumentIndex) *CompletionEngine {
	return &CompletionEngine{schema: schema, docs: docs}
}

// Complete returns the candidates for el's context, or nil for a context
// with no completions (Variable, Operation, FragmentDefinition).
func (c *CompletionEngine) Complete(el Element) []CompletionItem {
	switch e := el.(type) {
	case Field:
		return c.fieldCandidates(e.ParentType)
	case FragmentSpread:
		return c.fragmentCandidates()
	case TypeReference:
		return c.typeCandidates()
	case Directive:
		return c.directiveCandidates()
	case Argument:
		return c.argumentCandidates(e.FieldName, e.ParentType)
	case EnumValue:
		return c.enumCandidates(e.EnumTypeName)
	default:
		return nil
	}
}

func (c *CompletionEngine) fieldCandidates(parentType string) []CompletionItem {
	fields := c.schema.GetFields(parentType)
	items := make([]CompletionItem, 0, len(fields))
	for _, f := range fields {
		items = append(items, CompletionItem{
			Label:      f.Name,
			Kind:       CompletionKindField,
			Detail:     f.TypeExpr,
			Doc:        f.Description,
			Deprecated: f.Deprecation != nil,
			InsertText: f.Name,
		})
	}
	return items
}

func (c *CompletionEngine) fragmentCandidates() []CompletionItem {
	names := c.docs.AllFragmentNames()
	sort.Strings(names)
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		sites := c.docs.Fragments(name)
		detail := ""
		if len(sites) > 0 {
			detail = "on " + sites[0].TypeCondition
		}
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionKindFragment,
			Detail:     detail,
			InsertText: name,
		})
	}
	return items
}

func (c *CompletionEngine) typeCandidates() []CompletionItem {
	types := c.schema.AllTypes()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionKindType,
			Detail:     string(types[name].Kind),
			Doc:        types[name].Description,
			InsertText: name,
		})
	}
	return items
}

func (c *CompletionEngine) directiveCandidates() []CompletionItem {
	directives := c.schema.AllDirectives()
	names := make([]string, 0, len(directives))
	for name := range directives {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionKindDirective,
			Doc:        directives[name].Description,
			InsertText: "@" + name,
		})
	}
	return items
}

func (c *CompletionEngine) argumentCandidates(fieldName, parentType string) []CompletionItem {
	rec := c.schema.FindFieldDefinition(parentType, fieldName)
	if rec == nil {
		return nil
	}
	items := make([]CompletionItem, 0, len(rec.Arguments))
	for _, a := range rec.Arguments {
		items = append(items, CompletionItem{
			Label:      a.Name,
			Kind:       CompletionKindArgument,
			Detail:     a.TypeExpr,
			Doc:        a.Description,
			InsertText: a.Name,
		})
	}
	return items
}

func (c *CompletionEngine) enumCandidates(enumTypeName string) []CompletionItem {
	values := c.schema.GetEnumValues(enumTypeName)
	items := make([]CompletionItem, 0, len(values))
	for _, v := range values {
		items = append(items, CompletionItem{
			Label:      v.Name,
			Kind:       CompletionKindEnumValue,
			Doc:        v.Description,
			Deprecated: v.Deprecation != nil,
			InsertText: v.Name,
		})
	}
	return items
}
