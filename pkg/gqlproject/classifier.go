package gqlproject

import (
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Classifier implements the position→element analysis shared by
// definition resolution, reference search, completion, and hover.
// It consults a SchemaIndex to resolve a field's return
// type when descending into a nested selection set, but it never
// mutates it.
type Classifier struct {
	schema *SchemaIndex
}

// NewClassifier builds a Classifier against the given schema snapshot.
func NewClassifier(schema *SchemaIndex) *Classifier {
	return &Classifier{schema: schema}
}

// ClassifyDocument returns the element at cursorByte within pd, or nil if
// the tree has syntax errors or the cursor sits in a gap. cursorByte is
// relative to pd.Source.Input.
func (c *Classifier) ClassifyDocument(pd *ParsedDocument, cursorByte int) Element {
	if !pd.Clean() || pd.AST == nil {
		return nil
	}
	src := pd.Source.Input

	type topDef struct {
		start int
		op    *ast.OperationDefinition
		frag  *ast.FragmentDefinition
	}
	var defs []topDef
	for _, op := range pd.AST.Operations {
		defs = append(defs, topDef{start: posOffset(op.Position), op: op})
	}
	for _, frag := range pd.AST.Fragments {
		defs = append(defs, topDef{start: posOffset(frag.Position), frag: frag})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].start < defs[j].start })

	ends := computeSpans(startsOf(defs, func(d topDef) int { return d.start }), len(src))

	for i, d := range defs {
		end := ends[i]
		if cursorByte < d.start || cursorByte > end {
			continue
		}
		if d.op != nil {
			return c.classifyOperation(src, d.op, cursorByte, end)
		}
		return c.classifyFragment(src, d.frag, cursorByte, end)
	}
	return nil
}

func (c *Classifier) classifyOperation(src string, op *ast.OperationDefinition, cursor, end int) Element {
	start := posOffset(op.Position)

	if op.Name != "" {
		ns, ne := identifierRangeBounded(src, start, end, op.Name)
		if cursor >= ns && cursor < ne {
			return Operation{Kind: operationKindOf(op.Operation), Name: op.Name}
		}
	}

	if len(op.VariableDefinitions) > 0 {
		starts := make([]int, len(op.VariableDefinitions))
		for i, v := range op.VariableDefinitions {
			starts[i] = posOffset(v.Position)
		}
		ends := computeSpans(starts, end)
		for i, v := range op.VariableDefinitions {
			if cursor < starts[i] || cursor > ends[i] {
				continue
			}
			if tn, ok := typeReferenceAt(src, starts[i], ends[i], v.Type, cursor); ok {
				return TypeReference{Name: tn}
			}
		}
	}

	if el, ok := c.classifyDirectives(src, op.Directives, cursor, end, DirectiveLocationQuery); ok {
		return el
	}

	rootType := c.schema.RootFor(op.Operation)
	return c.classifySelectionSet(src, op.SelectionSet, rootType, cursor, end)
}

func (c *Classifier) classifyFragment(src string, frag *ast.FragmentDefinition, cursor, end int) Element {
	start := posOffset(frag.Position)

	ns, ne := identifierRangeBounded(src, start, end, frag.Name)
	if cursor >= ns && cursor < ne {
		return FragmentDefinition{Name: frag.Name, TypeCondition: frag.TypeCondition}
	}

	ts, te := identifierRangeBounded(src, ne, end, frag.TypeCondition)
	if cursor >= ts && cursor < te {
		return TypeReference{Name: frag.TypeCondition}
	}

	return c.classifySelectionSet(src, frag.SelectionSet, frag.TypeCondition, cursor, end)
}

func (c *Classifier) classifySelectionSet(src string, sels ast.SelectionSet, parentType string, cursor, containerEnd int) Element {
	if len(sels) == 0 {
		return nil
	}

	type entry struct {
		start int
		sel   ast.Selection
	}
	entries := make([]entry, len(sels))
	for i, s := range sels {
		entries[i] = entry{start: selectionStart(s), sel: s}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].start < entries[j].start })
	ends := computeSpans(startsOf(entries, func(e entry) int { return e.start }), containerEnd)

	for i, e := range entries {
		end := ends[i]
		if cursor < e.start || cursor > end {
			continue
		}
		switch sel := e.sel.(type) {
		case *ast.Field:
			return c.classifyField(src, sel, parentType, cursor, end)
		case *ast.FragmentSpread:
			return c.classifyFragmentSpread(src, sel, cursor, end)
		case *ast.InlineFragment:
			return c.classifyInlineFragment(src, sel, parentType, cursor, end)
		}
	}
	return nil
}

func (c *Classifier) classifyField(src string, f *ast.Field, parentType string, cursor, end int) Element {
	start := posOffset(f.Position)

	ns, ne := identifierRangeBounded(src, start, end, f.Name)
	if cursor >= ns && cursor < ne {
		return Field{Name: f.Name, ParentType: parentType}
	}

	// Arguments and directives end at the "{" that opens this field's own
	// selection set, so a cursor between the braces descends into it.
	rec := c.schema.FindFieldDefinition(parentType, f.Name)
	headEnd, bodyFrom := end, end
	hasBody := len(f.SelectionSet) > 0
	if hasBody {
		bodyFrom = selectionStart(f.SelectionSet[0])
	} else if rec != nil {
		t := c.schema.GetType(BaseType(rec.TypeExpr))
		hasBody = t != nil && isCompositeKind(t.Kind)
	}
	if i := strings.LastIndexByte(src[start:bodyFrom], '{'); hasBody && i >= 0 {
		headEnd = start + i
	}

	if len(f.Arguments) > 0 {
		if el, ok := c.classifyArguments(src, f.Arguments, f.Name, parentType, cursor, headEnd); ok {
			return el
		}
	}

	if el, ok := c.classifyDirectives(src, f.Directives, cursor, headEnd, DirectiveLocationField); ok {
		return el
	}

	if rec != nil {
		nextParent := BaseType(rec.TypeExpr)
		if len(f.SelectionSet) > 0 {
			if el := c.classifySelectionSet(src, f.SelectionSet, nextParent, cursor, end); el != nil {
				return el
			}
		} else if t := c.schema.GetType(nextParent); t != nil && isCompositeKind(t.Kind) {
			// The grammar requires braces for any composite-typed field, so
			// reaching here with an empty selection set still means the
			// cursor sits between "{" and "}" — an empty completion slot.
			return Field{Name: "", ParentType: nextParent}
		}
	}

	return Field{Name: f.Name, ParentType: parentType}
}

func isCompositeKind(k TypeKind) bool {
	return k == KindObject || k == KindInterface || k == KindUnion
}

func (c *Classifier) classifyArguments(src string, args ast.ArgumentList, fieldName, parentType string, cursor, containerEnd int) (Element, bool) {
	starts := make([]int, len(args))
	for i, a := range args {
		starts[i] = posOffset(a.Position)
	}
	ends := computeSpans(starts, containerEnd)
	for i, a := range args {
		if cursor < starts[i] || cursor > ends[i] {
			continue
		}
		ns, ne := identifierRangeBounded(src, starts[i], ends[i], a.Name)
		if cursor >= ns && cursor < ne {
			return Argument{Name: a.Name, FieldName: fieldName, ParentType: parentType}, true
		}
		if name, ok := variableAt(a.Value, cursor); ok {
			return Variable{Name: name}, true
		}
		return Argument{Name: a.Name, FieldName: fieldName, ParentType: parentType}, true
	}
	return nil, false
}

func (c *Classifier) classifyDirectives(src string, directives ast.DirectiveList, cursor, containerEnd int, loc DirectiveLocation) (Element, bool) {
	if len(directives) == 0 {
		return nil, false
	}
	starts := make([]int, len(directives))
	for i, d := range directives {
		starts[i] = posOffset(d.Position)
	}
	ends := computeSpans(starts, containerEnd)
	for i, d := range directives {
		if cursor < starts[i] || cursor > ends[i] {
			continue
		}
		return Directive{Name: d.Name, Location: loc}, true
	}
	return nil, false
}

func (c *Classifier) classifyFragmentSpread(src string, sel *ast.FragmentSpread, cursor, end int) Element {
	start := posOffset(sel.Position)
	ns, ne := identifierRangeBounded(src, start, end, sel.Name)
	if cursor >= ns && cursor < ne {
		return FragmentSpread{Name: sel.Name}
	}
	if el, ok := c.classifyDirectives(src, sel.Directives, cursor, end, DirectiveLocationFragmentSpread); ok {
		return el
	}
	return FragmentSpread{Name: sel.Name}
}

func (c *Classifier) classifyInlineFragment(src string, sel *ast.InlineFragment, parentType string, cursor, end int) Element {
	start := posOffset(sel.Position)

	if sel.TypeCondition != "" {
		ts, te := identifierRangeBounded(src, start, end, sel.TypeCondition)
		if cursor >= ts && cursor < te {
			return TypeReference{Name: sel.TypeCondition}
		}
	}

	if el, ok := c.classifyDirectives(src, sel.Directives, cursor, end, DirectiveLocationInlineFragment); ok {
		return el
	}

	nextParent := parentType
	if sel.TypeCondition != "" {
		nextParent = sel.TypeCondition
	}
	return c.classifySelectionSet(src, sel.SelectionSet, nextParent, cursor, end)
}

// ClassifySchemaDocument returns the element under cursorByte within a
// parsed schema source: type, field, and enum value declarations, not
// just operations and fragments. Directive definitions (doc.Directives)
// are not classified.
func (c *Classifier) ClassifySchemaDocument(doc *ast.SchemaDocument, src string, cursorByte int) Element {
	var nodes []*ast.Definition
	nodes = append(nodes, doc.Definitions...)
	nodes = append(nodes, doc.Extensions...)
	sort.Slice(nodes, func(i, j int) bool { return posOffset(nodes[i].Position) < posOffset(nodes[j].Position) })

	starts := make([]int, len(nodes))
	for i, n := range nodes {
		starts[i] = posOffset(n.Position)
	}
	ends := computeSpans(starts, len(src))

	for i, def := range nodes {
		end := ends[i]
		if cursorByte < starts[i] || cursorByte > end {
			continue
		}
		return c.classifyTypeDeclaration(src, def, cursorByte, end)
	}
	return nil
}

func (c *Classifier) classifyTypeDeclaration(src string, def *ast.Definition, cursor, end int) Element {
	start := posOffset(def.Position)

	ns, ne := identifierRangeBounded(src, start, end, def.Name)
	if cursor >= ns && cursor < ne {
		return TypeReference{Name: def.Name}
	}

	switch def.Kind {
	case ast.Object:
		for _, iface := range def.Interfaces {
			is, ie := identifierRangeBounded(src, ne, end, iface)
			if cursor >= is && cursor < ie {
				return TypeReference{Name: iface}
			}
		}
	case ast.Union:
		for _, member := range def.Types {
			ms, me := identifierRangeBounded(src, ne, end, member)
			if cursor >= ms && cursor < me {
				return TypeReference{Name: member}
			}
		}
	case ast.Enum:
		if el := c.classifyEnumValues(src, def, cursor, end); el != nil {
			return el
		}
	}

	if el := c.classifyFieldDeclarations(src, def.Name, def.Fields, cursor, end); el != nil {
		return el
	}

	return nil
}

func (c *Classifier) classifyFieldDeclarations(src, ownerType string, fields ast.FieldList, cursor, containerEnd int) Element {
	if len(fields) == 0 {
		return nil
	}
	starts := make([]int, len(fields))
	for i, f := range fields {
		starts[i] = posOffset(f.Position)
	}
	ends := computeSpans(starts, containerEnd)

	for i, f := range fields {
		end := ends[i]
		if cursor < starts[i] || cursor > end {
			continue
		}

		ns, ne := identifierRangeBounded(src, starts[i], end, f.Name)
		if cursor >= ns && cursor < ne {
			return Field{Name: f.Name, ParentType: ownerType}
		}

		if tn, ok := typeReferenceAt(src, ne, end, f.Type, cursor); ok {
			return TypeReference{Name: tn}
		}

		if el := c.classifyArgumentDeclarations(src, f.Name, ownerType, f.Arguments, cursor, end); el != nil {
			return el
		}
	}
	return nil
}

func (c *Classifier) classifyArgumentDeclarations(src, fieldName, ownerType string, args ast.ArgumentDefinitionList, cursor, containerEnd int) Element {
	if len(args) == 0 {
		return nil
	}
	starts := make([]int, len(args))
	for i, a := range args {
		starts[i] = posOffset(a.Position)
	}
	ends := computeSpans(starts, containerEnd)

	for i, a := range args {
		end := ends[i]
		if cursor < starts[i] || cursor > end {
			continue
		}
		ns, ne := identifierRangeBounded(src, starts[i], end, a.Name)
		if cursor >= ns && cursor < ne {
			return Argument{Name: a.Name, FieldName: fieldName, ParentType: ownerType}
		}
		if tn, ok := typeReferenceAt(src, ne, end, a.Type, cursor); ok {
			return TypeReference{Name: tn}
		}
	}
	return nil
}

func (c *Classifier) classifyEnumValues(src string, def *ast.Definition, cursor, containerEnd int) Element {
	if len(def.EnumValues) == 0 {
		return nil
	}
	starts := make([]int, len(def.EnumValues))
	for i, v := range def.EnumValues {
		starts[i] = posOffset(v.Position)
	}
	ends := computeSpans(starts, containerEnd)

	for i, v := range def.EnumValues {
		end := ends[i]
		if cursor < starts[i] || cursor > end {
			continue
		}
		ns, ne := identifierRangeBounded(src, starts[i], end, v.Name)
		if cursor >= ns && cursor < ne {
			return EnumValue{Value: v.Name, EnumTypeName: def.Name}
		}
	}
	return nil
}

// typeReferenceAt locates the named-type identifier within a (possibly
// list/non-null wrapped) type expression and reports whether cursor
// falls on it.
func typeReferenceAt(src string, from, to int, t *ast.Type, cursor int) (string, bool) {
	if t == nil {
		return "", false
	}
	name := BaseType(t.String())
	ns, ne := identifierRangeBounded(src, from, to, name)
	if cursor >= ns && cursor < ne {
		return name, true
	}
	return "", false
}

// variableAt reports whether cursor falls on a `$name` use anywhere
// within value (including nested list/object values).
func variableAt(v *ast.Value, cursor int) (string, bool) {
	if v == nil {
		return "", false
	}
	if v.Kind == ast.Variable {
		start := posOffset(v.Position)
		end := start + len(v.Raw) + 1 // +1 for the leading '$'
		if cursor >= start && cursor < end {
			return v.Raw, true
		}
	}
	for _, child := range v.Children {
		if name, ok := variableAt(child.Value, cursor); ok {
			return name, true
		}
	}
	return "", false
}

func selectionStart(s ast.Selection) int {
	switch sel := s.(type) {
	case *ast.Field:
		return posOffset(sel.Position)
	case *ast.FragmentSpread:
		return posOffset(sel.Position)
	case *ast.InlineFragment:
		return posOffset(sel.Position)
	default:
		return 0
	}
}

// computeSpans assigns each start[i] an end offset: the next greater
// start in the slice, or containerEnd for whichever item sorts last.
// Used throughout the classifier to approximate sibling-node ranges,
// since the underlying parser's Position marks only a token, not a
// whole subtree (see cst.go's identifierRange doc comment).
func computeSpans(starts []int, containerEnd int) []int {
	n := len(starts)
	ends := make([]int, n)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return starts[order[i]] < starts[order[j]] })
	for pos, idx := range order {
		if pos == n-1 {
			ends[idx] = containerEnd
		} else {
			ends[idx] = starts[order[pos+1]]
		}
	}
	return ends
}

func startsOf[T any](items []T, f func(T) int) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = f(it)
	}
	return out
}

// identifierRangeBounded is identifierRange restricted to the [from, to)
// window, so a name search never bleeds into a sibling node's text.
func identifierRangeBounded(src string, from, to int, name string) (int, int) {
	if to > len(src) {
		to = len(src)
	}
	if from < 0 || from > to {
		return from, from
	}
	window := src[:to]
	s, e := identifierRange(window, from, name)
	if e > to {
		return from, from
	}
	return s, e
}
