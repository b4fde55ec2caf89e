package gqlproject

import (
	"fmt"
	"sort"
	"strings"
)

const hoverFieldOverflowLimit = 10

// HoverSynth renders a markdown hover string for an element, pulling its
// content from schema metadata.
type HoverSynth struct {
	schema *SchemaIndex
}

// NewHoverSynth builds a synthesizer against one schema snapshot.
func NewHoverSynth(schema *SchemaIndex) *HoverSynth {
	return &HoverSynth{schema: schema}
}

// Hover returns the markdown for el, or ("", false) when nothing can be
// said about it (unknown name, or a kind with no hover content).
func (h *HoverSynth) Hover(el Element) (string, bool) {
	switch e := el.(type) {
	case Field:
		return h.hoverField(e)
	case TypeReference:
		return h.hoverType(e)
	case Argument:
		return h.hoverArgument(e)
	case Variable:
		return fmt.Sprintf("Variable: `$%s`\n\n_(type inference not implemented)_", e.Name), true
	case FragmentSpread:
		return fmt.Sprintf("Fragment spread: **%s**", e.Name), true
	case FragmentDefinition:
		return fmt.Sprintf("Fragment: **%s** on `%s`", e.Name, e.TypeCondition), true
	case Directive:
		return h.hoverDirective(e)
	case Operation:
		return h.hoverOperation(e), true
	default:
		return "", false
	}
}

func (h *HoverSynth) hoverField(e Field) (string, bool) {
	rec := h.schema.FindFieldDefinition(e.ParentType, e.Name)
	if rec == nil {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### Field: %s\n\n", rec.Name)
	fmt.Fprintf(&b, "```graphql\n%s: %s\n```\n\n", rec.Name, rec.TypeExpr)
	if rec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Description)
	}
	if rec.Deprecation != nil {
		fmt.Fprintf(&b, "**Deprecated:** %s\n\n", rec.Deprecation.Reason)
	}
	if len(rec.Arguments) > 0 {
		b.WriteString("**Arguments:**\n\n")
		for _, a := range rec.Arguments {
			def := ""
			if a.DefaultValue != "" {
				def = " = " + a.DefaultValue
			}
			fmt.Fprintf(&b, "- `%s: %s%s`", a.Name, a.TypeExpr, def)
			if a.Description != "" {
				fmt.Fprintf(&b, " — %s", a.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "_Parent type:_ `%s`", e.ParentType)
	return b.String(), true
}

func (h *HoverSynth) hoverType(e TypeReference) (string, bool) {
	rec := h.schema.GetType(e.Name)
	if rec == nil {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### Type: %s\n\n", e.Name)
	fmt.Fprintf(&b, "_Kind:_ %s\n\n", rec.Kind)
	if rec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Description)
	}

	switch rec.Kind {
	case KindObject, KindInterface, KindInputObject:
		names := h.schema.fieldOrder[e.Name]
		if len(names) == 0 {
			break
		}
		b.WriteString("**Fields:**\n\n")
		limit := names
		overflow := 0
		if len(limit) > hoverFieldOverflowLimit {
			overflow = len(limit) - hoverFieldOverflowLimit
			limit = limit[:hoverFieldOverflowLimit]
		}
		for _, name := range limit {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		if overflow > 0 {
			fmt.Fprintf(&b, "- _...and %d more_\n", overflow)
		}
	case KindEnum:
		values := h.schema.GetEnumValues(e.Name)
		if len(values) == 0 {
			break
		}
		b.WriteString("**Values:**\n\n")
		for _, v := range values {
			fmt.Fprintf(&b, "- `%s`\n", v.Name)
		}
	case KindUnion:
		members := append([]string(nil), rec.UnionMembers...)
		sort.Strings(members)
		if len(members) == 0 {
			break
		}
		b.WriteString("**Members:**\n\n")
		for _, m := range members {
			fmt.Fprintf(&b, "- `%s`\n", m)
		}
	}

	return strings.TrimRight(b.String(), "\n"), true
}

func (h *HoverSynth) hoverArgument(e Argument) (string, bool) {
	rec := h.schema.FindFieldDefinition(e.ParentType, e.FieldName)
	if rec == nil {
		return "", false
	}
	for _, a := range rec.Arguments {
		if a.Name != e.Name {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "### Argument: %s\n\n", a.Name)
		fmt.Fprintf(&b, "```graphql\n%s: %s\n```\n\n", a.Name, a.TypeExpr)
		if a.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", a.Description)
		}
		fmt.Fprintf(&b, "_Required:_ %v\n\n", strings.HasSuffix(a.TypeExpr, "!") && a.DefaultValue == "")
		if a.DefaultValue != "" {
			fmt.Fprintf(&b, "_Default:_ `%s`\n\n", a.DefaultValue)
		}
		fmt.Fprintf(&b, "_Owner field:_ `%s.%s`", e.ParentType, e.FieldName)
		return b.String(), true
	}
	return "", false
}

func (h *HoverSynth) hoverDirective(e Directive) (string, bool) {
	rec := h.schema.GetDirective(e.Name)
	if rec == nil {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### Directive: @%s\n\n", rec.Name)
	if rec.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rec.Description)
	}
	if len(rec.Locations) > 0 {
		fmt.Fprintf(&b, "_Valid on:_ %s", strings.Join(rec.Locations, ", "))
	}
	return b.String(), true
}

func (h *HoverSynth) hoverOperation(e Operation) string {
	name := e.Name
	if name == "" {
		name = "(anonymous)"
	}
	return fmt.Sprintf("### %s %s", strings.ToUpper(string(e.Kind)), name)
}
