package gqlproject

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const hoverSchema = `
"""A person using the system."""
type Query { user(id: ID!): User }

type User {
  id: ID!
  """Display name."""
  name: String!
  email: String! @deprecated(reason: "use emailAddress")
}

enum Role { ADMIN MEMBER }

union Actor = User

interface Node { id: ID! }

directive @auth(role: Role!) on FIELD_DEFINITION
`

func TestHoverFieldIncludesDescriptionAndDeprecation(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "s.graphql", Content: hoverSchema}})
	require.Empty(t, errs)
	synth := NewHoverSynth(schema)

	content, ok := synth.Hover(Field{Name: "name", ParentType: "User"})
	require.True(t, ok)
	require.Contains(t, content, "Display name.")
	require.Contains(t, content, "String!")

	content, ok = synth.Hover(Field{Name: "email", ParentType: "User"})
	require.True(t, ok)
	require.Contains(t, content, "Deprecated")
	require.Contains(t, content, "use emailAddress")
}

func TestHoverFieldUnknownReturnsFalse(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "s.graphql", Content: hoverSchema}})
	require.Empty(t, errs)
	synth := NewHoverSynth(schema)

	_, ok := synth.Hover(Field{Name: "nope", ParentType: "User"})
	require.False(t, ok)
}

func TestHoverTypeRendersFieldsEnumAndUnion(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "s.graphql", Content: hoverSchema}})
	require.Empty(t, errs)
	synth := NewHoverSynth(schema)

	content, ok := synth.Hover(TypeReference{Name: "User"})
	require.True(t, ok)
	require.Contains(t, content, "Fields")
	require.Contains(t, content, "`id`")

	content, ok = synth.Hover(TypeReference{Name: "Role"})
	require.True(t, ok)
	require.Contains(t, content, "Values")
	require.Contains(t, content, "ADMIN")

	content, ok = synth.Hover(TypeReference{Name: "Actor"})
	require.True(t, ok)
	require.Contains(t, content, "Members")
	require.Contains(t, content, "User")
}

func TestHoverArgumentAndDirective(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "s.graphql", Content: hoverSchema}})
	require.Empty(t, errs)
	synth := NewHoverSynth(schema)

	content, ok := synth.Hover(Argument{Name: "id", ParentType: "Query", FieldName: "user"})
	require.True(t, ok)
	require.Contains(t, content, "ID!")
	require.Contains(t, content, "Required:")

	content, ok = synth.Hover(Directive{Name: "auth"})
	require.True(t, ok)
	require.Contains(t, content, "FIELD_DEFINITION")
}

func TestHoverVariableFragmentAndOperation(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "s.graphql", Content: hoverSchema}})
	require.Empty(t, errs)
	synth := NewHoverSynth(schema)

	content, ok := synth.Hover(Variable{Name: "id"})
	require.True(t, ok)
	require.Contains(t, content, "$id")

	content, ok = synth.Hover(FragmentDefinition{Name: "UserFields", TypeCondition: "User"})
	require.True(t, ok)
	require.Contains(t, content, "UserFields")
	require.Contains(t, content, "User")

	content, ok = synth.Hover(Operation{Kind: "query", Name: "GetUser"})
	require.True(t, ok)
	require.Contains(t, content, "QUERY")
	require.Contains(t, content, "GetUser")
}
