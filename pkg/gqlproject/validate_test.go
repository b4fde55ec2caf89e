package gqlproject

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatorRejectsUnknownField(t *testing.T) {
	v := NewValidator([]SchemaSource{{Name: "s.graphql", Content: userSchema}})
	require.True(t, v.SchemaAvailable())

	diags := v.Validate("/q.graphql", `query Q { user(id: "1") { nope } }`)
	require.NotEmpty(t, diags)
}

func TestValidatorAcceptsValidQuery(t *testing.T) {
	v := NewValidator([]SchemaSource{{Name: "s.graphql", Content: userSchema}})
	diags := v.Validate("/q.graphql", `query Q { user(id: "1") { name } }`)
	require.Empty(t, diags)
}

func TestValidatorSyntaxErrorYieldsOneDiagnostic(t *testing.T) {
	v := NewValidator([]SchemaSource{{Name: "s.graphql", Content: userSchema}})
	diags := v.Validate("/q.graphql", `query Q { user( {`)
	require.Len(t, diags, 1)
}

func TestValidatorUnavailableSchemaYieldsNoDiagnostics(t *testing.T) {
	v := NewValidator([]SchemaSource{{Name: "s.graphql", Content: "type Query { broken"}})
	require.False(t, v.SchemaAvailable())
	require.Empty(t, v.Validate("/q.graphql", `query Q { x }`))
}
