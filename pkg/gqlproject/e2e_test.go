package gqlproject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeExtractor treats every path as a native file whose content comes
// straight from an in-memory map, so these tests never touch the
// filesystem.
type fakeExtractor struct {
	files map[string]string
}

func (f fakeExtractor) Extract(path string) ([]ExtractedBlock, error) {
	src, ok := f.files[path]
	if !ok {
		return nil, nil
	}
	return []ExtractedBlock{{Source: src, File: path}}, nil
}

const userSchema = `
type Query { user(id: ID!): User }
type User { id: ID! name: String! }
`

func TestGotoFragmentDefinitionAcrossFiles(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "schema.graphql", Content: userSchema}})
	require.Empty(t, errs)

	files := map[string]string{
		"/a.graphql": "fragment UserFields on User {\n  id\n}\n",
		"/b.graphql": "fragment UserFields on User {\n  name\n}\n",
		"/q.graphql": "query Q { user(id: \"1\") { ...UserFields } }\n",
	}
	docs, err := LoadDocuments(context.Background(), []string{"/a.graphql", "/b.graphql", "/q.graphql"}, fakeExtractor{files})
	require.NoError(t, err)

	pd := docs.Tree("/q.graphql")
	require.NotNil(t, pd)
	cursor := indexOf(t, files["/q.graphql"], "UserFields")

	classifier := NewClassifier(schema)
	el := classifier.ClassifyDocument(pd, cursor)
	spread, ok := el.(FragmentSpread)
	require.True(t, ok, "expected FragmentSpread, got %T", el)
	require.Equal(t, "UserFields", spread.Name)

	resolver := NewDefinitionResolver(schema, docs)
	locs := resolver.Resolve(spread)
	require.Len(t, locs, 2)
	for _, loc := range locs {
		require.Equal(t, 10, loc.Width) // len("UserFields")
		require.Equal(t, 0, loc.Line)
		require.Equal(t, 9, loc.Column)
	}
	require.ElementsMatch(t, []string{"/a.graphql", "/b.graphql"}, []string{locs[0].File, locs[1].File})
}

func TestGotoFieldDefinition(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "schema.graphql", Content: userSchema}})
	require.Empty(t, errs)

	files := map[string]string{
		"/q.graphql": `query Q { user(id: "1") { name } }`,
	}
	docs, err := LoadDocuments(context.Background(), []string{"/q.graphql"}, fakeExtractor{files})
	require.NoError(t, err)

	pd := docs.Tree("/q.graphql")
	cursor := indexOf(t, files["/q.graphql"], "name")

	classifier := NewClassifier(schema)
	el := classifier.ClassifyDocument(pd, cursor)
	field, ok := el.(Field)
	require.True(t, ok, "expected Field, got %T", el)
	require.Equal(t, "name", field.Name)
	require.Equal(t, "User", field.ParentType)

	resolver := NewDefinitionResolver(schema, docs)
	locs := resolver.Resolve(field)
	require.Len(t, locs, 1)
	require.Equal(t, "schema.graphql", locs[0].File)
	require.Equal(t, 4, locs[0].Width) // len("name")
}

func TestCompletionInFieldSelection(t *testing.T) {
	schema, errs := BuildSchemaIndex([]SchemaSource{{Name: "schema.graphql", Content: userSchema}})
	require.Empty(t, errs)

	source := "query Q { user(id: \"1\") {  } }"
	files := map[string]string{"/q.graphql": source}
	docs, err := LoadDocuments(context.Background(), []string{"/q.graphql"}, fakeExtractor{files})
	require.NoError(t, err)

	pd := docs.Tree("/q.graphql")
	cursor := indexOf(t, source, "  }") + 1 // inside the empty selection set

	classifier := NewClassifier(schema)
	el := classifier.ClassifyDocument(pd, cursor)
	require.NotNil(t, el)

	engine := NewCompletionEngine(schema, docs)
	items := engine.Complete(el)

	labels := make(map[string]string)
	for _, item := range items {
		labels[item.Label] = item.Detail
	}
	require.Equal(t, "ID!", labels["id"])
	require.Equal(t, "String!", labels["name"])
}

func indexOf(t *testing.T, source, substr string) int {
	t.Helper()
	for i := 0; i+len(substr) <= len(source); i++ {
		if source[i:i+len(substr)] == substr {
			return i
		}
	}
	t.Fatalf("substring %q not found in %q", substr, source)
	return -1
}
