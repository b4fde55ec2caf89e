package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

type fakeExtractor struct {
	files map[string]string
}

func (f fakeExtractor) Extract(path string) ([]gqlproject.ExtractedBlock, error) {
	src, ok := f.files[path]
	if !ok {
		return nil, nil
	}
	return []gqlproject.ExtractedBlock{{Source: src, File: path}}, nil
}

func buildDocs(t *testing.T, files map[string]string) *gqlproject.DocumentIndex {
	t.Helper()
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	docs, err := gqlproject.LoadDocuments(context.Background(), paths, fakeExtractor{files})
	require.NoError(t, err)
	return docs
}

func TestDuplicateNameLint(t *testing.T) {
	docs := buildDocs(t, map[string]string{
		"/a.graphql": "query GetUser { a: __typename }\nquery GetUser { b: __typename }\n",
	})
	schema, errs := gqlproject.BuildSchemaIndex(nil)
	require.Empty(t, errs)

	linter := New(Recommended())
	diags := linter.Run(docs, schema)

	var names []Diagnostic
	for _, d := range diags {
		if d.Rule == "unique_names" {
			names = append(names, d)
		}
	}
	require.Len(t, names, 2)
	for _, d := range names {
		require.Equal(t, SeverityError, d.Severity)
		require.Contains(t, d.Message, "GetUser")
		require.Contains(t, d.Message, "not unique")
	}
}

func TestAnonymousOperationsNeverConflict(t *testing.T) {
	docs := buildDocs(t, map[string]string{
		"/a.graphql": "{ __typename }\n{ __typename }\n",
	})
	schema, _ := gqlproject.BuildSchemaIndex(nil)

	linter := New(Recommended())
	diags := linter.Run(docs, schema)
	for _, d := range diags {
		require.NotEqual(t, "unique_names", d.Rule)
	}
}

const deprecatedSchema = `
type Query { user: User }
type User { email: String @deprecated(reason: "use emailAddress") }
`

func TestDeprecatedFieldLint(t *testing.T) {
	schema, errs := gqlproject.BuildSchemaIndex([]gqlproject.SchemaSource{{Name: "s.graphql", Content: deprecatedSchema}})
	require.Empty(t, errs)

	docs := buildDocs(t, map[string]string{
		"/q.graphql": "query Q { user { email } }",
	})

	linter := New(Recommended())
	diags := linter.Run(docs, schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].Rule == "deprecated_field" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	require.Equal(t, SeverityWarn, found.Severity)
	require.Contains(t, found.Message, "email")
	require.Contains(t, found.Message, "use emailAddress")
}

const unusedFieldsSchema = `
type Query { user: User }
type User { id: ID! name: String! age: Int unusedField: String }
`

func TestUnusedFieldsLint(t *testing.T) {
	schema, errs := gqlproject.BuildSchemaIndex([]gqlproject.SchemaSource{{Name: "s.graphql", Content: unusedFieldsSchema}})
	require.Empty(t, errs)

	docs := buildDocs(t, map[string]string{
		"/q.graphql": "query { user { id name } }",
	})

	config := Recommended()
	linter := New(config)
	// unused_fields is not in the recommended preset; exercise it directly.
	linter = New(Empty())
	linter.config.settings["unused_fields"] = RuleSetting{Severity: SeverityWarn}

	diags := linter.Run(docs, schema)

	var flagged []string
	for _, d := range diags {
		if d.Rule == "unused_fields" {
			flagged = append(flagged, d.Message)
		}
	}
	require.Len(t, flagged, 2)
	joined := flagged[0] + " " + flagged[1]
	require.Contains(t, joined, "User.age")
	require.Contains(t, joined, "User.unusedField")
	for _, m := range flagged {
		require.NotContains(t, m, "User.name")
		require.NotContains(t, m, "User.id")
		require.NotContains(t, m, "Query.")
	}
}

// TestUnmentionedRuleFallsBackToOwnDefault exercises a hand-rolled config
// that mentions only one rule explicitly; a rule it never mentions still
// runs, at that rule's own built-in default severity.
func TestUnmentionedRuleFallsBackToOwnDefault(t *testing.T) {
	schema, errs := gqlproject.BuildSchemaIndex([]gqlproject.SchemaSource{{Name: "s.graphql", Content: deprecatedSchema}})
	require.Empty(t, errs)

	docs := buildDocs(t, map[string]string{
		"/q.graphql": "query Q { user { email } }",
	})

	config := Empty()
	config.settings["unique_names"] = RuleSetting{Severity: SeverityError}
	linter := New(config)
	diags := linter.Run(docs, schema)

	var found *Diagnostic
	for i := range diags {
		if diags[i].Rule == "deprecated_field" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found, "deprecated_field should still run at its own default severity when config never mentions it")
	require.Equal(t, SeverityWarn, found.Severity)
}
