package gqlconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseJSONSingleProject(t *testing.T) {
	data := []byte(`{"schema": "schema.graphql", "documents": ["src/**/*.graphql"]}`)
	doc, err := ParseJSON(data)
	require.NoError(t, err)

	pc, ok := doc.Projects[DefaultProjectName]
	require.True(t, ok)
	require.Equal(t, StringOrSlice{"schema.graphql"}, pc.Schema)
	require.Equal(t, StringOrSlice{"src/**/*.graphql"}, pc.Documents)
}

func TestParseJSONMultiProject(t *testing.T) {
	data := []byte(`{"projects": {"app": {"schema": "a.graphql"}, "admin": {"schema": "b.graphql"}}}`)
	doc, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 2)
	require.Equal(t, StringOrSlice{"a.graphql"}, doc.Projects["app"].Schema)
	require.Equal(t, StringOrSlice{"b.graphql"}, doc.Projects["admin"].Schema)
}

func TestParseJSONEmptySchemaErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"documents": "src/**/*.graphql"}`))
	require.ErrorIs(t, err, ErrEmptySchema)
}

func TestParseYAMLEquivalentToJSON(t *testing.T) {
	data := []byte("schema: schema.graphql\ndocuments:\n  - a.graphql\n  - b.graphql\n")
	doc, err := ParseYAML(data)
	require.NoError(t, err)
	pc := doc.Projects[DefaultProjectName]
	require.Equal(t, StringOrSlice{"schema.graphql"}, pc.Schema)
	require.Equal(t, StringOrSlice{"a.graphql", "b.graphql"}, pc.Documents)
}

func TestParseJSONLintExtensionRecommended(t *testing.T) {
	data := []byte(`{"schema": "s.graphql", "extensions": {"lint": "recommended"}}`)
	doc, err := ParseJSON(data)
	require.NoError(t, err)
	pc := doc.Projects[DefaultProjectName]
	sev, ok := pc.Lint.Severity("unique_names")
	require.True(t, ok)
	require.Equal(t, "error", string(sev))
}

func TestStringOrSliceAcceptsBareString(t *testing.T) {
	var s StringOrSlice
	require.NoError(t, s.UnmarshalJSON([]byte(`"only-one.graphql"`)))
	require.Equal(t, StringOrSlice{"only-one.graphql"}, s)
}

func TestParseJSONBlankSchemaPathErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"schema": ["  "]}`))
	require.ErrorIs(t, err, ErrEmptySchema)
}

func TestParseJSONBlankDocumentPatternErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"schema": "s.graphql", "documents": ["a.graphql", ""]}`))
	require.ErrorIs(t, err, ErrEmptyDocuments)
}

func TestParseJSONMalformedDocumentErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{not valid json`))
	require.ErrorIs(t, err, ErrParse)
}

func TestParseYAMLMalformedDocumentErrors(t *testing.T) {
	_, err := ParseYAML([]byte("schema: [unterminated\n"))
	require.ErrorIs(t, err, ErrParse)
}

func TestStringOrSliceMalformedShapeErrors(t *testing.T) {
	var s StringOrSlice
	err := s.UnmarshalJSON([]byte(`{"not": "a string or array"}`))
	require.ErrorIs(t, err, ErrParse)
}
