package gqlproject

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSchemaLoader struct {
	sources []SchemaSource
	err     error
}

func (f fakeSchemaLoader) LoadSchema(ctx context.Context) ([]SchemaSource, error) {
	return f.sources, f.err
}

func TestProjectCurrentNilBeforeLoad(t *testing.T) {
	p := NewProject(fakeSchemaLoader{}, fakeExtractor{})
	require.Nil(t, p.Current())
}

func TestProjectLoadSchemaThenLoadDocumentsCarriesForward(t *testing.T) {
	loader := fakeSchemaLoader{sources: []SchemaSource{{Name: "s.graphql", Content: userSchema}}}
	p := NewProject(loader, fakeExtractor{files: map[string]string{
		"/q.graphql": `query Q { user(id: "1") { name } }`,
	}})

	require.NoError(t, p.LoadSchema(context.Background()))
	snap := p.Current()
	require.NotNil(t, snap)
	require.NotNil(t, snap.Schema)
	require.NotNil(t, snap.Documents) // empty but present

	require.NoError(t, p.LoadDocuments(context.Background(), []string{"/q.graphql"}))
	snap = p.Current()
	require.NotNil(t, snap.Schema) // carried forward from the schema load
	require.NotNil(t, snap.Documents.Tree("/q.graphql"))
}

func TestProjectFailedSchemaLoadPreservesPreviousSnapshot(t *testing.T) {
	good := fakeSchemaLoader{sources: []SchemaSource{{Name: "s.graphql", Content: userSchema}}}
	p := NewProject(good, fakeExtractor{})
	require.NoError(t, p.LoadSchema(context.Background()))
	first := p.Current()

	p.schemaLoader = fakeSchemaLoader{err: context.DeadlineExceeded}
	err := p.LoadSchema(context.Background())
	require.Error(t, err)
	require.Same(t, first, p.Current())
}
