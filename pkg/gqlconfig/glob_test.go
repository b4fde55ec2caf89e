package gqlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDocumentsExpandsGlobAndDedups(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.graphql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "b.graphql"), nil, 0o644))

	files, err := ResolveDocuments(root, []string{"src/*.graphql", "src/a.graphql"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Contains(t, files, filepath.Join(root, "src", "a.graphql"))
	require.Contains(t, files, filepath.Join(root, "src", "b.graphql"))
}

func TestResolveDocumentsBraceExpansion(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.graphql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.gql"), nil, 0o644))

	files, err := ResolveDocuments(root, []string{"src/*.{graphql,gql}"})
	require.NoError(t, err)
	require.Len(t, files, 2)
}
