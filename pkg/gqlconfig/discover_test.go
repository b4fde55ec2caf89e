package gqlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".graphqlrc.yml"), []byte("schema: s.graphql\n"), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := Discover(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ".graphqlrc.yml"), found)
}

func TestDiscoverNotFound(t *testing.T) {
	root := t.TempDir()
	_, err := Discover(root)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadParsesDiscoveredFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "graphql.config.json"), []byte(`{"schema": "s.graphql"}`), 0o644))

	doc, path, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "graphql.config.json"), path)
	require.Equal(t, StringOrSlice{"s.graphql"}, doc.Projects[DefaultProjectName].Schema)
}

func TestLoadFileDispatchesOnExtension(t *testing.T) {
	root := t.TempDir()
	yamlPath := filepath.Join(root, "graphql.config.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("schema: s.graphql\n"), 0o644))

	doc, err := LoadFile(yamlPath)
	require.NoError(t, err)
	require.Equal(t, StringOrSlice{"s.graphql"}, doc.Projects[DefaultProjectName].Schema)
}

func TestLoadFileExtensionlessGraphqlrcTriesYAMLThenJSON(t *testing.T) {
	root := t.TempDir()
	jsonPath := filepath.Join(root, ".graphqlrc")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"schema": "s.graphql"}`), 0o644))

	doc, err := LoadFile(jsonPath)
	require.NoError(t, err)
	require.Equal(t, StringOrSlice{"s.graphql"}, doc.Projects[DefaultProjectName].Schema)
}

func TestLoadFileUnsupportedExtensionErrors(t *testing.T) {
	root := t.TempDir()
	tomlPath := filepath.Join(root, "graphql.config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`schema = "s.graphql"`), 0o644))

	_, err := LoadFile(tomlPath)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
