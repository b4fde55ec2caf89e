package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractNativeFileReturnsWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "query.graphql")
	content := "query Q { user { id } }\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	e := New(nil)
	blocks, err := e.Extract(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, content, blocks[0].Source)
	require.Equal(t, path, blocks[0].File)
}

func TestExtractTaggedTemplateInTypeScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "component.ts")
	content := "const Q = gql`query Q { user { id } }`;\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	e := New(nil)
	blocks, err := e.Extract(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, "query Q { user { id } }", blocks[0].Source)
	require.Equal(t, "gql", blocks[0].Tag)
}

func TestExtractMagicCommentTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "component.js")
	content := "const Q = /* GraphQL */ `query Q { user { id } }`;\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	e := New(nil)
	blocks, err := e.Extract(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, "query Q { user { id } }", blocks[0].Source)
	require.Equal(t, "", blocks[0].Tag)
}

func TestExtractIgnoresUnrelatedTemplateLiterals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "component.js")
	content := "const greeting = `hello ${name}`;\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	e := New(nil)
	blocks, err := e.Extract(path)
	require.NoError(t, err)
	require.Empty(t, blocks)
}

func TestExtractUnsupportedExtensionReturnsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(path, []byte("# hi"), 0o644))

	e := New(nil)
	blocks, err := e.Extract(path)
	require.NoError(t, err)
	require.Nil(t, blocks)
}

func TestExtractCustomTagIdentifiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "component.ts")
	content := "const Q = myTag`query Q { id }`;\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	e := New([]string{"myTag"})
	blocks, err := e.Extract(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, "myTag", blocks[0].Tag)
}
