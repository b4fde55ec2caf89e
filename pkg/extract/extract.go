// Package extract implements gqlproject.Extractor: pulling embedded
// query-language blocks out of both native document files and
// host-language source files.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

// DefaultTagIdentifiers are the tagged-template function names recognized
// when no configuration overrides them.
var DefaultTagIdentifiers = []string{"gql", "graphql"}

// DefaultModules names the client ecosystems this extractor is meant to
// recognize. It is informational only: the extractor matches a tagged
// template by its tag identifier alone and does not yet cross-reference
// import statements against this list, so a same-named tag from any
// module is recognized.
var DefaultModules = []string{
	"graphql-tag",
	"@apollo/client",
	"apollo-boost",
	"react-apollo",
	"gatsby",
	"react-relay",
}

var nativeExtensions = map[string]bool{
	".graphql": true,
	".gql":     true,
	".gqls":    true,
}

var hostLanguages = map[string]func() *sitter.Language{
	".ts": typescript.GetLanguage,
	// tree-sitter-typescript's base grammar parses the subset of JSX-free
	// TypeScript; .tsx files are close enough for tag/comment scanning
	// purposes that a dedicated tsx grammar isn't pulled in here.
	".tsx": typescript.GetLanguage,
	".js":  javascript.GetLanguage,
	".jsx": javascript.GetLanguage,
	".mjs": javascript.GetLanguage,
	".cjs": javascript.GetLanguage,
	// Single-file component formats embed a <script> block written in
	// plain JS/TS; a dedicated host grammar for .vue/.svelte/.astro isn't
	// in this dependency's language set, so these fall back to scanning
	// the whole file as JavaScript, which still finds top-level tagged
	// templates in a <script> block without HTML-template awareness.
	".vue":    javascript.GetLanguage,
	".svelte": javascript.GetLanguage,
	".astro":  javascript.GetLanguage,
}

const magicComment = "/* GraphQL */"

// Extractor implements gqlproject.Extractor using tree-sitter to find
// tagged template literals and magic-comment template literals in
// host-language files, and treats native query files as a single block.
type Extractor struct {
	TagIdentifiers []string
}

// New returns an Extractor configured with tagIdentifiers, or
// DefaultTagIdentifiers if empty.
func New(tagIdentifiers []string) *Extractor {
	if len(tagIdentifiers) == 0 {
		tagIdentifiers = DefaultTagIdentifiers
	}
	return &Extractor{TagIdentifiers: tagIdentifiers}
}

var _ gqlproject.Extractor = (*Extractor)(nil)

// Extract reads path and returns its embedded blocks: a native query
// file is one whole-file block; a host-language file yields zero or
// more blocks found via tagged templates or the magic comment; any
// other extension yields no blocks.
func (e *Extractor) Extract(path string) ([]gqlproject.ExtractedBlock, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if nativeExtensions[ext] {
		content, err := readFile(path)
		if err != nil {
			return nil, err
		}
		return []gqlproject.ExtractedBlock{{
			Source: string(content),
			File:   path,
		}}, nil
	}

	langFn, ok := hostLanguages[ext]
	if !ok {
		return nil, nil
	}

	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(langFn())
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("extract: parsing %s: %w", path, err)
	}
	defer tree.Close()

	var blocks []gqlproject.ExtractedBlock
	e.walk(tree.RootNode(), content, path, &blocks)
	return blocks, nil
}

func (e *Extractor) walk(node *sitter.Node, content []byte, path string, blocks *[]gqlproject.ExtractedBlock) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "call_expression":
		if tag, tmpl := taggedTemplate(node, content, e.TagIdentifiers); tmpl != nil {
			*blocks = append(*blocks, blockFrom(tmpl, content, path, tag))
		}
	case "template_string":
		if precededByMagicComment(node, content) {
			*blocks = append(*blocks, blockFrom(node, content, path, ""))
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.walk(node.Child(i), content, path, blocks)
	}
}

// taggedTemplate reports whether node is `<tag>`<template>`` with tag
// one of tagIdentifiers, returning the tag name and the template node.
func taggedTemplate(node *sitter.Node, content []byte, tagIdentifiers []string) (string, *sitter.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return "", nil
	}
	name := textOf(fn, content)
	if !contains(tagIdentifiers, name) {
		return "", nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "template_string" {
			return name, child
		}
	}
	return "", nil
}

// precededByMagicComment reports whether the nearest prior sibling of
// node (skipping none) is a comment containing exactly "/* GraphQL */".
func precededByMagicComment(node *sitter.Node, content []byte) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	var prev *sitter.Node
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child == node {
			break
		}
		prev = child
	}
	if prev == nil || prev.Type() != "comment" {
		return false
	}
	return strings.TrimSpace(textOf(prev, content)) == magicComment
}

// blockFrom turns a template_string node into an ExtractedBlock, peeling
// off the surrounding backticks.
func blockFrom(tmpl *sitter.Node, content []byte, path, tag string) gqlproject.ExtractedBlock {
	raw := textOf(tmpl, content)
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "`"), "`")
	start := tmpl.StartPoint()
	// tree-sitter columns count bytes; OriginCol counts characters.
	return gqlproject.ExtractedBlock{
		Source:     inner,
		File:       path,
		OriginByte: int(tmpl.StartByte()) + 1, // +1 for the opening backtick
		OriginLine: int(start.Row),
		OriginCol:  utf8.RuneCount(content[int(tmpl.StartByte())-int(start.Column):tmpl.StartByte()]) + 1,
		Tag:        tag,
	}
}

func textOf(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

func contains(items []string, s string) bool {
	for _, i := range items {
		if i == s {
			return true
		}
	}
	return false
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: reading %s: %w", path, err)
	}
	return content, nil
}
