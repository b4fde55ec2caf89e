package lspadapter

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

type textDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

type versionedTextDocumentIdentifier struct {
	URI     DocumentURI `json:"uri"`
	Version int         `json:"version"`
}

type textDocumentItem struct {
	URI     DocumentURI `json:"uri"`
	Text    string      `json:"text"`
	Version int         `json:"version"`
}

type initializeParams struct {
	RootURI DocumentURI `json:"rootUri"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type contentChange struct {
	Text string `json:"text"`
}

type didChangeParams struct {
	TextDocument   versionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChange                 `json:"contentChanges"`
}

type didCloseParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type textDocumentPositionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type referenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

type referenceParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Context      referenceContext       `json:"context"`
}

func (s *Server) handleInitialize(ctx context.Context, req *jrpc2.Request) (any, error) {
	if req.HasParams() {
		var params initializeParams
		if err := req.UnmarshalParams(&params); err == nil {
			s.rootURI = params.RootURI
		}
	}
	return map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync":   1, // full sync
			"completionProvider": map[string]any{"triggerCharacters": []string{"@", "$", "."}},
			"definitionProvider": true,
			"referencesProvider": true,
			"hoverProvider":      true,
		},
	}, nil
}

func (s *Server) handleShutdown(ctx context.Context, req *jrpc2.Request) (any, error) {
	return nil, nil
}

func (s *Server) handleDidOpen(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params didOpenParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.files[params.TextDocument.URI] = &openFile{text: params.TextDocument.Text, version: params.TextDocument.Version}
	s.mu.Unlock()
	return nil, nil
}

func (s *Server) handleDidChange(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params didChangeParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	if len(params.ContentChanges) == 0 {
		return nil, nil
	}
	// Full-document sync only; incremental edits are never requested.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.mu.Lock()
	s.files[params.TextDocument.URI] = &openFile{text: text, version: params.TextDocument.Version}
	s.mu.Unlock()
	return nil, nil
}

func (s *Server) handleDidClose(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params didCloseParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	s.mu.Lock()
	delete(s.files, params.TextDocument.URI)
	s.mu.Unlock()
	return nil, nil
}

// classifyAt parses the buffer for uri and classifies the element at
// position, returning nil if the buffer is unknown, unparseable, or the
// position resolves to nothing. Analyses return absent rather than an
// error so one bad cursor position never fails the whole request.
func (s *Server) classifyAt(uri DocumentURI, pos Position) (gqlproject.Element, *gqlproject.SchemaIndex) {
	text, ok := s.bufferText(uri)
	if !ok {
		return nil, nil
	}
	snapshot := s.project.Current()
	if snapshot == nil {
		return nil, nil
	}

	pd := gqlproject.ParseDocument(string(uri), text)
	if !pd.Clean() {
		return nil, snapshot.Schema
	}

	li := gqlproject.NewLineIndex(text)
	charColumn := li.CharColumn(pos.Line, pos.Character)
	offset, ok := li.PositionToOffset(gqlproject.Position{Line: pos.Line, Column: charColumn})
	if !ok {
		return nil, snapshot.Schema
	}

	classifier := gqlproject.NewClassifier(snapshot.Schema)
	el := classifier.ClassifyDocument(pd, offset)
	return el, snapshot.Schema
}

// lineIndexFor finds source text for file among open buffers or indexed
// documents, returning nil if neither has it. Schema sources are not
// searched, so schema locations keep their character columns.
func (s *Server) lineIndexFor(file string, snapshot *gqlproject.Snapshot) *gqlproject.LineIndex {
	if text, ok := s.bufferText(DocumentURI(file)); ok {
		return gqlproject.NewLineIndex(text)
	}
	if snapshot.Documents != nil {
		if pd := snapshot.Documents.Tree(file); pd != nil {
			return gqlproject.NewLineIndex(pd.Source.Input)
		}
	}
	return nil
}

func (s *Server) handleCompletion(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params textDocumentPositionParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	el, schema := s.classifyAt(params.TextDocument.URI, params.Position)
	if el == nil || schema == nil {
		return []any{}, nil
	}
	snapshot := s.project.Current()
	engine := gqlproject.NewCompletionEngine(schema, snapshot.Documents)
	items := engine.Complete(el)

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"label":         item.Label,
			"detail":        item.Detail,
			"documentation": item.Doc,
			"insertText":    item.InsertText,
			"deprecated":    item.Deprecated,
		})
	}
	return out, nil
}

func (s *Server) handleDefinition(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params textDocumentPositionParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	el, schema := s.classifyAt(params.TextDocument.URI, params.Position)
	if el == nil || schema == nil {
		return nil, nil
	}
	snapshot := s.project.Current()
	resolver := gqlproject.NewDefinitionResolver(schema, snapshot.Documents)
	locations := resolver.Resolve(el)

	out := make([]map[string]any, 0, len(locations))
	for _, loc := range locations {
		startChar, endChar := loc.Column, loc.Column+loc.Width
		// Transcode to UTF-16 columns when the target file's source is in
		// hand (an open buffer or an indexed document); otherwise names are
		// assumed ASCII and the char column is used as-is.
		if li := s.lineIndexFor(loc.File, snapshot); li != nil {
			startChar = li.UTF16Column(loc.Line, loc.Column)
			endChar = li.UTF16Column(loc.Line, loc.Column+loc.Width)
		}
		out = append(out, map[string]any{
			"uri": loc.File,
			"range": Range{
				Start: Position{Line: loc.Line, Character: startChar},
				End:   Position{Line: loc.Line, Character: endChar},
			},
		})
	}
	return out, nil
}

func (s *Server) handleReferences(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params referenceParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	el, schema := s.classifyAt(params.TextDocument.URI, params.Position)
	if el == nil || schema == nil {
		return []any{}, nil
	}
	snapshot := s.project.Current()
	search := gqlproject.NewReferenceSearch(schema, snapshot.Documents)
	refs := search.Find(el, params.Context.IncludeDeclaration)

	out := make([]map[string]any, 0, len(refs))
	for _, ref := range refs {
		startChar, endChar := ref.Column, ref.Column+ref.Width
		if li := s.lineIndexFor(ref.File, snapshot); li != nil {
			startChar = li.UTF16Column(ref.Line, ref.Column)
			endChar = li.UTF16Column(ref.Line, ref.Column+ref.Width)
		}
		out = append(out, map[string]any{
			"uri": ref.File,
			"range": Range{
				Start: Position{Line: ref.Line, Character: startChar},
				End:   Position{Line: ref.Line, Character: endChar},
			},
		})
	}
	return out, nil
}

func (s *Server) handleHover(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params textDocumentPositionParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	el, schema := s.classifyAt(params.TextDocument.URI, params.Position)
	if el == nil || schema == nil {
		return nil, nil
	}
	synth := gqlproject.NewHoverSynth(schema)
	content, ok := synth.Hover(el)
	if !ok {
		return nil, nil
	}
	return map[string]any{
		"contents": map[string]any{
			"kind":  "markdown",
			"value": content,
		},
	}, nil
}
