// Package lspadapter adapts the core analyses in pkg/gqlproject onto a
// jrpc2-based language-server transport: an ls-builder handler assembled
// from per-method handler functions and served over creachadair/jrpc2
// with Content-Length framing.
package lspadapter

import (
	"context"
	"sync"

	"github.com/creachadair/jrpc2"
	lsp "github.com/newstack-cloud/ls-builder/lsp_3_17"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
)

// DocumentURI mirrors the wire type; kept local so this package never
// needs more of ls-builder's type surface than its handler-registration
// helpers.
type DocumentURI = lsp.DocumentURI

// Position is 0-based, UTF-16 columns, per the LSP wire format.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open [Start, End) span.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is the wire shape for one published diagnostic.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

// openFile tracks one editor-owned buffer between didOpen/didChange and
// didClose notifications.
type openFile struct {
	text    string
	version int
}

// Server holds the project whose analyses back every request, plus the
// editor buffers that shadow what's on disk until saved.
type Server struct {
	mu      sync.RWMutex
	project *gqlproject.Project
	files   map[DocumentURI]*openFile
	rootURI DocumentURI

	jrpcServer *jrpc2.Server
}

// NewServer wraps project for LSP serving. project should already have
// had LoadSchema called at least once. didOpen/didChange only update the
// in-memory buffers; the server never re-runs LoadDocuments.
func NewServer(project *gqlproject.Project) *Server {
	return &Server{
		project: project,
		files:   make(map[DocumentURI]*openFile),
	}
}

// SetJRPCServer stores the jrpc2.Server this handler is being served
// from, so handlers can push notifications (e.g. publishDiagnostics).
func (s *Server) SetJRPCServer(srv *jrpc2.Server) {
	s.jrpcServer = srv
}

// NewHandler builds the ls-builder handler, registering this Server's
// methods against the LSP method names ls-builder knows about.
func NewHandler(ctx context.Context, s *Server) *lsp.Handler {
	return lsp.NewHandler(
		lsp.WithInitializeHandler(s.handleInitialize),
		lsp.WithShutdownHandler(s.handleShutdown),
		lsp.WithTextDocumentDidOpenHandler(s.handleDidOpen),
		lsp.WithTextDocumentDidChangeHandler(s.handleDidChange),
		lsp.WithTextDocumentDidCloseHandler(s.handleDidClose),
		lsp.WithCompletionHandler(s.handleCompletion),
		lsp.WithGotoDefinitionHandler(s.handleDefinition),
		lsp.WithReferencesHandler(s.handleReferences),
		lsp.WithHoverHandler(s.handleHover),
	)
}

func (s *Server) bufferText(uri DocumentURI) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[uri]
	if !ok {
		return "", false
	}
	return f.text, true
}
