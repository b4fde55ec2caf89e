package gqlproject

import (
	"context"
	"fmt"
	"os"
)

// SchemaLoader resolves a project's configured schema locations into raw
// SDL sources. File-based and URL-based configurations both satisfy the
// same contract so Project never branches on where a schema came from.
type SchemaLoader interface {
	LoadSchema(ctx context.Context) ([]SchemaSource, error)
}

// FileSchemaLoader reads schema SDL from local files, in the given order.
// Order decides which read error is reported first, and in
// BuildSchemaIndex a later source's record of a name replaces an
// earlier one.
type FileSchemaLoader struct {
	Paths []string
}

// NewFileSchemaLoader returns a loader over the given file paths.
func NewFileSchemaLoader(paths []string) *FileSchemaLoader {
	return &FileSchemaLoader{Paths: paths}
}

func (l *FileSchemaLoader) LoadSchema(ctx context.Context) ([]SchemaSource, error) {
	sources := make([]SchemaSource, 0, len(l.Paths))
	for _, p := range l.Paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", p, err)
		}
		sources = append(sources, SchemaSource{Name: p, Content: string(content)})
	}
	return sources, nil
}

// ErrRemoteSchemaUnsupported is returned by URLSchemaLoader. Fetching a
// schema via introspection over HTTP is a future extension point; this
// implementation declines rather than silently returning an empty schema.
var ErrRemoteSchemaUnsupported = fmt.Errorf("remote schema loading (introspection over HTTP) is not implemented")

// URLSchemaLoader is a placeholder satisfying SchemaLoader for
// configurations that name a URL instead of local files. Wiring a real
// HTTP introspection client is future work; callers can detect this case
// ahead of time via the config's schema entry without calling LoadSchema.
type URLSchemaLoader struct {
	URL string
}

// NewURLSchemaLoader returns a loader stub for the given endpoint.
func NewURLSchemaLoader(url string) *URLSchemaLoader {
	return &URLSchemaLoader{URL: url}
}

func (l *URLSchemaLoader) LoadSchema(ctx context.Context) ([]SchemaSource, error) {
	return nil, fmt.Errorf("%s: %w", l.URL, ErrRemoteSchemaUnsupported)
}
