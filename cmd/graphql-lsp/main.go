package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/spf13/cobra"

	"github.com/vito/graphql-lsp/pkg/extract"
	"github.com/vito/graphql-lsp/pkg/gqlconfig"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
	"github.com/vito/graphql-lsp/pkg/lspadapter"
)

// Config holds the flags this binary accepts.
type Config struct {
	Debug      bool
	LogFile    string
	ConfigPath string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "graphql-lsp [flags]",
		Short: "GraphQL language server",
		Long: `graphql-lsp serves goto-definition, find-references, completion,
and hover for a schema and its documents, speaking the Language Server
Protocol over stdio. It does not publish lint diagnostics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", "", "Path to LSP log file (stderr if not specified)")
	rootCmd.Flags().StringVar(&cfg.ConfigPath, "config", "", "Path to a .graphqlrc file (discovered from cwd if not specified)")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func runLSP(ctx context.Context, cfg Config) error {
	var logDest io.Writer = os.Stderr
	if cfg.LogFile != "" {
		logFile, err := os.Create(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open lsp log: %w", err)
		}
		defer logFile.Close() //nolint:errcheck
		logDest = logFile
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logDest, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	project, err := loadProject(ctx, cfg)
	if err != nil {
		logger.WarnContext(ctx, "starting with incomplete project", "error", err)
	}
	if project == nil {
		project = gqlproject.NewProject(nil, nil)
	}

	logger.InfoContext(ctx, "starting LSP server")

	server := lspadapter.NewServer(project)
	handler := lspadapter.NewHandler(ctx, server)
	srv := jrpc2.NewServer(handler, &jrpc2.ServerOptions{
		AllowPush: true,
		Logger:    func(text string) { logger.Debug(text) },
	})
	server.SetJRPCServer(srv)

	srv.Start(channel.LSP(stdrwc{}, stdrwc{}))

	logger.InfoContext(ctx, "LSP server closed", "error", srv.Wait())
	return nil
}

// loadProject discovers a .graphqlrc starting from the working directory,
// resolves its schema and document globs, and builds a Project with its
// first snapshot loaded. Errors are non-fatal: the LSP still starts (with
// Current() returning nil) so editors can surface diagnostics about the
// project itself rather than refusing to connect.
func loadProject(ctx context.Context, cfg Config) (*gqlproject.Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	var doc *gqlconfig.Document
	var configDir string
	if cfg.ConfigPath != "" {
		doc, err = gqlconfig.LoadFile(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		configDir = filepath.Dir(cfg.ConfigPath)
	} else {
		var path string
		doc, path, err = gqlconfig.Load(cwd)
		if err != nil {
			return nil, err
		}
		configDir = filepath.Dir(path)
	}

	pc, ok := doc.Projects[gqlconfig.DefaultProjectName]
	if !ok {
		for _, v := range doc.Projects {
			pc = v
			break
		}
	}

	schemaPaths, err := gqlconfig.ResolveDocuments(configDir, pc.Schema)
	if err != nil {
		return nil, err
	}
	documentPaths, err := gqlconfig.ResolveDocuments(configDir, pc.Documents)
	if err != nil {
		return nil, err
	}

	schemaLoader := gqlproject.NewFileSchemaLoader(schemaPaths)
	extractor := extract.New(nil)
	project := gqlproject.NewProject(schemaLoader, extractor)

	if err := project.LoadSchema(ctx); err != nil {
		return project, err
	}
	if err := project.LoadDocuments(ctx, documentPaths); err != nil {
		return project, err
	}
	return project, nil
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
