package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vito/graphql-lsp/pkg/extract"
	"github.com/vito/graphql-lsp/pkg/gqlconfig"
	"github.com/vito/graphql-lsp/pkg/gqlproject"
	"github.com/vito/graphql-lsp/pkg/gqlproject/lint"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "graphql-lint",
		Short: "Validate and lint a GraphQL schema and its documents",
	}
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(lintCmd())

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

func validateCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Run full schema validation against every document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			project, err := loadProjectAt(cmd.Context(), dir)
			if err != nil {
				return err
			}
			diags := validateDiagnostics(project)
			return emit(cmd.OutOrStdout(), diags, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "human", "Output format: human or json")
	return cmd
}

func lintCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "lint [path]",
		Short: "Run lint rules against every document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			project, lintConfig, err := loadProjectWithLintConfig(cmd.Context(), dir)
			if err != nil {
				return err
			}
			snapshot := project.Current()
			if snapshot == nil {
				return fmt.Errorf("graphql-lint: project failed to load")
			}
			linter := lint.New(lintConfig)
			diags := lintToCLI(linter.Run(snapshot.Documents, snapshot.Schema))
			return emit(cmd.OutOrStdout(), diags, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "human", "Output format: human or json")
	return cmd
}

func emit(w io.Writer, diags []cliDiagnostic, format string) error {
	switch format {
	case "json":
		if err := renderJSON(w, diags); err != nil {
			return err
		}
	default:
		renderHuman(w, diags, true)
	}
	if code := exitCode(diags); code != 0 {
		os.Exit(code)
	}
	return nil
}

func validateDiagnostics(project *gqlproject.Project) []cliDiagnostic {
	snapshot := project.Current()
	if snapshot == nil || snapshot.Validator == nil || snapshot.Documents == nil {
		return nil
	}
	var out []cliDiagnostic
	for _, file := range snapshot.Documents.Files() {
		pd := snapshot.Documents.Tree(file)
		if pd == nil {
			continue
		}
		for _, d := range snapshot.Validator.Validate(file, pd.Source.Input) {
			out = append(out, cliDiagnostic{
				File:     d.File,
				Severity: "error",
				Rule:     d.Rule,
				Message:  d.Message,
				Line:     d.Line,
				Column:   d.Column,
			})
		}
	}
	return out
}

func lintToCLI(diags []lint.Diagnostic) []cliDiagnostic {
	out := make([]cliDiagnostic, 0, len(diags))
	for _, d := range diags {
		sev := "warning"
		if d.Severity == lint.SeverityError {
			sev = "error"
		}
		out = append(out, cliDiagnostic{
			File:     d.File,
			Severity: sev,
			Rule:     d.Rule,
			Message:  d.Message,
			Line:     d.Line,
			Column:   d.Column,
			Width:    d.Width,
		})
	}
	return out
}

// loadProjectAt builds a Project by discovering a .graphqlrc starting at
// dir (or dir itself, if it's a config file path directly).
func loadProjectAt(ctx context.Context, dir string) (*gqlproject.Project, error) {
	project, _, err := loadProjectWithConfig(ctx, dir)
	return project, err
}

func loadProjectWithLintConfig(ctx context.Context, dir string) (*gqlproject.Project, lint.Config, error) {
	project, pc, err := loadProjectWithConfig(ctx, dir)
	if err != nil {
		return nil, lint.Config{}, err
	}
	return project, pc.Lint, nil
}

func loadProjectWithConfig(ctx context.Context, dir string) (*gqlproject.Project, gqlconfig.ProjectConfig, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, gqlconfig.ProjectConfig{}, err
	}

	var doc *gqlconfig.Document
	path := abs
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		doc, err = gqlconfig.LoadFile(abs)
	} else {
		doc, path, err = gqlconfig.Load(abs)
	}
	if err != nil {
		return nil, gqlconfig.ProjectConfig{}, err
	}
	configDir := filepath.Dir(path)

	pc, ok := doc.Projects[gqlconfig.DefaultProjectName]
	if !ok {
		for _, v := range doc.Projects {
			pc = v
			break
		}
	}

	schemaPaths, err := gqlconfig.ResolveDocuments(configDir, pc.Schema)
	if err != nil {
		return nil, pc, err
	}
	documentPaths, err := gqlconfig.ResolveDocuments(configDir, pc.Documents)
	if err != nil {
		return nil, pc, err
	}

	schemaLoader := gqlproject.NewFileSchemaLoader(schemaPaths)
	extractor := extract.New(nil)
	project := gqlproject.NewProject(schemaLoader, extractor)

	if err := project.LoadSchema(ctx); err != nil {
		return project, pc, err
	}
	if err := project.LoadDocuments(ctx, documentPaths); err != nil {
		return project, pc, err
	}
	return project, pc, nil
}
