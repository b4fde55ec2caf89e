package lint

import "github.com/vito/graphql-lsp/pkg/gqlproject"

// Diagnostic is one lint finding, anchored at a name token's range.
type Diagnostic struct {
	File     string
	Rule     string
	Severity Severity
	Message  string
	Line     int
	Column   int
	Width    int
}

// Rule is a per-document check: it runs once per clean extracted block.
type Rule interface {
	Name() string
	DefaultSeverity() Severity
	Check(pd *gqlproject.ParsedDocument, schema *gqlproject.SchemaIndex, filePath string) []Diagnostic
}

// ProjectRule is a whole-project check: it runs once over the fully
// indexed document set.
type ProjectRule interface {
	Name() string
	DefaultSeverity() Severity
	CheckProject(docs *gqlproject.DocumentIndex, schema *gqlproject.SchemaIndex) []Diagnostic
}

// Linter holds the registered rules and the config that gates and
// overrides their severities.
type Linter struct {
	config       Config
	docRules     []Rule
	projectRules []ProjectRule
}

// New returns a Linter with the built-in rule set registered, gated by
// config.
func New(config Config) *Linter {
	return &Linter{
		config: config,
		docRules: []Rule{
			NewUniqueNamesRule(),
			NewDeprecatedFieldRule(),
		},
		projectRules: []ProjectRule{
			NewUnusedFieldsRule(),
		},
	}
}

// Run lints every clean document in docs, then the project-wide rules
// once, concatenating diagnostics with each rule's configured severity
// substituted for whatever the rule itself reported, overwriting the
// rule's own default.
func (l *Linter) Run(docs *gqlproject.DocumentIndex, schema *gqlproject.SchemaIndex) []Diagnostic {
	var out []Diagnostic

	for _, file := range docs.Files() {
		pd := docs.Tree(file)
		if pd == nil || !pd.Clean() {
			continue
		}
		for _, rule := range l.docRules {
			sev := l.resolvedSeverity(rule.Name(), rule.DefaultSeverity())
			if sev == SeverityOff {
				continue
			}
			for _, d := range rule.Check(pd, schema, file) {
				d.Severity = sev
				d.Rule = rule.Name()
				out = append(out, d)
			}
		}
	}

	for _, rule := range l.projectRules {
		sev := l.resolvedSeverity(rule.Name(), rule.DefaultSeverity())
		if sev == SeverityOff {
			continue
		}
		for _, d := range rule.CheckProject(docs, schema) {
			d.Severity = sev
			d.Rule = rule.Name()
			out = append(out, d)
		}
	}

	return out
}

// resolvedSeverity returns what config says about name, falling back to
// fallback (the rule's own built-in default severity) whenever config
// never mentions name at all.
func (l *Linter) resolvedSeverity(name string, fallback Severity) Severity {
	if sev, explicit := l.config.Severity(name); explicit {
		return sev
	}
	return fallback
}
