// Package gqlconfig discovers and parses the project configuration file:
// `.graphqlrc.{yml,yaml,json}`, `.graphqlrc`, or
// `graphql.config.{yml,yaml,json}`, found by walking up from the working
// directory.
package gqlconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vito/graphql-lsp/pkg/gqlproject/lint"
	"gopkg.in/yaml.v3"
)

// ErrEmptySchema is returned when a resolved project config names no
// schema source at all, or names a blank one.
var ErrEmptySchema = errors.New("gqlconfig: schema must name at least one non-blank path or URL")

// ErrEmptyDocuments is returned when a project config's documents field
// names a blank pattern.
var ErrEmptyDocuments = errors.New("gqlconfig: documents pattern must not be blank")

// ErrParse is returned when a configuration document's bytes don't parse
// as the format they claim to be.
var ErrParse = errors.New("gqlconfig: failed to parse configuration")

// StringOrSlice accepts either a single string or an array of strings in
// the source document, the shape `schema` and `documents` both allow.
type StringOrSlice []string

func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
			return nil
		}
		*s = StringOrSlice{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("%w: expected a string or array of strings: %v", ErrParse, err)
	}
	*s = StringOrSlice(many)
	return nil
}

func (s *StringOrSlice) UnmarshalYAML(value *yaml.Node) error {
	var single string
	if err := value.Decode(&single); err == nil {
		if single == "" {
			*s = nil
			return nil
		}
		*s = StringOrSlice{single}
		return nil
	}
	var many []string
	if err := value.Decode(&many); err != nil {
		return fmt.Errorf("%w: expected a string or array of strings: %v", ErrParse, err)
	}
	*s = StringOrSlice(many)
	return nil
}

// ProjectConfig is one project's resolved configuration: where its
// schema lives, which documents belong to it, and its lint settings.
type ProjectConfig struct {
	Schema      StringOrSlice  `json:"schema" yaml:"schema"`
	Documents   StringOrSlice  `json:"documents" yaml:"documents"`
	Lint        lint.Config    `json:"-" yaml:"-"`
	Extensions  map[string]any `json:"extensions" yaml:"extensions"`
}

// rawProjectConfig carries the `extensions.lint` field through whichever
// shape it was written in, before ProjectConfig.finalize folds it into
// the typed Lint field.
type rawProjectConfig struct {
	Schema     StringOrSlice  `json:"schema" yaml:"schema"`
	Documents  StringOrSlice  `json:"documents" yaml:"documents"`
	Extensions map[string]any `json:"extensions" yaml:"extensions"`
}

func (p *ProjectConfig) finalize() error {
	if len(p.Schema) == 0 {
		return ErrEmptySchema
	}
	for _, s := range p.Schema {
		if strings.TrimSpace(s) == "" {
			return ErrEmptySchema
		}
	}
	for _, d := range p.Documents {
		if strings.TrimSpace(d) == "" {
			return ErrEmptyDocuments
		}
	}
	lintRaw, ok := p.Extensions["lint"]
	if !ok {
		p.Lint = lint.Empty()
		return nil
	}
	data, err := json.Marshal(lintRaw)
	if err != nil {
		return fmt.Errorf("gqlconfig: re-encoding extensions.lint: %w", err)
	}
	var cfg lint.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("gqlconfig: extensions.lint: %w", err)
	}
	p.Lint = cfg
	return nil
}

// Document is the top-level configuration document: either a single
// project (schema at the top level) or a named `projects:` map.
type Document struct {
	Projects map[string]ProjectConfig
}

type rawDocument struct {
	rawProjectConfig `yaml:",inline"`
	Projects         map[string]rawProjectConfig `json:"projects" yaml:"projects"`
}

// DefaultProjectName is the key a single, unnamed project is stored
// under, so callers always look projects up by name.
const DefaultProjectName = "default"

func parseDocument(unmarshal func(any) error) (*Document, error) {
	var raw rawDocument
	if err := unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	doc := &Document{Projects: make(map[string]ProjectConfig)}
	if len(raw.Projects) > 0 {
		for name, rp := range raw.Projects {
			pc := ProjectConfig{Schema: rp.Schema, Documents: rp.Documents, Extensions: rp.Extensions}
			if err := pc.finalize(); err != nil {
				return nil, fmt.Errorf("project %q: %w", name, err)
			}
			doc.Projects[name] = pc
		}
		return doc, nil
	}

	pc := ProjectConfig{Schema: raw.Schema, Documents: raw.Documents, Extensions: raw.Extensions}
	if err := pc.finalize(); err != nil {
		return nil, err
	}
	doc.Projects[DefaultProjectName] = pc
	return doc, nil
}

// ParseJSON parses a JSON-encoded configuration document.
func ParseJSON(data []byte) (*Document, error) {
	return parseDocument(func(v any) error { return json.Unmarshal(data, v) })
}

// ParseYAML parses a YAML-encoded configuration document.
func ParseYAML(data []byte) (*Document, error) {
	return parseDocument(func(v any) error { return yaml.Unmarshal(data, v) })
}
