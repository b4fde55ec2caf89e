package gqlconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// candidateNames are tried, in order, in each directory visited while
// walking up from the starting point.
var candidateNames = []string{
	".graphqlrc.yml",
	".graphqlrc.yaml",
	".graphqlrc.json",
	".graphqlrc",
	"graphql.config.yml",
	"graphql.config.yaml",
	"graphql.config.json",
}

// ErrNotFound is returned by Discover when no config file is found
// between startDir and the filesystem root.
var ErrNotFound = errors.New("gqlconfig: no configuration file found")

// ErrUnsupportedFormat is returned when a config file's extension isn't
// one of the recognized config formats.
var ErrUnsupportedFormat = errors.New("gqlconfig: unsupported configuration file format")

// Discover walks up from startDir, trying candidateNames in each
// directory, and returns the first match's path.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range candidateNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load discovers and parses the configuration file starting from
// startDir.
func Load(startDir string) (*Document, string, error) {
	path, err := Discover(startDir)
	if err != nil {
		return nil, "", err
	}
	doc, err := LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

// LoadFile parses the configuration file at path directly, dispatching on
// its extension the same way Load does for a discovered file. Use this
// when a caller names a config file explicitly (e.g. a `--config` flag)
// rather than relying on Discover.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseByExtension(path, data)
}

// parseByExtension dispatches parsing by a config file's extension:
// `.json` parses as JSON; `.yml`/`.yaml` parse as YAML; the extensionless
// `.graphqlrc` tries YAML first, falling back to JSON (YAML is a
// superset of JSON, so this covers both without a second read); any
// other extension is rejected outright rather than guessed at.
func parseByExtension(path string, data []byte) (*Document, error) {
	switch filepath.Ext(path) {
	case ".json":
		return ParseJSON(data)
	case ".yml", ".yaml":
		return ParseYAML(data)
	case ".graphqlrc":
		doc, err := ParseYAML(data)
		if err != nil {
			if jsonDoc, jsonErr := ParseJSON(data); jsonErr == nil {
				return jsonDoc, nil
			}
		}
		return doc, err
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
