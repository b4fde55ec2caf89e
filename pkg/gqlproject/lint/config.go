// Package lint implements the pluggable lint pass: a registry of
// per-document and whole-project rules, configured by a preset, an
// explicit per-rule map, or a preset layered with overrides.
package lint

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Severity is a rule's configured activation level.
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// RuleSetting is one rule's configured severity plus free-form options,
// the `{severity, options}` object form from the config file.
type RuleSetting struct {
	Severity Severity
	Options  map[string]any
}

// recommendedDefaults are the severities `"recommended"` explicitly
// layers in. unused-fields is left out of this table on purpose: it
// still runs (falling back to its own built-in default severity, like
// any other rule the config never mentions), it just isn't pinned to a
// specific severity by the preset itself.
var recommendedDefaults = map[string]Severity{
	"unique_names":    SeverityError,
	"deprecated_field": SeverityWarn,
}

// Config is a resolved lint configuration: the three accepted shapes
// (bare preset string, explicit rule map, or preset-plus-overrides map)
// all reduce to the same settings table at parse time.
type Config struct {
	settings map[string]RuleSetting
}

// Recommended returns the config produced by the bare `"recommended"`
// preset, with no overrides.
func Recommended() Config {
	c := Config{settings: make(map[string]RuleSetting)}
	for name, sev := range recommendedDefaults {
		c.settings[name] = RuleSetting{Severity: sev}
	}
	return c
}

// Empty returns a config with no rule explicitly mentioned, used when
// `extensions.lint` is absent from the project configuration. Since no
// rule is mentioned, the linter falls each one back to its own built-in
// default severity rather than turning it off.
func Empty() Config {
	return Config{settings: make(map[string]RuleSetting)}
}

// IsEnabled reports whether name's configured severity activates it:
// true when the severity is "warn" or "error".
func (c Config) IsEnabled(name string) bool {
	sev, _ := c.Severity(name)
	return sev == SeverityWarn || sev == SeverityError
}

// Severity returns name's configured severity and whether it was
// explicitly configured (false means the caller should fall back to the
// rule's own default).
func (c Config) Severity(name string) (Severity, bool) {
	s, ok := c.settings[canonicalRuleName(name)]
	if !ok {
		return SeverityOff, false
	}
	return s.Severity, true
}

// Options returns name's configured options map, or nil.
func (c Config) Options(name string) map[string]any {
	return c.settings[canonicalRuleName(name)].Options
}

// canonicalRuleName normalizes a rule-name spelling (`unique-names`,
// `uniqueNames`, `unique_names`) to the snake_case form used internally,
// since config authors write either convention interchangeably.
func canonicalRuleName(name string) string {
	return strcase.ToSnake(name)
}

// UnmarshalJSON accepts any of the three documented shapes:
//
//	"recommended"
//	{"unique_names": "error", "deprecated_field": "warn"}
//	{"recommended": "warn", "unused_fields": {"severity": "error"}}
func (c *Config) UnmarshalJSON(data []byte) error {
	var preset string
	if err := json.Unmarshal(data, &preset); err == nil {
		if preset != "recommended" {
			return fmt.Errorf("lint: unknown preset %q", preset)
		}
		*c = Recommended()
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("lint: config must be a string or an object: %w", err)
	}

	out := Config{settings: make(map[string]RuleSetting)}
	if base, ok := raw["recommended"]; ok {
		var recSev Severity
		if err := json.Unmarshal(base, &recSev); err == nil && recSev != SeverityOff {
			for name := range recommendedDefaults {
				out.settings[name] = RuleSetting{Severity: recSev}
			}
		} else {
			for name, sev := range recommendedDefaults {
				out.settings[name] = RuleSetting{Severity: sev}
			}
		}
		delete(raw, "recommended")
	}

	for name, v := range raw {
		setting, err := parseRuleSetting(v)
		if err != nil {
			return fmt.Errorf("lint: rule %q: %w", name, err)
		}
		out.settings[canonicalRuleName(name)] = setting
	}

	*c = out
	return nil
}

func parseRuleSetting(data json.RawMessage) (RuleSetting, error) {
	var bare Severity
	if err := json.Unmarshal(data, &bare); err == nil {
		return RuleSetting{Severity: bare}, nil
	}

	var obj struct {
		Severity Severity       `json:"severity"`
		Options  map[string]any `json:"options"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return RuleSetting{}, err
	}
	return RuleSetting{Severity: obj.Severity, Options: obj.Options}, nil
}

// UnmarshalYAML satisfies yaml.v3's Unmarshaler by decoding the node
// into a generic value and reusing UnmarshalJSON's shape-handling logic
// via a round-trip through encoding/json's looser type model.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var generic any
	if err := value.Decode(&generic); err != nil {
		return err
	}
	data, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	return c.UnmarshalJSON(data)
}
