package lint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigUnmarshalPresetString(t *testing.T) {
	var c Config
	require.NoError(t, json.Unmarshal([]byte(`"recommended"`), &c))
	sev, ok := c.Severity("unique_names")
	require.True(t, ok)
	require.Equal(t, SeverityError, sev)
}

func TestConfigUnmarshalExplicitMap(t *testing.T) {
	var c Config
	require.NoError(t, json.Unmarshal([]byte(`{"unique_names": "error", "unusedFields": "warn"}`), &c))

	sev, ok := c.Severity("unique_names")
	require.True(t, ok)
	require.Equal(t, SeverityError, sev)

	sev, ok = c.Severity("unused_fields")
	require.True(t, ok)
	require.Equal(t, SeverityWarn, sev)
}

func TestConfigUnmarshalPresetWithOverrides(t *testing.T) {
	var c Config
	data := `{"recommended": "warn", "unused_fields": {"severity": "error"}}`
	require.NoError(t, json.Unmarshal([]byte(data), &c))

	sev, ok := c.Severity("unique_names")
	require.True(t, ok)
	require.Equal(t, SeverityWarn, sev)

	sev, ok = c.Severity("unused_fields")
	require.True(t, ok)
	require.Equal(t, SeverityError, sev)
}

func TestConfigUnmarshalYAMLMatchesJSON(t *testing.T) {
	var c Config
	require.NoError(t, yaml.Unmarshal([]byte("recommended"), &c))
	sev, ok := c.Severity("deprecated_field")
	require.True(t, ok)
	require.Equal(t, SeverityWarn, sev)
}

func TestConfigUnknownRuleIsOff(t *testing.T) {
	c := Empty()
	_, ok := c.Severity("some_unconfigured_rule")
	require.False(t, ok)
	require.False(t, c.IsEnabled("some_unconfigured_rule"))
}
