package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 50, cfg.Thresholds.LongMethodLines)
	assert.Equal(t, 100, cfg.Thresholds.LongMethodHighLines)
	assert.Equal(t, 5, cfg.Thresholds.MaxParameters)
	assert.Equal(t, 4, cfg.Thresholds.MaxNestingDepth)
	assert.False(t, cfg.Analysis.NestedDefinitionReset)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24, cfg.Cache.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "smelldetect.toml", []byte(`
[thresholds]
long_method_lines = 30
long_method_high_lines = 60

[cache]
enabled = false

[exclude]
dirs = ["generated"]
`))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Thresholds.LongMethodLines)
	assert.Equal(t, 60, cfg.Thresholds.LongMethodHighLines)
	// Unset keys keep their defaults.
	assert.Equal(t, 5, cfg.Thresholds.MaxParameters)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"generated"}, cfg.Exclude.Dirs)
}

func TestLoadYAML(t *testing.T) {
	content, err := yaml.Marshal(map[string]any{
		"thresholds": map[string]any{
			"max_parameters":      3,
			"max_parameters_high": 6,
		},
		"analysis": map[string]any{
			"nested_definition_reset": true,
		},
	})
	require.NoError(t, err)
	path := writeConfig(t, "smelldetect.yaml", content)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Thresholds.MaxParameters)
	assert.Equal(t, 6, cfg.Thresholds.MaxParametersHigh)
	assert.True(t, cfg.Analysis.NestedDefinitionReset)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "smelldetect.json", []byte(`{
  "output": {"format": "json", "color": false}
}`))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	path := writeConfig(t, "smelldetect.toml", []byte(`
[thresholds]
long_method_lines = -1
`))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvertedCeiling(t *testing.T) {
	path := writeConfig(t, "smelldetect.toml", []byte(`
[thresholds]
max_nesting_depth = 6
max_nesting_high = 2
`))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidateNegativeTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.TTL = -1
	assert.Error(t, cfg.Validate())
}
