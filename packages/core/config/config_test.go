package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, HookIdentity, c.Hook)
	assert.False(t, c.GetNoColor())
	assert.False(t, c.GetDebug())
	assert.True(t, c.IsDefault())
	assert.NoError(t, c.Validate())
}

func TestFindAndLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		hook     string
		noColor  bool
		rate     float64
	}{
		{
			name:     "json",
			filename: ".testconsole.json",
			content:  `{"hook":"labeled","noColor":true,"rate":20}`,
			hook:     HookLabeled,
			noColor:  true,
			rate:     20,
		},
		{
			name:     "rc file",
			filename: ".testconsolerc",
			content:  `{"rate":5}`,
			hook:     HookIdentity,
			rate:     5,
		},
		{
			name:     "yaml",
			filename: "testconsole.yaml",
			content:  "hook: labeled\nnoColor: true\n",
			hook:     HookLabeled,
			noColor:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.filename), []byte(tt.content), 0644))

			c, err := FindAndLoadConfig(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.hook, c.Hook)
			assert.Equal(t, tt.noColor, c.GetNoColor())
			assert.Equal(t, tt.rate, c.Rate)
		})
	}
}

func TestFindAndLoadConfigDefaults(t *testing.T) {
	c, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, c.IsDefault())
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0644))
	_, err := LoadConfig(badJSON)
	assert.Error(t, err)

	badHook := filepath.Join(dir, "hook.json")
	require.NoError(t, os.WriteFile(badHook, []byte(`{"hook":"fancy"}`), 0644))
	_, err = LoadConfig(badHook)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hook")

	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(&Config{Hook: HookLabeled, NoColor: BoolPtr(true), Rate: 3})

	assert.Equal(t, HookLabeled, merged.Hook)
	assert.True(t, merged.GetNoColor())
	assert.Equal(t, 3.0, merged.Rate)
	assert.False(t, merged.GetDebug())
	assert.Equal(t, HookIdentity, base.Hook, "base is not modified")

	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(dir, name)
		c := DefaultConfig().Merge(&Config{Hook: HookLabeled, Report: "report.json"})
		require.NoError(t, c.SaveConfig(path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, HookLabeled, loaded.Hook)
		assert.Equal(t, "report.json", loaded.Report)
	}
}
