package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/factz/internal/selector"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FACTZ_CONFIG", "FACTZ_DB", "FACTZ_LOG_LEVEL", "FACTZ_START_LEVEL", "FACTZ_VARIANT"} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFileErrors(t *testing.T) {
	isolateEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolateEnv(t)
	p := writeConfig(t, `
drill:
  start_level: 6
  selector:
    step: 0.25
log:
  level: debug
db_path: /tmp/factz-test.db
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Drill.StartLevel)
	assert.Equal(t, 0.25, cfg.Drill.Selector.Step)
	assert.Equal(t, selector.DefaultBatchSize, cfg.Drill.Selector.BatchSize)
	assert.Equal(t, selector.VariantLeveled, cfg.Drill.Selector.Variant)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/factz-test.db", cfg.DBPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("FACTZ_DB", "/data/factz.db")
	t.Setenv("FACTZ_LOG_LEVEL", "warn")
	t.Setenv("FACTZ_START_LEVEL", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/factz.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Drill.StartLevel)
}

func TestLoad_ClassicVariantFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("FACTZ_VARIANT", "classic")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, selector.VariantClassic, cfg.Drill.Selector.Variant)
	assert.False(t, cfg.Drill.Selector.DampTrivial)
}

func TestLoad_FactzConfigEnv(t *testing.T) {
	isolateEnv(t)
	p := writeConfig(t, "drill:\n  start_level: 5\n")
	t.Setenv("FACTZ_CONFIG", p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Drill.StartLevel)

	t.Setenv("FACTZ_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load("")
	require.Error(t, err, "missing FACTZ_CONFIG file should be an error")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "start level below batch domain", body: "drill:\n  start_level: 3\n"},
		{name: "negative step", body: "drill:\n  selector:\n    step: -1\n"},
		{name: "bad log level", body: "log:\n  level: chatty\n"},
		{name: "malformed yaml", body: "drill: [\n"},
		{name: "bad start level env", body: "", env: map[string]string{"FACTZ_START_LEVEL": "four"}},
		{name: "unknown variant env", body: "", env: map[string]string{"FACTZ_VARIANT": "spiral"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
