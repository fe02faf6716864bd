package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the test and restores it on
// cleanup, standing in for t.Chdir which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultSchemaPath, cfg.SchemaPath)
	assert.Equal(t, DefaultRegistryPath, cfg.RegistryPath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultServerPort, cfg.ServerPort)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	content := []byte("schema_path: schemas/requests.json\nregistry_path: data/reg.db\nport: 9000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablekit.yaml"), content, 0o644))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "schemas/requests.json", cfg.SchemaPath)
	assert.Equal(t, "data/reg.db", cfg.RegistryPath)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "tablekit.yaml", GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	content := []byte("registry_path: from-file.db\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tablekit.yaml"), content, 0o644))
	t.Setenv("TABLEKIT_REGISTRY_PATH", "from-env.db")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.RegistryPath)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("TABLEKIT_REGISTRY_PATH", "from-env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("registry", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--registry", "from-flag.db", "--output", "json"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.RegistryPath)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("registry", "flag-default.db", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultRegistryPath, cfg.RegistryPath)
}

func TestLoadConfigInvalidOutput(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())
	t.Setenv("TABLEKIT_OUTPUT", "yaml")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid output format "yaml"`)
}
