package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Bucket   string `json:"bucket"`
	Region   string `json:"region"`
	MaxBlobs int    `json:"max_blobs"`
}

func write(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "storage.json5"), `{
		// base settings
		bucket: "strains",
		region: "us-east-1",
		max_blobs: 200,
	}`)
	write(t, filepath.Join(dir, "storage.local.json5"), `{
		bucket: "strains-dev",
	}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "storage.json5"))
	require.NoError(t, err)
	require.Equal(t, "strains-dev", config.Bucket)
	require.Equal(t, "us-east-1", config.Region)
	require.Equal(t, 200, config.MaxBlobs)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "storage.local.json5"), `{bucket: "strains-dev"}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "storage.json5"))
	require.NoError(t, err)
	require.Equal(t, "strains-dev", config.Bucket)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "storage.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	write(t, filepath.Join(root, "storage.json5"), `{bucket: "strains"}`)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	config, err := ReadRecursively[testConfig]("storage.json5")
	require.NoError(t, err)
	require.Equal(t, "strains", config.Bucket)
}
