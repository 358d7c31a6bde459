package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory during cleanup (t.Chdir equivalent
// for Go toolchains before 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Overlap.MinConcurrent)
	assert.Equal(t, 1, cfg.Overlap.Workers)
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpusprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
overlap:
  min_concurrent: 3
  workers: 8
  database: runs.db
stats:
  train_dir: data/icsi_train
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Overlap.MinConcurrent)
	assert.Equal(t, 8, cfg.Overlap.Workers)
	assert.Equal(t, "runs.db", cfg.Overlap.Database)
	assert.Equal(t, "data/icsi_train", cfg.Stats.TrainDir)
	// Untouched section keeps its default.
	assert.Equal(t, "data/eval", cfg.Stats.EvalDir)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpusprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overlap:\n  min_concurrent: 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "min_concurrent")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpusprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overlap: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
