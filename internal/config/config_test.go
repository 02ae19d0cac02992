package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid config",
			config: Config{Source: "docs", WorkDir: "build/confluence"},
		},
		{
			name:    "missing source",
			config:  Config{WorkDir: "build/confluence"},
			wantErr: "source is required",
		},
		{
			name:    "missing work dir",
			config:  Config{Source: "docs"},
			wantErr: "work_dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	cfg := &Config{
		Source:         "docs",
		WorkDir:        "build/confluence",
		SourceEncoding: "UTF-8",
		Attributes:     map[string]string{"version": "1.0"},
		SpaceKey:       "DOC",
		AncestorID:     "42",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("CFLPREP_SOURCE", "env-docs")
	t.Setenv("CFLPREP_WORK_DIR", "env-build")
	t.Setenv("CFLPREP_SOURCE_ENCODING", "ISO-8859-1")
	t.Setenv("CFLPREP_SPACE_KEY", "ENV")
	t.Setenv("CFLPREP_ANCESTOR_ID", "7")

	cfg := &Config{Source: "file-docs", WorkDir: "file-build"}
	cfg.LoadFromEnv()

	assert.Equal(t, "env-docs", cfg.Source)
	assert.Equal(t, "env-build", cfg.WorkDir)
	assert.Equal(t, "ISO-8859-1", cfg.SourceEncoding)
	assert.Equal(t, "ENV", cfg.SpaceKey)
	assert.Equal(t, "7", cfg.AncestorID)
}

func TestConfig_LoadFromEnv_EmptyKeepsExisting(t *testing.T) {
	t.Setenv("CFLPREP_SOURCE", "")
	t.Setenv("CFLPREP_WORK_DIR", "")

	cfg := &Config{Source: "file-docs", WorkDir: "file-build"}
	cfg.LoadFromEnv()

	assert.Equal(t, "file-docs", cfg.Source)
	assert.Equal(t, "file-build", cfg.WorkDir)
}

func TestLoadWithEnv_MissingFileYieldsEmptyConfig(t *testing.T) {
	t.Setenv("CFLPREP_SOURCE", "")
	t.Setenv("CFLPREP_WORK_DIR", "")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}
