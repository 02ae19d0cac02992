package prepare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/confluence-prep/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	base := &config.Config{
		Source:     "docs",
		WorkDir:    "build",
		Attributes: map[string]string{"a": "1"},
	}
	require.NoError(t, base.Save(path))

	opts := &prepareOptions{
		configPath: path,
		source:     "other-docs",
		attrs:      []string{"b=2", "a=3"},
	}
	cfg, err := loadConfig(opts)
	require.NoError(t, err)

	assert.Equal(t, "other-docs", cfg.Source)
	assert.Equal(t, "build", cfg.WorkDir)
	assert.Equal(t, map[string]string{"a": "3", "b": "2"}, cfg.Attributes)
}

func TestLoadConfig_InvalidAttribute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	base := &config.Config{Source: "docs", WorkDir: "build"}
	require.NoError(t, base.Save(path))

	opts := &prepareOptions{configPath: path, attrs: []string{"noequals"}}
	_, err := loadConfig(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected name=value")
}

func TestLoadConfig_MissingRequiredFields(t *testing.T) {
	opts := &prepareOptions{configPath: filepath.Join(t.TempDir(), "absent.yml")}
	_, err := loadConfig(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRun_EndToEnd(t *testing.T) {
	src := t.TempDir()
	work := t.TempDir()
	writeFile(t, filepath.Join(src, "index.adoc"), "include::chapter.adoc[]\nsee image:missing.png[]\n")
	writeFile(t, filepath.Join(src, "chapter.adoc"), "chapter\n")

	cfg := &config.Config{Source: filepath.Join(src, "index.adoc"), WorkDir: work}
	result, err := Run(cfg, false)
	require.NoError(t, err)

	require.Len(t, result.Structure.Pages(), 1)
	assert.Equal(t, 2, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.Promoted)
	assert.Equal(t, 0, result.Stats.Inlined)
	require.Len(t, result.Stats.MissingRefs, 1)
	assert.Contains(t, result.Stats.MissingRefs[0], "missing.png")
}

func TestRun_BadEncoding(t *testing.T) {
	cfg := &config.Config{
		Source:         t.TempDir(),
		WorkDir:        t.TempDir(),
		SourceEncoding: "definitely-not-a-charset",
	}
	_, err := Run(cfg, false)
	assert.Error(t, err)
}

func TestNewCmdPrepare_Flags(t *testing.T) {
	cmd := NewCmdPrepare()
	assert.Equal(t, "prepare", cmd.Name())
	for _, flag := range []string{"source", "work-dir", "encoding", "attr", "verbose"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}
