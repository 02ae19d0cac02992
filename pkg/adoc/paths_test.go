package adoc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDocumentFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"index.adoc", true},
		{"/abs/dir/index.adoc", true},
		{"_partial.adoc", false},
		{"dir/_partial.adoc", false},
		{"notes.txt", false},
		{"adoc", false},
		{"image.adoc.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDocumentFile(tt.path))
		})
	}
}

func TestResolveReference(t *testing.T) {
	assert.Equal(t, filepath.Join("/src", "img", "a.png"), resolveReference("/src/index.adoc", "img/a.png"))
	assert.Equal(t, filepath.Join("/other", "a.png"), resolveReference("/src/sub/_c.adoc", "../../other/a.png"))
	assert.Equal(t, filepath.Join("/src", "a.adoc"), resolveReference("/src/index.adoc", "./a.adoc"))
}

func TestMirrorTarget(t *testing.T) {
	target, err := mirrorTarget("/src/index.adoc", "/work/index.adoc", "/src/sub/_c.adoc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/work", "sub", "_c.adoc"), target)
}

// Mirroring preserves the relative offset: the target sits at the same
// offset from the target file as the resolved path sits from the source.
func TestMirrorTarget_PreservesOffset(t *testing.T) {
	file := "/src/docs/index.adoc"
	targetFile := "/work/index.adoc"
	resolved := resolveReference(file, "sub/chapter.adoc")

	target, err := mirrorTarget(file, targetFile, resolved)
	require.NoError(t, err)

	relSrc, err := filepath.Rel(filepath.Dir(file), resolved)
	require.NoError(t, err)
	relDst, err := filepath.Rel(filepath.Dir(targetFile), target)
	require.NoError(t, err)
	assert.Equal(t, relSrc, relDst)
}
