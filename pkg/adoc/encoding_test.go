package adoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEncoding(t *testing.T) {
	enc, err := ResolveEncoding("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEncoding, enc)

	enc, err = ResolveEncoding("UTF-8")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	enc, err = ResolveEncoding("ISO-8859-1")
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

func TestResolveEncoding_Unknown(t *testing.T) {
	_, err := ResolveEncoding("definitely-not-a-charset")
	assert.Error(t, err)
}
