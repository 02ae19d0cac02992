package initcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCmdInit(t *testing.T) {
	cmd := NewCmdInit()
	assert.Equal(t, "init", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("source"))
	assert.NotNil(t, cmd.Flags().Lookup("work-dir"))
}
