package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewEmailCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"preview-email", "verification"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "verify-email?token=")
}

func TestPreviewEmailCommand_ListsTemplates(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"preview-email"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "verification\n", out.String())
}

func TestPreviewEmailCommand_UnknownTemplate(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"preview-email", "welcome"})

	assert.Error(t, cmd.Execute())
}
