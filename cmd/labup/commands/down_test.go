package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDown(t *testing.T) {
	cmd := Down()

	require.NotNil(t, cmd)
	assert.Equal(t, "down", cmd.Use)
	assert.Contains(t, cmd.Aliases, "destroy")
	assert.Equal(t, "Destroy the deployed lab", cmd.Short)
}

func TestDown_Flags(t *testing.T) {
	cmd := Down()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)

	flag = cmd.Flags().Lookup("topo")
	require.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)

	require.NotNil(t, cmd.Flags().Lookup("skip-checks"))
	require.NotNil(t, cmd.Flags().Lookup("cleanup"))
}

func TestDown_RunE(t *testing.T) {
	cmd := Down()
	assert.NotNil(t, cmd.RunE, "Down command should have RunE function")
}
