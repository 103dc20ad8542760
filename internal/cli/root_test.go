package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Help(t *testing.T) {
	root := NewRootCommand()
	root.Command().SetArgs([]string{"--help"})

	assert.NoError(t, root.Command().Execute())
}

func TestRootCommand_HasServeSubcommand(t *testing.T) {
	root := NewRootCommand()

	serve, _, err := root.Command().Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	t.Setenv("FT_AUTH_JWT_SECRET", "test-secret")

	root := NewRootCommand()
	cmd := root.Command()

	require.NoError(t, cmd.ParseFlags([]string{"--db-dir", "/tmp/ft-cli-test", "--address", ":9191", "--no-member-gate"}))

	require.NoError(t, root.loadConfig(cmd))

	cfg := root.Config()
	assert.Equal(t, "/tmp/ft-cli-test", cfg.Database.Dir)
	assert.Equal(t, ":9191", cfg.Server.Address)
	assert.False(t, cfg.Access.RequireMemberSelection)
}

func TestRootCommand_DefaultsWithoutFlags(t *testing.T) {
	t.Setenv("FT_AUTH_JWT_SECRET", "test-secret")

	root := NewRootCommand()

	require.NoError(t, root.loadConfig(root.Command()))

	cfg := root.Config()
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.True(t, cfg.Access.RequireMemberSelection)
}
