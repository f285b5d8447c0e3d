package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/config"
	"github.com/dmitrijs2005/taskhub/internal/kv"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageBackend = kv.BackendMemory
	cfg.Latency = 0
	return cfg
}

func execute(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(cfg)
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, memoryConfig(t), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: N/A")
	assert.Contains(t, out, "Build commit: N/A")
}

func TestAdminClearTasks(t *testing.T) {
	out, err := execute(t, memoryConfig(t), "", "admin", "clear-tasks", "--older-than", "1h")
	require.NoError(t, err)
	assert.Equal(t, "Cleanup complete: 0 task(s) removed.\n", out)
}

func TestAdminClearInactive(t *testing.T) {
	out, err := execute(t, memoryConfig(t), "", "admin", "clear-inactive")
	require.NoError(t, err)
	assert.Equal(t, "Removed 0 inactive user(s).\n", out)
}

func TestAdminDeleteUser(t *testing.T) {
	_, err := execute(t, memoryConfig(t), "", "admin", "delete-user")
	assert.Error(t, err, "id is required")

	_, err = execute(t, memoryConfig(t), "", "admin", "delete-user", "nobody")
	assert.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = execute(t, memoryConfig(t), "", "admin", "delete-user", common.MasterIDPrefix+"-1")
	assert.ErrorIs(t, err, common.ErrProtectedAccount)
}

func TestRootCommand_UnknownBackend(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.StorageBackend = "floppy"

	_, err := execute(t, cfg, "", "version")
	require.NoError(t, err, "version does not open storage")

	_, err = execute(t, cfg, "", "admin", "clear-inactive")
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestRootCommand_RunsREPL(t *testing.T) {
	out := capturePrintln(t)

	_, err := execute(t, memoryConfig(t), "help\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, *out, helpSignedOut)
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}
