package steps

import (
	"os"
	"testing"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5 astro@lab"

func TestSSHKeyInstall_Apply(t *testing.T) {
	system.AppFs = afero.NewMemMapFs()
	runner, logger := setupStepTest(t)

	step := &SSHKeyInstall{User: "astro", Key: testKey}

	err := step.Apply(runner, logger)
	require.NoError(t, err)

	content, err := afero.ReadFile(system.AppFs, "/home/astro/.ssh/authorized_keys")
	require.NoError(t, err)
	assert.Equal(t, testKey+"\n", string(content))

	dirInfo, err := system.AppFs.Stat("/home/astro/.ssh")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())

	info, err := system.AppFs.Stat("/home/astro/.ssh/authorized_keys")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Contains(t, runner.Commands, "chown -R astro:astro /home/astro/.ssh")
}

func TestSSHKeyInstall_CheckAfterApply(t *testing.T) {
	system.AppFs = afero.NewMemMapFs()
	runner, logger := setupStepTest(t)

	step := &SSHKeyInstall{User: "astro", Key: testKey}

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.False(t, satisfied)

	require.NoError(t, step.Apply(runner, logger))

	satisfied, err = step.Check(runner, logger)
	require.NoError(t, err)
	assert.True(t, satisfied)
}

func TestSSHKeyInstall_Apply_Idempotent(t *testing.T) {
	system.AppFs = afero.NewMemMapFs()
	runner, logger := setupStepTest(t)

	step := &SSHKeyInstall{User: "astro", Key: testKey}

	require.NoError(t, step.Apply(runner, logger))
	require.NoError(t, step.Apply(runner, logger))

	content, err := afero.ReadFile(system.AppFs, "/home/astro/.ssh/authorized_keys")
	require.NoError(t, err)
	assert.Equal(t, testKey+"\n", string(content))
}

func TestSSHKeyInstall_NoKeyConfigured(t *testing.T) {
	system.AppFs = afero.NewMemMapFs()
	runner, logger := setupStepTest(t)

	step := &SSHKeyInstall{User: "astro"}

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.True(t, satisfied)

	require.NoError(t, step.Apply(runner, logger))

	// no filesystem writes and no commands at all
	exists, err := afero.DirExists(system.AppFs, "/home/astro/.ssh")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, runner.Commands)
}

func TestSSHKeyInstall_Check_WrongKey(t *testing.T) {
	system.AppFs = afero.NewMemMapFs()
	runner, logger := setupStepTest(t)

	require.NoError(t, system.AppFs.MkdirAll("/home/astro/.ssh", 0700))
	require.NoError(t, afero.WriteFile(system.AppFs, "/home/astro/.ssh/authorized_keys", []byte("ssh-rsa OLDKEY old@host\n"), 0600))

	step := &SSHKeyInstall{User: "astro", Key: testKey}

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestSSHKeyInstall_RootHome(t *testing.T) {
	system.AppFs = afero.NewMemMapFs()
	runner, logger := setupStepTest(t)

	step := &SSHKeyInstall{User: "root", Key: testKey}

	require.NoError(t, step.Apply(runner, logger))

	exists, err := afero.Exists(system.AppFs, "/root/.ssh/authorized_keys")
	require.NoError(t, err)
	assert.True(t, exists)
}
