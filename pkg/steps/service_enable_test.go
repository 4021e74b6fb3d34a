package steps

import (
	"testing"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceEnable_Check_Satisfied(t *testing.T) {
	runner, logger := setupStepTest(t)

	step := &ServiceEnable{Service: "ssh"}

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.True(t, satisfied)
	assert.Contains(t, runner.Commands, "systemctl is-enabled --quiet ssh")
	assert.Contains(t, runner.Commands, "systemctl is-active --quiet ssh")
}

func TestServiceEnable_Check_Disabled(t *testing.T) {
	runner, logger := setupStepTest(t)
	runner.SetError("systemctl is-enabled --quiet ssh", &system.CommandError{Command: "systemctl is-enabled --quiet ssh", ExitCode: 1})

	step := &ServiceEnable{Service: "ssh"}

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestServiceEnable_Check_Inactive(t *testing.T) {
	runner, logger := setupStepTest(t)
	runner.SetError("systemctl is-active --quiet NetworkManager", &system.CommandError{Command: "systemctl is-active --quiet NetworkManager", ExitCode: 3})

	step := &ServiceEnable{Service: "NetworkManager"}

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestServiceEnable_Apply(t *testing.T) {
	runner, logger := setupStepTest(t)

	step := &ServiceEnable{Service: "ssh"}

	err := step.Apply(runner, logger)
	require.NoError(t, err)

	require.Len(t, runner.Commands, 2)
	assert.Equal(t, "systemctl enable ssh", runner.Commands[0])
	assert.Equal(t, "systemctl start ssh", runner.Commands[1])
}

func TestServiceEnable_Apply_EnableFails(t *testing.T) {
	runner, logger := setupStepTest(t)
	runner.SetError("systemctl enable ssh", &system.CommandError{Command: "systemctl enable ssh", ExitCode: 1})

	step := &ServiceEnable{Service: "ssh"}

	err := step.Apply(runner, logger)
	require.Error(t, err)
	assert.NotContains(t, runner.Commands, "systemctl start ssh")
}

func TestServiceEnable_Apply_Idempotent(t *testing.T) {
	runner, logger := setupStepTest(t)

	step := &ServiceEnable{Service: "ssh"}

	require.NoError(t, step.Apply(runner, logger))
	require.NoError(t, step.Apply(runner, logger))

	satisfied, err := step.Check(runner, logger)
	require.NoError(t, err)
	assert.True(t, satisfied)
}

func TestServiceEnable_Apply_EmptyName(t *testing.T) {
	runner, logger := setupStepTest(t)

	step := &ServiceEnable{}

	err := step.Apply(runner, logger)
	require.Error(t, err)
	assert.Empty(t, runner.Commands)
}
