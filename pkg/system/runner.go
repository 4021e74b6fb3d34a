package system

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner defines an interface for running external commands.
// This allows for mocking in tests.
type CommandRunner interface {
	// Run executes the command and returns its combined output.
	// A nonzero exit returns the output together with a *CommandError.
	Run(command string) ([]byte, error)
	// RunWithInput executes the command with the given string on stdin.
	RunWithInput(input, command string) ([]byte, error)
}

// CommandError reports a command that exited nonzero. It keeps the exit
// code and the raw combined output so callers can surface the underlying
// cause verbatim.
type CommandError struct {
	Command  string
	ExitCode int
	Output   []byte
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(string(e.Output))
	if out == "" {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, out)
}

// LiveCommandRunner runs commands on the live system through sh -c.
type LiveCommandRunner struct{}

func (r *LiveCommandRunner) Run(command string) ([]byte, error) {
	cmd := exec.Command("sh", "-c", command)
	out, err := cmd.CombinedOutput()
	return out, wrapExitError(command, out, err)
}

func (r *LiveCommandRunner) RunWithInput(input, command string) ([]byte, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return out, wrapExitError(command, out, err)
}

func wrapExitError(command string, out []byte, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{Command: command, ExitCode: exitErr.ExitCode(), Output: out}
	}
	return err
}
