package provision

import "fmt"

// PrivilegeError reports that the process lacks the privilege to provision
// the host. It is raised before any step runs.
type PrivilegeError struct {
	UID int
}

func (e *PrivilegeError) Error() string {
	return fmt.Sprintf("provisioning requires root, running as uid %d", e.UID)
}

// StepFailure names the step that halted the run and wraps the underlying
// cause. When the cause is a *system.CommandError the exit code and raw
// output travel with it.
type StepFailure struct {
	Step string
	Err  error
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepFailure) Unwrap() error {
	return e.Err
}
