package steps

import (
	"fmt"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
)

// Step is a named, idempotent unit of provisioning work.
type Step interface {
	// Name returns a short identifier used in results and logs.
	Name() string
	// Description returns a human-readable summary of what the step does.
	Description() string
	// Check reports whether the desired end state already holds.
	// It must be free of side effects on the host.
	Check(runner system.CommandRunner, logger log.Logger) (bool, error)
	// Apply performs the minimal action to reach the desired state.
	// It must be safe to call when Check already returned true.
	Apply(runner system.CommandRunner, logger log.Logger) error
	// Details returns a slice of strings describing the low-level operations.
	Details() []string
}

// MissingCollaboratorError reports a required account or tool that does not
// exist on the host.
type MissingCollaboratorError struct {
	Name string
}

func (e *MissingCollaboratorError) Error() string {
	return fmt.Sprintf("required account or tool %q not found", e.Name)
}

// ConnectionLookupError reports that no active NetworkManager connection is
// bound to the target device. The operator must fix networking manually.
type ConnectionLookupError struct {
	Device string
}

func (e *ConnectionLookupError) Error() string {
	return fmt.Sprintf("no active NetworkManager connection for device %q", e.Device)
}

// contentDiff renders the change a file-writing step would make, diffing the
// current file content (empty if absent) against the desired content.
func contentDiff(path, desired string) []string {
	current := ""
	if content, err := afero.ReadFile(system.AppFs, path); err == nil {
		current = string(content)
	}
	if current == desired {
		return []string{fmt.Sprintf("file %s already has the desired content", path)}
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(current, desired, false)
	return []string{
		fmt.Sprintf("write file: %s", path),
		"--- diff ---",
		dmp.DiffPrettyText(diffs),
		"--- end diff ---",
	}
}
