package steps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"
)

// PackageInstall ensures the listed packages are installed via apt.
type PackageInstall struct {
	Packages []string
}

func (s *PackageInstall) Name() string {
	return "packages"
}

func (s *PackageInstall) Description() string {
	return fmt.Sprintf("Install packages %s", strings.Join(s.Packages, ", "))
}

func (s *PackageInstall) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	for _, pkg := range s.Packages {
		installed, err := packageInstalled(runner, pkg)
		if err != nil {
			return false, err
		}
		if !installed {
			logger.Debug("Package not installed", "package", pkg)
			return false, nil
		}
	}
	return true, nil
}

func (s *PackageInstall) Apply(runner system.CommandRunner, logger log.Logger) error {
	if len(s.Packages) == 0 {
		return fmt.Errorf("package list cannot be empty")
	}
	logger.Info("Installing packages", "packages", strings.Join(s.Packages, ","))
	if _, err := runner.Run("apt-get update -qq"); err != nil {
		return err
	}
	_, err := runner.Run(s.installCommand())
	return err
}

func (s *PackageInstall) Details() []string {
	return []string{
		"run: apt-get update -qq",
		fmt.Sprintf("run: %s", s.installCommand()),
	}
}

func (s *PackageInstall) installCommand() string {
	return fmt.Sprintf("DEBIAN_FRONTEND=noninteractive apt-get install -y %s", strings.Join(s.Packages, " "))
}

// packageInstalled queries dpkg for the package status. A nonzero exit means
// the package is unknown, which is a normal answer rather than a failure.
func packageInstalled(runner system.CommandRunner, pkg string) (bool, error) {
	out, err := runner.Run(fmt.Sprintf("dpkg-query -W -f='${Status}' %s", pkg))
	if err != nil {
		var cmdErr *system.CommandError
		if errors.As(err, &cmdErr) {
			return false, nil
		}
		return false, err
	}
	return strings.Contains(string(out), "install ok installed"), nil
}
