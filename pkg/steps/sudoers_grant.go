package steps

import (
	"bytes"
	"fmt"
	"os"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/spf13/afero"
)

const sudoersDir = "/etc/sudoers.d"

// sudoers drop-ins must not be readable beyond the owner here
const sudoersMode = os.FileMode(0600)

// SudoersGrant writes a single NOPASSWD rule for the user into a dedicated
// drop-in file, leaving the main sudoers file untouched.
type SudoersGrant struct {
	User string
}

func (s *SudoersGrant) Name() string {
	return "sudoers"
}

func (s *SudoersGrant) Description() string {
	return fmt.Sprintf("Grant passwordless sudo to %s", s.User)
}

func (s *SudoersGrant) path() string {
	return fmt.Sprintf("%s/%s-nopasswd", sudoersDir, s.User)
}

func (s *SudoersGrant) content() string {
	return fmt.Sprintf("%s ALL=(ALL) NOPASSWD:ALL\n", s.User)
}

func (s *SudoersGrant) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	info, err := system.AppFs.Stat(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.Mode().Perm() != sudoersMode {
		logger.Debug("Sudoers drop-in has wrong mode", "path", s.path(), "mode", info.Mode().Perm())
		return false, nil
	}

	content, err := afero.ReadFile(system.AppFs, s.path())
	if err != nil {
		return false, err
	}
	return bytes.Equal(content, []byte(s.content())), nil
}

func (s *SudoersGrant) Apply(runner system.CommandRunner, logger log.Logger) error {
	if s.User == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	logger.Info("Writing sudoers drop-in", "path", s.path(), "user", s.User)

	if err := system.AppFs.MkdirAll(sudoersDir, 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(system.AppFs, s.path(), []byte(s.content()), sudoersMode); err != nil {
		return err
	}
	// WriteFile only applies the mode on creation
	if err := system.AppFs.Chmod(s.path(), sudoersMode); err != nil {
		return err
	}

	// A malformed drop-in locks sudo for everyone, so validate when visudo
	// is available and drop the file again if it does not parse.
	if _, err := runner.Run("command -v visudo"); err == nil {
		if _, err := runner.Run(fmt.Sprintf("visudo -cf %s", s.path())); err != nil {
			_ = system.AppFs.Remove(s.path())
			return fmt.Errorf("sudoers rule failed validation: %w", err)
		}
	}
	return nil
}

func (s *SudoersGrant) Details() []string {
	return contentDiff(s.path(), s.content())
}
