package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/spf13/afero"
)

// SSHKeyInstall ensures the user's authorized_keys file contains exactly the
// configured public key line. An empty key makes the whole step a deliberate
// no-op.
type SSHKeyInstall struct {
	User string
	Key  string
}

func (s *SSHKeyInstall) Name() string {
	return "ssh-key"
}

func (s *SSHKeyInstall) Description() string {
	if s.Key == "" {
		return "Install SSH public key (none configured)"
	}
	return fmt.Sprintf("Install SSH public key for %s", s.User)
}

func (s *SSHKeyInstall) homeDir() string {
	if s.User == "root" {
		return "/root"
	}
	return filepath.Join("/home", s.User)
}

func (s *SSHKeyInstall) sshDir() string {
	return filepath.Join(s.homeDir(), ".ssh")
}

func (s *SSHKeyInstall) authorizedKeys() string {
	return filepath.Join(s.sshDir(), "authorized_keys")
}

func (s *SSHKeyInstall) keyLine() string {
	return s.Key + "\n"
}

func (s *SSHKeyInstall) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	if s.Key == "" {
		logger.Debug("No SSH public key configured, nothing to install")
		return true, nil
	}

	dirInfo, err := system.AppFs.Stat(s.sshDir())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if dirInfo.Mode().Perm() != 0700 {
		return false, nil
	}

	info, err := system.AppFs.Stat(s.authorizedKeys())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.Mode().Perm() != 0600 {
		return false, nil
	}

	content, err := afero.ReadFile(system.AppFs, s.authorizedKeys())
	if err != nil {
		return false, err
	}
	return string(content) == s.keyLine(), nil
}

func (s *SSHKeyInstall) Apply(runner system.CommandRunner, logger log.Logger) error {
	if s.Key == "" {
		return nil
	}
	if s.User == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	logger.Info("Installing SSH public key", "user", s.User, "path", s.authorizedKeys())

	if err := system.AppFs.MkdirAll(s.sshDir(), 0700); err != nil {
		return err
	}
	if err := system.AppFs.Chmod(s.sshDir(), 0700); err != nil {
		return err
	}
	if err := afero.WriteFile(system.AppFs, s.authorizedKeys(), []byte(s.keyLine()), 0600); err != nil {
		return err
	}
	if err := system.AppFs.Chmod(s.authorizedKeys(), 0600); err != nil {
		return err
	}

	_, err := runner.Run(fmt.Sprintf("chown -R %s:%s %s", s.User, s.User, s.sshDir()))
	return err
}

func (s *SSHKeyInstall) Details() []string {
	if s.Key == "" {
		return []string{"no ssh public key configured, step is a no-op"}
	}
	details := []string{fmt.Sprintf("create directory %s with permissions 0700", s.sshDir())}
	details = append(details, contentDiff(s.authorizedKeys(), s.keyLine())...)
	details = append(details, fmt.Sprintf("run: chown -R %s:%s %s", s.User, s.User, s.sshDir()))
	return details
}
