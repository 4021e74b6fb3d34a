package steps

import (
	"errors"
	"fmt"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"
)

// PasswordSet sets the password for one account by feeding chpasswd.
// A password cannot be verified against the desired state, so Check is
// hardwired to false and this step runs on every invocation.
type PasswordSet struct {
	Account string
	Prompt  PasswordPrompt
}

func (s *PasswordSet) Name() string {
	return fmt.Sprintf("password:%s", s.Account)
}

func (s *PasswordSet) Description() string {
	return fmt.Sprintf("Set password for %s", s.Account)
}

func (s *PasswordSet) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	logger.Debug("Password state cannot be verified, step always runs", "account", s.Account)
	return false, nil
}

func (s *PasswordSet) Apply(runner system.CommandRunner, logger log.Logger) error {
	if s.Account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if s.Prompt == nil {
		return fmt.Errorf("no password prompt configured for %s", s.Account)
	}

	if _, err := runner.Run(fmt.Sprintf("id -u %s", s.Account)); err != nil {
		var cmdErr *system.CommandError
		if errors.As(err, &cmdErr) {
			return &MissingCollaboratorError{Name: s.Account}
		}
		return err
	}

	password, err := s.Prompt(s.Account)
	if err != nil {
		return fmt.Errorf("reading password for %s: %w", s.Account, err)
	}

	logger.Info("Setting password", "account", s.Account)
	_, err = runner.RunWithInput(fmt.Sprintf("%s:%s", s.Account, password), "chpasswd")
	return err
}

func (s *PasswordSet) Details() []string {
	return []string{
		fmt.Sprintf("prompt for %s password", s.Account),
		"run: chpasswd (credentials on stdin)",
	}
}
