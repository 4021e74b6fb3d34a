package steps

import (
	"errors"
	"fmt"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"
)

// ServiceEnable ensures a systemd service is enabled at boot and currently
// active.
type ServiceEnable struct {
	Service string
}

func (s *ServiceEnable) Name() string {
	return fmt.Sprintf("service:%s", s.Service)
}

func (s *ServiceEnable) Description() string {
	return fmt.Sprintf("Enable and start service %s", s.Service)
}

func (s *ServiceEnable) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	enabled, err := unitStateSatisfied(runner, fmt.Sprintf("systemctl is-enabled --quiet %s", s.Service))
	if err != nil {
		return false, err
	}
	active, err := unitStateSatisfied(runner, fmt.Sprintf("systemctl is-active --quiet %s", s.Service))
	if err != nil {
		return false, err
	}
	if !enabled || !active {
		logger.Debug("Service state", "service", s.Service, "enabled", enabled, "active", active)
	}
	return enabled && active, nil
}

func (s *ServiceEnable) Apply(runner system.CommandRunner, logger log.Logger) error {
	if s.Service == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	logger.Info("Enabling and starting service", "service", s.Service)
	if _, err := runner.Run(fmt.Sprintf("systemctl enable %s", s.Service)); err != nil {
		return err
	}
	_, err := runner.Run(fmt.Sprintf("systemctl start %s", s.Service))
	return err
}

func (s *ServiceEnable) Details() []string {
	return []string{
		fmt.Sprintf("run: systemctl enable %s", s.Service),
		fmt.Sprintf("run: systemctl start %s", s.Service),
	}
}

// unitStateSatisfied runs a systemctl query command. systemctl answers
// "no" with a nonzero exit, which is a signal rather than a failure.
func unitStateSatisfied(runner system.CommandRunner, command string) (bool, error) {
	_, err := runner.Run(command)
	if err != nil {
		var cmdErr *system.CommandError
		if errors.As(err, &cmdErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
