package steps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"
)

// FirewallOpen ensures ufw allows the SSH port. A host without ufw, or with
// ufw inactive, is a valid end state: the step then does nothing. That is
// distinct from ufw reporting the rule as already present.
type FirewallOpen struct {
	Port int
}

func (s *FirewallOpen) Name() string {
	return "firewall"
}

func (s *FirewallOpen) Description() string {
	return fmt.Sprintf("Allow port %d/tcp through ufw", s.Port)
}

func (s *FirewallOpen) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	status, err := ufwStatus(runner)
	if err != nil {
		return false, err
	}
	if !status.present {
		logger.Info("ufw is not installed, skipping firewall rule", "port", s.Port)
		return true, nil
	}
	if !status.active {
		logger.Info("ufw is installed but inactive, skipping firewall rule", "port", s.Port)
		return true, nil
	}
	return s.ruleSatisfied(status.output), nil
}

func (s *FirewallOpen) Apply(runner system.CommandRunner, logger log.Logger) error {
	status, err := ufwStatus(runner)
	if err != nil {
		return err
	}
	if !status.present || !status.active {
		return nil
	}
	logger.Info("Opening firewall port", "port", s.Port)
	_, err = runner.Run(fmt.Sprintf("ufw allow %d/tcp", s.Port))
	return err
}

func (s *FirewallOpen) Details() []string {
	return []string{fmt.Sprintf("run: ufw allow %d/tcp (only when ufw is present and active)", s.Port)}
}

// ruleSatisfied scans ufw status output for an ALLOW rule on the port.
func (s *FirewallOpen) ruleSatisfied(statusOutput string) bool {
	want := fmt.Sprintf("%d/tcp", s.Port)
	for _, line := range strings.Split(statusOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == want && strings.Contains(line, "ALLOW") {
			return true
		}
	}
	return false
}

type firewallState struct {
	present bool
	active  bool
	output  string
}

func ufwStatus(runner system.CommandRunner) (firewallState, error) {
	if _, err := runner.Run("command -v ufw"); err != nil {
		var cmdErr *system.CommandError
		if errors.As(err, &cmdErr) {
			return firewallState{}, nil
		}
		return firewallState{}, err
	}

	out, err := runner.Run("ufw status")
	if err != nil {
		return firewallState{}, err
	}
	return firewallState{
		present: true,
		active:  strings.Contains(string(out), "Status: active"),
		output:  string(out),
	}, nil
}
