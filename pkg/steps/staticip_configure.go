package steps

import (
	"fmt"
	"strings"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"
)

const activeConnectionsCommand = "nmcli -t -f NAME,DEVICE connection show --active"

// StaticIPConfigure switches the active NetworkManager connection profile on
// the target interface to manual IPv4 addressing. It runs last in the
// pipeline because bouncing the connection may drop connectivity.
type StaticIPConfigure struct {
	Interface string
	Address   string // CIDR
	Gateway   string
	DNS       []string
}

func (s *StaticIPConfigure) Name() string {
	return "static-ip"
}

func (s *StaticIPConfigure) Description() string {
	if s.Address == "" {
		return "Configure static IP (not requested)"
	}
	return fmt.Sprintf("Configure static IP %s on %s", s.Address, s.Interface)
}

func (s *StaticIPConfigure) Check(runner system.CommandRunner, logger log.Logger) (bool, error) {
	if s.Address == "" {
		logger.Debug("No static IP configured, leaving addressing untouched")
		return true, nil
	}

	name, err := s.resolveConnection(runner)
	if err != nil {
		return false, err
	}

	method, err := runner.Run(fmt.Sprintf("nmcli -g ipv4.method connection show %s", quoteArg(name)))
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(string(method)) != "manual" {
		return false, nil
	}

	addresses, err := runner.Run(fmt.Sprintf("nmcli -g ipv4.addresses connection show %s", quoteArg(name)))
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(addresses)) == s.Address, nil
}

func (s *StaticIPConfigure) Apply(runner system.CommandRunner, logger log.Logger) error {
	if s.Address == "" {
		return nil
	}

	name, err := s.resolveConnection(runner)
	if err != nil {
		return err
	}
	logger.Info("Configuring static IP", "connection", name, "device", s.Interface, "address", s.Address)

	if _, err := runner.Run(s.modifyCommand(name)); err != nil {
		return err
	}
	if _, err := runner.Run(fmt.Sprintf("nmcli connection down %s", quoteArg(name))); err != nil {
		return err
	}
	_, err = runner.Run(fmt.Sprintf("nmcli connection up %s", quoteArg(name)))
	return err
}

func (s *StaticIPConfigure) Details() []string {
	if s.Address == "" {
		return []string{"no static IP requested, step is a no-op"}
	}
	return []string{
		fmt.Sprintf("resolve active connection for device %s", s.Interface),
		fmt.Sprintf("run: %s", s.modifyCommand("<connection>")),
		"run: nmcli connection down '<connection>'",
		"run: nmcli connection up '<connection>'",
	}
}

func (s *StaticIPConfigure) modifyCommand(name string) string {
	return fmt.Sprintf("nmcli connection modify %s ipv4.method manual ipv4.addresses %s ipv4.gateway %s ipv4.dns '%s'",
		quoteArg(name), s.Address, s.Gateway, strings.Join(s.DNS, " "))
}

// quoteArg single-quotes a value for sh -c. Connection profile names are
// free-form and may themselves contain quotes.
func quoteArg(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// resolveConnection finds the active connection profile bound to the target
// device. nmcli terse output is one name:device pair per line; the first
// exact device match in listing order wins. Zero matches means the operator
// has to fix networking by hand first.
func (s *StaticIPConfigure) resolveConnection(runner system.CommandRunner) (string, error) {
	out, err := runner.Run(activeConnectionsCommand)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if parts[1] == s.Interface {
			return parts[0], nil
		}
	}
	return "", &ConnectionLookupError{Device: s.Interface}
}
