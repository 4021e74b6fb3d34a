package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const DefaultSSHPort = 22

// BasePackages are always installed; the SSH server and NetworkManager are
// what every later step depends on.
var BasePackages = []string{"openssh-server", "network-manager"}

// Config holds the immutable run parameters for one provisioning run.
// It is populated once by Load and never mutated afterwards; every step
// receives the values it needs at construction time.
type Config struct {
	User          string   `yaml:"user"`
	SSHPort       int      `yaml:"ssh-port"`
	SSHPubKey     string   `yaml:"ssh-pubkey"`
	Interface     string   `yaml:"interface"`
	StaticIP      string   `yaml:"static-ip"` // CIDR, e.g. 192.168.1.50/24
	Gateway       string   `yaml:"gateway"`
	DNS           []string `yaml:"dns"`
	ExtraPackages []string `yaml:"extra-packages"`
}

// PromptFunc asks the operator for a missing config value. A nil prompt
// leaves missing values to validation.
type PromptFunc func(field string) (string, error)

// Load builds the Config from defaults, the optional YAML file at filename,
// SETUP_* environment variable overrides, and finally the prompt for values
// still missing, in that precedence order. A missing config file is not an
// error.
func Load(filename string, prompt PromptFunc, logger log.Logger) (*Config, error) {
	cfg := &Config{SSHPort: DefaultSSHPort}

	f, err := afero.ReadFile(system.AppFs, filename)
	if err == nil {
		if err := yaml.Unmarshal(f, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filename, err)
		}
		logger.Debug("Loaded config file", "path", filename)
	} else if !os.IsNotExist(err) {
		return nil, err
	} else {
		logger.Debug("No config file, using defaults and environment", "path", filename)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.User == "" && prompt != nil {
		user, err := prompt("user")
		if err != nil {
			return nil, fmt.Errorf("prompting for target user: %w", err)
		}
		cfg.User = strings.TrimSpace(user)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SETUP_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("SETUP_SSH_PUBKEY"); v != "" {
		cfg.SSHPubKey = v
	}
	if v := os.Getenv("SETUP_SSH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SETUP_SSH_PORT: %q is not a number", v)
		}
		cfg.SSHPort = port
	}
	if v := os.Getenv("SETUP_INTERFACE"); v != "" {
		cfg.Interface = v
	}
	if v := os.Getenv("SETUP_STATIC_IP"); v != "" {
		cfg.StaticIP = v
	}
	if v := os.Getenv("SETUP_GATEWAY"); v != "" {
		cfg.Gateway = v
	}
	if v := os.Getenv("SETUP_DNS"); v != "" {
		servers := []string{}
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				servers = append(servers, s)
			}
		}
		cfg.DNS = servers
	}
	return nil
}

// Packages returns the full install list: the base packages plus any extras
// from the config file, duplicates removed, order preserved.
func (c *Config) Packages() []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, pkg := range append(append([]string{}, BasePackages...), c.ExtraPackages...) {
		if !seen[pkg] {
			result = append(result, pkg)
			seen[pkg] = true
		}
	}
	return result
}

// StaticIPRequested reports whether the run should reconfigure addressing.
// There is deliberately no default address: static IP is opt-in only.
func (c *Config) StaticIPRequested() bool {
	return c.StaticIP != ""
}

func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(c.User) == "" {
		errs = append(errs, ValidationError{Field: "user", Message: "target user cannot be empty"})
	}
	if c.SSHPort < 1 || c.SSHPort > 65535 {
		errs = append(errs, ValidationError{Field: "ssh-port", Message: fmt.Sprintf("port %d out of range 1-65535", c.SSHPort)})
	}
	if c.StaticIP != "" {
		if _, _, err := net.ParseCIDR(c.StaticIP); err != nil {
			errs = append(errs, ValidationError{Field: "static-ip", Message: fmt.Sprintf("%q is not a valid CIDR address", c.StaticIP)})
		}
		if strings.TrimSpace(c.Interface) == "" {
			errs = append(errs, ValidationError{Field: "interface", Message: "interface is required when static-ip is set"})
		}
		if c.Gateway == "" {
			errs = append(errs, ValidationError{Field: "gateway", Message: "gateway is required when static-ip is set"})
		} else if net.ParseIP(c.Gateway) == nil {
			errs = append(errs, ValidationError{Field: "gateway", Message: fmt.Sprintf("%q is not a valid IP address", c.Gateway)})
		}
		for i, dns := range c.DNS {
			if net.ParseIP(dns) == nil {
				errs = append(errs, ValidationError{Field: fmt.Sprintf("dns[%d]", i), Message: fmt.Sprintf("%q is not a valid IP address", dns)})
			}
		}
	}

	return errs
}
