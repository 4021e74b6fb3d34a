package steps

import (
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/config"
)

// PasswordPrompt reads a password for the named account.
type PasswordPrompt func(account string) (string, error)

// DefaultPipeline returns the fixed, ordered step list for one run.
// Package installs come first, then service enablement, then account and
// security setup, then the firewall. Network reconfiguration is always last
// because it may drop connectivity.
func DefaultPipeline(cfg *config.Config, prompt PasswordPrompt) []Step {
	return []Step{
		&PackageInstall{Packages: cfg.Packages()},
		&ServiceEnable{Service: "ssh"},
		&ServiceEnable{Service: "NetworkManager"},
		&PasswordSet{Account: cfg.User, Prompt: prompt},
		&PasswordSet{Account: "root", Prompt: prompt},
		&SudoersGrant{User: cfg.User},
		&SSHKeyInstall{User: cfg.User, Key: cfg.SSHPubKey},
		&FirewallOpen{Port: cfg.SSHPort},
		&StaticIPConfigure{
			Interface: cfg.Interface,
			Address:   cfg.StaticIP,
			Gateway:   cfg.Gateway,
			DNS:       cfg.DNS,
		},
	}
}
