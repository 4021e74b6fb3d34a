package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// promptPassword asks for the account password twice and requires both
// entries to match.
func promptPassword(account string) (string, error) {
	var password, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("New password for %s", account)).
				EchoMode(huh.EchoModePassword).
				Value(&password),
			huh.NewInput().
				Title("Retype password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}

// promptConfigValue fills in a config field the file and environment left
// empty.
func promptConfigValue(field string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Enter %s", field)).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
