package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/AstroLabVN/astrolab-setup-mint/pkg/log"
	"github.com/AstroLabVN/astrolab-setup-mint/pkg/system"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigTest(t *testing.T) log.Logger {
	t.Helper()
	system.AppFs = afero.NewMemMapFs()
	for _, key := range []string{"SETUP_USER", "SETUP_SSH_PUBKEY", "SETUP_SSH_PORT", "SETUP_INTERFACE", "SETUP_STATIC_IP", "SETUP_GATEWAY", "SETUP_DNS"} {
		t.Setenv(key, "")
	}
	var buf bytes.Buffer
	return log.NewSlogLogger(slog.LevelDebug, &buf)
}

func TestLoad_Defaults(t *testing.T) {
	logger := setupConfigTest(t)
	t.Setenv("SETUP_USER", "astro")

	cfg, err := Load("/setup.yaml", nil, logger)
	require.NoError(t, err)

	assert.Equal(t, "astro", cfg.User)
	assert.Equal(t, DefaultSSHPort, cfg.SSHPort)
	assert.Empty(t, cfg.SSHPubKey)
	assert.False(t, cfg.StaticIPRequested())
}

func TestLoad_ConfigFile(t *testing.T) {
	logger := setupConfigTest(t)

	yaml := `user: astro
ssh-port: 2222
ssh-pubkey: ssh-ed25519 AAAAC3Nza astro@lab
interface: enp3s0
static-ip: 192.168.1.50/24
gateway: 192.168.1.1
dns:
  - 1.1.1.1
  - 8.8.8.8
extra-packages:
  - htop
`
	require.NoError(t, afero.WriteFile(system.AppFs, "/setup.yaml", []byte(yaml), 0644))

	cfg, err := Load("/setup.yaml", nil, logger)
	require.NoError(t, err)

	assert.Equal(t, "astro", cfg.User)
	assert.Equal(t, 2222, cfg.SSHPort)
	assert.Equal(t, "enp3s0", cfg.Interface)
	assert.True(t, cfg.StaticIPRequested())
	assert.Equal(t, []string{"1.1.1.1", "8.8.8.8"}, cfg.DNS)
	assert.Equal(t, []string{"openssh-server", "network-manager", "htop"}, cfg.Packages())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	logger := setupConfigTest(t)

	yaml := "user: astro\nssh-port: 22\n"
	require.NoError(t, afero.WriteFile(system.AppFs, "/setup.yaml", []byte(yaml), 0644))

	t.Setenv("SETUP_USER", "ops")
	t.Setenv("SETUP_SSH_PORT", "2200")
	t.Setenv("SETUP_DNS", "9.9.9.9, 1.1.1.1")

	cfg, err := Load("/setup.yaml", nil, logger)
	require.NoError(t, err)

	assert.Equal(t, "ops", cfg.User)
	assert.Equal(t, 2200, cfg.SSHPort)
	assert.Equal(t, []string{"9.9.9.9", "1.1.1.1"}, cfg.DNS)
}

func TestLoad_PromptFallback(t *testing.T) {
	logger := setupConfigTest(t)

	cfg, err := Load("/setup.yaml", func(field string) (string, error) {
		assert.Equal(t, "user", field)
		return " astro ", nil
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, "astro", cfg.User)
}

func TestLoad_MissingUser(t *testing.T) {
	logger := setupConfigTest(t)

	_, err := Load("/setup.yaml", nil, logger)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.Error(), "user")
}

func TestValidate_StaticIP(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid static config",
			cfg:  Config{User: "astro", SSHPort: 22, Interface: "eth0", StaticIP: "10.0.0.5/24", Gateway: "10.0.0.1", DNS: []string{"1.1.1.1"}},
		},
		{
			name:    "bad cidr",
			cfg:     Config{User: "astro", SSHPort: 22, Interface: "eth0", StaticIP: "10.0.0.5", Gateway: "10.0.0.1"},
			wantErr: "static-ip",
		},
		{
			name:    "missing gateway",
			cfg:     Config{User: "astro", SSHPort: 22, Interface: "eth0", StaticIP: "10.0.0.5/24"},
			wantErr: "gateway",
		},
		{
			name:    "missing interface",
			cfg:     Config{User: "astro", SSHPort: 22, StaticIP: "10.0.0.5/24", Gateway: "10.0.0.1"},
			wantErr: "interface",
		},
		{
			name:    "bad dns server",
			cfg:     Config{User: "astro", SSHPort: 22, Interface: "eth0", StaticIP: "10.0.0.5/24", Gateway: "10.0.0.1", DNS: []string{"not-an-ip"}},
			wantErr: "dns[0]",
		},
		{
			name:    "port out of range",
			cfg:     Config{User: "astro", SSHPort: 0},
			wantErr: "ssh-port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			assert.Contains(t, errs.Error(), tt.wantErr)
		})
	}
}
