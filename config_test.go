package sdk

import (
	"os"
	"testing"
	"time"

	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(cn.EnvApplicationName, "vault")
	t.Setenv(cn.EnvInstallationID, "4f7d3c1a-2b9e-4d8f-a6c5-0e1b2a3c4d5e")
	t.Setenv(cn.EnvLicensePublicKey, "a2V5")
	t.Setenv(cn.EnvLicenseRefreshInterval, "15m")
	t.Setenv(cn.EnvLicenseCacheTTL, "30m")
	t.Setenv(cn.EnvDuoIntegrationKey, "DIXXXXXXXXXXXXXXXXXX")
	t.Setenv(cn.EnvDuoSecretKey, "duo-secret")
	t.Setenv(cn.EnvDuoApplicationKey, "duo-application")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "vault", cfg.ApplicationName)
	assert.Equal(t, "4f7d3c1a-2b9e-4d8f-a6c5-0e1b2a3c4d5e", cfg.InstallationID)
	assert.Equal(t, "a2V5", cfg.PublicKey)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "DIXXXXXXXXXXXXXXXXXX", cfg.DuoIntegrationKey)
	assert.Equal(t, "duo-secret", cfg.DuoSecretKey)
	assert.Equal(t, "duo-application", cfg.DuoApplicationKey)
}

func TestLoadFromEnvRequiresInstallation(t *testing.T) {
	t.Setenv(cn.EnvApplicationName, "vault")
	t.Setenv(cn.EnvLicensePublicKey, "a2V5")
	t.Setenv(cn.EnvInstallationID, "")
	require.NoError(t, os.Unsetenv(cn.EnvInstallationID))

	_, err := LoadFromEnv()
	assert.Error(t, err)
}
