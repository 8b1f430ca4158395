package util

import (
	"testing"

	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/LerianStudio/lib-license-verify/test/mocks"
	"github.com/stretchr/testify/assert"
)

func TestValidateEnvVariables(t *testing.T) {
	valid := model.Config{
		ApplicationName: "vault",
		InstallationID:  "4f7d3c1a-2b9e-4d8f-a6c5-0e1b2a3c4d5e",
		PublicKey:       "key",
	}

	tests := []struct {
		name     string
		mutate   func(c *model.Config)
		expected error
		logged   string
	}{
		{name: "application name", mutate: func(c *model.Config) { c.ApplicationName = "" }, expected: cn.ErrMissingApplicationName, logged: cn.EnvApplicationName},
		{name: "installation id", mutate: func(c *model.Config) { c.InstallationID = "" }, expected: cn.ErrMissingInstallationID, logged: cn.EnvInstallationID},
		{name: "public key", mutate: func(c *model.Config) { c.PublicKey = "" }, expected: cn.ErrInvalidPublicKey, logged: cn.EnvLicensePublicKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			logger := mocks.NewLogger()

			err := ValidateEnvVariables(&cfg, logger)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, logger.ContainsAt("ERROR", tt.logged))
		})
	}

	assert.NoError(t, ValidateEnvVariables(&valid, mocks.NewLogger()))
	assert.Error(t, ValidateEnvVariables(nil, mocks.NewLogger()))
}
