package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LerianStudio/lib-commons/commons/log"
	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/duo"
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/LerianStudio/lib-license-verify/pkg/signature"
	"github.com/LerianStudio/lib-license-verify/util"
	"github.com/google/uuid"
)

// ClientConfig holds the parsed configuration for the license client
type ClientConfig struct {
	AppName        string // Application name (e.g., "plugin-fees")
	InstallationID uuid.UUID
	Scheme         signature.Scheme

	// Background refresh configuration
	RefreshInterval time.Duration
	CacheTTL        time.Duration

	// Duo is nil when no Duo variable is set. Partial credentials are rejected
	Duo *duo.Config
}

// NewDefaultConfig creates a new config with sensible defaults
func NewDefaultConfig() ClientConfig {
	return ClientConfig{
		RefreshInterval: cn.DefaultRefreshInterval,
		CacheTTL:        cn.CacheTTL,
	}
}

// Validate checks if the configuration is valid
func (c *ClientConfig) Validate() error {
	if c.AppName == "" {
		return cn.ErrMissingApplicationName
	}

	if c.InstallationID == uuid.Nil {
		return cn.ErrMissingInstallationID
	}

	if c.Scheme == nil {
		return cn.ErrInvalidPublicKey
	}

	if c.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}

	if c.Duo != nil {
		if err := c.Duo.Validate(); err != nil {
			return fmt.Errorf("%w: %w", cn.ErrInvalidDuoConfig, err)
		}
	}

	return nil
}

// FromModel converts a model.Config to a ClientConfig
func FromModel(cfg model.Config, logger log.Logger) (*ClientConfig, error) {
	if err := util.ValidateEnvVariables(&cfg, logger); err != nil {
		return nil, err
	}

	installationID, err := uuid.Parse(strings.TrimSpace(cfg.InstallationID))
	if err != nil {
		logger.Errorf("%s is not a valid GUID", cn.EnvInstallationID)
		return nil, fmt.Errorf("%w: %w", cn.ErrInvalidInstallationID, err)
	}

	scheme, err := signature.ParseScheme(cfg.PublicKey)
	if err != nil {
		logger.Errorf("%s could not be parsed: %v", cn.EnvLicensePublicKey, err)
		return nil, fmt.Errorf("%w: %w", cn.ErrInvalidPublicKey, err)
	}

	config := NewDefaultConfig()
	config.AppName = cfg.ApplicationName
	config.InstallationID = installationID
	config.Scheme = scheme

	if cfg.RefreshInterval > 0 {
		config.RefreshInterval = cfg.RefreshInterval
	}

	if cfg.CacheTTL > 0 {
		config.CacheTTL = cfg.CacheTTL
	}

	if cfg.DuoIntegrationKey != "" || cfg.DuoSecretKey != "" || cfg.DuoApplicationKey != "" {
		config.Duo = &duo.Config{
			IntegrationKey: cfg.DuoIntegrationKey,
			SecretKey:      cfg.DuoSecretKey,
			ApplicationKey: cfg.DuoApplicationKey,
		}
	}

	if err := config.Validate(); err != nil {
		if errors.Is(err, cn.ErrInvalidDuoConfig) {
			logger.Errorf("Duo credentials rejected: %v", err)
		}

		return nil, err
	}

	logger.Debugf("License verifier configured for %s [installation: %s | scheme: %s]",
		config.AppName, config.InstallationID, scheme.Name())

	return &config, nil
}
