package model

import "time"

// Config is the externally supplied configuration of the license verifier.
type Config struct {
	ApplicationName string        `json:"applicationName" envconfig:"APPLICATION_NAME" required:"true"`
	InstallationID  string        `json:"installationId" envconfig:"INSTALLATION_ID" required:"true"`
	PublicKey       string        `json:"publicKey" envconfig:"LICENSE_PUBLIC_KEY" required:"true"`
	RefreshInterval time.Duration `json:"refreshInterval" envconfig:"LICENSE_REFRESH_INTERVAL" default:"1h"`
	CacheTTL        time.Duration `json:"cacheTtl" envconfig:"LICENSE_CACHE_TTL" default:"24h"`

	DuoIntegrationKey string `json:"-" envconfig:"DUO_INTEGRATION_KEY"`
	DuoSecretKey      string `json:"-" envconfig:"DUO_SECRET_KEY"`
	DuoApplicationKey string `json:"-" envconfig:"DUO_APPLICATION_KEY"`
}
