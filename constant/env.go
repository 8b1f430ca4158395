package constant

// Environment variable names
const (
	// Application name environment variable
	EnvApplicationName = "APPLICATION_NAME"

	// Installation ID (GUID) of this self-hosted deployment
	EnvInstallationID = "INSTALLATION_ID"

	// Public key (PEM or base64 ed25519) used to verify license signatures
	EnvLicensePublicKey = "LICENSE_PUBLIC_KEY"

	// Interval between background re-validations of the active license
	EnvLicenseRefreshInterval = "LICENSE_REFRESH_INTERVAL"

	// TTL of cached signature verdicts
	EnvLicenseCacheTTL = "LICENSE_CACHE_TTL"

	// Duo Web credentials
	EnvDuoIntegrationKey = "DUO_INTEGRATION_KEY"
	EnvDuoSecretKey      = "DUO_SECRET_KEY"
	EnvDuoApplicationKey = "DUO_APPLICATION_KEY"
)
