package util

import (
	"errors"
	"fmt"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/model"
)

// ValidateEnvVariables checks that the required settings are present.
func ValidateEnvVariables(cfg *model.Config, l log.Logger) error {
	if cfg == nil {
		return errors.New("license verifier config is nil")
	}

	if commons.IsNilOrEmpty(&cfg.ApplicationName) {
		l.Errorf("missing %s environment variable", cn.EnvApplicationName)

		return fmt.Errorf("%w: missing application name", cn.ErrMissingApplicationName)
	}

	if commons.IsNilOrEmpty(&cfg.InstallationID) {
		l.Errorf("missing %s environment variable", cn.EnvInstallationID)

		return fmt.Errorf("%w: missing installation ID", cn.ErrMissingInstallationID)
	}

	if commons.IsNilOrEmpty(&cfg.PublicKey) {
		l.Errorf("missing %s environment variable", cn.EnvLicensePublicKey)

		return fmt.Errorf("%w: missing license public key", cn.ErrInvalidPublicKey)
	}

	return nil
}
