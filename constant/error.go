package constant

import "errors"

// Structured error codes for license verification failures
var (
	ErrStartupLicenseValidationFailed = errors.New("LCS-0001")
	ErrLicenseInvalid                 = errors.New("LCS-0002")
	ErrUnsupportedLicenseVersion      = errors.New("LCS-0003")
	ErrSubjectKindMismatch            = errors.New("LCS-0004")
	ErrMissingInstallationID          = errors.New("LCS-0005")
	ErrInvalidInstallationID          = errors.New("LCS-0006")
	ErrInvalidPublicKey               = errors.New("LCS-0007")
	ErrLicenseNotLoaded               = errors.New("LCS-0008")
	ErrMissingApplicationName         = errors.New("LCS-0009")
	ErrInternalServer                 = errors.New("LCS-0010")
	ErrInvalidDuoConfig               = errors.New("LCS-0011")
)
