package pkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/duo"
)

// ValidationError records an error in the configuration supplied to the verifier.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// ForbiddenError indicates an operation refused because no valid license is installed.
type ForbiddenError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e ForbiddenError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ForbiddenError) Unwrap() error {
	return e.Err
}

// UnprocessableOperationError indicates a license this build cannot interpret or apply.
type UnprocessableOperationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e UnprocessableOperationError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e UnprocessableOperationError) Unwrap() error {
	return e.Err
}

// InternalServerError indicates an unexpected failure.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// ResponseError is the JSON body returned to clients.
type ResponseError struct {
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidateInternalError validates the error and returns an appropriate InternalServerError.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

func duoKeyRequirements() string {
	return fmt.Sprintf("%s must be %d characters, %s %d characters and %s at least %d characters.",
		constant.EnvDuoIntegrationKey, duo.IntegrationKeyLength,
		constant.EnvDuoSecretKey, duo.SecretKeyLength,
		constant.EnvDuoApplicationKey, duo.MinApplicationKeyLength)
}

// detail renders optional message arguments as a trailing sentence.
func detail(args []any) string {
	if len(args) == 0 {
		return ""
	}

	return " " + strings.TrimSpace(fmt.Sprint(args...))
}

// ValidateBusinessError maps a verifier error, possibly wrapped, to the business
// error with code, title and message. Extra args are appended to the message.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := []struct {
		sentinel error
		mapped   error
	}{
		{constant.ErrLicenseInvalid, ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrLicenseInvalid.Error(),
			Title:      "Invalid License",
			Message:    "The installed license is not valid for this installation." + detail(args),
			Err:        err,
		}},
		{constant.ErrLicenseNotLoaded, ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrLicenseNotLoaded.Error(),
			Title:      "License Not Installed",
			Message:    "No license has been installed. Upload a license before using this feature." + detail(args),
			Err:        err,
		}},
		{constant.ErrStartupLicenseValidationFailed, ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrStartupLicenseValidationFailed.Error(),
			Title:      "Startup License Validation Failed",
			Message:    "The license could not be validated when the application started." + detail(args),
			Err:        err,
		}},
		{constant.ErrUnsupportedLicenseVersion, UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrUnsupportedLicenseVersion.Error(),
			Title:      "Unsupported License Version",
			Message:    "The license was issued for a newer version of this software. Update the installation before applying it." + detail(args),
			Err:        err,
		}},
		{constant.ErrSubjectKindMismatch, UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrSubjectKindMismatch.Error(),
			Title:      "License Type Mismatch",
			Message:    "The license type does not match the entity it was applied to." + detail(args),
			Err:        err,
		}},
		{constant.ErrMissingApplicationName, ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingApplicationName.Error(),
			Title:      "Missing Application Name",
			Message:    fmt.Sprintf("The %s environment variable is required.", constant.EnvApplicationName),
			Err:        err,
		}},
		{constant.ErrMissingInstallationID, ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingInstallationID.Error(),
			Title:      "Missing Installation ID",
			Message:    fmt.Sprintf("The %s environment variable is required.", constant.EnvInstallationID),
			Err:        err,
		}},
		{constant.ErrInvalidInstallationID, ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidInstallationID.Error(),
			Title:      "Invalid Installation ID",
			Message:    fmt.Sprintf("The %s environment variable must be a GUID.", constant.EnvInstallationID),
			Err:        err,
		}},
		{constant.ErrInvalidPublicKey, ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidPublicKey.Error(),
			Title:      "Invalid License Public Key",
			Message:    fmt.Sprintf("The %s environment variable must hold a PEM public key, a PEM certificate or a base64 ed25519 key.", constant.EnvLicensePublicKey),
			Err:        err,
		}},
		{constant.ErrInvalidDuoConfig, ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidDuoConfig.Error(),
			Title:      "Invalid Duo Configuration",
			Message:    duoKeyRequirements(),
			Err:        err,
		}},
	}

	for _, entry := range errorMap {
		if errors.Is(err, entry.sentinel) {
			return entry.mapped
		}
	}

	return err
}
