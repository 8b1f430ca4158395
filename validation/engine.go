package validation

import (
	"fmt"
	"time"

	cn "github.com/LerianStudio/lib-license-verify/constant"
	"github.com/LerianStudio/lib-license-verify/license"
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/google/uuid"
)

// Reasons reported by ValidateAgainstInstallation, in the order they are checked.
const (
	ReasonOrganizationDisabled = "Your cloud-hosted organization is currently disabled."
	ReasonNotYetIssued         = "The license hasn't been issued yet."
	ReasonExpired              = "The license has expired."
	ReasonInstallationMismatch = "The installation ID does not match the current installation."
	ReasonSelfHostNotAllowed   = "The license does not allow for on-premise hosting of organizations."
	ReasonOrganizationForUser  = "Organization licenses cannot be applied to a user. Upload this license from the Organization settings page."
	ReasonUserForOrganization  = "Premium licenses cannot be applied to an organization. Upload this license from your personal account settings page."
	ReasonSignatureInvalid     = "The license verification failed."
)

// Caller misuse. Credential problems are reported as results, never as errors.
var (
	ErrUnsupportedVersion  = cn.ErrUnsupportedLicenseVersion
	ErrSubjectKindMismatch = cn.ErrSubjectKindMismatch
	ErrLicenseMissing      = cn.ErrLicenseNotLoaded
)

// SignatureVerifier checks a license signature.
type SignatureVerifier interface {
	VerifySignature(lic license.License) bool
}

// Engine validates licenses. It holds no state besides its verifier and is safe
// for concurrent use.
type Engine struct {
	verifier SignatureVerifier
}

// NewEngine creates an Engine that checks signatures with v.
func NewEngine(v SignatureVerifier) *Engine {
	return &Engine{verifier: v}
}

// ValidateAgainstInstallation checks that lic may run on this installation as
// a license for target. Every failed check is reported; only an unsupported
// version aborts with an error.
func (e *Engine) ValidateAgainstInstallation(lic license.License, target license.Kind, installationID uuid.UUID, now time.Time) (model.ValidationResult, error) {
	if license.IsNil(lic) {
		return model.ValidationResult{}, ErrLicenseMissing
	}

	header := lic.Common()
	org, isOrg := lic.(*license.OrganizationLicense)

	var reasons []string

	if isOrg && !org.Enabled {
		reasons = append(reasons, ReasonOrganizationDisabled)
	}

	if header.IsIssuedAfter(now) {
		reasons = append(reasons, ReasonNotYetIssued)
	}

	if header.IsExpiredAt(now) {
		reasons = append(reasons, ReasonExpired)
	}

	if !lic.ValidLicenseVersion() {
		return model.ValidationResult{}, unsupportedVersion(lic)
	}

	if header.InstallationID != installationID {
		reasons = append(reasons, ReasonInstallationMismatch)
	}

	if isOrg && !org.SelfHost {
		reasons = append(reasons, ReasonSelfHostNotAllowed)
	}

	if lic.Kind() != target {
		if isOrg {
			reasons = append(reasons, ReasonOrganizationForUser)
		} else {
			reasons = append(reasons, ReasonUserForOrganization)
		}
	}

	if !e.verifier.VerifySignature(lic) {
		reasons = append(reasons, ReasonSignatureInvalid)
	}

	if len(reasons) > 0 {
		return model.Failure(reasons...), nil
	}

	return model.Success(), nil
}

// ValidateEntityAgainstLicense compares subject with the entitlements of lic.
// Only fields introduced at or below the license version are compared, and
// the first mismatch is reported.
func (e *Engine) ValidateEntityAgainstLicense(lic license.License, subject license.Subject) (model.ValidationResult, error) {
	if license.IsNil(lic) {
		return model.ValidationResult{}, ErrLicenseMissing
	}

	if license.IsNilSubject(subject) || lic.Kind() != subject.Kind() {
		return model.ValidationResult{}, kindMismatch(lic, subject)
	}

	if !lic.ValidLicenseVersion() {
		return model.ValidationResult{}, unsupportedVersion(lic)
	}

	switch l := lic.(type) {
	case *license.OrganizationLicense:
		if org, ok := subject.(*license.Organization); ok {
			return matchFields(l, org, l.Version, license.OrganizationFields), nil
		}
	case *license.UserLicense:
		if user, ok := subject.(*license.User); ok {
			return matchFields(l, user, l.Version, license.UserFields), nil
		}
	}

	return model.ValidationResult{}, kindMismatch(lic, subject)
}

func matchFields[L, S any](lic *L, subject *S, version int, fields []license.Field[L, S]) model.ValidationResult {
	for _, f := range fields {
		if f.Match == nil || !f.Covers(version) {
			continue
		}

		if !f.Match(lic, subject) {
			return model.Failure(f.Name + " does not match the license")
		}
	}

	return model.Success()
}

func unsupportedVersion(lic license.License) error {
	return fmt.Errorf("%w: %s license version %d is not supported (current %d)",
		ErrUnsupportedVersion, lic.Kind(), lic.Common().Version, lic.CurrentVersion())
}

func kindMismatch(lic license.License, subject license.Subject) error {
	subjectKind := license.KindUnknown
	if !license.IsNilSubject(subject) {
		subjectKind = subject.Kind()
	}

	return fmt.Errorf("%w: %s license cannot be compared with a %s", ErrSubjectKindMismatch, lic.Kind(), subjectKind)
}
