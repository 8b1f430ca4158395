package helper

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"
	"time"

	"github.com/LerianStudio/lib-license-verify/license"
	"github.com/LerianStudio/lib-license-verify/pkg/signature"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Authority plays the offline license issuer with a throwaway ed25519 key.
type Authority struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// NewAuthority generates a fresh signing key.
func NewAuthority(t testing.TB) *Authority {
	t.Helper()

	public, private, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	return &Authority{public: public, private: private}
}

// Scheme returns the verification side of the authority key.
func (a *Authority) Scheme() signature.Scheme {
	return signature.Ed25519{PublicKey: a.public}
}

// PublicKeyBase64 returns the public key in the form LICENSE_PUBLIC_KEY accepts.
func (a *Authority) PublicKeyBase64() string {
	return base64.StdEncoding.EncodeToString(a.public)
}

// Sign signs lic in place over its canonical bytes.
func (a *Authority) Sign(lic license.License) {
	sig := ed25519.Sign(a.private, lic.CanonicalBytes())

	switch l := lic.(type) {
	case *license.OrganizationLicense:
		l.Signature = sig
	case *license.UserLicense:
		l.Signature = sig
	}
}

func intPtr(i int) *int { return &i }

// OrganizationLicense returns an unsigned, self-hostable organization license
// valid for a year around now.
func OrganizationLicense(installationID uuid.UUID, version int, now time.Time) *license.OrganizationLicense {
	return &license.OrganizationLicense{
		Header: license.Header{
			LicenseKey:     "org-license-key",
			InstallationID: installationID,
			ID:             uuid.MustParse("6f1c9a2e-4b7d-4f3a-9c8e-2d5b7a1e0f34"),
			Name:           "Acme Corp",
			Version:        version,
			Issued:         now.Add(-24 * time.Hour),
			Expires:        now.Add(365 * 24 * time.Hour),
		},
		BillingEmail:    "billing@acme.test",
		Enabled:         true,
		PlanType:        5,
		Seats:           intPtr(50),
		MaxCollections:  intPtr(100),
		MaxStorageGb:    intPtr(10),
		UseGroups:       true,
		UseDirectory:    true,
		UseTotp:         true,
		SelfHost:        true,
		UsersGetPremium: true,
		UseEvents:       true,
		Use2fa:          true,
		UseApi:          true,
		UsePolicies:     true,
		UseSso:          true,
	}
}

// UserLicense returns an unsigned premium user license valid for a year around now.
func UserLicense(installationID uuid.UUID, now time.Time) *license.UserLicense {
	return &license.UserLicense{
		Header: license.Header{
			LicenseKey:     "user-license-key",
			InstallationID: installationID,
			ID:             uuid.MustParse("0b8e3c55-7a61-4d0e-8f2b-93c4d6e1a7b9"),
			Name:           "Jane Smith",
			Version:        license.CurrentUserVersion,
			Issued:         now.Add(-24 * time.Hour),
			Expires:        now.Add(365 * 24 * time.Hour),
		},
		Email:        "jane.smith@acme.test",
		Premium:      true,
		MaxStorageGb: intPtr(1),
	}
}

func clonePtr(i *int) *int {
	if i == nil {
		return nil
	}

	return intPtr(*i)
}

// OrganizationFor returns the live organization a license was issued for.
func OrganizationFor(l *license.OrganizationLicense) *license.Organization {
	return &license.Organization{
		ID:                              l.ID,
		Name:                            l.Name,
		BillingEmail:                    l.BillingEmail,
		LicenseKey:                      l.LicenseKey,
		Enabled:                         l.Enabled,
		PlanType:                        l.PlanType,
		Seats:                           clonePtr(l.Seats),
		MaxCollections:                  clonePtr(l.MaxCollections),
		MaxStorageGb:                    clonePtr(l.MaxStorageGb),
		UseGroups:                       l.UseGroups,
		UseDirectory:                    l.UseDirectory,
		UseTotp:                         l.UseTotp,
		SelfHost:                        l.SelfHost,
		UsersGetPremium:                 l.UsersGetPremium,
		UseEvents:                       l.UseEvents,
		Use2fa:                          l.Use2fa,
		UseApi:                          l.UseApi,
		UsePolicies:                     l.UsePolicies,
		UseSso:                          l.UseSso,
		UseResetPassword:                l.UseResetPassword,
		UseKeyConnector:                 l.UseKeyConnector,
		UseScim:                         l.UseScim,
		UseCustomPermissions:            l.UseCustomPermissions,
		UseSecretsManager:               l.UseSecretsManager,
		SmSeats:                         clonePtr(l.SmSeats),
		SmServiceAccounts:               clonePtr(l.SmServiceAccounts),
		UsePasswordManager:              l.UsePasswordManager,
		LimitCollectionCreationDeletion: l.LimitCollectionCreationDeletion,
	}
}

// UserFor returns the live user a license was issued for.
func UserFor(l *license.UserLicense) *license.User {
	return &license.User{
		ID:           l.ID,
		Name:         l.Name,
		Email:        l.Email,
		LicenseKey:   l.LicenseKey,
		Premium:      l.Premium,
		MaxStorageGb: clonePtr(l.MaxStorageGb),
	}
}
