package license

import "github.com/google/uuid"

// Subject is the live entity a license is compared against. It is either an
// *Organization or a *User.
type Subject interface {
	Kind() Kind
	isSubject()
}

// Organization is a snapshot of a self-hosted organization.
type Organization struct {
	ID           uuid.UUID
	Name         string
	BillingEmail string
	LicenseKey   string

	Enabled        bool
	PlanType       int
	Seats          *int
	MaxCollections *int
	MaxStorageGb   *int

	UseGroups                       bool
	UseDirectory                    bool
	UseTotp                         bool
	SelfHost                        bool
	UsersGetPremium                 bool
	UseEvents                       bool
	Use2fa                          bool
	UseApi                          bool
	UsePolicies                     bool
	UseSso                          bool
	UseResetPassword                bool
	UseKeyConnector                 bool
	UseScim                         bool
	UseCustomPermissions            bool
	UseSecretsManager               bool
	SmSeats                         *int
	SmServiceAccounts               *int
	UsePasswordManager              bool
	LimitCollectionCreationDeletion bool
}

func (*Organization) Kind() Kind { return KindOrganization }
func (*Organization) isSubject() {}

// User is a snapshot of a user holding a personal premium license.
type User struct {
	ID            uuid.UUID
	Name          string
	Email         string
	EmailVerified bool
	LicenseKey    string
	Premium       bool
	MaxStorageGb  *int
}

func (*User) Kind() Kind { return KindUser }
func (*User) isSubject() {}

// IsNilSubject reports whether s is nil or holds a nil variant pointer.
func IsNilSubject(s Subject) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *Organization:
		return v == nil
	case *User:
		return v == nil
	}

	return false
}
