package license

import (
	"strconv"
	"strings"
	"time"

	"github.com/LerianStudio/lib-license-verify/pkg/signature"
	"github.com/google/uuid"
)

const (
	fieldLicenseKey  = "licenseKey"
	fieldLicenseType = "licenseType"
	fieldSignature   = "signature"
)

// Field describes one signed license field: its JSON name, the license version
// that introduced it, its canonical encoding and, for entitlements, how it is
// compared against a live subject. Match is nil for fields that are signed but
// not compared. Reset zeroes the field and is set on every field introduced
// after version 1.
type Field[L, S any] struct {
	Name   string
	Since  int
	Encode func(l *L) string
	Match  func(l *L, s *S) bool
	Reset  func(l *L)
}

// Covers reports whether the field is authoritative for a license of the given version.
func (f Field[L, S]) Covers(version int) bool { return f.Since <= version }

// resetUncovered zeroes every field the version does not cover, so values the
// signature never saw cannot surface on a decoded license.
func resetUncovered[L, S any](l *L, version int, fields []Field[L, S]) {
	for _, f := range fields {
		if f.Reset != nil && !f.Covers(version) {
			f.Reset(l)
		}
	}
}

func encodeString(s string) string { return s }

func encodeBool(b bool) string { return strconv.FormatBool(b) }

func encodeInt(i int) string { return strconv.Itoa(i) }

func encodeIntPtr(i *int) string {
	if i == nil {
		return ""
	}

	return strconv.Itoa(*i)
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339Nano)
}

func encodeUUID(id uuid.UUID) string { return id.String() }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

func licenseKeyMatches(licensed, actual string) bool {
	return actual != "" && signature.ConstantTimeEquals([]byte(licensed), []byte(actual))
}

// OrganizationFields lists every field of an organization license.
var OrganizationFields = []Field[OrganizationLicense, Organization]{
	{
		Name: fieldLicenseKey, Since: 1,
		Encode: func(l *OrganizationLicense) string { return l.LicenseKey },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return licenseKeyMatches(l.LicenseKey, o.LicenseKey) },
	},
	{Name: "installationId", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeUUID(l.InstallationID) }},
	{Name: "id", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeUUID(l.ID) }},
	{
		Name: "name", Since: 1,
		Encode: func(l *OrganizationLicense) string { return encodeString(l.Name) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return l.Name == o.Name },
	},
	{Name: "billingEmail", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeString(l.BillingEmail) }},
	{Name: "version", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeInt(l.Version) }},
	{Name: "issued", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeTime(l.Issued) }},
	{Name: "expires", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeTime(l.Expires) }},
	{Name: "trial", Since: 1, Encode: func(l *OrganizationLicense) string { return encodeBool(l.Trial) }},
	{Name: fieldLicenseType, Since: 1, Encode: func(*OrganizationLicense) string { return KindOrganization.String() }},
	{
		Name: "enabled", Since: 1,
		Encode: func(l *OrganizationLicense) string { return encodeBool(l.Enabled) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return l.Enabled == o.Enabled },
	},
	{
		Name: "planType", Since: 1,
		Encode: func(l *OrganizationLicense) string { return encodeInt(l.PlanType) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return l.PlanType == o.PlanType },
	},
	{
		Name: "seats", Since: 1,
		Encode: func(l *OrganizationLicense) string { return encodeIntPtr(l.Seats) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return intPtrEqual(l.Seats, o.Seats) },
	},
	{
		Name: "maxCollections", Since: 1,
		Encode: func(l *OrganizationLicense) string { return encodeIntPtr(l.MaxCollections) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return intPtrEqual(l.MaxCollections, o.MaxCollections) },
	},
	{
		Name: "maxStorageGb", Since: 1,
		Encode: func(l *OrganizationLicense) string { return encodeIntPtr(l.MaxStorageGb) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return intPtrEqual(l.MaxStorageGb, o.MaxStorageGb) },
	},
	orgFlag("useGroups", 1, func(l *OrganizationLicense) *bool { return &l.UseGroups }, func(o *Organization) bool { return o.UseGroups }),
	orgFlag("useDirectory", 1, func(l *OrganizationLicense) *bool { return &l.UseDirectory }, func(o *Organization) bool { return o.UseDirectory }),
	orgFlag("useTotp", 1, func(l *OrganizationLicense) *bool { return &l.UseTotp }, func(o *Organization) bool { return o.UseTotp }),
	orgFlag("selfHost", 1, func(l *OrganizationLicense) *bool { return &l.SelfHost }, func(o *Organization) bool { return o.SelfHost }),
	orgFlag("usersGetPremium", 2, func(l *OrganizationLicense) *bool { return &l.UsersGetPremium }, func(o *Organization) bool { return o.UsersGetPremium }),
	orgFlag("useEvents", 3, func(l *OrganizationLicense) *bool { return &l.UseEvents }, func(o *Organization) bool { return o.UseEvents }),
	orgFlag("use2fa", 4, func(l *OrganizationLicense) *bool { return &l.Use2fa }, func(o *Organization) bool { return o.Use2fa }),
	orgFlag("useApi", 5, func(l *OrganizationLicense) *bool { return &l.UseApi }, func(o *Organization) bool { return o.UseApi }),
	orgFlag("usePolicies", 6, func(l *OrganizationLicense) *bool { return &l.UsePolicies }, func(o *Organization) bool { return o.UsePolicies }),
	orgFlag("useSso", 7, func(l *OrganizationLicense) *bool { return &l.UseSso }, func(o *Organization) bool { return o.UseSso }),
	orgFlag("useResetPassword", 8, func(l *OrganizationLicense) *bool { return &l.UseResetPassword }, func(o *Organization) bool { return o.UseResetPassword }),
	orgFlag("useKeyConnector", 9, func(l *OrganizationLicense) *bool { return &l.UseKeyConnector }, func(o *Organization) bool { return o.UseKeyConnector }),
	orgFlag("useScim", 10, func(l *OrganizationLicense) *bool { return &l.UseScim }, func(o *Organization) bool { return o.UseScim }),
	orgFlag("useCustomPermissions", 11, func(l *OrganizationLicense) *bool { return &l.UseCustomPermissions }, func(o *Organization) bool { return o.UseCustomPermissions }),
	orgFlag("useSecretsManager", 12, func(l *OrganizationLicense) *bool { return &l.UseSecretsManager }, func(o *Organization) bool { return o.UseSecretsManager }),
	{
		Name: "smSeats", Since: 12,
		Encode: func(l *OrganizationLicense) string { return encodeIntPtr(l.SmSeats) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return intPtrEqual(l.SmSeats, o.SmSeats) },
		Reset:  func(l *OrganizationLicense) { l.SmSeats = nil },
	},
	{
		Name: "smServiceAccounts", Since: 12,
		Encode: func(l *OrganizationLicense) string { return encodeIntPtr(l.SmServiceAccounts) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return intPtrEqual(l.SmServiceAccounts, o.SmServiceAccounts) },
		Reset:  func(l *OrganizationLicense) { l.SmServiceAccounts = nil },
	},
	orgFlag("usePasswordManager", 13, func(l *OrganizationLicense) *bool { return &l.UsePasswordManager }, func(o *Organization) bool { return o.UsePasswordManager }),
	orgFlag("limitCollectionCreationDeletion", 13,
		func(l *OrganizationLicense) *bool { return &l.LimitCollectionCreationDeletion },
		func(o *Organization) bool { return o.LimitCollectionCreationDeletion }),
}

func orgFlag(name string, since int, licensed func(*OrganizationLicense) *bool, actual func(*Organization) bool) Field[OrganizationLicense, Organization] {
	f := Field[OrganizationLicense, Organization]{
		Name:   name,
		Since:  since,
		Encode: func(l *OrganizationLicense) string { return encodeBool(*licensed(l)) },
		Match:  func(l *OrganizationLicense, o *Organization) bool { return *licensed(l) == actual(o) },
	}

	if since > 1 {
		f.Reset = func(l *OrganizationLicense) { *licensed(l) = false }
	}

	return f
}

// UserFields lists every field of a user license.
var UserFields = []Field[UserLicense, User]{
	{
		Name: fieldLicenseKey, Since: 1,
		Encode: func(l *UserLicense) string { return l.LicenseKey },
		Match:  func(l *UserLicense, u *User) bool { return licenseKeyMatches(l.LicenseKey, u.LicenseKey) },
	},
	{Name: "installationId", Since: 1, Encode: func(l *UserLicense) string { return encodeUUID(l.InstallationID) }},
	{Name: "id", Since: 1, Encode: func(l *UserLicense) string { return encodeUUID(l.ID) }},
	{Name: "name", Since: 1, Encode: func(l *UserLicense) string { return encodeString(l.Name) }},
	{
		Name: "email", Since: 1,
		Encode: func(l *UserLicense) string { return encodeString(l.Email) },
		Match:  func(l *UserLicense, u *User) bool { return strings.EqualFold(l.Email, u.Email) },
	},
	{Name: "version", Since: 1, Encode: func(l *UserLicense) string { return encodeInt(l.Version) }},
	{Name: "issued", Since: 1, Encode: func(l *UserLicense) string { return encodeTime(l.Issued) }},
	{Name: "expires", Since: 1, Encode: func(l *UserLicense) string { return encodeTime(l.Expires) }},
	{Name: "trial", Since: 1, Encode: func(l *UserLicense) string { return encodeBool(l.Trial) }},
	{Name: fieldLicenseType, Since: 1, Encode: func(*UserLicense) string { return KindUser.String() }},
	{
		Name: "premium", Since: 1,
		Encode: func(l *UserLicense) string { return encodeBool(l.Premium) },
		Match:  func(l *UserLicense, u *User) bool { return l.Premium == u.Premium },
	},
	{
		Name: "maxStorageGb", Since: 1,
		Encode: func(l *UserLicense) string { return encodeIntPtr(l.MaxStorageGb) },
		Match:  func(l *UserLicense, u *User) bool { return intPtrEqual(l.MaxStorageGb, u.MaxStorageGb) },
	},
}

func knownKeys[L, S any](fields []Field[L, S]) map[string]struct{} {
	keys := make(map[string]struct{}, len(fields)+1)
	for _, f := range fields {
		keys[f.Name] = struct{}{}
	}

	keys[fieldSignature] = struct{}{}

	return keys
}
