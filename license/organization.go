package license

import "encoding/json"

var organizationKnownKeys = knownKeys(OrganizationFields)

// OrganizationLicense entitles a self-hosted organization. Fields after the
// first block were added in later license versions, see OrganizationFields.
type OrganizationLicense struct {
	Header

	BillingEmail   string `json:"billingEmail"`
	Enabled        bool   `json:"enabled"`
	PlanType       int    `json:"planType"`
	Seats          *int   `json:"seats"`
	MaxCollections *int   `json:"maxCollections"`
	MaxStorageGb   *int   `json:"maxStorageGb"`
	UseGroups      bool   `json:"useGroups"`
	UseDirectory   bool   `json:"useDirectory"`
	UseTotp        bool   `json:"useTotp"`
	SelfHost       bool   `json:"selfHost"`

	UsersGetPremium                 bool `json:"usersGetPremium"`
	UseEvents                       bool `json:"useEvents"`
	Use2fa                          bool `json:"use2fa"`
	UseApi                          bool `json:"useApi"`
	UsePolicies                     bool `json:"usePolicies"`
	UseSso                          bool `json:"useSso"`
	UseResetPassword                bool `json:"useResetPassword"`
	UseKeyConnector                 bool `json:"useKeyConnector"`
	UseScim                         bool `json:"useScim"`
	UseCustomPermissions            bool `json:"useCustomPermissions"`
	UseSecretsManager               bool `json:"useSecretsManager"`
	SmSeats                         *int `json:"smSeats"`
	SmServiceAccounts               *int `json:"smServiceAccounts"`
	UsePasswordManager              bool `json:"usePasswordManager"`
	LimitCollectionCreationDeletion bool `json:"limitCollectionCreationDeletion"`
}

func (*OrganizationLicense) Kind() Kind { return KindOrganization }

func (*OrganizationLicense) CurrentVersion() int { return CurrentOrganizationVersion }

func (l *OrganizationLicense) ValidLicenseVersion() bool {
	return validVersion(l.Version, CurrentOrganizationVersion)
}

// CanonicalBytes returns the byte string the license signature covers.
func (l *OrganizationLicense) CanonicalBytes() []byte {
	return canonical(KindOrganization, l, l.Version, OrganizationFields, l.Extensions)
}

func (*OrganizationLicense) isLicense() {}

func (l *OrganizationLicense) UnmarshalJSON(data []byte) error {
	type plain OrganizationLicense

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	ext, err := extensions(data, organizationKnownKeys)
	if err != nil {
		return err
	}

	*l = OrganizationLicense(p)
	l.Extensions = ext

	resetUncovered(l, l.Version, OrganizationFields)

	return nil
}

func (l *OrganizationLicense) MarshalJSON() ([]byte, error) {
	type plain OrganizationLicense

	return marshalWithExtensions(plain(*l), KindOrganization, l.Extensions)
}
