package license

import "encoding/json"

var userKnownKeys = knownKeys(UserFields)

// UserLicense grants premium features to a single user.
type UserLicense struct {
	Header

	Email        string `json:"email"`
	Premium      bool   `json:"premium"`
	MaxStorageGb *int   `json:"maxStorageGb"`
}

func (*UserLicense) Kind() Kind { return KindUser }

func (*UserLicense) CurrentVersion() int { return CurrentUserVersion }

func (l *UserLicense) ValidLicenseVersion() bool {
	return validVersion(l.Version, CurrentUserVersion)
}

// CanonicalBytes returns the byte string the license signature covers.
func (l *UserLicense) CanonicalBytes() []byte {
	return canonical(KindUser, l, l.Version, UserFields, l.Extensions)
}

func (*UserLicense) isLicense() {}

func (l *UserLicense) UnmarshalJSON(data []byte) error {
	type plain UserLicense

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	ext, err := extensions(data, userKnownKeys)
	if err != nil {
		return err
	}

	*l = UserLicense(p)
	l.Extensions = ext

	resetUncovered(l, l.Version, UserFields)

	return nil
}

func (l *UserLicense) MarshalJSON() ([]byte, error) {
	type plain UserLicense

	return marshalWithExtensions(plain(*l), KindUser, l.Extensions)
}
