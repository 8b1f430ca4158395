package license

import "fmt"

// Kind tells which entity a license may be applied to.
type Kind int

const (
	KindUnknown Kind = iota
	KindOrganization
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindOrganization:
		return "Organization"
	case KindUser:
		return "User"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindOrganization && k != KindUser {
		return nil, fmt.Errorf("unknown license type %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Organization":
		*k = KindOrganization
	case "User":
		*k = KindUser
	default:
		return fmt.Errorf("unknown license type %q", string(text))
	}

	return nil
}
