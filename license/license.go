// Package license holds the versioned license model: the two license variants,
// the subjects they are applied to, and the field tables that drive both the
// signed canonical form and the entitlement comparison.
package license

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Current license versions understood by this build.
const (
	CurrentOrganizationVersion = 13
	CurrentUserVersion         = 1
)

// ErrUnknownLicenseType is returned by Decode when licenseType is missing or unknown.
var ErrUnknownLicenseType = errors.New("unknown license type")

// License is a deserialized, read-only license. It is either an
// *OrganizationLicense or a *UserLicense.
type License interface {
	Kind() Kind
	Common() Header
	CurrentVersion() int
	ValidLicenseVersion() bool
	CanonicalBytes() []byte
	isLicense()
}

// IsNil reports whether l is nil or holds a nil variant pointer.
func IsNil(l License) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *OrganizationLicense:
		return v == nil
	case *UserLicense:
		return v == nil
	}

	return false
}

// Header carries the fields shared by every license variant.
type Header struct {
	LicenseKey     string    `json:"licenseKey"`
	InstallationID uuid.UUID `json:"installationId"`
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Version        int       `json:"version"`
	Issued         time.Time `json:"issued"`
	Expires        time.Time `json:"expires"`
	Trial          bool      `json:"trial"`
	Signature      []byte    `json:"signature,omitempty"`

	// Extensions keeps the keys this build does not know. They are part of the
	// signed canonical form so that newer licenses still verify.
	Extensions map[string]json.RawMessage `json:"-"`
}

// Common returns a copy of the shared fields.
func (h Header) Common() Header { return h }

// IsIssuedAfter reports whether the license is not yet valid at now.
func (h Header) IsIssuedAfter(now time.Time) bool { return h.Issued.After(now) }

// IsExpiredAt reports whether the license expired before now.
func (h Header) IsExpiredAt(now time.Time) bool { return h.Expires.Before(now) }

// DaysLeft returns the whole days between now and expiry, negative once expired.
func (h Header) DaysLeft(now time.Time) int {
	return int(h.Expires.Sub(now).Hours() / 24)
}

func validVersion(version, current int) bool {
	return version >= 1 && version <= current+1
}

// canonical renders license:<kind>|name:value|... over every field the version
// covers plus every extension, sorted by name.
func canonical[L, S any](kind Kind, l *L, version int, fields []Field[L, S], extensions map[string]json.RawMessage) []byte {
	type pair struct{ name, value string }

	pairs := make([]pair, 0, len(fields)+len(extensions))

	for _, f := range fields {
		if f.Since > version {
			continue
		}

		pairs = append(pairs, pair{name: f.Name, value: f.Encode(l)})
	}

	for name, raw := range extensions {
		pairs = append(pairs, pair{name: name, value: encodeRaw(raw)})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].name < pairs[j].name })

	var b strings.Builder

	b.WriteString("license:")
	b.WriteString(strings.ToLower(kind.String()))

	for _, p := range pairs {
		b.WriteByte('|')
		b.WriteString(p.name)
		b.WriteByte(':')
		b.WriteString(p.value)
	}

	return []byte(b.String())
}

// encodeRaw renders an unknown JSON value: strings unquoted, null empty,
// anything else compacted.
func encodeRaw(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}

	return buf.String()
}

// extensions returns the keys of data that are not in known.
func extensions(data []byte, known map[string]struct{}) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	var extra map[string]json.RawMessage

	for key, value := range all {
		if _, ok := known[key]; ok {
			continue
		}

		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}

		extra[key] = value
	}

	return extra, nil
}

// marshalWithExtensions encodes v, adds licenseType and re-attaches extensions
// that do not collide with known keys.
func marshalWithExtensions(v any, kind Kind, ext map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	for key, value := range ext {
		if _, ok := fields[key]; !ok {
			fields[key] = value
		}
	}

	licenseType, err := json.Marshal(kind)
	if err != nil {
		return nil, err
	}

	fields[fieldLicenseType] = licenseType

	return json.Marshal(fields)
}

// Decode parses a license document and returns the variant named by its licenseType.
func Decode(data []byte) (License, error) {
	var probe struct {
		LicenseType *Kind `json:"licenseType"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode license: %w", err)
	}

	if probe.LicenseType == nil {
		return nil, ErrUnknownLicenseType
	}

	switch *probe.LicenseType {
	case KindOrganization:
		var l OrganizationLicense
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode organization license: %w", err)
		}

		return &l, nil
	case KindUser:
		var l UserLicense
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode user license: %w", err)
		}

		return &l, nil
	default:
		return nil, ErrUnknownLicenseType
	}
}
