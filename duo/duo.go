// Package duo implements the Duo Web signed request/response protocol.
//
// A signed request is two sub-tokens joined by ":". Each sub-token has the form
//
//	PREFIX|base64(username|integrationKey|expiry)|hex(hmac-sha1(key, PREFIX|base64(...)))
//
// The first sub-token is keyed with the Duo secret key and the second with the
// application key. Expiry is the only replay protection the protocol offers.
package duo

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/LerianStudio/lib-license-verify/pkg/signature"
)

// Sub-token prefixes shared with the Duo service.
const (
	PrefixRequest     = "TX"
	PrefixApplication = "APP"
	PrefixAuth        = "AUTH"
)

// Key length constraints.
const (
	IntegrationKeyLength    = 20
	SecretKeyLength         = 40
	MinApplicationKeyLength = 40
)

// Lifetimes of the request and application sub-tokens.
const (
	RequestTTL     = 300 * time.Second
	ApplicationTTL = 3600 * time.Second
)

const (
	fieldSeparator = "|"
	tokenSeparator = ":"
)

// Errors returned by SignRequest. Their messages are displayed verbatim by callers.
var (
	ErrInvalidUser           = errors.New("ERR|The username passed to sign_request() is invalid.")
	ErrInvalidIntegrationKey = errors.New("ERR|The Duo integration key passed to sign_request() is invalid.")
	ErrInvalidSecretKey      = errors.New("ERR|The Duo secret key passed to sign_request() is invalid.")
	ErrInvalidApplicationKey = errors.New("ERR|The application secret key passed to sign_request() must be at least 40 characters.")
	ErrUnknown               = errors.New("ERR|An unknown error has occurred.")
)

// SignRequest builds the signed request handed to the Duo frame for username.
func SignRequest(integrationKey, secretKey, applicationKey, username string, now time.Time) (token string, err error) {
	if username == "" || strings.Contains(username, fieldSeparator) {
		return "", ErrInvalidUser
	}

	if err := checkKeys(integrationKey, secretKey, applicationKey); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			token, err = "", ErrUnknown
		}
	}()

	requestSig := signValues(secretKey, username, integrationKey, PrefixRequest, RequestTTL, now)
	applicationSig := signValues(applicationKey, username, integrationKey, PrefixApplication, ApplicationTTL, now)

	return requestSig + tokenSeparator + applicationSig, nil
}

// VerifyResponse checks the signed response posted back by the Duo frame and
// returns the authenticated username. Keys that SignRequest would refuse, and
// any malformed, tampered, foreign or expired response, yield ("", false).
func VerifyResponse(integrationKey, secretKey, applicationKey, response string, now time.Time) (string, bool) {
	if checkKeys(integrationKey, secretKey, applicationKey) != nil {
		return "", false
	}

	parts := strings.Split(response, tokenSeparator)
	if len(parts) != 2 {
		return "", false
	}

	authUser, ok := parseValues(secretKey, parts[0], PrefixAuth, integrationKey, now)
	if !ok {
		return "", false
	}

	appUser, ok := parseValues(applicationKey, parts[1], PrefixApplication, integrationKey, now)
	if !ok {
		return "", false
	}

	if authUser != appUser {
		return "", false
	}

	return authUser, true
}

// checkKeys enforces the key lengths. An empty key would make every HMAC
// computable by anyone.
func checkKeys(integrationKey, secretKey, applicationKey string) error {
	switch {
	case len(integrationKey) != IntegrationKeyLength:
		return ErrInvalidIntegrationKey
	case len(secretKey) != SecretKeyLength:
		return ErrInvalidSecretKey
	case len(applicationKey) < MinApplicationKeyLength:
		return ErrInvalidApplicationKey
	}

	return nil
}

func signValues(key, username, integrationKey, prefix string, ttl time.Duration, now time.Time) string {
	expiry := now.Unix() + int64(ttl/time.Second)
	value := username + fieldSeparator + integrationKey + fieldSeparator + strconv.FormatInt(expiry, 10)
	cookie := prefix + fieldSeparator + base64.StdEncoding.EncodeToString([]byte(value))

	return cookie + fieldSeparator + signature.HMACSHA1Hex([]byte(key), []byte(cookie))
}

func parseValues(key, value, prefix, integrationKey string, now time.Time) (string, bool) {
	parts := strings.Split(value, fieldSeparator)
	if len(parts) != 3 {
		return "", false
	}

	gotPrefix, payload, claimed := parts[0], parts[1], parts[2]

	expected := signature.HMACSHA1Hex([]byte(key), []byte(gotPrefix+fieldSeparator+payload))
	if !signature.ConstantTimeEquals([]byte(expected), []byte(claimed)) {
		return "", false
	}

	if gotPrefix != prefix {
		return "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}

	fields := strings.Split(string(decoded), fieldSeparator)
	if len(fields) != 3 {
		return "", false
	}

	username, gotIntegrationKey, rawExpiry := fields[0], fields[1], fields[2]
	if username == "" || gotIntegrationKey != integrationKey {
		return "", false
	}

	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return "", false
	}

	if now.Unix() >= expiry {
		return "", false
	}

	return username, true
}
