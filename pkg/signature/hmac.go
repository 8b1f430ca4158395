// Package signature holds the keyed and asymmetric signature primitives shared by
// the license verifier and the Duo token codec.
package signature

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // HMAC-SHA1 is mandated by the Duo Web protocol
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA1Hex returns the lowercase hex HMAC-SHA1 of message under key.
func HMACSHA1Hex(key, message []byte) string {
	mac := hmac.New(sha1.New, key)
	mac.Write(message)

	return hex.EncodeToString(mac.Sum(nil))
}

// HMACSHA256 returns the raw HMAC-SHA256 of message under key.
func HMACSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)

	return mac.Sum(nil)
}

// HMACSHA256Hex returns the lowercase hex HMAC-SHA256 of message under key.
func HMACSHA256Hex(key, message []byte) string {
	return hex.EncodeToString(HMACSHA256(key, message))
}

// ConstantTimeEquals reports whether a and b are equal. The time taken depends
// only on the lengths of the inputs, never on their contents.
func ConstantTimeEquals(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
