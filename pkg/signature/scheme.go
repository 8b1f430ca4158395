package signature

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

// Scheme verifies detached signatures produced by the offline license authority.
type Scheme interface {
	Name() string
	Verify(message, sig []byte) bool
}

// Ed25519 verifies ed25519 signatures.
type Ed25519 struct {
	PublicKey ed25519.PublicKey
}

func (Ed25519) Name() string { return "ed25519" }

func (s Ed25519) Verify(message, sig []byte) bool {
	if len(s.PublicKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(s.PublicKey, message, sig)
}

// RSA verifies RSASSA-PKCS1-v1_5 signatures over SHA-256.
type RSA struct {
	PublicKey *rsa.PublicKey
}

func (RSA) Name() string { return "rsa-sha256" }

func (s RSA) Verify(message, sig []byte) bool {
	if s.PublicKey == nil || len(sig) == 0 {
		return false
	}

	digest := sha256.Sum256(message)

	return rsa.VerifyPKCS1v15(s.PublicKey, crypto.SHA256, digest[:], sig) == nil
}

// HMAC verifies HMAC-SHA256 tags computed with a shared key.
type HMAC struct {
	Key []byte
}

func (HMAC) Name() string { return "hmac-sha256" }

func (s HMAC) Verify(message, sig []byte) bool {
	if len(s.Key) == 0 {
		return false
	}

	return ConstantTimeEquals(HMACSHA256(s.Key, message), sig)
}

// ParseScheme builds a Scheme from an encoded public key. It accepts a PEM
// "PUBLIC KEY" block (ed25519 or RSA), a PEM "CERTIFICATE" block, or a bare
// base64 ed25519 key.
func ParseScheme(encoded string) (Scheme, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errors.New("public key is empty")
	}

	block, _ := pem.Decode([]byte(encoded))
	if block == nil {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode base64 public key: %w", err)
		}

		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
		}

		return Ed25519{PublicKey: ed25519.PublicKey(raw)}, nil
	}

	var pub any

	switch block.Type {
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}

		pub = key
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse certificate: %w", err)
		}

		pub = cert.PublicKey
	default:
		return nil, fmt.Errorf("unsupported PEM block %q", block.Type)
	}

	switch key := pub.(type) {
	case ed25519.PublicKey:
		return Ed25519{PublicKey: key}, nil
	case *rsa.PublicKey:
		return RSA{PublicKey: key}, nil
	default:
		return nil, fmt.Errorf("unsupported public key type %T", pub)
	}
}
