package signature

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACKnownVectors(t *testing.T) {
	key := []byte("Jefe")
	msg := []byte("what do ya want for nothing?")

	assert.Equal(t, "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79", HMACSHA1Hex(key, msg))
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", HMACSHA256Hex(key, msg))
}

func TestConstantTimeEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{name: "equal", a: []byte("abc"), b: []byte("abc"), want: true},
		{name: "first byte differs", a: []byte("xbc"), b: []byte("abc"), want: false},
		{name: "last byte differs", a: []byte("abx"), b: []byte("abc"), want: false},
		{name: "different lengths", a: []byte("abc"), b: []byte("abcd"), want: false},
		{name: "both empty", a: nil, b: []byte{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstantTimeEquals(tt.a, tt.b))
		})
	}
}

func TestEd25519Scheme(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	msg := []byte("license:organization|name:Acme")
	sig := ed25519.Sign(priv, msg)
	scheme := Ed25519{PublicKey: pub}

	assert.True(t, scheme.Verify(msg, sig))
	assert.False(t, scheme.Verify([]byte("license:organization|name:Acmf"), sig))
	assert.False(t, scheme.Verify(msg, sig[:10]))
	assert.False(t, Ed25519{}.Verify(msg, sig))
}

func TestRSAScheme(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	msg := []byte("license:user|email:a@b.c")
	digest := sha256.Sum256(msg)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)

	scheme := RSA{PublicKey: &key.PublicKey}
	assert.True(t, scheme.Verify(msg, sig))

	sig[0] ^= 0xff
	assert.False(t, scheme.Verify(msg, sig))
	assert.False(t, RSA{}.Verify(msg, sig))
}

func TestHMACScheme(t *testing.T) {
	scheme := HMAC{Key: []byte("shared-secret")}
	msg := []byte("payload")

	assert.True(t, scheme.Verify(msg, HMACSHA256([]byte("shared-secret"), msg)))
	assert.False(t, scheme.Verify(msg, HMACSHA256([]byte("other-secret"), msg)))
	assert.False(t, HMAC{}.Verify(msg, nil))
}

func TestParseScheme(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	t.Run("bare base64 ed25519", func(t *testing.T) {
		s, err := ParseScheme(base64.StdEncoding.EncodeToString(pub))
		require.NoError(t, err)
		assert.Equal(t, "ed25519", s.Name())
	})

	t.Run("PKIX ed25519", func(t *testing.T) {
		der, err := x509.MarshalPKIXPublicKey(pub)
		require.NoError(t, err)

		s, err := ParseScheme(string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})))
		require.NoError(t, err)
		assert.Equal(t, "ed25519", s.Name())
	})

	t.Run("RSA certificate", func(t *testing.T) {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		tmpl := &x509.Certificate{
			SerialNumber: big.NewInt(1),
			Subject:      pkix.Name{CommonName: "licensing"},
			NotBefore:    time.Now().Add(-time.Hour),
			NotAfter:     time.Now().Add(time.Hour),
		}
		der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
		require.NoError(t, err)

		s, err := ParseScheme(string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})))
		require.NoError(t, err)
		assert.Equal(t, "rsa-sha256", s.Name())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "   ", "not base64!", base64.StdEncoding.EncodeToString([]byte("short"))} {
			_, err := ParseScheme(in)
			assert.Error(t, err, in)
		}
	})

	t.Run("rejects unknown PEM block", func(t *testing.T) {
		_, err := ParseScheme(string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1}})))
		assert.Error(t, err)
	})
}
