// Package verifier checks license signatures against the trusted license
// authority key.
package verifier

import (
	"encoding/hex"

	"github.com/LerianStudio/lib-commons/commons"
	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-license-verify/internal/cache"
	"github.com/LerianStudio/lib-license-verify/internal/metrics"
	"github.com/LerianStudio/lib-license-verify/license"
	"github.com/LerianStudio/lib-license-verify/pkg/signature"
	"github.com/google/uuid"
)

// Verifier verifies the detached signature of a license over its canonical bytes.
type Verifier struct {
	scheme    signature.Scheme
	cache     *cache.Manager
	namespace string
	logger    log.Logger
	metrics   *metrics.Recorder
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithCache memoizes verdicts in m.
func WithCache(m *cache.Manager) Option {
	return func(v *Verifier) { v.cache = m }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// WithMetrics counts cache hits and misses on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(v *Verifier) { v.metrics = r }
}

// New creates a Verifier for scheme.
func New(scheme signature.Scheme, opts ...Option) *Verifier {
	v := &Verifier{
		scheme: scheme,
		// Cache entries are only valid for this verifier's key.
		namespace: uuid.NewString(),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.logger == nil {
		v.logger = zap.InitializeLogger()
	}

	return v
}

// VerifySignature reports whether lic carries a valid signature. A license
// without a signature never verifies.
func (v *Verifier) VerifySignature(lic license.License) bool {
	if license.IsNil(lic) || v.scheme == nil {
		return false
	}

	sig := lic.Common().Signature
	if len(sig) == 0 {
		v.logger.Debugf("License %s has no signature", lic.Kind())
		return false
	}

	message := lic.CanonicalBytes()

	if v.cache == nil {
		return v.verify(lic, message, sig)
	}

	key := commons.HashSHA256(v.namespace + "|" + string(message) + "|" + hex.EncodeToString(sig))

	if verdict, found := v.cache.Get(key); found {
		v.metrics.ObserveCacheLookup(true)
		return verdict
	}

	v.metrics.ObserveCacheLookup(false)

	verdict := v.verify(lic, message, sig)
	v.cache.Store(key, verdict)

	return verdict
}

func (v *Verifier) verify(lic license.License, message, sig []byte) bool {
	ok := v.scheme.Verify(message, sig)
	if !ok {
		v.logger.Warnf("%s license signature rejected by %s", lic.Kind(), v.scheme.Name())
	}

	return ok
}
