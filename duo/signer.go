package duo

import (
	"github.com/LerianStudio/lib-license-verify/internal/metrics"
	"github.com/benbjohnson/clock"
)

// Config holds the Duo Web credentials of one integration.
type Config struct {
	IntegrationKey string
	SecretKey      string
	ApplicationKey string
}

// Validate reports the first key that violates the Duo length constraints.
func (c Config) Validate() error {
	return checkKeys(c.IntegrationKey, c.SecretKey, c.ApplicationKey)
}

// Signer binds a Config to a clock so callers do not pass timestamps around.
type Signer struct {
	cfg     Config
	clock   clock.Clock
	metrics *metrics.Recorder
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock sets the time source. Defaults to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(s *Signer) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithMetrics records verification outcomes on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Signer) {
		s.metrics = m
	}
}

// NewSigner creates a Signer for cfg.
func NewSigner(cfg Config, opts ...Option) *Signer {
	s := &Signer{
		cfg:   cfg,
		clock: clock.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignRequest signs a request for username at the current time.
func (s *Signer) SignRequest(username string) (string, error) {
	return SignRequest(s.cfg.IntegrationKey, s.cfg.SecretKey, s.cfg.ApplicationKey, username, s.clock.Now())
}

// VerifyResponse verifies a Duo response at the current time.
func (s *Signer) VerifyResponse(response string) (string, bool) {
	username, ok := VerifyResponse(s.cfg.IntegrationKey, s.cfg.SecretKey, s.cfg.ApplicationKey, response, s.clock.Now())
	s.metrics.ObserveDuoVerification(ok)

	return username, ok
}
