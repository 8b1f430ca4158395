package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Check label values
const (
	CheckInstallation = "installation"
	CheckSubject      = "subject"
)

// Recorder counts verification outcomes. A nil *Recorder is valid and records nothing.
type Recorder struct {
	validations      *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	duoVerifications *prometheus.CounterVec
}

// New creates a Recorder whose collectors are registered on reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "license_validations_total",
			Help: "License validations by check and outcome.",
		}, []string{"check", "outcome"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "license_signature_cache_total",
			Help: "Signature verdict cache lookups by result.",
		}, []string{"result"}),
		duoVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "duo_verifications_total",
			Help: "Duo signed response verifications by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveValidation counts one license check.
func (r *Recorder) ObserveValidation(check, outcome string) {
	if r == nil {
		return
	}

	r.validations.WithLabelValues(check, outcome).Inc()
}

// ObserveCacheLookup counts one signature cache lookup.
func (r *Recorder) ObserveCacheLookup(hit bool) {
	if r == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	r.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveDuoVerification counts one Duo response verification.
func (r *Recorder) ObserveDuoVerification(ok bool) {
	if r == nil {
		return
	}

	outcome := OutcomeInvalid
	if ok {
		outcome = OutcomeValid
	}

	r.duoVerifications.WithLabelValues(outcome).Inc()
}
