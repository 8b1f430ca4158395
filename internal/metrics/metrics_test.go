package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ObserveValidation(CheckInstallation, OutcomeValid)
	r.ObserveValidation(CheckInstallation, OutcomeValid)
	r.ObserveValidation(CheckSubject, OutcomeInvalid)
	r.ObserveCacheLookup(true)
	r.ObserveCacheLookup(false)
	r.ObserveDuoVerification(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.validations.WithLabelValues(CheckInstallation, OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues(CheckSubject, OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.duoVerifications.WithLabelValues(OutcomeInvalid)))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveValidation(CheckSubject, OutcomeError)
		r.ObserveCacheLookup(true)
		r.ObserveDuoVerification(true)
	})
}
