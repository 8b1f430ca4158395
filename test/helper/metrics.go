package helper

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// CounterValue returns the value of the counter name whose labels include all
// of labels, or 0 when no such series was gathered.
func CounterValue(t testing.TB, gatherer prometheus.Gatherer, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := gatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		for _, metric := range family.GetMetric() {
			matched := 0

			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want == pair.GetValue() {
					matched++
				}
			}

			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}

	return 0
}
