package cloudconfig

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// ReloadsCounter exposes the reload counter to external tests
func ReloadsCounter(t *testing.T, result string) prometheus.Counter {
	c, err := reloadsTotal.GetMetricWithLabelValues(result)
	require.NoError(t, err)
	return c
}
