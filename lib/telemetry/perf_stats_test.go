package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerfSample(t *testing.T) {
	sampler, err := newPerfSampler()
	require.NoError(t, err)

	s, err := sampler.sample(t.Context())
	require.NoError(t, err)
	require.Positive(t, s.RssMb)
	require.Positive(t, s.Goroutines)
	require.GreaterOrEqual(t, s.CpuPercent, 0.0)
}
