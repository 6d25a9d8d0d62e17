package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingAPI struct {
	ids []string
}

func (r *recordingAPI) ReportBroken(id string, params ...any)  { r.ids = append(r.ids, id) }
func (r *recordingAPI) ReportWarning(id string, params ...any) { r.ids = append(r.ids, id) }
func (r *recordingAPI) ReportDebug(msg string, params ...any)  { r.ids = append(r.ids, msg) }
func (r *recordingAPI) ReportCount(id string, count int64)     { r.ids = append(r.ids, id) }

func TestScopedAPI(t *testing.T) {
	inner := &recordingAPI{}
	api := NewScopedAPI("quote", inner)

	api.ReportBroken("controller.submit")
	api.ReportWarning("controller.resolve", "stale")
	api.ReportDebug("begin")
	api.ReportCount("submissions", 1)

	require.Equal(t, []string{
		"quote:controller.submit",
		"quote:controller.resolve",
		"quote:begin",
		"quote:submissions",
	}, inner.ids)
}

func TestZeroTelemetryShutdown(t *testing.T) {
	var tel Telemetry
	require.False(t, tel.Enabled())
	require.NoError(t, tel.Shutdown(t.Context()))
}
