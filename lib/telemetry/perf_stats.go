package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const perfInterval = 30 * time.Second

var perfMeter = otel.Meter("quantovale.lib.telemetry")
var cpuGauge, _ = perfMeter.Float64Gauge("process.cpu_percent")
var rssGauge, _ = perfMeter.Int64Gauge("process.rss_mb")
var goroutineGauge, _ = perfMeter.Int64Gauge("process.goroutines")

// PerfSample is one reading of the current process.
type PerfSample struct {
	CpuPercent float64
	RssMb      int64
	Goroutines int64
}

// perfSampler reads stats for the running process through gopsutil.
type perfSampler struct {
	proc *process.Process
}

func newPerfSampler() (perfSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return perfSampler{}, fmt.Errorf("open own process: %w", err)
	}
	return perfSampler{proc: proc}, nil
}

func (s perfSampler) sample(ctx context.Context) (PerfSample, error) {
	out := PerfSample{Goroutines: int64(runtime.NumGoroutine())}

	cpu, err := s.proc.CPUPercentWithContext(ctx)
	if err != nil {
		return out, fmt.Errorf("cpu percent: %w", err)
	}
	out.CpuPercent = cpu

	mem, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return out, fmt.Errorf("memory info: %w", err)
	}
	out.RssMb = int64(mem.RSS / 1_000_000)
	return out, nil
}

// InstrumentPerfStats records gauges for this process, tagged with the
// running command, until ctx is done.
func InstrumentPerfStats(ctx context.Context, command string) {
	sampler, err := newPerfSampler()
	if err != nil {
		slog.Warn("perf stats disabled", "err", err)
		return
	}
	attrs := metric.WithAttributes(attribute.String("command", command))

	go func() {
		ticker := time.NewTicker(perfInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s, err := sampler.sample(ctx)
				if err != nil {
					slog.Debug("failed to sample perf stats", "err", err)
				}
				cpuGauge.Record(ctx, s.CpuPercent, attrs)
				rssGauge.Record(ctx, s.RssMb, attrs)
				goroutineGauge.Record(ctx, s.Goroutines, attrs)
			case <-ctx.Done():
				return
			}
		}
	}()
}
