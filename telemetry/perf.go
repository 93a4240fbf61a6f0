package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// PerfCollector tracks tick wall-clock timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []time.Duration
	writeIndex  int
	sampleCount int
	tickStart   time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to aggregate over (e.g. 60 for 1s at 60 tps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]time.Duration, windowSize),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	p.samples[p.writeIndex] = time.Since(p.tickStart)
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated tick timing statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	TicksPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{}
	}

	var total time.Duration
	var minTick, maxTick time.Duration
	sorted := make([]float64, p.sampleCount)

	for i := 0; i < p.sampleCount; i++ {
		d := p.samples[i]
		total += d
		sorted[i] = float64(d)

		if i == 0 || d < minTick {
			minTick = d
		}
		if d > maxTick {
			maxTick = d
		}
	}
	sort.Float64s(sorted)

	avg := total / time.Duration(p.sampleCount)
	p95 := time.Duration(stat.Quantile(0.95, stat.Empirical, sorted, nil))

	var ticksPerSec float64
	if avg > 0 {
		ticksPerSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgTickDuration: avg,
		MinTickDuration: minTick,
		MaxTickDuration: maxTick,
		P95TickDuration: p95,
		TicksPerSecond:  ticksPerSec,
	}
}

// LogStats logs tick timing statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf",
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	)
}

// PerfStatsCSV is a flat struct for CSV export of tick timing stats.
type PerfStatsCSV struct {
	WindowEnd   int64   `csv:"window_end"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	P95TickUS   int64   `csv:"p95_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		P95TickUS:   s.P95TickDuration.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
	}
}
