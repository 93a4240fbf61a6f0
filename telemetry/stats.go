package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Generation      int     `csv:"generation"`

	// Counts at window end
	Population int `csv:"population"`
	FoodCount  int `csv:"food_count"`

	// Events during window
	Matings     int `csv:"matings"`
	Births      int `csv:"births"`
	Deaths      int `csv:"deaths"`
	FoodEaten   int `csv:"food_eaten"`
	Replenished int `csv:"replenished"`
	Truncated   int `csv:"truncated"`

	// BirthRate is births over matings: below 1.0 when recorded events
	// were dropped for stale parent indices.
	BirthRate float64 `csv:"birth_rate"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Fitness distribution (sampled at window end)
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessMax  float64 `csv:"fitness_max"`
}

// distStats computes mean and the 10/50/90 percentiles of values.
// Returns zeros for an empty slice.
func distStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("food_count", s.FoodCount),
		slog.Int("matings", s.Matings),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("replenished", s.Replenished),
		slog.Int("truncated", s.Truncated),
		slog.Float64("birth_rate", s.BirthRate),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_max", s.FitnessMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"generation", s.Generation,
		"population", s.Population,
		"food_count", s.FoodCount,
		"matings", s.Matings,
		"births", s.Births,
		"deaths", s.Deaths,
		"food_eaten", s.FoodEaten,
		"replenished", s.Replenished,
		"truncated", s.Truncated,
		"birth_rate", s.BirthRate,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
		"fitness_mean", s.FitnessMean,
		"fitness_max", s.FitnessMax,
	)
}
