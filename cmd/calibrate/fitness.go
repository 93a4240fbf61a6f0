package main

import (
	"math"
	"math/rand"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/telemetry"
	"github.com/tomingtoming/geneuron/world"
)

// FitnessEvaluator runs headless simulations and scores parameter sets.
// Evaluations are sequential: each one installs its candidate config as the
// process global before simulating, so two cannot overlap.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 seconds per window
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negated ecosystem quality averaged over the evaluation seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	config.Set(cfg)

	var total float64
	for _, seed := range fe.seeds {
		windows := fe.runSimulation(seed)
		total += fe.computeQuality(windows)
	}
	avgQuality := total / float64(len(fe.seeds))

	fe.lastQuality = avgQuality
	return -avgQuality
}

// runSimulation executes one headless run and returns its window stats.
func (fe *FitnessEvaluator) runSimulation(seed int64) []telemetry.WindowStats {
	cfg := config.Cfg()
	collector := telemetry.NewCollector(fe.statsWindow, cfg.Sim.DT, nil)

	w := world.New(world.Options{
		RNG:      rand.New(rand.NewSource(seed)),
		Recorder: collector,
	})

	var windows []telemetry.WindowStats
	for w.Tick() < fe.maxTicks {
		w.Update(cfg.Sim.DT)
		if collector.ShouldFlush(w.Tick()) {
			windows = append(windows, collector.Flush(w.Snapshot()))
		}
	}
	return windows
}

// copyConfig creates an independent copy of the base config. Config holds
// only value fields, so a struct copy is a deep copy.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}

// Quality component weights.
const (
	qualityWeightPopulation = 0.30
	qualityWeightStability  = 0.20
	qualityWeightSelfSuff   = 0.20
	qualityWeightBirths     = 0.15
	qualityWeightEnergy     = 0.15

	qualityWarmupWindows = 3 // skip first N windows (warmup)
)

// computeQuality scores a run in [0, 1] from its window stats. High scores go
// to runs that hold a large, steady population through reproduction rather
// than floor replenishment, with healthy median energy.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]
	ceiling := float64(config.Cfg().Population.Ceiling)

	var popSum, energySum, birthSum float64
	var replenishWindows int
	pops := make([]float64, 0, len(valid))

	for _, w := range valid {
		pops = append(pops, float64(w.Population))

		// 1. Population size relative to the ceiling
		popSum += math.Min(float64(w.Population)/ceiling, 1)

		// 2. Energy health: median energy near a well-fed 0.9
		energySum += math.Exp(-math.Pow((w.EnergyP50-0.9)/0.4, 2))

		birthSum += float64(w.Births)
		if w.Replenished > 0 {
			replenishWindows++
		}
	}
	n := float64(len(valid))

	popScore := popSum / n

	// 3. Population stability (CV across windows)
	stabilityScore := 0.0
	if len(pops) >= 2 {
		cvPop := cv(pops)
		stabilityScore = math.Exp(-cvPop * cvPop)
	}

	// 4. Self-sufficiency: windows that needed no floor replenishment
	selfScore := 1 - float64(replenishWindows)/n

	// 5. Reproductive activity, saturating around a few births per window
	birthScore := 1 - math.Exp(-(birthSum/n)/2.0)

	energyScore := energySum / n

	quality := qualityWeightPopulation*popScore +
		qualityWeightStability*stabilityScore +
		qualityWeightSelfSuff*selfScore +
		qualityWeightBirths*birthScore +
		qualityWeightEnergy*energyScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
