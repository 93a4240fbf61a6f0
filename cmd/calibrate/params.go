// Package main provides CMA-ES calibration for finding simulation parameters
// that sustain a self-sufficient creature population.
package main

import (
	"github.com/tomingtoming/geneuron/config"
)

// ParamSpec defines a single calibratable parameter.
type ParamSpec struct {
	Name string  // CSV column and progress label
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all calibratable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of calibratable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Metabolism
			{Name: "base_cost", Min: 0.002, Max: 0.05},
			{Name: "move_cost", Min: 0.01, Max: 0.25},
			{Name: "rest_bonus_near", Min: 0.005, Max: 0.05},
			{Name: "rest_bonus_alone", Min: 0.002, Max: 0.03},
			// Food supply
			{Name: "food_energy", Min: 0.1, Max: 0.8},
			{Name: "food_max", Min: 20, Max: 150},
			{Name: "regen_interval", Min: 4, Max: 60},
			// Reproduction
			{Name: "repro_min_energy", Min: 0.4, Max: 1.2},
			{Name: "repro_cost", Min: 0.05, Max: 0.5},
			{Name: "repro_cooldown", Min: 5, Max: 40},
			{Name: "maturity", Min: 5, Max: 40},
			// Evolution
			{Name: "mutation_rate", Min: 0.01, Max: 0.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	i := 0

	// Metabolism
	cfg.Energy.BaseCost = clamped[i]; i++
	cfg.Energy.MoveCost = clamped[i]; i++
	cfg.Creature.RestBonusNear = clamped[i]; i++
	cfg.Creature.RestBonusAlone = clamped[i]; i++

	// Food supply
	cfg.Food.Energy = clamped[i]; i++
	cfg.Food.Max = int(clamped[i]); i++
	cfg.Food.RegenInterval = int(clamped[i]); i++

	// Reproduction
	cfg.Reproduction.MinEnergy = clamped[i]; i++
	cfg.Reproduction.EnergyCost = clamped[i]; i++
	cfg.Reproduction.Cooldown = clamped[i]; i++
	cfg.Reproduction.Maturity = clamped[i]; i++

	// Evolution
	cfg.Mutation.Rate = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
// These seed the search at the loaded configuration.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		// Metabolism
		cfg.Energy.BaseCost,
		cfg.Energy.MoveCost,
		cfg.Creature.RestBonusNear,
		cfg.Creature.RestBonusAlone,
		// Food supply
		cfg.Food.Energy,
		float64(cfg.Food.Max),
		float64(cfg.Food.RegenInterval),
		// Reproduction
		cfg.Reproduction.MinEnergy,
		cfg.Reproduction.EnergyCost,
		cfg.Reproduction.Cooldown,
		cfg.Reproduction.Maturity,
		// Evolution
		cfg.Mutation.Rate,
	}
}
