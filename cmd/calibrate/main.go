package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/tomingtoming/geneuron/config"
)

// formatDuration formats a duration as h/m/s for progress output.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 36000, "Simulation ticks per run (36000 = 10 sim-minutes at 60Hz)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	// Start the search at the loaded configuration
	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Denormalize to get raw parameter values
			raw := params.Denormalize(x)
			return evaluator.Evaluate(raw)
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Evaluations share the global config; keep them sequential
	}

	// Population size: 4 + floor(3*ln(n)) unless overridden
	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	// Open evaluation log
	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	// Track evaluations and timing
	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		// Denormalize and clamp to get the values actually used
		raw := params.Denormalize(x)
		clamped := params.Clamp(raw)
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = make([]float64, len(clamped))
			copy(bestParams, clamped)
		}

		quality := evaluator.LastQuality()
		row := []string{
			strconv.Itoa(evalCount),
			fmt.Sprintf("%.6f", fitness),
			fmt.Sprintf("%.6f", quality),
		}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: quality=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, quality, -bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES calibration with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("calibration ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil {
		bestParams = params.Denormalize(result.X)
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best quality: %.3f\n", -bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
	}

	// Save best config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
