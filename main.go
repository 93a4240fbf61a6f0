package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomingtoming/geneuron/config"
	"github.com/tomingtoming/geneuron/server"
	"github.com/tomingtoming/geneuron/storage"
	"github.com/tomingtoming/geneuron/telemetry"
	"github.com/tomingtoming/geneuron/world"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, champions and config snapshot")
	resultsDB := flag.String("results-db", "", "SQLite file recording run summaries (empty = disabled)")
	serveAddr := flag.String("serve", "", "Address for the live viewer websocket (empty = disabled)")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	champs := telemetry.NewChampions(cfg.Telemetry.Champions)
	collector := telemetry.NewCollector(statsWindowSec, cfg.Sim.DT, champs)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	w := world.New(world.Options{
		RNG:      rand.New(rand.NewSource(rngSeed)),
		Recorder: collector,
	})

	var srv *server.Server
	if *serveAddr != "" {
		srv = server.New()
		srv.Start(*serveAddr)
	}

	broadcastEvery := int64(cfg.Server.BroadcastEvery)
	if broadcastEvery < 1 {
		broadcastEvery = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"population", w.Population(),
		"food", len(w.FoodItems()),
		"stats_window", statsWindowSec,
		"max_ticks", *maxTicks,
	)

	startedAt := time.Now()
	var totalBirths, totalDeaths, totalEaten int
	prevPop := w.Population()

	for {
		perf.StartTick()
		w.Update(cfg.Sim.DT)
		perf.EndTick()

		tick := w.Tick()

		// Edge-triggered alerts; the floor controller will repopulate, but a
		// collapse is worth a warning in the log stream.
		pop := w.Population()
		if pop == 0 && prevPop > 0 {
			slog.Warn("extinction", "tick", tick, "sim_time", w.Elapsed())
		} else if pop < cfg.Population.Floor && prevPop >= cfg.Population.Floor {
			slog.Warn("population_low", "tick", tick, "population", pop, "floor", cfg.Population.Floor)
		}
		prevPop = pop

		if srv != nil && tick%broadcastEvery == 0 {
			srv.Broadcast(w.Snapshot())
		}

		if collector.ShouldFlush(tick) {
			stats := collector.Flush(w.Snapshot())
			perfStats := perf.Stats()

			totalBirths += stats.Births
			totalDeaths += stats.Deaths
			totalEaten += stats.FoodEaten

			if *logStats {
				stats.LogStats()
				perfStats.LogStats()
			}
			if err := out.WriteStats(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
			if err := out.WritePerf(perfStats, stats.WindowEndTick); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}

		if *maxTicks > 0 && tick >= *maxTicks {
			slog.Info("max ticks reached", "tick", tick)
			break
		}
		if ctx.Err() != nil {
			slog.Info("shutdown requested", "tick", tick)
			break
		}
	}

	// Capture the partial window between the last flush and the stop.
	tail := collector.Flush(w.Snapshot())
	totalBirths += tail.Births
	totalDeaths += tail.Deaths
	totalEaten += tail.FoodEaten
	if tail.WindowEndTick > tail.WindowStartTick {
		if err := out.WriteStats(tail); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}

	snap := w.Snapshot()
	slog.Info("simulation finished",
		"tick", snap.Tick,
		"sim_time", snap.Elapsed,
		"generation", snap.Generation,
		"population", snap.Population,
		"births", totalBirths,
		"deaths", totalDeaths,
		"food_eaten", totalEaten,
		"best_fitness", champs.TopFitness(),
		"wall_time", time.Since(startedAt).Round(time.Millisecond).String(),
	)

	if err := out.WriteChampions(champs); err != nil {
		slog.Error("failed to write champions", "error", err)
	}
	if err := out.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}

	if *resultsDB != "" {
		// The signal context may already be canceled; recording still runs.
		dbCtx := context.Background()
		store, err := storage.Open(dbCtx, *resultsDB)
		if err != nil {
			slog.Error("failed to open results database", "error", err)
		} else {
			runID, err := store.RecordRun(dbCtx, storage.RunSummary{
				StartedAt:       startedAt,
				Seed:            rngSeed,
				Ticks:           snap.Tick,
				SimTimeSec:      snap.Elapsed,
				Generations:     snap.Generation,
				FinalPopulation: snap.Population,
				Births:          totalBirths,
				Deaths:          totalDeaths,
				FoodEaten:       totalEaten,
				BestFitness:     champs.TopFitness(),
			}, champs.Entries())
			if err != nil {
				slog.Error("failed to record run", "error", err)
			} else {
				slog.Info("run recorded", "db", *resultsDB, "run_id", runID)
			}
			if err := store.Close(); err != nil {
				slog.Error("failed to close results database", "error", err)
			}
		}
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("viewer server shutdown", "error", err)
		}
		cancel()
	}
}
