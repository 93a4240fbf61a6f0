package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/tomingtoming/geneuron/config"
)

// OutputManager handles structured experiment output with CSV logging.
// A nil receiver is valid and disables all output, so callers never branch.
type OutputManager struct {
	dir       string
	statsFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	statsHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates an output manager rooted at dir.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML, so a run's output
// directory is self-describing.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WritePerf appends a tick timing record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteChampions saves the champions leaderboard as JSON.
func (om *OutputManager) WriteChampions(ch *Champions) error {
	if om == nil || ch == nil {
		return nil
	}

	data, err := ch.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling champions: %w", err)
	}

	path := filepath.Join(om.dir, "champions.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing champions.json: %w", err)
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.statsFile != nil {
		if err := om.statsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
