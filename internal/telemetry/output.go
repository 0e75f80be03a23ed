package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"lifegrid/internal/config"
)

// OutputManager writes generation records to generations.csv and a config
// snapshot next to it.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	headerWritten   bool
}

// NewOutputManager creates the output directory and opens generations.csv.
// Returns nil if dir is empty (output disabled); all methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	return &OutputManager{dir: dir, generationsFile: f}, nil
}

// WriteConfig saves the active configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends one record, emitting the header on first use.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	records := []GenerationStats{stats}
	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generations: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.generationsFile); err != nil {
		return fmt.Errorf("writing generations: %w", err)
	}
	return nil
}

// WriteSummary writes summary.csv in one go.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal([]Summary{s}, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
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

// Close flushes and closes the output file.
func (om *OutputManager) Close() error {
	if om == nil || om.generationsFile == nil {
		return nil
	}
	return om.generationsFile.Close()
}
