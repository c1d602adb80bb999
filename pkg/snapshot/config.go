// Package snapshot implements the traversal and aggregation engine: it
// walks a directory tree, filters entries by ignore rules, size and binary
// content, and concatenates the surviving files into a single annotated
// snapshot string.
package snapshot

import (
	"errors"
	"fmt"
)

// Defaults for the run configuration.
const (
	DefaultThresholdMB = 0.1          // Maximum file size in megabytes.
	DefaultOutputPath  = "output.txt" // Destination for the combined snapshot.
)

// Config holds the configuration for one snapshot run. It is supplied once
// and never mutated.
type Config struct {
	ThresholdMB     float64  // Maximum size (in MB) of files to include; larger files are skipped.
	IncludeAll      bool     // If true, disables both size and binary filtering.
	OutputPath      string   // Destination path for the combined snapshot file.
	ExcludePatterns []string // Additional ignore rules appended after the built-in set.
	TreePath        string   // Optional destination for a directory tree listing; empty disables it.
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		ThresholdMB: DefaultThresholdMB,
		OutputPath:  DefaultOutputPath,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.ThresholdMB < 0 {
		return fmt.Errorf("threshold must be >= 0, got %v", c.ThresholdMB)
	}
	if c.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}

// thresholdBytes converts the megabyte threshold to bytes. A file whose
// size is exactly at the threshold is still included.
func (c Config) thresholdBytes() int64 {
	return int64(c.ThresholdMB * 1024 * 1024)
}

// Stats reports counters for one run. Informational only; not part of the
// output contract.
type Stats struct {
	Processed int // Files rendered into the snapshot.
	Skipped   int // Files rejected by size/binary filtering or failed reads.
}
