package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codesnap/pkg/ignore"

	"go.uber.org/zap"
)

// Engine walks a directory tree and accumulates the snapshot output.
// It only reads; persisting the result is the Writer's job.
type Engine struct {
	cfg     Config
	matcher ignore.Matcher
	logger  *zap.Logger

	// Resolved once per run, used for self-exclusion.
	outputDir  string
	outputBase string

	stats Stats
}

// NewEngine validates the configuration and builds an Engine. The matcher
// is the built-in rule set plus any configured exclude patterns.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rules := ignore.Default(logger)
	if len(cfg.ExcludePatterns) > 0 {
		rules.Add(cfg.ExcludePatterns...)
		logger.Debug("Added configured exclude patterns", zap.Int("count", len(cfg.ExcludePatterns)))
	}

	return &Engine{
		cfg:     cfg,
		matcher: rules,
		logger:  logger,
	}, nil
}

// Run traverses root depth-first and returns the accumulated snapshot
// string together with run statistics. A directory that cannot be listed
// aborts the run; an individual file that cannot be read is counted as
// skipped and the run continues.
func (e *Engine) Run(root string) (string, Stats, error) {
	e.stats = Stats{}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", e.stats, fmt.Errorf("resolving root %s: %w", root, err)
	}

	absOutput, err := filepath.Abs(e.cfg.OutputPath)
	if err != nil {
		return "", e.stats, fmt.Errorf("resolving output path %s: %w", e.cfg.OutputPath, err)
	}
	e.outputDir = filepath.Dir(absOutput)
	e.outputBase = filepath.Base(absOutput)

	e.logger.Debug("Starting traversal",
		zap.String("root", absRoot),
		zap.String("output", absOutput),
		zap.Float64("thresholdMB", e.cfg.ThresholdMB),
		zap.Bool("includeAll", e.cfg.IncludeAll))

	var out strings.Builder
	if err := e.walk(absRoot, absRoot, &out); err != nil {
		return "", e.stats, err
	}

	e.logger.Debug("Traversal completed",
		zap.Int("processed", e.stats.Processed),
		zap.Int("skipped", e.stats.Skipped))
	return out.String(), e.stats, nil
}

// walk processes one directory level. Entries come back from os.ReadDir
// sorted by name, so output order is deterministic across platforms.
func (e *Engine) walk(dir, root string, out *strings.Builder) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		fullPath := filepath.Join(dir, name)

		// Ignore rules are name-only and come before everything else,
		// including recursion into directories.
		if matched, rule := e.matcher.MatchesWithRule(name); matched {
			e.logger.Debug("Entry matches ignore rule",
				zap.String("path", fullPath),
				zap.String("rule", rule.Raw))
			continue
		}

		// Never include the output file or anything that could collide
		// with it: its containing directory and any sibling sharing its
		// base name are skipped.
		if fullPath == e.outputDir || name == e.outputBase {
			e.logger.Debug("Skipping output location", zap.String("path", fullPath))
			continue
		}

		if entry.IsDir() {
			if err := e.walk(fullPath, root, out); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			e.logger.Debug("Skipping non-regular entry", zap.String("path", fullPath))
			continue
		}

		info, err := entry.Info()
		if err != nil {
			e.logger.Warn("Failed to stat file", zap.String("path", fullPath), zap.Error(err))
			e.stats.Skipped++
			continue
		}

		if !e.cfg.IncludeAll {
			if info.Size() > e.cfg.thresholdBytes() {
				e.logger.Debug("File exceeds size threshold",
					zap.String("path", fullPath),
					zap.Int64("sizeBytes", info.Size()))
				e.stats.Skipped++
				continue
			}

			binary, err := isBinaryFile(fullPath)
			if err != nil {
				e.logger.Warn("Failed to sniff file content", zap.String("path", fullPath), zap.Error(err))
				e.stats.Skipped++
				continue
			}
			if binary {
				e.logger.Debug("Skipping binary file", zap.String("path", fullPath))
				e.stats.Skipped++
				continue
			}
		}

		content, err := os.ReadFile(fullPath)
		if err != nil {
			// Permission errors or the file vanishing between listing and
			// read are per-file failures, not run failures.
			e.logger.Warn("Failed to read file", zap.String("path", fullPath), zap.Error(err))
			e.stats.Skipped++
			continue
		}

		relPath, err := filepath.Rel(root, fullPath)
		if err != nil {
			e.logger.Warn("Failed to compute relative path", zap.String("path", fullPath), zap.Error(err))
			e.stats.Skipped++
			continue
		}
		relPath = filepath.ToSlash(relPath)

		out.WriteString(renderBlock(relPath, info.Size(), string(content)))
		e.stats.Processed++
	}

	return nil
}
