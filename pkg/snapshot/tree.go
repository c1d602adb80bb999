package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// TreeString renders a directory tree listing for root, honoring the same
// ignore rules and output-file exclusion as Run. The listing is meant for
// a separate tree file and is never part of the snapshot output.
func (e *Engine) TreeString(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}

	absOutput, err := filepath.Abs(e.cfg.OutputPath)
	if err != nil {
		return "", fmt.Errorf("resolving output path %s: %w", e.cfg.OutputPath, err)
	}
	e.outputDir = filepath.Dir(absOutput)
	e.outputBase = filepath.Base(absOutput)

	var tree strings.Builder
	tree.WriteString(filepath.Base(absRoot) + "/\n")

	subtree, err := e.treeLevel(absRoot, "")
	if err != nil {
		return "", err
	}
	if subtree != "" {
		tree.WriteString(subtree)
		tree.WriteString("\n")
	}

	return tree.String(), nil
}

// treeLevel builds the listing for one directory level recursively.
func (e *Engine) treeLevel(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading directory %s: %w", dir, err)
	}

	// Keep only entries the snapshot itself would consider.
	kept := entries[:0]
	for _, entry := range entries {
		name := entry.Name()
		fullPath := filepath.Join(dir, name)
		if e.matcher.Matches(name) {
			continue
		}
		if fullPath == e.outputDir || name == e.outputBase {
			continue
		}
		kept = append(kept, entry)
	}

	var output []string
	for i, entry := range kept {
		connector := "├── "
		extension := "│   "
		if i == len(kept)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.IsDir() {
			output = append(output, fmt.Sprintf("%s%s%s/", prefix, connector, entry.Name()))
			subtree, err := e.treeLevel(filepath.Join(dir, entry.Name()), prefix+extension)
			if err != nil {
				e.logger.Warn("Failed to render subtree",
					zap.String("directory", filepath.Join(dir, entry.Name())),
					zap.Error(err))
				continue
			}
			if subtree != "" {
				output = append(output, subtree)
			}
		} else {
			output = append(output, prefix+connector+entry.Name())
		}
	}

	return strings.Join(output, "\n"), nil
}
