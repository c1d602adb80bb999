package snapshot

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Writer persists an accumulated snapshot string to disk. It performs no
// transformation of the content and never touches the traversal inputs.
type Writer struct {
	logger *zap.Logger
}

// NewWriter returns a Writer logging through the given logger.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Write creates or overwrites path with content, verbatim. A missing
// destination directory, permission problem or full disk surfaces as an
// error; nothing is retried.
func (w *Writer) Write(path, content string) error {
	w.logger.Debug("Writing snapshot", zap.String("path", path), zap.Int("sizeBytes", len(content)))

	outFile, err := os.Create(path)
	if err != nil {
		w.logger.Error("Failed to create output file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("creating output file %s: %w", path, err)
	}

	writer := bufio.NewWriter(outFile)
	if _, err := writer.WriteString(content); err != nil {
		outFile.Close()
		w.logger.Error("Failed to write output file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("writing output file %s: %w", path, err)
	}

	if err := writer.Flush(); err != nil {
		outFile.Close()
		w.logger.Error("Failed to flush output file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("flushing output file %s: %w", path, err)
	}

	if err := outFile.Close(); err != nil {
		w.logger.Error("Failed to close output file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("closing output file %s: %w", path, err)
	}

	return nil
}
