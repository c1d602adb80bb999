package snapshot

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// binaryExtensions lists extensions that are treated as binary without
// sniffing the content.
var binaryExtensions = map[string]bool{
	".7z":    true,
	".a":     true,
	".bin":   true,
	".bmp":   true,
	".class": true,
	".dll":   true,
	".dylib": true,
	".exe":   true,
	".gif":   true,
	".gz":    true,
	".ico":   true,
	".jar":   true,
	".jpeg":  true,
	".jpg":   true,
	".mp3":   true,
	".mp4":   true,
	".o":     true,
	".pdf":   true,
	".png":   true,
	".pyc":   true,
	".so":    true,
	".tar":   true,
	".ttf":   true,
	".wasm":  true,
	".webp":  true,
	".woff":  true,
	".woff2": true,
	".zip":   true,
}

// isBinaryFile checks if a file is likely to be binary by reading its first
// few bytes and checking for null bytes or a high ratio of non-printable
// characters.
func isBinaryFile(filePath string) (bool, error) {
	if isCommonBinaryExtension(filePath) {
		return true, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	// Read first 512 bytes to check content type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	buffer = buffer[:n]

	// Null bytes are common in binary files
	if bytes.Contains(buffer, []byte{0}) {
		return true, nil
	}

	if len(buffer) == 0 {
		return false, nil // Empty files are considered text
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}

	// More than 30% non-printable characters means binary
	return float64(nonPrintable)/float64(len(buffer)) > 0.3, nil
}

// isPrintable checks if a byte represents a printable ASCII character.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 128
}

// isCommonBinaryExtension checks if the file has a known binary extension.
func isCommonBinaryExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return binaryExtensions[ext]
}
