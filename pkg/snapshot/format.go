package snapshot

import (
	"fmt"
	"strings"
)

// separatorLine is the 80-character delimiter that frames every block
// header in the snapshot output.
var separatorLine = strings.Repeat("=", 80)

// renderBlock formats one included file into its snapshot block:
//
//	\n
//	================================================================================\n
//	File: <relative-path>\n
//	Size: <human-readable-size>\n
//	================================================================================\n
//	\n
//	<raw file content>\n
//
// Blocks are concatenated with nothing in between; the leading newline of
// each block is the only separation.
func renderBlock(relPath string, sizeBytes int64, content string) string {
	var b strings.Builder
	b.Grow(len(content) + 2*len(separatorLine) + len(relPath) + 64)

	b.WriteString("\n")
	b.WriteString(separatorLine)
	b.WriteString("\n")
	b.WriteString("File: ")
	b.WriteString(relPath)
	b.WriteString("\n")
	b.WriteString("Size: ")
	b.WriteString(humanSize(sizeBytes))
	b.WriteString("\n")
	b.WriteString(separatorLine)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n")

	return b.String()
}

// humanSize renders a byte count using binary units. Sizes below 1 KB are
// printed as whole bytes; larger sizes get one decimal place ("1.2 KB").
// Deterministic for a given byte count.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
