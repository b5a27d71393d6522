// Package textacq acquires plain text from source documents. Statute
// sources arrive as PDF, RTF or plain text; the parsers downstream only
// ever see the extracted text.
package textacq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Read extracts the text of the document at path, dispatching on the
// file extension. Unknown extensions are read as plain UTF-8 text.
func Read(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ExtractPDF(path)
	case ".rtf":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return ExtractRTF(data)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	}
}
