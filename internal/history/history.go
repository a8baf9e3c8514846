package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studiowebux/quickcap/internal/config"
	"github.com/studiowebux/quickcap/internal/types"
)

// CreatePreview collapses content to one line of non-empty trimmed lines
// joined by single spaces, cut to maxLen runes with a trailing "...".
func CreatePreview(content string, maxLen int) string {
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	single := strings.Join(parts, " ")

	runes := []rune(single)
	if maxLen <= 3 || len(runes) <= maxLen {
		return single
	}
	return string(runes[:maxLen-3]) + "..."
}

// Export writes entries as indented JSON
func Export(w io.Writer, entries []types.ClipboardEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal clipboard history: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write clipboard history: %w", err)
	}
	return nil
}

// ExportFile writes entries to path as indented JSON
func ExportFile(path string, entries []types.ClipboardEntry) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	return Export(f, entries)
}
