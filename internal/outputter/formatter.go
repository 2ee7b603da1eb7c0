package outputter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rackiam/internal/config"
)

// DisplayHeader prints a section header
func DisplayHeader(w io.Writer, title string) {
	if title != "" {
		fmt.Fprintln(w, "\n"+strings.Repeat("═", 79))
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("═", 79))
}

// DisplayARNs prints one row per entity
func DisplayARNs(w io.Writer, entries []config.ARNEntry) {
	DisplayHeader(w, "🔐 IAM ENTITIES")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No addressable entities")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-17s %-32s %s\n", e.Kind, e.Name, e.ARN)
	}
}

// WriteTemplate writes rendered bytes to path, or to w when path is empty
func WriteTemplate(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Saved template to: %s\n", path)
	return nil
}
