package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// WriteJSON writes v to path as UTF-8 JSON, 2-space indented, with HTML
// escaping disabled so non-ASCII text survives untouched.
func WriteJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// OutputFilename builds a JSON output filename from name parts, joining them
// with underscores and replacing any spaces inside a part with underscores.
// OutputFilename("python", "search", "machine learning") returns
// "python_search_machine_learning.json".
func OutputFilename(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cleaned = append(cleaned, strings.ReplaceAll(part, " ", "_"))
	}
	return strings.Join(cleaned, "_") + ".json"
}
