// Package validation checks command-line input before it reaches storage.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// Export formats understood by the export command.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input file is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidExportFormat checks if the given format is supported and returns
// it in canonical form.
func IsValidExportFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format: %s (must be 'csv' or 'json')", format)
	}
}
