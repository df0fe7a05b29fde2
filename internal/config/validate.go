package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateFile checks that the config file at filePath is a JSON object
// whose keys are all known. A missing or empty file is valid.
func ValidateFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is not an error - will use defaults
		}
		if os.IsPermission(err) {
			return &ValidationError{
				FilePath: filePath,
				Message:  "permission denied",
			}
		}
		return &ValidationError{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}
	return ValidateBytes(data, filePath)
}

// ValidateBytes is ValidateFile for data already in memory.
func ValidateBytes(data []byte, filePath string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, column := lineColumn(data, syntaxErr.Offset)
			return &ValidationError{
				FilePath: filePath,
				Line:     line,
				Column:   column,
				Message:  syntaxErr.Error(),
			}
		}
		return &ValidationError{
			FilePath: filePath,
			Message:  "expected a JSON object",
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := GetKeySchema(k); err != nil {
			return &ValidationError{
				FilePath: filePath,
				Field:    k,
				Message:  "unknown configuration key",
			}
		}
		var s string
		if err := json.Unmarshal(raw[k], &s); err != nil {
			return &ValidationError{
				FilePath: filePath,
				Field:    k,
				Message:  "must be a string",
			}
		}
	}
	return nil
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, column := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
