package tui

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/evp/internal/config"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidNumber = errors.New("must be a valid number")
	ErrInvalidRange  = errors.New("value out of valid range")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // default
	}
	_, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 24h, 168h): %w", err)
	}
	return nil
}

// ValidateIntRange validates that a string represents an integer within a range
func ValidateIntRange(min, max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return ErrInvalidNumber
		}
		if n < min || n > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidRange, min, max)
		}
		return nil
	}
}

// ValidateFileName accepts a bare file name without directory components
func ValidateFileName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrRequired
	}
	if path.Base(s) != s || strings.ContainsRune(s, '\\') {
		return errors.New("must be a file name without directories")
	}
	return nil
}

// ValidateCMakeVersion accepts an empty value or a dotted version like 3.15
func ValidateCMakeVersion(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := config.ParseCMakeVersion(s); err != nil {
		return fmt.Errorf("invalid CMake version: %w", err)
	}
	return nil
}
