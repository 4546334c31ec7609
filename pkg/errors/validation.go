package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxDimension is the largest pixel size a chart, font or padding may
// declare.
const MaxDimension = 65536

// ValidateDimension checks that a pixel size is finite, non-negative and
// at most MaxDimension.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative, got %v", name, v)
	}
	if v > MaxDimension {
		return New(ErrCodeInvalidInput, "%s exceeds %d pixels, got %v", name, MaxDimension, v)
	}
	return nil
}

// ValidateRatio checks that an aspect ratio is finite and strictly positive.
func ValidateRatio(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidAspectRatio, "ratio must be a positive number, got %v", v)
	}
	return nil
}

// ValidateLabel validates free text placed on a chart (titles, series names).
//
// The validation rules are intentionally conservative:
//   - No control characters (newlines would break single-line layout)
//   - Maximum length of 256 characters
func ValidateLabel(text string) error {
	if len(text) > 256 {
		return New(ErrCodeInvalidInput, "label too long (max 256 characters)")
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a chart document path supplied by a client.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
