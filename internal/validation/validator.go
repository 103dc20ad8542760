package validation

import (
	"regexp"
	"strings"
)

// Validator provides common validation utilities
type Validator struct {
	hexColorRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		hexColorRegex: regexp.MustCompile(`^#[0-9a-fA-F]{6}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidHexColor checks if a string is a #rrggbb hex color
func (v *Validator) IsValidHexColor(s string) bool {
	return v.hexColorRegex.MatchString(s)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
