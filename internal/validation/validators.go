package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/legalia/intake-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateLegalCategory validates a LegalCategory string value
func ValidateLegalCategory(value string) error {
	if !models.LegalCategory(value).IsValid() {
		return fmt.Errorf("invalid category: %s (must be one of 'Civil', 'Penal', 'Laboral', 'Administrativo', 'Comercial', 'Familia')", value)
	}
	return nil
}
