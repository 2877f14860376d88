package validation

import (
	"errors"
	"strings"
)

// ValidateUsername allows 3-50 letters, digits and underscores
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return errors.New("username is required")
	}

	if len(trimmed) < 3 || len(trimmed) > 50 {
		return errors.New("username must be between 3 and 50 characters")
	}

	for _, r := range trimmed {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum && r != '_' {
			return errors.New("username may only contain letters, numbers and underscores")
		}
	}

	return nil
}
