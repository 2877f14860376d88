package validation

import (
	"errors"
	"strings"
	"unicode"
)

// ValidatePassword validates password strength.
// At least 8 characters with an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain an uppercase letter, a lowercase letter and a number")
	}

	lower := strings.ToLower(password)
	for _, pattern := range []string{"password", "123456", "qwerty", "letmein"} {
		if strings.Contains(lower, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
