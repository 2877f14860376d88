package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// NormalizeEmail is the stored and looked-up form of an account email
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare RFC 5322 address such as cook@example.com.
// Display-name forms like "Cook <cook@example.com>" are rejected.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321 path limit
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}

	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return errors.New("email address needs a full domain, e.g. example.com")
	}

	return nil
}
