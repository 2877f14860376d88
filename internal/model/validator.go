package model

import "github.com/flavorconnect/flavorconnect/internal/validation"

// Validator is implemented by entities that check themselves before being written
type Validator interface {
	Validate() validation.Errors
}

var (
	_ Validator = (*Recipe)(nil)
	_ Validator = (*Attribute)(nil)
	_ Validator = (*Measurement)(nil)
	_ Validator = (*ReviewInput)(nil)
)
