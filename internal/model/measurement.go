package model

import (
	"strings"

	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type Measurement struct {
	ID   string `db:"id"`
	Name string `db:"name" form:"name" validate:"required,max=100"`
}

func (m *Measurement) Validate() validation.Errors {
	m.Name = strings.TrimSpace(m.Name)
	return validation.Struct(m)
}

// NameFor returns the measurement name agreeing with quantity
func (m *Measurement) NameFor(quantity float64) string {
	return PluralizeMeasurement(m.Name, quantity)
}

// irregular plural forms of measurement names
var measurementPlurals = map[string]string{
	"dash":  "dashes",
	"pinch": "pinches",
}

// PluralizeMeasurement returns name unchanged for quantities up to one,
// otherwise its plural form.
func PluralizeMeasurement(name string, quantity float64) string {
	if quantity <= 1 || name == "" {
		return name
	}
	if plural, ok := measurementPlurals[strings.ToLower(name)]; ok {
		return plural
	}
	return name + "s"
}
