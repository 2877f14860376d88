package model

import (
	"fmt"
	"strings"

	"github.com/flavorconnect/flavorconnect/internal/validation"
)

// AttributeKind selects one of the interchangeable recipe lookup tables
type AttributeKind string

const (
	AttributeStyle AttributeKind = "style"
	AttributeDiet  AttributeKind = "diet"
	AttributeType  AttributeKind = "type"
)

// AttributeKinds lists every kind in display order
var AttributeKinds = []AttributeKind{AttributeStyle, AttributeDiet, AttributeType}

// AttributeTable describes where the rows of one attribute kind live
type AttributeTable struct {
	Kind     AttributeKind
	Table    string
	IDColumn string
	// RecipeColumn is the foreign key column on recipe referencing this table
	RecipeColumn string
}

var attributeTables = map[AttributeKind]AttributeTable{
	AttributeStyle: {Kind: AttributeStyle, Table: "recipe_style", IDColumn: "id", RecipeColumn: "style_id"},
	AttributeDiet:  {Kind: AttributeDiet, Table: "recipe_diet", IDColumn: "id", RecipeColumn: "diet_id"},
	AttributeType:  {Kind: AttributeType, Table: "recipe_type", IDColumn: "id", RecipeColumn: "type_id"},
}

// ParseAttributeKind accepts singular or plural forms ("style", "styles")
func ParseAttributeKind(s string) (AttributeKind, error) {
	kind := AttributeKind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown recipe attribute kind %q", s)
	}
	return kind, nil
}

func (k AttributeKind) Valid() bool {
	_, ok := attributeTables[k]
	return ok
}

// Table returns the table configuration, panicking on an unknown kind.
// Kinds coming from user input must go through ParseAttributeKind first.
func (k AttributeKind) Table() AttributeTable {
	t, ok := attributeTables[k]
	if !ok {
		panic(fmt.Sprintf("model: unknown attribute kind %q", string(k)))
	}
	return t
}

func (k AttributeKind) Label() string {
	switch k {
	case AttributeStyle:
		return "Style"
	case AttributeDiet:
		return "Diet"
	case AttributeType:
		return "Type"
	}
	return string(k)
}

func (k AttributeKind) PluralLabel() string {
	return k.Label() + "s"
}

// Attribute is a single row in a lookup table (style, diet or type)
type Attribute struct {
	ID   string        `db:"id"`
	Name string        `db:"name" form:"name" validate:"required,max=100"`
	Kind AttributeKind `db:"-"`
}

func (a *Attribute) Validate() validation.Errors {
	a.Name = strings.TrimSpace(a.Name)
	errs := validation.Struct(a)
	if !a.Kind.Valid() {
		errs.Add("kind", "unknown attribute kind")
	}
	return errs
}
