package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributeKind(t *testing.T) {
	for _, in := range []string{"style", "styles", "Diet", " types "} {
		_, err := ParseAttributeKind(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseAttributeKind("measurement")
	assert.Error(t, err)
}

func TestAttributeKindTable(t *testing.T) {
	kind, err := ParseAttributeKind("diets")
	require.NoError(t, err)

	table := kind.Table()
	assert.Equal(t, "recipe_diet", table.Table)
	assert.Equal(t, "diet_id", table.RecipeColumn)
}

func TestAttributeValidate(t *testing.T) {
	a := &Attribute{Kind: AttributeStyle, Name: "  "}
	assert.True(t, a.Validate().Has("name"))

	a = &Attribute{Kind: AttributeStyle, Name: strings.Repeat("a", 101)}
	assert.True(t, a.Validate().Has("name"))

	a = &Attribute{Kind: AttributeStyle, Name: " Thai "}
	assert.True(t, a.Validate().Empty())
	assert.Equal(t, "Thai", a.Name)
}
