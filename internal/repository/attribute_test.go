package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db/dbtest"
	"github.com/flavorconnect/flavorconnect/internal/model"
)

func names(attrs []*model.Attribute) []string {
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a.Name)
	}
	return out
}

func TestAttributeByKindReadsOnlyThatTable(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewAttributeRepository(conn)

	diets, err := repo.ByKind(model.AttributeDiet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gluten-Free", "Keto", "Vegan", "Vegetarian"}, names(diets))
	for _, d := range diets {
		assert.Equal(t, model.AttributeDiet, d.Kind)
	}

	// Adding a style must not leak into diets
	require.NoError(t, repo.Create(&model.Attribute{ID: uuid.New().String(), Name: "Alpine", Kind: model.AttributeStyle}))

	diets, err = repo.ByKind(model.AttributeDiet)
	require.NoError(t, err)
	assert.NotContains(t, names(diets), "Alpine")

	styles, err := repo.ByKind(model.AttributeStyle)
	require.NoError(t, err)
	assert.Equal(t, "Alpine", styles[0].Name)
}

func TestAttributeKindsAreIndependentInSequence(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewAttributeRepository(conn)

	_, err := repo.ByKind(model.AttributeStyle)
	require.NoError(t, err)

	types, err := repo.ByKind(model.AttributeType)
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast", "Dessert", "Dinner", "Lunch", "Snack"}, names(types))

	_, err = repo.ByID(model.AttributeStyle, dietVegan)
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	vegan, err := repo.ByID(model.AttributeDiet, dietVegan)
	require.NoError(t, err)
	assert.Equal(t, "Vegan", vegan.Name)
}

func TestAttributeDuplicateAndNameExists(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewAttributeRepository(conn)

	err := repo.Create(&model.Attribute{ID: uuid.New().String(), Name: "Vegan", Kind: model.AttributeDiet})
	assert.ErrorIs(t, err, ErrDuplicateAttribute)

	// Same name in another table is fine
	require.NoError(t, repo.Create(&model.Attribute{ID: uuid.New().String(), Name: "Vegan", Kind: model.AttributeStyle}))

	exists, err := repo.NameExists(model.AttributeDiet, "vegan", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NameExists(model.AttributeDiet, "Vegan", dietVegan)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAttributeUpdateDeleteAndRecipeCount(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewAttributeRepository(conn)
	user := createUser(t, conn, "cook")
	recipe := createRecipe(t, conn, user.ID, "Lasagna", 0, func(r *model.Recipe) { r.StyleID = ptr(styleItalian) })

	n, err := repo.CountRecipes(model.AttributeStyle, styleItalian)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Update(&model.Attribute{ID: styleItalian, Name: "Italiano", Kind: model.AttributeStyle}))
	loaded, err := NewRecipeRepository(conn).ByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Italiano", loaded.StyleName)

	require.NoError(t, repo.Delete(model.AttributeStyle, styleItalian))
	assert.ErrorIs(t, repo.Delete(model.AttributeStyle, styleItalian), ErrAttributeNotFound)

	loaded, err = NewRecipeRepository(conn).ByID(recipe.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.StyleID)
}

func TestAttributeUnknownKind(t *testing.T) {
	conn := dbtest.New(t)

	_, err := NewAttributeRepository(conn).ByKind(model.AttributeKind("cuisine"))
	assert.Error(t, err)
}

func TestMeasurementRepository(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewMeasurementRepository(conn)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 10)
	assert.Equal(t, "clove", all[0].Name)

	err = repo.Create(&model.Measurement{ID: uuid.New().String(), Name: "cup"})
	assert.ErrorIs(t, err, ErrDuplicateMeasurement)

	m := &model.Measurement{ID: uuid.New().String(), Name: "sprig"}
	require.NoError(t, repo.Create(m))
	m.Name = "sprigs"
	require.NoError(t, repo.Update(m))

	loaded, err := repo.ByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "sprigs", loaded.Name)

	require.NoError(t, repo.Delete(m.ID))
	_, err = repo.ByID(m.ID)
	assert.ErrorIs(t, err, ErrMeasurementNotFound)
}
