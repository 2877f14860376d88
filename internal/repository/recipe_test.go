package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db/dbtest"
	"github.com/flavorconnect/flavorconnect/internal/model"
)

func TestRecipeIngredientsAndStepsRoundTrip(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	recipe := createRecipe(t, conn, user.ID, "Pancakes", 0)

	ingredients := NewIngredientRepository(conn)
	steps := NewStepRepository(conn)

	var items []*model.RecipeIngredient
	for _, name := range []string{"Flour", "Milk", "Eggs"} {
		ing, err := ingredients.FindOrCreate(name)
		require.NoError(t, err)
		items = append(items, &model.RecipeIngredient{IngredientID: ing.ID, MeasurementID: ptr(measurementCup), Quantity: 2})
	}
	require.NoError(t, ingredients.ReplaceForRecipe(recipe.ID, items))
	require.NoError(t, steps.ReplaceForRecipe(recipe.ID, []*model.RecipeStep{
		{Instruction: "Mix everything"},
		{Instruction: "Fry"},
	}))

	loaded, err := ingredients.ForRecipe(recipe.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "flour", loaded[0].IngredientName)
	assert.Equal(t, "milk", loaded[1].IngredientName)
	assert.Equal(t, "eggs", loaded[2].IngredientName)
	assert.Equal(t, "cups", loaded[0].Measurement())

	loadedSteps, err := steps.ForRecipe(recipe.ID)
	require.NoError(t, err)
	require.Len(t, loadedSteps, 2)
	assert.Equal(t, 1, loadedSteps[0].StepNumber)
	assert.Equal(t, "Mix everything", loadedSteps[0].Instruction)
	assert.Equal(t, 2, loadedSteps[1].StepNumber)
}

func TestIngredientFindOrCreateReusesLowercaseName(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewIngredientRepository(conn)

	first, err := repo.FindOrCreate("Brown Sugar")
	require.NoError(t, err)
	second, err := repo.FindOrCreate("  brown   SUGAR")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "brown sugar", second.Name)
}

func TestStepsRenumberOnReplace(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	recipe := createRecipe(t, conn, user.ID, "Soup", 0)
	steps := NewStepRepository(conn)

	require.NoError(t, steps.ReplaceForRecipe(recipe.ID, []*model.RecipeStep{
		{Instruction: "a"}, {Instruction: "b"}, {Instruction: "c"},
	}))
	require.NoError(t, steps.ReplaceForRecipe(recipe.ID, []*model.RecipeStep{
		{Instruction: "c"}, {Instruction: "a"},
	}))

	loaded, err := steps.ForRecipe(recipe.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, []int{1, 2}, []int{loaded[0].StepNumber, loaded[1].StepNumber})
	assert.Equal(t, "c", loaded[0].Instruction)
}

func TestRecipeByIDJoinsNamesAndRatings(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	rater := createUser(t, conn, "rater")
	recipe := createRecipe(t, conn, user.ID, "Tacos", 0, func(r *model.Recipe) {
		r.StyleID = ptr(styleMexican)
		r.SetPrepTime(1, 30)
	})

	reviews := NewReviewRepository(conn)
	require.NoError(t, reviews.SaveRating(&model.Rating{RecipeID: recipe.ID, UserID: user.ID, Value: 5, CreatedAt: baseTime}))
	require.NoError(t, reviews.SaveRating(&model.Rating{RecipeID: recipe.ID, UserID: rater.ID, Value: 4, CreatedAt: baseTime}))

	loaded, err := NewRecipeRepository(conn).ByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "cook", loaded.AuthorUsername)
	assert.Equal(t, "Mexican", loaded.StyleName)
	assert.Empty(t, loaded.DietName)
	assert.Nil(t, loaded.DietID)
	assert.InDelta(t, 4.5, loaded.AverageRating, 0.001)
	assert.Equal(t, 2, loaded.RatingCount)
	assert.Equal(t, 5400, loaded.PrepTime)
	assert.Equal(t, 1, loaded.PrepHours())
	assert.Equal(t, 30, loaded.PrepMinutes())
}

func TestRecipeByIDNotFound(t *testing.T) {
	conn := dbtest.New(t)

	_, err := NewRecipeRepository(conn).ByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeUpdateAndDelete(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	recipe := createRecipe(t, conn, user.ID, "Draft", 0)
	repo := NewRecipeRepository(conn)

	recipe.Title = "Final"
	recipe.DietID = ptr(dietVegan)
	recipe.UpdatedAt = baseTime.Add(time.Hour)
	require.NoError(t, repo.Update(recipe))

	loaded, err := repo.ByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", loaded.Title)
	assert.Equal(t, "Vegan", loaded.DietName)

	require.NoError(t, repo.Delete(recipe.ID))
	assert.ErrorIs(t, repo.Delete(recipe.ID), ErrRecipeNotFound)
}

func TestFilteredCountMatchesFullListing(t *testing.T) {
	conn := dbtest.New(t)
	alice := createUser(t, conn, "alice")
	bob := createUser(t, conn, "bob")

	createRecipe(t, conn, alice.ID, "Spaghetti Carbonara", 4*time.Hour, func(r *model.Recipe) {
		r.StyleID = ptr(styleItalian)
		r.TypeID = ptr(typeDinner)
	})
	createRecipe(t, conn, alice.ID, "Vegan Tacos", 3*time.Hour, func(r *model.Recipe) {
		r.StyleID = ptr(styleMexican)
		r.DietID = ptr(dietVegan)
		r.Description = "Quick weeknight pasta alternative"
	})
	createRecipe(t, conn, bob.ID, "Pasta Primavera", 2*time.Hour, func(r *model.Recipe) {
		r.StyleID = ptr(styleItalian)
		r.DietID = ptr(dietVegan)
		r.IsFeatured = true
	})
	createRecipe(t, conn, bob.ID, "Pancakes", time.Hour)

	favorites := NewFavoriteRepository(conn)
	all, err := NewRecipeRepository(conn).Filtered(RecipeFilter{}, 0, 0)
	require.NoError(t, err)
	require.NoError(t, favorites.Add(&model.Favorite{UserID: alice.ID, RecipeID: all[0].ID, CreatedAt: baseTime}))

	filters := []RecipeFilter{
		{},
		{Search: "pasta"},
		{Search: "PASTA", StyleID: styleItalian},
		{StyleID: styleItalian},
		{DietID: dietVegan},
		{StyleID: styleItalian, DietID: dietVegan},
		{TypeID: typeDinner},
		{UserID: bob.ID},
		{FavoritedBy: alice.ID},
		{Featured: true},
		{Search: "nothing matches this"},
		{Sort: SortRating, DietID: dietVegan},
		{Sort: "bogus", Search: "a"},
	}

	repo := NewRecipeRepository(conn)
	for _, f := range filters {
		count, err := repo.CountFiltered(f)
		require.NoError(t, err)

		listed, err := repo.Filtered(f, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, count, len(listed), "filter %+v", f)

		paged, err := repo.Filtered(f, count+10, 0)
		require.NoError(t, err)
		assert.Equal(t, count, len(paged), "filter %+v", f)
	}

	got, err := repo.Filtered(RecipeFilter{Search: "pasta"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta Primavera", "Vegan Tacos"}, titles(got))

	got, err = repo.Filtered(RecipeFilter{StyleID: styleItalian, DietID: dietVegan}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta Primavera"}, titles(got))
}

func TestFilteredSortOrders(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	rater := createUser(t, conn, "rater")

	oldest := createRecipe(t, conn, user.ID, "Oldest", 3*time.Hour)
	middle := createRecipe(t, conn, user.ID, "Middle", 2*time.Hour)
	createRecipe(t, conn, user.ID, "Newest", time.Hour)

	reviews := NewReviewRepository(conn)
	require.NoError(t, reviews.SaveRating(&model.Rating{RecipeID: oldest.ID, UserID: rater.ID, Value: 3, CreatedAt: baseTime}))
	require.NoError(t, reviews.SaveRating(&model.Rating{RecipeID: middle.ID, UserID: rater.ID, Value: 5, CreatedAt: baseTime}))

	repo := NewRecipeRepository(conn)

	got, err := repo.Filtered(RecipeFilter{Sort: SortNewest}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles(got))

	got, err = repo.Filtered(RecipeFilter{Sort: SortOldest}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oldest", "Middle", "Newest"}, titles(got))

	got, err = repo.Filtered(RecipeFilter{Sort: SortRating}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Middle", "Oldest", "Newest"}, titles(got))

	got, err = repo.Filtered(RecipeFilter{Sort: "unknown"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles(got))
}

func TestFilteredPaging(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	for i, title := range []string{"A", "B", "C", "D", "E"} {
		createRecipe(t, conn, user.ID, title, time.Duration(i)*time.Hour)
	}

	repo := NewRecipeRepository(conn)

	page, err := repo.Filtered(RecipeFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, titles(page))

	page, err = repo.Filtered(RecipeFilter{}, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, titles(page))
}

func TestRecipeDeleteCascadesChildren(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	recipe := createRecipe(t, conn, user.ID, "Toast", 0)

	require.NoError(t, NewStepRepository(conn).ReplaceForRecipe(recipe.ID, []*model.RecipeStep{{Instruction: "Toast it"}}))
	require.NoError(t, NewFavoriteRepository(conn).Add(&model.Favorite{UserID: user.ID, RecipeID: recipe.ID, CreatedAt: baseTime}))
	require.NoError(t, NewRecipeRepository(conn).Delete(recipe.ID))

	steps, err := NewStepRepository(conn).ForRecipe(recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, steps)

	fav, err := NewFavoriteRepository(conn).IsFavorited(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestRecipeImagePaths(t *testing.T) {
	conn := dbtest.New(t)
	user := createUser(t, conn, "cook")
	createRecipe(t, conn, user.ID, "With image", 0, func(r *model.Recipe) { r.ImagePath = "recipes/a.jpg" })
	createRecipe(t, conn, user.ID, "Without image", 0)

	paths, err := NewRecipeRepository(conn).ImagePaths(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"recipes/a.jpg"}, paths)
}
