package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
)

type IngredientRepository interface {
	// FindOrCreate returns the ingredient stored under the lowercase name, creating it when missing
	FindOrCreate(name string) (*model.Ingredient, error)
	ForRecipe(recipeID string) ([]*model.RecipeIngredient, error)
	// ReplaceForRecipe swaps the recipe's ingredient rows, keeping the given order
	ReplaceForRecipe(recipeID string, items []*model.RecipeIngredient) error
	WithTx(tx *sqlx.Tx) IngredientRepository
}

var (
	ingredientTable       = table[model.Ingredient]{name: "ingredient", idColumn: "id", notFound: ErrIngredientNotFound}
	recipeIngredientTable = table[model.RecipeIngredient]{name: "recipe_ingredient", idColumn: "id", notFound: ErrIngredientNotFound}
)

type ingredientRepository struct {
	db sqlx.Ext
}

func NewIngredientRepository(db *sqlx.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) WithTx(tx *sqlx.Tx) IngredientRepository {
	return &ingredientRepository{db: tx}
}

// A duplicate name must not fail the statement: PostgreSQL aborts the
// enclosing transaction on any error.
func (r *ingredientRepository) FindOrCreate(name string) (*model.Ingredient, error) {
	name = model.NormalizeIngredientName(name)

	_, err := r.db.Exec(r.db.Rebind(`INSERT INTO ingredient (id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`),
		uuid.New().String(), name)
	if err != nil {
		return nil, err
	}
	return ingredientTable.one(r.db, `SELECT * FROM ingredient WHERE name = ?`, name)
}

func (r *ingredientRepository) ForRecipe(recipeID string) ([]*model.RecipeIngredient, error) {
	query := `SELECT ri.*,
		i.name AS ingredient_name,
		COALESCE(m.name, '') AS measurement_name
	FROM recipe_ingredient ri
	JOIN ingredient i ON i.id = ri.ingredient_id
	LEFT JOIN measurement m ON m.id = ri.measurement_id
	WHERE ri.recipe_id = ?
	ORDER BY ri.sort_order ASC`

	return recipeIngredientTable.bySQL(r.db, query, recipeID)
}

func (r *ingredientRepository) ReplaceForRecipe(recipeID string, items []*model.RecipeIngredient) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM recipe_ingredient WHERE recipe_id = ?`), recipeID)
	if err != nil {
		return err
	}

	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.RecipeID = recipeID
		item.SortOrder = i

		err := recipeIngredientTable.insert(r.db, item,
			"id", "recipe_id", "ingredient_id", "measurement_id", "quantity", "sort_order")
		if err != nil {
			return err
		}
	}
	return nil
}
