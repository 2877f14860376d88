package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrStepNotFound = errors.New("recipe step not found")
)

type StepRepository interface {
	ForRecipe(recipeID string) ([]*model.RecipeStep, error)
	// ReplaceForRecipe stores steps numbered 1..n in the given order
	ReplaceForRecipe(recipeID string, steps []*model.RecipeStep) error
	WithTx(tx *sqlx.Tx) StepRepository
}

var stepTable = table[model.RecipeStep]{name: "recipe_step", idColumn: "id", notFound: ErrStepNotFound}

type stepRepository struct {
	db sqlx.Ext
}

func NewStepRepository(db *sqlx.DB) StepRepository {
	return &stepRepository{db: db}
}

func (r *stepRepository) WithTx(tx *sqlx.Tx) StepRepository {
	return &stepRepository{db: tx}
}

func (r *stepRepository) ForRecipe(recipeID string) ([]*model.RecipeStep, error) {
	return stepTable.bySQL(r.db, `SELECT * FROM recipe_step WHERE recipe_id = ? ORDER BY step_number ASC`, recipeID)
}

func (r *stepRepository) ReplaceForRecipe(recipeID string, steps []*model.RecipeStep) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM recipe_step WHERE recipe_id = ?`), recipeID)
	if err != nil {
		return err
	}

	for i, step := range steps {
		if step.ID == "" {
			step.ID = uuid.New().String()
		}
		step.RecipeID = recipeID
		step.StepNumber = i + 1

		err := stepTable.insert(r.db, step, "id", "recipe_id", "step_number", "instruction")
		if err != nil {
			return err
		}
	}
	return nil
}
