package model

type RecipeStep struct {
	ID          string `db:"id"`
	RecipeID    string `db:"recipe_id"`
	StepNumber  int    `db:"step_number"`
	Instruction string `db:"instruction"`
}
