package model

import "time"

// Favorite is a pure join row between a user and a recipe
type Favorite struct {
	UserID    string    `db:"user_id"`
	RecipeID  string    `db:"recipe_id"`
	CreatedAt time.Time `db:"created_at"`
}
