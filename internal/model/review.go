package model

import (
	"strings"
	"time"

	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type Rating struct {
	ID        string    `db:"id"`
	RecipeID  string    `db:"recipe_id"`
	UserID    string    `db:"user_id"`
	Value     int       `db:"rating_value"`
	CreatedAt time.Time `db:"created_at"`
}

type Comment struct {
	ID        string    `db:"id"`
	RecipeID  string    `db:"recipe_id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"comment_text"`
	CreatedAt time.Time `db:"created_at"`
}

// Review is a rating joined with the optional comment left by the same user
type Review struct {
	RecipeID    string    `db:"recipe_id"`
	UserID      string    `db:"user_id"`
	Username    string    `db:"username"`
	RatingValue int       `db:"rating_value"`
	CommentText string    `db:"comment_text"`
	CreatedAt   time.Time `db:"created_at"`
}

// ReviewInput is what a user submits from the recipe page
type ReviewInput struct {
	Rating  int    `form:"rating" validate:"required,gte=1,lte=5"`
	Comment string `form:"comment" validate:"max=2000"`
}

func (in *ReviewInput) Validate() validation.Errors {
	in.Comment = strings.TrimSpace(in.Comment)
	return validation.Struct(in)
}
