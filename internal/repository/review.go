package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
)

// ReviewRepository stores ratings and comments. Both are keyed by
// (recipe_id, user_id) and hold at most one row per pair.
type ReviewRepository interface {
	UserRating(recipeID, userID string) (*model.Rating, error)
	SaveRating(rating *model.Rating) error
	SaveComment(comment *model.Comment) error
	DeleteComment(recipeID, userID string) error
	ForRecipe(recipeID string) ([]*model.Review, error)
	WithTx(tx *sqlx.Tx) ReviewRepository
}

var (
	ratingTable = table[model.Rating]{name: "recipe_rating", idColumn: "id", notFound: ErrRatingNotFound}
	reviewTable = table[model.Review]{name: "recipe_rating", idColumn: "id", notFound: ErrRatingNotFound}
)

type reviewRepository struct {
	db sqlx.Ext
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *sqlx.Tx) ReviewRepository {
	return &reviewRepository{db: tx}
}

func (r *reviewRepository) UserRating(recipeID, userID string) (*model.Rating, error) {
	return ratingTable.one(r.db, `SELECT * FROM recipe_rating WHERE recipe_id = ? AND user_id = ?`, recipeID, userID)
}

// SaveRating replaces the user's previous rating for the recipe
func (r *reviewRepository) SaveRating(rating *model.Rating) error {
	query := r.db.Rebind(`UPDATE recipe_rating SET rating_value = ?, created_at = ? WHERE recipe_id = ? AND user_id = ?`)

	result, err := r.db.Exec(query, rating.Value, rating.CreatedAt, rating.RecipeID, rating.UserID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	return ratingTable.insert(r.db, rating, "id", "recipe_id", "user_id", "rating_value", "created_at")
}

// SaveComment replaces the user's previous comment for the recipe
func (r *reviewRepository) SaveComment(comment *model.Comment) error {
	query := r.db.Rebind(`UPDATE recipe_comment SET comment_text = ?, created_at = ? WHERE recipe_id = ? AND user_id = ?`)

	result, err := r.db.Exec(query, comment.Text, comment.CreatedAt, comment.RecipeID, comment.UserID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	_, err = sqlx.NamedExec(r.db, `INSERT INTO recipe_comment (id, recipe_id, user_id, comment_text, created_at)
		VALUES (:id, :recipe_id, :user_id, :comment_text, :created_at)`, comment)
	return err
}

func (r *reviewRepository) DeleteComment(recipeID, userID string) error {
	query := r.db.Rebind(`DELETE FROM recipe_comment WHERE recipe_id = ? AND user_id = ?`)

	_, err := r.db.Exec(query, recipeID, userID)
	return err
}

// ForRecipe returns each rating with the comment left by the same user, newest first
func (r *reviewRepository) ForRecipe(recipeID string) ([]*model.Review, error) {
	query := `SELECT rr.recipe_id, rr.user_id,
		COALESCE(u.username, '') AS username,
		rr.rating_value,
		COALESCE(rc.comment_text, '') AS comment_text,
		rr.created_at
	FROM recipe_rating rr
	LEFT JOIN user_account u ON u.id = rr.user_id
	LEFT JOIN recipe_comment rc ON rc.recipe_id = rr.recipe_id AND rc.user_id = rr.user_id
	WHERE rr.recipe_id = ?
	ORDER BY rr.created_at DESC`

	return reviewTable.bySQL(r.db, query, recipeID)
}
