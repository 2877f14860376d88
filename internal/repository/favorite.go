package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

type FavoriteRepository interface {
	IsFavorited(userID, recipeID string) (bool, error)
	Add(fav *model.Favorite) error
	Remove(userID, recipeID string) error
	FavoritedIDs(userID string, recipeIDs []string) (map[string]bool, error)
	CountForRecipe(recipeID string) (int, error)
}

type favoriteRepository struct {
	db sqlx.Ext
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) IsFavorited(userID, recipeID string) (bool, error) {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_favorite WHERE user_id = ? AND recipe_id = ?`)

	err := sqlx.Get(r.db, &n, query, userID, recipeID)
	return n > 0, err
}

// Add is a no-op when the pair already exists
func (r *favoriteRepository) Add(fav *model.Favorite) error {
	_, err := sqlx.NamedExec(r.db,
		`INSERT INTO user_favorite (user_id, recipe_id, created_at) VALUES (:user_id, :recipe_id, :created_at)
		ON CONFLICT DO NOTHING`, fav)
	return err
}

func (r *favoriteRepository) Remove(userID, recipeID string) error {
	query := r.db.Rebind(`DELETE FROM user_favorite WHERE user_id = ? AND recipe_id = ?`)

	_, err := r.db.Exec(query, userID, recipeID)
	return err
}

// FavoritedIDs reports which of recipeIDs the user has favorited
func (r *favoriteRepository) FavoritedIDs(userID string, recipeIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT recipe_id FROM user_favorite WHERE user_id = ? AND recipe_id IN (?)`, userID, recipeIDs)
	if err != nil {
		return nil, err
	}

	var ids []string
	err = sqlx.Select(r.db, &ids, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *favoriteRepository) CountForRecipe(recipeID string) (int, error) {
	var n int
	err := sqlx.Get(r.db, &n, r.db.Rebind(`SELECT COUNT(*) FROM user_favorite WHERE recipe_id = ?`), recipeID)
	return n, err
}
