package repository

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

type RecipeRepository interface {
	Create(recipe *model.Recipe) error
	Update(recipe *model.Recipe) error
	UpdateImage(id, imagePath string) error
	SetFeatured(id string, featured bool) error
	Delete(id string) error
	ByID(id string) (*model.Recipe, error)
	Filtered(filter RecipeFilter, limit, offset int) ([]*model.Recipe, error)
	CountFiltered(filter RecipeFilter) (int, error)
	ImagePaths(userID string) ([]string, error)
	WithTx(tx *sqlx.Tx) RecipeRepository
}

var recipeTable = table[model.Recipe]{name: "recipe", idColumn: "id", notFound: ErrRecipeNotFound}

var recipeColumns = []string{
	"id", "user_id", "title", "description", "style_id", "diet_id", "type_id",
	"prep_time", "cook_time", "img_file_path", "video_url", "is_featured", "created_at", "updated_at",
}

// editable columns; ownership and creation time never change
var recipeUpdateColumns = []string{
	"id", "title", "description", "style_id", "diet_id", "type_id",
	"prep_time", "cook_time", "img_file_path", "video_url", "is_featured", "updated_at",
}

type recipeRepository struct {
	db sqlx.Ext
}

func NewRecipeRepository(db *sqlx.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) WithTx(tx *sqlx.Tx) RecipeRepository {
	return &recipeRepository{db: tx}
}

func (r *recipeRepository) Create(recipe *model.Recipe) error {
	return recipeTable.insert(r.db, recipe, recipeColumns...)
}

func (r *recipeRepository) Update(recipe *model.Recipe) error {
	return recipeTable.update(r.db, recipe, recipeUpdateColumns...)
}

func (r *recipeRepository) UpdateImage(id, imagePath string) error {
	query := r.db.Rebind(`UPDATE recipe SET img_file_path = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.Exec(query, imagePath, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return recipeTable.affected(result)
}

func (r *recipeRepository) SetFeatured(id string, featured bool) error {
	query := r.db.Rebind(`UPDATE recipe SET is_featured = ? WHERE id = ?`)

	result, err := r.db.Exec(query, featured, id)
	if err != nil {
		return err
	}
	return recipeTable.affected(result)
}

// Delete removes the recipe; ingredients, steps, favorites and reviews cascade
func (r *recipeRepository) Delete(id string) error {
	return recipeTable.delete(r.db, id)
}

func (r *recipeRepository) ByID(id string) (*model.Recipe, error) {
	return recipeTable.one(r.db, recipeSelect+" WHERE r.id = ?", id)
}

// Filtered returns one page of recipes matching filter; limit <= 0 returns all of them
func (r *recipeRepository) Filtered(filter RecipeFilter, limit, offset int) ([]*model.Recipe, error) {
	query, args := NewRecipeQuery(filter).Select(limit, offset)
	return recipeTable.bySQL(r.db, query, args...)
}

func (r *recipeRepository) CountFiltered(filter RecipeFilter) (int, error) {
	query, args := NewRecipeQuery(filter).Count()
	return recipeTable.countBySQL(r.db, query, args...)
}

// ImagePaths lists stored image paths of a user's recipes so files can be
// removed before the account is deleted
func (r *recipeRepository) ImagePaths(userID string) ([]string, error) {
	var paths []string
	query := r.db.Rebind(`SELECT img_file_path FROM recipe WHERE user_id = ? AND img_file_path <> ''`)

	err := sqlx.Select(r.db, &paths, query, userID)
	if err != nil {
		return nil, err
	}
	return paths, nil
}
