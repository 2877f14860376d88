package repository

import (
	"strings"
)

// Sort orders accepted by RecipeFilter
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortRating = "rating"
)

// RecipeFilter narrows the recipe gallery. Empty fields are ignored.
type RecipeFilter struct {
	Search      string
	StyleID     string
	DietID      string
	TypeID      string
	UserID      string
	FavoritedBy string
	Featured    bool
	Sort        string
}

// NormalizedSort returns the sort order to apply, defaulting to newest
func (f RecipeFilter) NormalizedSort() string {
	switch f.Sort {
	case SortOldest, SortRating:
		return f.Sort
	}
	return SortNewest
}

// recipeSelect joins everything shown on recipe cards: author, lookup names
// and the rating aggregate.
const recipeSelect = `SELECT r.*,
	COALESCE(u.username, '') AS author_username,
	COALESCE(rs.name, '') AS style_name,
	COALESCE(rd.name, '') AS diet_name,
	COALESCE(rt.name, '') AS type_name,
	COALESCE(ra.avg_rating, 0) AS avg_rating,
	COALESCE(ra.rating_count, 0) AS rating_count
FROM recipe r
LEFT JOIN user_account u ON u.id = r.user_id
LEFT JOIN recipe_style rs ON rs.id = r.style_id
LEFT JOIN recipe_diet rd ON rd.id = r.diet_id
LEFT JOIN recipe_type rt ON rt.id = r.type_id
LEFT JOIN (
	SELECT recipe_id, AVG(rating_value) AS avg_rating, COUNT(*) AS rating_count
	FROM recipe_rating
	GROUP BY recipe_id
) ra ON ra.recipe_id = r.id`

// RecipeQuery turns a RecipeFilter into SQL. It is the only place recipe
// predicates are built, so listing and counting can never disagree.
type RecipeQuery struct {
	filter RecipeFilter
}

func NewRecipeQuery(filter RecipeFilter) RecipeQuery {
	return RecipeQuery{filter: filter}
}

// Where returns the WHERE clause (empty when unfiltered) and its arguments
func (q RecipeQuery) Where() (string, []any) {
	var conds []string
	var args []any

	f := q.filter
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + escapeLike(term) + "%"
		conds = append(conds, `(LOWER(r.title) LIKE ? ESCAPE '\' OR LOWER(r.description) LIKE ? ESCAPE '\')`)
		args = append(args, like, like)
	}
	if f.StyleID != "" {
		conds = append(conds, "r.style_id = ?")
		args = append(args, f.StyleID)
	}
	if f.DietID != "" {
		conds = append(conds, "r.diet_id = ?")
		args = append(args, f.DietID)
	}
	if f.TypeID != "" {
		conds = append(conds, "r.type_id = ?")
		args = append(args, f.TypeID)
	}
	if f.UserID != "" {
		conds = append(conds, "r.user_id = ?")
		args = append(args, f.UserID)
	}
	if f.FavoritedBy != "" {
		conds = append(conds, "r.id IN (SELECT recipe_id FROM user_favorite WHERE user_id = ?)")
		args = append(args, f.FavoritedBy)
	}
	if f.Featured {
		conds = append(conds, "r.is_featured = ?")
		args = append(args, true)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// OrderBy returns the ORDER BY clause. Ties break on id so paging is stable.
func (q RecipeQuery) OrderBy() string {
	switch q.filter.NormalizedSort() {
	case SortOldest:
		return " ORDER BY r.created_at ASC, r.id ASC"
	case SortRating:
		return " ORDER BY COALESCE(ra.avg_rating, 0) DESC, COALESCE(ra.rating_count, 0) DESC, r.created_at DESC, r.id ASC"
	default:
		return " ORDER BY r.created_at DESC, r.id ASC"
	}
}

// Select returns the listing query. A limit of 0 or less returns every row.
func (q RecipeQuery) Select(limit, offset int) (string, []any) {
	where, args := q.Where()
	query := recipeSelect + where + q.OrderBy()
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	return query, args
}

// Count returns the query counting every row matched by the filter
func (q RecipeQuery) Count() (string, []any) {
	where, args := q.Where()
	return "SELECT COUNT(*) FROM recipe r" + where, args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
