package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/flavorconnect/flavorconnect/internal/imaging"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/router"
	"github.com/flavorconnect/flavorconnect/internal/service"
)

// APIHandler serves the read-only JSON view of recipes
type APIHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
	perPage       int
}

func NewAPIHandler(recipeService *service.RecipeService, imageService *service.ImageService, perPage int) *APIHandler {
	return &APIHandler{
		recipeService: recipeService,
		imageService:  imageService,
		perPage:       perPage,
	}
}

type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type apiRecipe struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Author        string          `json:"author"`
	Style         string          `json:"style,omitempty"`
	Diet          string          `json:"diet,omitempty"`
	Type          string          `json:"type,omitempty"`
	PrepTime      int             `json:"prep_time"`
	CookTime      int             `json:"cook_time"`
	ImageURL      string          `json:"image_url,omitempty"`
	ThumbnailURL  string          `json:"thumbnail_url,omitempty"`
	VideoURL      string          `json:"video_url,omitempty"`
	IsFeatured    bool            `json:"is_featured"`
	AverageRating float64         `json:"average_rating"`
	RatingCount   int             `json:"rating_count"`
	CreatedAt     time.Time       `json:"created_at"`
	Ingredients   []apiIngredient `json:"ingredients,omitempty"`
	Steps         []string        `json:"steps,omitempty"`
}

type apiIngredient struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Measurement string  `json:"measurement,omitempty"`
}

type apiPagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type apiList struct {
	Success    bool          `json:"success"`
	Recipes    []apiRecipe   `json:"recipes"`
	Pagination apiPagination `json:"pagination"`
}

type apiDetail struct {
	Success bool      `json:"success"`
	Recipe  apiRecipe `json:"recipe"`
}

func (h *APIHandler) toAPI(r *model.Recipe) apiRecipe {
	out := apiRecipe{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Author:        r.AuthorUsername,
		Style:         r.StyleName,
		Diet:          r.DietName,
		Type:          r.TypeName,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		VideoURL:      r.VideoURL,
		IsFeatured:    r.IsFeatured,
		AverageRating: r.AverageRating,
		RatingCount:   r.RatingCount,
		CreatedAt:     r.CreatedAt,
	}
	if r.ImagePath != "" {
		out.ImageURL = h.imageService.URL(r.ImagePath, imaging.VariantOptimized)
		out.ThumbnailURL = h.imageService.URL(r.ImagePath, imaging.VariantThumb)
	}
	return out
}

// Recipes dispatches on ?action=list (default) or ?action=get&id=
func (h *APIHandler) Recipes(w http.ResponseWriter, r *http.Request) {
	switch action := r.URL.Query().Get("action"); action {
	case "", "list":
		h.list(w, r)
	case "get":
		h.get(w, r, r.URL.Query().Get("id"))
	default:
		writeJSON(w, http.StatusBadRequest, apiError{Error: "unknown action " + action})
	}
}

// Recipe is the REST form of ?action=get
func (h *APIHandler) Recipe(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, router.Param(r, "id"))
}

func (h *APIHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.recipeService.List(filterFromQuery(r.URL.Query()), pageParam(r), h.perPage, "")
	if err != nil {
		slog.Error("api failed to list recipes", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to list recipes"})
		return
	}

	out := apiList{
		Success: true,
		Recipes: make([]apiRecipe, 0, len(page.Recipes)),
		Pagination: apiPagination{
			Page:       page.Pagination.CurrentPage,
			PerPage:    page.Pagination.PerPage,
			Total:      page.Pagination.TotalCount,
			TotalPages: page.Pagination.TotalPages(),
		},
	}
	for _, recipe := range page.Recipes {
		out.Recipes = append(out.Recipes, h.toAPI(recipe))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *APIHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	if id == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "id is required"})
		return
	}

	detail, err := h.recipeService.Detail(id, "")
	if isNotFound(err) {
		writeJSON(w, http.StatusNotFound, apiError{Error: "recipe not found"})
		return
	}
	if err != nil {
		slog.Error("api failed to load recipe", "recipe_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to load recipe"})
		return
	}

	out := h.toAPI(detail.Recipe)
	for _, ing := range detail.Ingredients {
		out.Ingredients = append(out.Ingredients, apiIngredient{
			Name:        ing.IngredientName,
			Quantity:    ing.Quantity,
			Measurement: model.PluralizeMeasurement(ing.MeasurementName, ing.Quantity),
		})
	}
	for _, step := range detail.Steps {
		out.Steps = append(out.Steps, step.Instruction)
	}
	writeJSON(w, http.StatusOK, apiDetail{Success: true, Recipe: out})
}
