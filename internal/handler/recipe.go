package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flavorconnect/flavorconnect/internal/ctxkeys"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/router"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type RecipeHandler struct {
	recipeService    *service.RecipeService
	attributeService *service.AttributeService
	reviewService    *service.ReviewService
	favoriteService  *service.FavoriteService
	imageService     *service.ImageService
	perPage          int
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	attributeService *service.AttributeService,
	reviewService *service.ReviewService,
	favoriteService *service.FavoriteService,
	imageService *service.ImageService,
	perPage int,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:    recipeService,
		attributeService: attributeService,
		reviewService:    reviewService,
		favoriteService:  favoriteService,
		imageService:     imageService,
		perPage:          perPage,
	}
}

// filterFromQuery reads the gallery filter; unknown sort values fall back to newest
func filterFromQuery(q url.Values) repository.RecipeFilter {
	return repository.RecipeFilter{
		Search:  strings.TrimSpace(q.Get("search")),
		StyleID: q.Get("style"),
		DietID:  q.Get("diet"),
		TypeID:  q.Get("type"),
		Sort:    q.Get("sort"),
	}
}

// Index lists recipes. With ?mine=1 it lists the current user's own recipes.
func (h *RecipeHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	query := r.URL.Query()
	filter := filterFromQuery(query)

	title := "Recipes"
	empty := "No recipes match your search."
	if query.Get("mine") != "" {
		if !sess.IsLoggedIn() {
			redirect(w, r, ctxkeys.URL(r.Context(), "login")+"?next="+url.QueryEscape(r.URL.RequestURI()))
			return
		}
		filter.UserID = sess.UserID
		title = "My recipes"
		empty = "You haven't shared any recipes yet."
	}

	h.gallery(w, r, pages.GalleryProps{
		Title:     title,
		RouteName: "recipes.index",
		Filter:    filter,
		Query:     query,
		ShowForm:  true,
		Empty:     empty,
	})
}

// Favorites lists the recipes the current user has favorited
func (h *RecipeHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := filterFromQuery(query)
	filter.FavoritedBy = actor(r).UserID

	h.gallery(w, r, pages.GalleryProps{
		Title:     "Favorites",
		RouteName: "favorites",
		Filter:    filter,
		Query:     query,
		Empty:     "Tap the heart on a recipe to save it here.",
	})
}

func (h *RecipeHandler) gallery(w http.ResponseWriter, r *http.Request, props pages.GalleryProps) {
	page, err := h.recipeService.List(props.Filter, pageParam(r), h.perPage, actor(r).UserID)
	if err != nil {
		renderError(w, r, err, "failed to list recipes", "route", props.RouteName)
		return
	}
	props.Page = page
	props.Images = h.imageService

	if isHTMX(r) {
		ui.RenderFragment(w, r, pages.GalleryFragment(props))
		return
	}

	options, err := h.attributeService.Options()
	if err != nil {
		renderError(w, r, err, "failed to load recipe options")
		return
	}
	props.Options = options
	ui.Render(w, r, pages.Gallery(props))
}

func (h *RecipeHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, nil, model.ReviewInput{})
}

func (h *RecipeHandler) show(w http.ResponseWriter, r *http.Request, status int, reviewErrs validation.Errors, review model.ReviewInput) {
	id := router.Param(r, "id")

	detail, err := h.recipeService.Detail(id, actor(r).UserID)
	if err != nil {
		renderError(w, r, err, "failed to load recipe", "recipe_id", id)
		return
	}
	if review.Rating == 0 {
		review.Rating = detail.UserRating
	}

	ui.RenderStatus(w, r, status, pages.RecipeShow(pages.RecipeShowProps{
		Detail:       detail,
		Images:       h.imageService,
		ReviewErrors: reviewErrs,
		Review:       review,
	}))
}

func (h *RecipeHandler) New(w http.ResponseWriter, r *http.Request) {
	h.form(w, r, http.StatusOK, nil, service.RecipeInput{}, nil)
}

func (h *RecipeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	recipe, input, err := h.recipeService.Form(actor(r), router.Param(r, "id"))
	if err != nil {
		renderError(w, r, err, "failed to load recipe form", "recipe_id", router.Param(r, "id"))
		return
	}
	h.form(w, r, http.StatusOK, recipe, input, nil)
}

func (h *RecipeHandler) form(w http.ResponseWriter, r *http.Request, status int, recipe *model.Recipe, input service.RecipeInput, errs validation.Errors) {
	options, err := h.attributeService.Options()
	if err != nil {
		renderError(w, r, err, "failed to load recipe options")
		return
	}

	ui.RenderStatus(w, r, status, pages.RecipeForm(pages.RecipeFormProps{
		Recipe:  recipe,
		Input:   input,
		Errors:  errs,
		Options: options,
	}))
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, errs, err := parseRecipeInput(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if !errs.Empty() {
		h.form(w, r, http.StatusUnprocessableEntity, nil, input, errs)
		return
	}

	recipe, err := h.recipeService.Create(actor(r), input)
	if errors.As(err, &errs) {
		h.form(w, r, http.StatusUnprocessableEntity, nil, input, errs)
		return
	}
	if err != nil {
		renderError(w, r, err, "failed to create recipe")
		return
	}

	h.attachImage(w, r, recipe, "Recipe shared!")
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	input, errs, err := parseRecipeInput(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if !errs.Empty() {
		recipe, _, err := h.recipeService.Form(actor(r), id)
		if err != nil {
			renderError(w, r, err, "failed to load recipe form", "recipe_id", id)
			return
		}
		h.form(w, r, http.StatusUnprocessableEntity, recipe, input, errs)
		return
	}

	recipe, err := h.recipeService.Update(actor(r), id, input)
	if errors.As(err, &errs) {
		existing, err := h.recipeService.ByID(id)
		if err != nil {
			renderError(w, r, err, "failed to load recipe", "recipe_id", id)
			return
		}
		h.form(w, r, http.StatusUnprocessableEntity, existing, input, errs)
		return
	}
	if err != nil {
		renderError(w, r, err, "failed to update recipe", "recipe_id", id)
		return
	}

	h.attachImage(w, r, recipe, "Recipe updated.")
}

// attachImage stores an uploaded photo after the recipe itself is saved.
// Image problems never undo the save; they are reported in the flash.
func (h *RecipeHandler) attachImage(w http.ResponseWriter, r *http.Request, recipe *model.Recipe, msg string) {
	sess := session.FromContext(r.Context())
	target := ctxkeys.URL(r.Context(), "recipes.show", "id", recipe.ID)

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		sess.SetMessage(w, msg)
		redirect(w, r, target)
		return
	}
	if err != nil {
		slog.Warn("failed to read uploaded image", "recipe_id", recipe.ID, "error", err)
		sess.SetMessage(w, msg+" The photo could not be read.")
		redirect(w, r, target)
		return
	}
	defer file.Close()

	warnings, err := h.recipeService.AttachImage(r.Context(), actor(r), recipe.ID, file, header)
	var errs validation.Errors
	switch {
	case errors.As(err, &errs):
		sess.SetMessage(w, msg+" The photo was not saved: "+errs.Get("image"))
	case err != nil:
		slog.Error("failed to attach recipe image", "recipe_id", recipe.ID, "error", err)
		sess.SetMessage(w, msg+" The photo could not be saved.")
	case len(warnings) > 0:
		sess.SetMessage(w, msg+" "+strings.Join(warnings, " "))
	default:
		sess.SetMessage(w, msg)
	}
	redirect(w, r, target)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	err := h.recipeService.Delete(actor(r), id)
	if err != nil {
		renderError(w, r, err, "failed to delete recipe", "recipe_id", id)
		return
	}

	session.FromContext(r.Context()).SetMessage(w, "Recipe deleted.")
	redirect(w, r, ctxkeys.URL(r.Context(), "recipes.index"))
}

func (h *RecipeHandler) Feature(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	featured, err := h.recipeService.ToggleFeatured(actor(r), id)
	if err != nil {
		renderError(w, r, err, "failed to toggle featured", "recipe_id", id)
		return
	}

	msg := "Recipe is no longer featured."
	if featured {
		msg = "Recipe is now featured on the home page."
	}
	session.FromContext(r.Context()).SetMessage(w, msg)
	redirect(w, r, ctxkeys.URL(r.Context(), "recipes.show", "id", id))
}

type favoriteResponse struct {
	Success     bool   `json:"success"`
	IsFavorited bool   `json:"is_favorited"`
	Error       string `json:"error,omitempty"`
}

// Favorite toggles the favorite and answers with JSON for the client script
func (h *RecipeHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	favorited, err := h.favoriteService.Toggle(actor(r), id)
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, favoriteResponse{Error: "login required"})
	case isNotFound(err):
		writeJSON(w, http.StatusNotFound, favoriteResponse{Error: "recipe not found"})
	case err != nil:
		slog.Error("failed to toggle favorite", "recipe_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, favoriteResponse{Error: "could not update favorite"})
	default:
		writeJSON(w, http.StatusOK, favoriteResponse{Success: true, IsFavorited: favorited})
	}
}

func (h *RecipeHandler) Review(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	var in model.ReviewInput
	in.Comment = r.FormValue("comment")
	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err == nil {
		in.Rating = rating
	}

	err = h.reviewService.Submit(actor(r), id, in)
	var errs validation.Errors
	if errors.As(err, &errs) {
		h.show(w, r, http.StatusUnprocessableEntity, errs, in)
		return
	}
	if err != nil {
		renderError(w, r, err, "failed to submit review", "recipe_id", id)
		return
	}

	session.FromContext(r.Context()).SetMessage(w, "Thanks for your review!")
	redirect(w, r, ctxkeys.URL(r.Context(), "recipes.show", "id", id)+"#reviews")
}

// parseRecipeInput reads the recipe form. Ingredient columns are parallel
// lists; the returned errors cover fields that are not numbers.
func parseRecipeInput(r *http.Request) (service.RecipeInput, validation.Errors, error) {
	err := r.ParseMultipartForm(maxFormSize)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return service.RecipeInput{}, nil, err
	}

	var errs validation.Errors
	number := func(field string) int {
		raw := strings.TrimSpace(r.PostFormValue(field))
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add(field, "must be a whole number")
		}
		return n
	}

	in := service.RecipeInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		VideoURL:    strings.TrimSpace(r.PostFormValue("video_url")),
		StyleID:     r.PostFormValue("style_id"),
		DietID:      r.PostFormValue("diet_id"),
		TypeID:      r.PostFormValue("type_id"),
		PrepHours:   number("prep_hours"),
		PrepMinutes: number("prep_minutes"),
		CookHours:   number("cook_hours"),
		CookMinutes: number("cook_minutes"),
		Steps:       r.PostForm["step"],
	}

	names := r.PostForm["ingredient_name"]
	quantities := r.PostForm["ingredient_quantity"]
	measurements := r.PostForm["ingredient_measurement"]
	for i, name := range names {
		in.Ingredients = append(in.Ingredients, service.IngredientInput{
			Name:          name,
			Quantity:      at(quantities, i),
			MeasurementID: at(measurements, i),
		})
	}

	return in, errs, nil
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
