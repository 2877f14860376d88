package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flavorconnect/flavorconnect/internal/db"
	"github.com/flavorconnect/flavorconnect/internal/markdown"
	"github.com/flavorconnect/flavorconnect/internal/metrics"
	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/pagination"
	"github.com/flavorconnect/flavorconnect/internal/repository"
	"github.com/flavorconnect/flavorconnect/internal/validation"
)

const maxIngredients = 100
const maxSteps = 100

// IngredientInput is one ingredient row of the recipe form
type IngredientInput struct {
	Name          string
	Quantity      string
	MeasurementID string
}

func (in IngredientInput) blank() bool {
	return strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.Quantity) == ""
}

// RecipeInput is the recipe form. Blank ingredient and step rows are ignored.
type RecipeInput struct {
	Title       string
	Description string
	VideoURL    string
	StyleID     string
	DietID      string
	TypeID      string
	PrepHours   int
	PrepMinutes int
	CookHours   int
	CookMinutes int
	Ingredients []IngredientInput
	Steps       []string
}

// RecipeInputFrom fills the form from a stored recipe
func RecipeInputFrom(recipe *model.Recipe, ingredients []*model.RecipeIngredient, steps []*model.RecipeStep) RecipeInput {
	in := RecipeInput{
		Title:       recipe.Title,
		Description: recipe.Description,
		VideoURL:    recipe.VideoURL,
		StyleID:     deref(recipe.StyleID),
		DietID:      deref(recipe.DietID),
		TypeID:      deref(recipe.TypeID),
		PrepHours:   recipe.PrepHours(),
		PrepMinutes: recipe.PrepMinutes(),
		CookHours:   recipe.CookHours(),
		CookMinutes: recipe.CookMinutes(),
	}
	for _, ri := range ingredients {
		in.Ingredients = append(in.Ingredients, IngredientInput{
			Name:          ri.IngredientName,
			Quantity:      strconv.FormatFloat(ri.Quantity, 'f', -1, 64),
			MeasurementID: deref(ri.MeasurementID),
		})
	}
	for _, step := range steps {
		in.Steps = append(in.Steps, step.Instruction)
	}
	return in
}

// RecipeDetail is everything shown on a recipe page
type RecipeDetail struct {
	Recipe          *model.Recipe
	Ingredients     []*model.RecipeIngredient
	Steps           []*model.RecipeStep
	Reviews         []*model.Review
	DescriptionHTML string
	IsFavorited     bool
	FavoriteCount   int
	UserRating      int
}

// RecipePage is one page of a recipe listing
type RecipePage struct {
	Recipes    []*model.Recipe
	Pagination *pagination.Pagination
	Favorited  map[string]bool
}

type RecipeService struct {
	db                   *sqlx.DB
	recipeRepository     repository.RecipeRepository
	ingredientRepository repository.IngredientRepository
	stepRepository       repository.StepRepository
	reviewRepository     repository.ReviewRepository
	favoriteRepository   repository.FavoriteRepository
	attributeService     *AttributeService
	imageService         *ImageService
	markdown             *markdown.Parser
}

func NewRecipeService(
	conn *sqlx.DB,
	recipeRepository repository.RecipeRepository,
	ingredientRepository repository.IngredientRepository,
	stepRepository repository.StepRepository,
	reviewRepository repository.ReviewRepository,
	favoriteRepository repository.FavoriteRepository,
	attributeService *AttributeService,
	imageService *ImageService,
) *RecipeService {
	return &RecipeService{
		db:                   conn,
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		stepRepository:       stepRepository,
		reviewRepository:     reviewRepository,
		favoriteRepository:   favoriteRepository,
		attributeService:     attributeService,
		imageService:         imageService,
		markdown:             markdown.NewRecipeParser(),
	}
}

// Create stores a recipe with its ingredients and steps in one transaction
func (s *RecipeService) Create(actor Actor, in RecipeInput) (*model.Recipe, error) {
	if actor.UserID == "" {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	recipe := &model.Recipe{
		ID:        uuid.New().String(),
		UserID:    actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ingredients, steps, err := s.apply(recipe, in)
	if err != nil {
		return nil, err
	}

	err = db.InTx(s.db, func(tx *sqlx.Tx) error {
		err := s.recipeRepository.WithTx(tx).Create(recipe)
		if err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return s.saveChildren(tx, recipe.ID, ingredients, steps)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecipesCreated.Inc()
	slog.Info("recipe created", "recipe_id", recipe.ID, "user_id", actor.UserID)
	return recipe, nil
}

// Update replaces the recipe fields, ingredients and steps. Only the owner or an admin may edit.
func (s *RecipeService) Update(actor Actor, id string, in RecipeInput) (*model.Recipe, error) {
	recipe, err := s.recipeRepository.ByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(recipe.UserID) {
		return nil, ErrForbidden
	}

	ingredients, steps, err := s.apply(recipe, in)
	if err != nil {
		return nil, err
	}
	recipe.UpdatedAt = time.Now().UTC()

	err = db.InTx(s.db, func(tx *sqlx.Tx) error {
		err := s.recipeRepository.WithTx(tx).Update(recipe)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		return s.saveChildren(tx, recipe.ID, ingredients, steps)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("recipe updated", "recipe_id", recipe.ID, "by", actor.UserID)
	return recipe, nil
}

func (s *RecipeService) saveChildren(tx *sqlx.Tx, recipeID string, ingredients []ingredientRow, steps []*model.RecipeStep) error {
	ingredientRepository := s.ingredientRepository.WithTx(tx)

	items := make([]*model.RecipeIngredient, 0, len(ingredients))
	for _, row := range ingredients {
		ingredient, err := ingredientRepository.FindOrCreate(row.name)
		if err != nil {
			return fmt.Errorf("failed to resolve ingredient %q: %w", row.name, err)
		}
		items = append(items, &model.RecipeIngredient{
			IngredientID:  ingredient.ID,
			MeasurementID: row.measurementID,
			Quantity:      row.quantity,
		})
	}

	err := ingredientRepository.ReplaceForRecipe(recipeID, items)
	if err != nil {
		return fmt.Errorf("failed to save ingredients: %w", err)
	}

	err = s.stepRepository.WithTx(tx).ReplaceForRecipe(recipeID, steps)
	if err != nil {
		return fmt.Errorf("failed to save steps: %w", err)
	}
	return nil
}

type ingredientRow struct {
	name          string
	quantity      float64
	measurementID *string
}

// apply validates in and copies it onto recipe. All field problems are
// reported together as validation.Errors.
func (s *RecipeService) apply(recipe *model.Recipe, in RecipeInput) ([]ingredientRow, []*model.RecipeStep, error) {
	recipe.Title = in.Title
	recipe.Description = in.Description
	recipe.VideoURL = in.VideoURL
	recipe.StyleID = optional(in.StyleID)
	recipe.DietID = optional(in.DietID)
	recipe.TypeID = optional(in.TypeID)
	recipe.SetPrepTime(in.PrepHours, in.PrepMinutes)
	recipe.SetCookTime(in.CookHours, in.CookMinutes)

	errs := recipe.Validate()

	checkRange(&errs, "prep_hours", in.PrepHours, model.MaxDurationHours)
	checkRange(&errs, "prep_minutes", in.PrepMinutes, model.MaxDurationMinutes)
	checkRange(&errs, "cook_hours", in.CookHours, model.MaxDurationHours)
	checkRange(&errs, "cook_minutes", in.CookMinutes, model.MaxDurationMinutes)

	for _, kind := range model.AttributeKinds {
		id := recipe.AttributeID(kind)
		if id == nil {
			continue
		}
		ok, err := s.attributeService.Exists(kind, *id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check %s: %w", kind, err)
		}
		if !ok {
			errs.Add(kind.Table().RecipeColumn, "unknown "+string(kind))
		}
	}

	var ingredients []ingredientRow
	for i, row := range in.Ingredients {
		if row.blank() {
			continue
		}
		field := fmt.Sprintf("ingredients.%d", i)

		name := model.NormalizeIngredientName(row.Name)
		if name == "" {
			errs.Add(field+".name", "ingredient name is required")
		} else if len(name) > 100 {
			errs.Add(field+".name", "ingredient name must be at most 100 characters")
		}

		quantity, err := model.ParseQuantity(row.Quantity)
		if err != nil {
			errs.Add(field+".quantity", err.Error())
		}

		msg, err := s.attributeService.checkMeasurement(row.MeasurementID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check measurement: %w", err)
		}
		if msg != "" {
			errs.Add(field+".measurement_id", msg)
		}

		ingredients = append(ingredients, ingredientRow{name: name, quantity: quantity, measurementID: optional(row.MeasurementID)})
	}
	if len(ingredients) == 0 {
		errs.Add("ingredients", "add at least one ingredient")
	} else if len(ingredients) > maxIngredients {
		errs.Add("ingredients", fmt.Sprintf("a recipe can have at most %d ingredients", maxIngredients))
	}

	var steps []*model.RecipeStep
	for _, instruction := range in.Steps {
		instruction = strings.TrimSpace(instruction)
		if instruction == "" {
			continue
		}
		steps = append(steps, &model.RecipeStep{Instruction: instruction})
	}
	if len(steps) == 0 {
		errs.Add("steps", "add at least one step")
	} else if len(steps) > maxSteps {
		errs.Add("steps", fmt.Sprintf("a recipe can have at most %d steps", maxSteps))
	}

	if !errs.Empty() {
		return nil, nil, errs
	}
	return ingredients, steps, nil
}

// Delete removes the recipe and its stored images
func (s *RecipeService) Delete(actor Actor, id string) error {
	recipe, err := s.recipeRepository.ByID(id)
	if err != nil {
		return err
	}
	if !actor.CanEdit(recipe.UserID) {
		return ErrForbidden
	}

	err = s.recipeRepository.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if s.imageService != nil {
		s.imageService.Delete(recipe.ImagePath)
	}

	metrics.RecipesDeleted.Inc()
	slog.Info("recipe deleted", "recipe_id", id, "by", actor.UserID)
	return nil
}

// AttachImage uploads a new photo for the recipe and replaces the old one.
// The returned warnings describe variants that fell back to the original.
func (s *RecipeService) AttachImage(ctx context.Context, actor Actor, id string, file multipart.File, header *multipart.FileHeader) ([]string, error) {
	recipe, err := s.recipeRepository.ByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(recipe.UserID) {
		return nil, ErrForbidden
	}

	upload, err := s.imageService.Upload(ctx, file, header)
	if err != nil {
		return nil, err
	}

	err = s.recipeRepository.UpdateImage(recipe.ID, upload.Path)
	if err != nil {
		s.imageService.Delete(upload.Path)
		return nil, fmt.Errorf("failed to update recipe image: %w", err)
	}

	if recipe.ImagePath != "" {
		s.imageService.Delete(recipe.ImagePath)
	}

	slog.Info("recipe image stored", "recipe_id", recipe.ID, "path", upload.Path, "warnings", len(upload.Warnings))
	return upload.Warnings, nil
}

// ToggleFeatured flips the featured flag; admins only
func (s *RecipeService) ToggleFeatured(actor Actor, id string) (bool, error) {
	if !actor.IsAdmin() {
		return false, ErrForbidden
	}

	recipe, err := s.recipeRepository.ByID(id)
	if err != nil {
		return false, err
	}

	err = s.recipeRepository.SetFeatured(id, !recipe.IsFeatured)
	if err != nil {
		return false, fmt.Errorf("failed to update recipe: %w", err)
	}
	return !recipe.IsFeatured, nil
}

func (s *RecipeService) ByID(id string) (*model.Recipe, error) {
	return s.recipeRepository.ByID(id)
}

// Form loads the edit form for a recipe the actor may edit
func (s *RecipeService) Form(actor Actor, id string) (*model.Recipe, RecipeInput, error) {
	recipe, err := s.recipeRepository.ByID(id)
	if err != nil {
		return nil, RecipeInput{}, err
	}
	if !actor.CanEdit(recipe.UserID) {
		return nil, RecipeInput{}, ErrForbidden
	}

	ingredients, err := s.ingredientRepository.ForRecipe(id)
	if err != nil {
		return nil, RecipeInput{}, fmt.Errorf("failed to load ingredients: %w", err)
	}
	steps, err := s.stepRepository.ForRecipe(id)
	if err != nil {
		return nil, RecipeInput{}, fmt.Errorf("failed to load steps: %w", err)
	}
	return recipe, RecipeInputFrom(recipe, ingredients, steps), nil
}

// Detail loads a recipe page. viewerID may be empty for anonymous visitors.
func (s *RecipeService) Detail(id, viewerID string) (*RecipeDetail, error) {
	recipe, err := s.recipeRepository.ByID(id)
	if err != nil {
		return nil, err
	}

	detail := &RecipeDetail{Recipe: recipe}

	detail.Ingredients, err = s.ingredientRepository.ForRecipe(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	detail.Steps, err = s.stepRepository.ForRecipe(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load steps: %w", err)
	}
	detail.Reviews, err = s.reviewRepository.ForRecipe(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	detail.FavoriteCount, err = s.favoriteRepository.CountForRecipe(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	if recipe.Description != "" {
		html, err := s.markdown.Parse([]byte(recipe.Description))
		if err != nil {
			slog.Warn("failed to render recipe description", "recipe_id", id, "error", err)
		} else {
			detail.DescriptionHTML = string(html)
		}
	}

	if viewerID != "" {
		detail.IsFavorited, err = s.favoriteRepository.IsFavorited(viewerID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load favorite: %w", err)
		}

		rating, err := s.reviewRepository.UserRating(id, viewerID)
		if err == nil {
			detail.UserRating = rating.Value
		} else if !errors.Is(err, repository.ErrRatingNotFound) {
			return nil, fmt.Errorf("failed to load rating: %w", err)
		}
	}

	return detail, nil
}

// List returns one page of recipes matching filter; page numbers past the
// end are clamped to the last page
func (s *RecipeService) List(filter repository.RecipeFilter, page, perPage int, viewerID string) (*RecipePage, error) {
	total, err := s.recipeRepository.CountFiltered(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	p := pagination.New(page, perPage, total)
	if p.IsOutOfRange() {
		p = pagination.New(p.TotalPages(), perPage, total)
	}

	recipes, err := s.recipeRepository.Filtered(filter, p.PerPage, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	favorited, err := s.Favorited(viewerID, recipes)
	if err != nil {
		return nil, err
	}

	return &RecipePage{Recipes: recipes, Pagination: p, Favorited: favorited}, nil
}

func (s *RecipeService) Count(filter repository.RecipeFilter) (int, error) {
	return s.recipeRepository.CountFiltered(filter)
}

// Featured returns up to limit featured recipes, newest first
func (s *RecipeService) Featured(limit int) ([]*model.Recipe, error) {
	return s.recipeRepository.Filtered(repository.RecipeFilter{Featured: true}, limit, 0)
}

// Latest returns the limit most recent recipes
func (s *RecipeService) Latest(limit int) ([]*model.Recipe, error) {
	return s.recipeRepository.Filtered(repository.RecipeFilter{Sort: repository.SortNewest}, limit, 0)
}

// Favorited reports which of recipes viewerID has favorited
func (s *RecipeService) Favorited(viewerID string, recipes []*model.Recipe) (map[string]bool, error) {
	if viewerID == "" || len(recipes) == 0 {
		return map[string]bool{}, nil
	}
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	favorited, err := s.favoriteRepository.FavoritedIDs(viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return favorited, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func checkRange(errs *validation.Errors, field string, v, upper int) {
	if v < 0 || v > upper {
		errs.Add(field, fmt.Sprintf("must be between 0 and %d", upper))
	}
}
