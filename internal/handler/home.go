package handler

import (
	"net/http"
	"slices"

	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
)

const (
	homeFeatured = 6
	homeLatest   = 8
)

type HomeHandler struct {
	recipeService *service.RecipeService
	imageService  *service.ImageService
}

func NewHomeHandler(recipeService *service.RecipeService, imageService *service.ImageService) *HomeHandler {
	return &HomeHandler{
		recipeService: recipeService,
		imageService:  imageService,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	featured, err := h.recipeService.Featured(homeFeatured)
	if err != nil {
		renderError(w, r, err, "failed to load featured recipes")
		return
	}

	latest, err := h.recipeService.Latest(homeLatest)
	if err != nil {
		renderError(w, r, err, "failed to load latest recipes")
		return
	}

	favorited, err := h.recipeService.Favorited(actor(r).UserID, slices.Concat(featured, latest))
	if err != nil {
		renderError(w, r, err, "failed to load favorites")
		return
	}

	ui.Render(w, r, pages.Home(pages.HomeProps{
		Featured:  featured,
		Latest:    latest,
		Favorited: favorited,
		Images:    h.imageService,
	}))
}
