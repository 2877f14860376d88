package handler

import (
	"net/http"

	"github.com/flavorconnect/flavorconnect/internal/router"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/ui"
	"github.com/flavorconnect/flavorconnect/internal/ui/pages"
)

type PageHandler struct {
	pageService *service.PageService
}

func NewPageHandler(pageService *service.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	slug := router.Param(r, "slug")

	page, err := h.pageService.Page(slug)
	if err != nil {
		renderError(w, r, err, "failed to load page", "slug", slug)
		return
	}

	ui.Render(w, r, pages.Content(page))
}
