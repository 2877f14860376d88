package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flavorconnect/flavorconnect/internal/service"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
	baseURL        string
}

func NewSEOHandler(sitemapService *service.SitemapService, baseURL string) *SEOHandler {
	return &SEOHandler{
		sitemapService: sitemapService,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// Robots keeps crawlers out of account and admin pages
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin\nDisallow: /favorites\nDisallow: /api/\nSitemap: %s/sitemap.xml\n", h.baseURL)
	if err != nil {
		slog.Error("failed to write robots.txt", "error", err)
	}
}

// Sitemap generates sitemap.xml from recipes and content pages
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, err = w.Write(sitemap)
	if err != nil {
		slog.Error("failed to write sitemap", "error", err)
	}
}
