package service

import (
	"encoding/xml"
	"log/slog"
	"strings"
	"time"

	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
)

// publicRoutes are the static pages listed in the sitemap
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "daily"},
	{"/recipes", "0.9", "daily"},
	{"/login", "0.3", "monthly"},
	{"/register", "0.3", "monthly"},
}

type SitemapService struct {
	recipeRepository repository.RecipeRepository
	pageService      *PageService
	baseURL          string
}

func NewSitemapService(recipeRepository repository.RecipeRepository, pageService *PageService, baseURL string) *SitemapService {
	return &SitemapService{
		recipeRepository: recipeRepository,
		pageService:      pageService,
		baseURL:          strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateSitemap lists static routes, content pages and every recipe
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	today := time.Now().Format("2006-01-02")
	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	if s.pageService != nil {
		for _, slug := range s.pageService.Slugs() {
			sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
				Loc:        s.baseURL + "/pages/" + slug,
				ChangeFreq: "monthly",
				Priority:   "0.4",
			})
		}
	}

	recipes, err := s.recipeRepository.Filtered(repository.RecipeFilter{}, 0, 0)
	if err != nil {
		// the static part of the sitemap is still useful
		slog.Warn("failed to list recipes for sitemap", "error", err)
	}
	for _, recipe := range recipes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + "/recipes/" + recipe.ID,
			LastMod:    recipe.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return []byte(xml.Header + string(output)), nil
}
