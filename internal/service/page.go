package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flavorconnect/flavorconnect/internal/markdown"
)

var ErrPageNotFound = errors.New("page not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Page is a markdown content page such as about, privacy or terms
type Page struct {
	Title       string
	Slug        string
	Description string
	Content     string
	LastUpdated string
}

// PageService serves markdown files from <content>/pages
type PageService struct {
	contentDir string
	reload     bool
	parser     *markdown.Parser

	mu    sync.RWMutex
	pages map[string]*Page
}

// NewPageService loads pages once; with reload set every lookup re-reads the files
func NewPageService(contentDir string, reload bool) *PageService {
	return &PageService{
		contentDir: filepath.Join(contentDir, "pages"),
		reload:     reload,
		parser:     markdown.NewPageParser(),
		pages:      make(map[string]*Page),
	}
}

func (s *PageService) LoadPages() error {
	files, err := os.ReadDir(s.contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("content pages directory missing", "dir", s.contentDir)
			return nil
		}
		return fmt.Errorf("failed to read pages directory: %w", err)
	}

	pages := make(map[string]*Page)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(file.Name(), ".md")
		page, err := s.loadPage(slug)
		if err != nil {
			return fmt.Errorf("failed to load page %s: %w", slug, err)
		}
		pages[slug] = page
	}

	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()
	return nil
}

func (s *PageService) loadPage(slug string) (*Page, error) {
	filePath := filepath.Join(s.contentDir, slug+".md")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}
	description, _ := meta["description"].(string)

	var lastUpdated string
	if v, ok := meta["lastUpdated"]; ok {
		lastUpdated = parseDate(v)
	}
	if lastUpdated == "" {
		lastUpdated = info.ModTime().Format("January 2, 2006")
	}

	return &Page{
		Title:       title,
		Slug:        slug,
		Description: description,
		Content:     string(html),
		LastUpdated: lastUpdated,
	}, nil
}

func (s *PageService) Page(slug string) (*Page, error) {
	if !slugPattern.MatchString(slug) {
		return nil, ErrPageNotFound
	}

	if s.reload {
		err := s.LoadPages()
		if err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return page, nil
}

// Slugs lists the loaded pages in alphabetical order
func (s *PageService) Slugs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slugs := make([]string, 0, len(s.pages))
	for slug := range s.pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func parseDate(value any) string {
	var dateStr string

	switch v := value.(type) {
	case string:
		dateStr = v
	case time.Time:
		return v.Format("January 2, 2006")
	default:
		return ""
	}

	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"02.01.2006",
		"01/02/2006",
		"Jan 2, 2006",
		"January 2, 2006",
		time.RFC3339,
	}
	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t.Format("January 2, 2006")
		}
	}

	return dateStr
}
