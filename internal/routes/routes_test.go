package routes

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/app"
	"github.com/flavorconnect/flavorconnect/internal/config"
)

const (
	styleItalian   = "7a2d3b63-1e2f-4d66-8b4f-000000000002"
	measurementCup = "6f1c2a52-0d1e-4c55-9a3e-000000000001"

	adminPassword = "Sup3rChef"
	userPassword  = "Basil4Pesto"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	pagesDir := filepath.Join(dir, "content", "pages")
	require.NoError(t, os.MkdirAll(pagesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "about.md"),
		[]byte("---\ntitle: About Us\n---\n\nWe **cook**.\n"), 0644))

	cfg := &config.Config{
		AppName:         "FlavorConnect",
		AppEnv:          "development",
		AppURL:          "http://flavor.test",
		Port:            "0",
		ContentPath:     filepath.Join(dir, "content"),
		DBDriver:        "sqlite",
		DBConnection:    filepath.Join(dir, "test.db") + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		AdminUsername:   "chef",
		AdminEmail:      "chef@example.com",
		AdminPassword:   adminPassword,
		RecipesPerPage:  12,
		ImageMagickPath: "flavorconnect-missing-convert-binary",
		ImageTimeout:    5 * time.Second,
		EmailFrom:       "noreply@example.com",
		StorageDriver:   "local",
		UploadPath:      filepath.Join(dir, "uploads"),
		UploadURL:       "/uploads",
	}

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(srv.Close)
	return srv
}

// client keeps cookies and never follows redirects
type client struct {
	t    *testing.T
	srv  *httptest.Server
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:   t,
		srv: srv,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()

	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res, string(body)
}

func (c *client) get(path string, headers ...string) (*http.Response, string) {
	c.t.Helper()

	req, err := http.NewRequest(http.MethodGet, c.srv.URL+path, nil)
	require.NoError(c.t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return c.do(req)
}

func (c *client) csrfToken() string {
	c.t.Helper()

	u, err := url.Parse(c.srv.URL)
	require.NoError(c.t, err)
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == "csrf_token" {
			return cookie.Value
		}
	}
	c.get("/")
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == "csrf_token" {
			return cookie.Value
		}
	}
	c.t.Fatal("no csrf cookie issued")
	return ""
}

func (c *client) post(path string, form url.Values) (*http.Response, string) {
	c.t.Helper()

	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", c.csrfToken())
	req, err := http.NewRequest(http.MethodPost, c.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) register(username string) {
	c.t.Helper()

	res, _ := c.post("/register", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {userPassword},
		"confirm_password": {userPassword},
	})
	require.Equal(c.t, http.StatusSeeOther, res.StatusCode)
}

func (c *client) login(identifier, password string) {
	c.t.Helper()

	res, _ := c.post("/login", url.Values{"identifier": {identifier}, "password": {password}})
	require.Equal(c.t, http.StatusSeeOther, res.StatusCode)
}

func (c *client) createRecipe(title string) string {
	c.t.Helper()

	res, _ := c.post("/recipes", url.Values{
		"title":                  {title},
		"description":            {"Slow cooked and *simple*"},
		"style_id":               {styleItalian},
		"prep_minutes":           {"20"},
		"cook_hours":             {"2"},
		"ingredient_name":        {"Tomatoes", "Salt"},
		"ingredient_quantity":    {"2", "1/2"},
		"ingredient_measurement": {measurementCup, ""},
		"step":                   {"Chop", "Simmer"},
	})
	require.Equal(c.t, http.StatusSeeOther, res.StatusCode)

	location := res.Header.Get("Location")
	require.True(c.t, strings.HasPrefix(location, "/recipes/"), location)
	return strings.TrimPrefix(location, "/recipes/")
}

func TestPublicRoutes(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/", http.StatusOK, "<html"},
		{"/recipes", http.StatusOK, "Recipes"},
		{"/pages/about", http.StatusOK, "About Us"},
		{"/pages/missing", http.StatusNotFound, ""},
		{"/robots.txt", http.StatusOK, "Sitemap: http://flavor.test/sitemap.xml"},
		{"/sitemap.xml", http.StatusOK, "<urlset"},
		{"/healthz", http.StatusOK, `"ok"`},
		{"/assets/css/app.css", http.StatusOK, ""},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/recipes/does-not-exist", http.StatusNotFound, ""},
		{"/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, body := c.get(tt.path)
			assert.Equal(t, tt.status, res.StatusCode)
			if tt.contains != "" {
				assert.Contains(t, body, tt.contains)
			}
		})
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newServer(t)
	res, _ := newClient(t, srv).get("/")

	assert.Contains(t, res.Header.Get("Content-Security-Policy"), "default-src 'self'")
	assert.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))
}

func TestAuthFlow(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)

	t.Run("post without csrf is rejected", func(t *testing.T) {
		res, err := c.http.PostForm(srv.URL+"/login", url.Values{"identifier": {"chef"}, "password": {adminPassword}})
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("register logs in and flashes", func(t *testing.T) {
		c.register("alice")

		_, body := c.get("/")
		assert.Contains(t, body, "Welcome, alice!")
	})

	t.Run("guest pages redirect once logged in", func(t *testing.T) {
		res, _ := c.get("/login")
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	})

	t.Run("logout", func(t *testing.T) {
		res, _ := c.post("/logout", nil)
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)

		res, _ = c.get("/favorites")
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/login?next="+url.QueryEscape("/favorites"), res.Header.Get("Location"))
	})

	t.Run("wrong password", func(t *testing.T) {
		res, body := c.post("/login", url.Values{"identifier": {"alice"}, "password": {"Wrong1234"}})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Contains(t, body, "Invalid username or password")
	})

	t.Run("login honours next", func(t *testing.T) {
		res, _ := c.post("/login", url.Values{
			"identifier": {"alice@example.com"},
			"password":   {userPassword},
			"next":       {"/favorites"},
		})
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/favorites", res.Header.Get("Location"))
	})

	t.Run("duplicate registration", func(t *testing.T) {
		other := newClient(t, srv)
		res, _ := other.post("/register", url.Values{
			"username":         {"alice"},
			"email":            {"alice2@example.com"},
			"password":         {userPassword},
			"confirm_password": {userPassword},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	})
}

func TestRecipeLifecycle(t *testing.T) {
	srv := newServer(t)
	author := newClient(t, srv)
	author.register("alice")

	id := author.createRecipe("Sunday Ragu")

	res, body := author.get("/recipes/" + id)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Sunday Ragu")
	assert.Contains(t, body, "Recipe shared!")
	assert.Contains(t, body, "tomatoes")

	t.Run("invalid form re-renders", func(t *testing.T) {
		res, body := author.post("/recipes", url.Values{"title": {""}, "prep_minutes": {"soon"}})
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
		assert.Contains(t, body, "must be a whole number")
	})

	t.Run("mine lists own recipes", func(t *testing.T) {
		_, body := author.get("/recipes?mine=1")
		assert.Contains(t, body, "Sunday Ragu")
	})

	t.Run("search filters gallery fragment", func(t *testing.T) {
		res, body := author.get("/recipes?search=ragu", "HX-Request", "true")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Sunday Ragu")
		assert.NotContains(t, body, "<html")

		_, body = author.get("/recipes?search=curry", "HX-Request", "true")
		assert.NotContains(t, body, "Sunday Ragu")
	})

	reader := newClient(t, srv)
	reader.register("bob")

	t.Run("other users cannot edit", func(t *testing.T) {
		res, _ := reader.get("/recipes/" + id + "/edit")
		assert.Equal(t, http.StatusForbidden, res.StatusCode)

		res, _ = reader.post("/recipes/"+id+"/delete", nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("favorite toggles", func(t *testing.T) {
		res, body := reader.post("/recipes/"+id+"/favorite", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		var out struct {
			Success     bool `json:"success"`
			IsFavorited bool `json:"is_favorited"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.True(t, out.Success)
		assert.True(t, out.IsFavorited)

		_, body = reader.get("/favorites")
		assert.Contains(t, body, "Sunday Ragu")
	})

	t.Run("review", func(t *testing.T) {
		res, _ := reader.post("/recipes/"+id+"/reviews", url.Values{"rating": {"9"}})
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

		res, _ = reader.post("/recipes/"+id+"/reviews", url.Values{"rating": {"5"}, "comment": {"Better than my nonna's"}})
		require.Equal(t, http.StatusSeeOther, res.StatusCode)
		assert.Equal(t, "/recipes/"+id+"#reviews", res.Header.Get("Location"))

		_, body := reader.get("/recipes/" + id)
		assert.Contains(t, body, "Better than my nonna&#39;s")
	})

	t.Run("author edits", func(t *testing.T) {
		res, body := author.get("/recipes/" + id + "/edit")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "Sunday Ragu")

		res, _ = author.post("/recipes/"+id, url.Values{
			"title":               {"Sunday Ragu Bolognese"},
			"style_id":            {styleItalian},
			"ingredient_name":     {"Beef"},
			"ingredient_quantity": {"1"},
			"step":                {"Brown", "Simmer"},
		})
		require.Equal(t, http.StatusSeeOther, res.StatusCode)

		_, body = author.get("/recipes/" + id)
		assert.Contains(t, body, "Sunday Ragu Bolognese")
		assert.NotContains(t, body, "tomatoes")
	})

	t.Run("author deletes", func(t *testing.T) {
		res, _ := author.post("/recipes/"+id+"/delete", nil)
		require.Equal(t, http.StatusSeeOther, res.StatusCode)

		res, _ = author.get("/recipes/" + id)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestAPI(t *testing.T) {
	srv := newServer(t)
	c := newClient(t, srv)
	c.register("alice")
	id := c.createRecipe("Tomato Soup")

	api := newClient(t, srv)

	t.Run("list", func(t *testing.T) {
		res, body := api.get("/api/recipes?search=soup")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

		var out struct {
			Success bool `json:"success"`
			Recipes []struct {
				ID     string `json:"id"`
				Author string `json:"author"`
			} `json:"recipes"`
			Pagination struct {
				Total int `json:"total"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		assert.True(t, out.Success)
		require.Len(t, out.Recipes, 1)
		assert.Equal(t, id, out.Recipes[0].ID)
		assert.Equal(t, "alice", out.Recipes[0].Author)
		assert.Equal(t, 1, out.Pagination.Total)
	})

	t.Run("get by action and path", func(t *testing.T) {
		for _, path := range []string{"/api/recipes?action=get&id=" + id, "/api/recipes/" + id} {
			res, body := api.get(path)
			require.Equal(t, http.StatusOK, res.StatusCode, path)

			var out struct {
				Recipe struct {
					Title       string   `json:"title"`
					Steps       []string `json:"steps"`
					Ingredients []struct {
						Name        string `json:"name"`
						Measurement string `json:"measurement"`
					} `json:"ingredients"`
				} `json:"recipe"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &out))
			assert.Equal(t, "Tomato Soup", out.Recipe.Title)
			assert.Equal(t, []string{"Chop", "Simmer"}, out.Recipe.Steps)
			require.Len(t, out.Recipe.Ingredients, 2)
		}
	})

	t.Run("errors", func(t *testing.T) {
		res, _ := api.get("/api/recipes?action=explode")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		res, _ = api.get("/api/recipes?action=get")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		res, _ = api.get("/api/recipes/missing")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestAdminAccess(t *testing.T) {
	srv := newServer(t)

	anon := newClient(t, srv)
	res, _ := anon.get("/admin")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)

	member := newClient(t, srv)
	member.register("alice")
	res, _ = member.get("/admin")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	admin := newClient(t, srv)
	admin.login("chef", adminPassword)

	res, body := admin.get("/admin")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Overview")

	res, body = admin.get("/admin/users")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "alice")

	t.Run("category create and duplicate", func(t *testing.T) {
		res, _ := admin.post("/admin/categories/style", url.Values{"name": {"Peruvian"}})
		require.Equal(t, http.StatusSeeOther, res.StatusCode)

		_, body := admin.get("/admin/categories")
		assert.Contains(t, body, "Peruvian")

		res, _ = admin.post("/admin/categories/style", url.Values{"name": {"Peruvian"}})
		assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

		res, _ = admin.post("/admin/categories/colour", url.Values{"name": {"Red"}})
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("feature recipe", func(t *testing.T) {
		id := member.createRecipe("Featured Focaccia")

		res, _ := member.post("/recipes/"+id+"/feature", nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)

		res, _ = admin.post("/recipes/"+id+"/feature", nil)
		require.Equal(t, http.StatusSeeOther, res.StatusCode)

		_, body := anon.get("/")
		assert.Contains(t, body, "Featured Focaccia")
	})

	t.Run("deactivate user ends their session", func(t *testing.T) {
		_, body := admin.get("/admin/users")
		idx := strings.Index(body, "/admin/users/")
		require.NotEqual(t, -1, idx)
		rest := body[idx+len("/admin/users/"):]
		userID := rest[:strings.Index(rest, "/")]

		res, _ := admin.post("/admin/users/"+userID+"/toggle", nil)
		require.Equal(t, http.StatusSeeOther, res.StatusCode)

		res, _ = member.get("/favorites")
		assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	})
}
