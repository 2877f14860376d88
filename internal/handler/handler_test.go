package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/service"
	"github.com/flavorconnect/flavorconnect/internal/session"
)

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", "/"},
		{"/favorites?page=2", "/favorites?page=2"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
		{"https://evil.example/", "/"},
		{"recipes", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, safeNext(tt.next), tt.next)
	}
}

func TestPageParam(t *testing.T) {
	for query, want := range map[string]int{"": 1, "page=3": 3, "page=0": 1, "page=-2": 1, "page=x": 1} {
		req := httptest.NewRequest(http.MethodGet, "/recipes?"+query, nil)
		assert.Equal(t, want, pageParam(req), query)
	}
}

func TestFilterFromQuery(t *testing.T) {
	q, err := url.ParseQuery("search=+ragu+&style=s1&diet=d1&type=t1&sort=rating")
	require.NoError(t, err)

	f := filterFromQuery(q)
	assert.Equal(t, "ragu", f.Search)
	assert.Equal(t, "s1", f.StyleID)
	assert.Equal(t, "d1", f.DietID)
	assert.Equal(t, "t1", f.TypeID)
	assert.Equal(t, "rating", f.Sort)
	assert.Empty(t, f.UserID)
}

func TestParseRecipeInput(t *testing.T) {
	form := url.Values{
		"title":                  {"Ragu"},
		"video_url":              {"  https://example.com/v  "},
		"prep_hours":             {"1"},
		"prep_minutes":           {"15"},
		"cook_minutes":           {"soon"},
		"ingredient_name":        {"Beef", "Salt"},
		"ingredient_quantity":    {"1/2"},
		"ingredient_measurement": {"m1", "m2"},
		"step":                   {"Brown", "Simmer"},
	}
	req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, errs, err := parseRecipeInput(req)
	require.NoError(t, err)

	assert.Equal(t, "must be a whole number", errs.Get("cook_minutes"))
	assert.Equal(t, "Ragu", in.Title)
	assert.Equal(t, "https://example.com/v", in.VideoURL)
	assert.Equal(t, 1, in.PrepHours)
	assert.Equal(t, 15, in.PrepMinutes)
	assert.Equal(t, []string{"Brown", "Simmer"}, in.Steps)
	assert.Equal(t, []service.IngredientInput{
		{Name: "Beef", Quantity: "1/2", MeasurementID: "m1"},
		{Name: "Salt", Quantity: "", MeasurementID: "m2"},
	}, in.Ingredients)
}

func TestActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, service.Actor{}, actor(req))

	sess := session.NewManager("secret", 0, false).Load(req)
	sess.UserID = "u1"
	sess.Level = model.UserLevelAdmin
	req = req.WithContext(session.WithSession(req.Context(), sess))

	assert.Equal(t, service.Actor{UserID: "u1", Level: model.UserLevelAdmin}, actor(req))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, favoriteResponse{Success: true, IsFavorited: true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"is_favorited":true}`, rec.Body.String())
}
