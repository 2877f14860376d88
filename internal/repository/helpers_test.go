package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/model"
)

// seeded lookup ids from the migrations
const (
	styleItalian   = "7a2d3b63-1e2f-4d66-8b4f-000000000002"
	styleMexican   = "7a2d3b63-1e2f-4d66-8b4f-000000000003"
	dietVegan      = "8b3e4c74-2f30-4e77-9c50-000000000002"
	typeDinner     = "9c4f5d85-3041-4f88-8d61-000000000003"
	measurementCup = "6f1c2a52-0d1e-4c55-9a3e-000000000001"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func createUser(t *testing.T, conn *sqlx.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Level:        model.UserLevelUser,
		IsActive:     true,
		CreatedAt:    baseTime,
	}
	require.NoError(t, NewUserRepository(conn).Create(user))
	return user
}

func createRecipe(t *testing.T, conn *sqlx.DB, userID, title string, age time.Duration, mods ...func(*model.Recipe)) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: baseTime.Add(-age),
		UpdatedAt: baseTime.Add(-age),
	}
	for _, mod := range mods {
		mod(recipe)
	}
	require.NoError(t, NewRecipeRepository(conn).Create(recipe))
	return recipe
}

func ptr(s string) *string {
	return &s
}

func titles(recipes []*model.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}
