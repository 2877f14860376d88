package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db/dbtest"
	"github.com/flavorconnect/flavorconnect/internal/model"
)

func TestUserCreateAndLookup(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewUserRepository(conn)
	user := createUser(t, conn, "Julia")

	byName, err := repo.ByUsername("julia")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.True(t, byName.IsActive)
	assert.Equal(t, model.UserLevelUser, byName.Level)

	byEmail, err := repo.ByEmail("JULIA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.ByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDuplicates(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewUserRepository(conn)
	createUser(t, conn, "julia")

	err := repo.Create(&model.User{
		ID: uuid.New().String(), Username: "julia", Email: "other@example.com",
		PasswordHash: "x", Level: model.UserLevelUser, CreatedAt: baseTime,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	err = repo.Create(&model.User{
		ID: uuid.New().String(), Username: "other", Email: "julia@example.com",
		PasswordHash: "x", Level: model.UserLevelUser, CreatedAt: baseTime,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserUpdateCountAndDelete(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewUserRepository(conn)
	user := createUser(t, conn, "julia")
	createUser(t, conn, "marco")

	user.Level = model.UserLevelAdmin
	user.IsActive = false
	require.NoError(t, repo.Update(user))

	loaded, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsAdmin())
	assert.False(t, loaded.IsActive)

	n, err := repo.CountByLevel(model.UserLevelAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(user.ID))
	assert.ErrorIs(t, repo.Delete(user.ID), ErrUserNotFound)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
