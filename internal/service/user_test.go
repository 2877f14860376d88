package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/model"
	"github.com/flavorconnect/flavorconnect/internal/repository"
)

func TestUserToggleActiveHierarchy(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user", model.UserLevelUser)
	admin := env.createUser(t, "admin", model.UserLevelAdmin)
	other := env.createUser(t, "other_admin", model.UserLevelAdmin)
	root := env.createUser(t, "root", model.UserLevelSuperAdmin)

	_, err := env.userSvc.ToggleActive(user, admin.UserID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.userSvc.ToggleActive(admin, admin.UserID)
	assert.ErrorIs(t, err, ErrCannotModifySelf)

	_, err = env.userSvc.ToggleActive(admin, other.UserID)
	assert.ErrorIs(t, err, ErrForbidden, "admins cannot manage admins")

	updated, err := env.userSvc.ToggleActive(admin, user.UserID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	updated, err = env.userSvc.ToggleActive(root, other.UserID)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUserSetLevel(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "user", model.UserLevelUser)
	admin := env.createUser(t, "admin", model.UserLevelAdmin)
	root := env.createUser(t, "root", model.UserLevelSuperAdmin)

	_, err := env.userSvc.SetLevel(admin, user.UserID, model.UserLevelAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	promoted, err := env.userSvc.SetLevel(root, user.UserID, model.UserLevelAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.UserLevelAdmin, promoted.Level)

	_, err = env.userSvc.SetLevel(root, user.UserID, model.UserLevel("x"))
	assert.Error(t, err)

	_, err = env.userSvc.SetLevel(root, root.UserID, model.UserLevelUser)
	assert.ErrorIs(t, err, ErrCannotModifySelf)
}

func TestUserDeleteRemovesRecipesAndImages(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", model.UserLevelUser)
	admin := env.createUser(t, "admin", model.UserLevelAdmin)
	recipe := env.createRecipe(t, alice, "Curry")

	file, header := pngUpload(t, "curry.png")
	_, err := env.recipeSvc.AttachImage(context.Background(), alice, recipe.ID, file, header)
	require.NoError(t, err)
	stored, err := env.recipes.ByID(recipe.ID)
	require.NoError(t, err)

	require.NoError(t, env.userSvc.Delete(admin, alice.UserID))

	_, err = env.users.ByID(alice.UserID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = env.recipes.ByID(recipe.ID)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
	assert.NoFileExists(t, filepath.Join(env.storage.Root(), stored.ImagePath))
}
