package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavorconnect/flavorconnect/internal/db/dbtest"
)

func TestIngredientFindOrCreate(t *testing.T) {
	conn := dbtest.New(t)
	repo := NewIngredientRepository(conn)

	first, err := repo.FindOrCreate("  Tomatoes ")
	require.NoError(t, err)
	assert.Equal(t, "tomatoes", first.Name)

	again, err := repo.FindOrCreate("TOMATOES")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	var n int
	require.NoError(t, conn.Get(&n, `SELECT COUNT(*) FROM ingredient WHERE name = 'tomatoes'`))
	assert.Equal(t, 1, n)
}

func TestIngredientFindOrCreateKeepsTransactionUsable(t *testing.T) {
	conn := dbtest.New(t)
	_, err := NewIngredientRepository(conn).FindOrCreate("basil")
	require.NoError(t, err)

	tx, err := conn.Beginx()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	repo := NewIngredientRepository(conn).WithTx(tx)
	existing, err := repo.FindOrCreate("Basil")
	require.NoError(t, err)
	created, err := repo.FindOrCreate("oregano")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "basil", existing.Name)
	found, err := NewIngredientRepository(conn).FindOrCreate("oregano")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}
