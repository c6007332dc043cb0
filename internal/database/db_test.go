package database_test

import (
	"testing"

	"restaurant-hub/internal/database"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestFixtures(t *testing.T) {
	db := testutil.OpenDB(t, testutil.Config(t))

	counts := map[any]int64{
		&models.Restaurant{}: 2,
		&models.User{}:       2,
		&models.MenuItem{}:   8,
		&models.Table{}:      8,
		&models.Order{}:      4,
		&models.OrderItem{}:  6,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, db.Model(model).Count(&got).Error)
		assert.Equal(t, want, got, "%T", model)
	}

	var reserved []models.Table
	require.NoError(t, db.Where("status = ?", models.TableReserved).Order("id").Find(&reserved).Error)
	require.Len(t, reserved, 2)
	for _, tbl := range reserved {
		assert.NotNil(t, tbl.Reservation, tbl.ID)
	}

	var u models.User
	require.NoError(t, db.First(&u, "id = ?", "user1").Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
}

func TestSeedIsIdempotent(t *testing.T) {
	cfg := testutil.Config(t)
	db := testutil.OpenDB(t, cfg)

	require.NoError(t, db.Model(&models.Table{}).Where("id = ?", "table1").Update("status", models.TableOccupied).Error)
	require.NoError(t, database.Seed(db, cfg.BcryptCost))

	var count int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)

	var tbl models.Table
	require.NoError(t, db.First(&tbl, "id = ?", "table1").Error)
	assert.Equal(t, models.TableOccupied, tbl.Status, "existing rows are not reset")
}
