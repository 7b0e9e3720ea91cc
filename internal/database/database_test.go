package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/gorm"

	"standards-board-backend/internal/model"
)

func TestNewDBInstance_EmptyConnectionString(t *testing.T) {
	_, err := NewDBInstance(&DBConfig{})
	assert.ErrorContains(t, err, "DB_CONNECTION_STR")
}

func TestMemoryDB_HealthAndClose(t *testing.T) {
	db, err := NewMemoryDB()
	require.NoError(t, err)

	stats := db.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
	assert.NotContains(t, stats, "error")

	assert.NoError(t, db.Close())
}

func TestMemoryDB_Isolated(t *testing.T) {
	db1, err := NewMemoryDB()
	require.NoError(t, err)
	db2, err := NewMemoryDB()
	require.NoError(t, err)

	require.NoError(t, db1.Create(&model.User{ID: "only-in-one", Email: "one@example.com"}).Error)

	var count int64
	require.NoError(t, db2.Model(&model.User{}).Where("id = ?", "only-in-one").Count(&count).Error)
	assert.Zero(t, count)
}

func TestPromoteAdmin(t *testing.T) {
	db, err := NewMemoryDB()
	require.NoError(t, err)

	user, err := db.PromoteAdmin(context.Background(), TestApplicant1.Email)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", TestApplicant1.ID).Error)
	assert.True(t, stored.IsAdmin())

	_, err = db.PromoteAdmin(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	db, err := NewMemoryDB()
	require.NoError(t, err)

	err = db.Create(&model.User{ID: TestApplicant1.ID, Email: "dup@example.com"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDropAll(t *testing.T) {
	db, err := NewMemoryDB()
	require.NoError(t, err)

	require.NoError(t, db.DropAll())
	for _, table := range model.MigrateAble {
		assert.False(t, db.Migrator().HasTable(table))
	}
}

func TestPostgres_Health(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	_, db, err := GetTestDB()
	require.NoError(t, err)

	stats := db.Health()
	assert.Equal(t, "up", stats["status"])

	var admin model.User
	require.NoError(t, db.First(&admin, "id = ?", TestAdminUser.ID).Error)
	assert.True(t, admin.IsAdmin())
}
