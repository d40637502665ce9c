package repository

import (
	"testing"

	"locallens/internal/database"
	"locallens/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory store for each test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    email,
		Password: "$2a$10$not.a.real.hash.but.never.compared",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
