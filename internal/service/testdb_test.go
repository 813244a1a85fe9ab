package service

import (
	"strconv"
	"testing"

	"finance_api/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // each ":memory:" connection is its own database
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Transaction{},
		&domain.AccessToken{},
	), "failed to migrate test schema")
	return db
}

// idStr renders an id the way it arrives in a query string.
func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// seedUser inserts a user with a real bcrypt hash for password.
func seedUser(t *testing.T, db *gorm.DB, name, cpf, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Name: name, CPF: cpf, Email: email, Password: string(hash)}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedCategory inserts a category.
func seedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	category := domain.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

// seedTransaction inserts a transaction referencing user and category.
func seedTransaction(t *testing.T, db *gorm.DB, userID, categoryID uint, txType string, amount float64) *domain.Transaction {
	t.Helper()
	transaction := domain.Transaction{UserID: userID, CategoryID: categoryID, Type: txType, Amount: amount}
	require.NoError(t, db.Create(&transaction).Error)
	return &transaction
}
