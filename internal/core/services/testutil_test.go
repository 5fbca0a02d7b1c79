package services

import (
	"fmt"
	"strings"
	"testing"

	"campus-assetdesk/internal/adapters/persistence/models"
	"campus-assetdesk/internal/adapters/persistence/repositories"
	"campus-assetdesk/internal/config"
	"campus-assetdesk/internal/core/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database scoped to the test name.
// A single connection keeps concurrent transactions serialized.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

// seedUser inserts a user directly. The password hash is a placeholder;
// tests that exercise login go through AuthService.Register instead.
func seedUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@campus.local",
		FullName: username,
		Password: "not-a-real-hash",
		Role:     string(role),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedAsset(t *testing.T, db *gorm.DB, name string, status domain.AssetStatus) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:        name,
		Description: name + " description",
		Status:      string(status),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("seed asset %s: %v", name, err)
	}
	return asset
}

func newRequestService(db *gorm.DB) *RequestService {
	return NewRequestService(
		repositories.NewRequestRepository(db),
		repositories.NewAssetRepository(db),
		repositories.NewUserRepository(db),
	)
}

func asCaller(user *models.User) Caller {
	return Caller{UserID: user.ID, Role: domain.Role(user.Role)}
}
