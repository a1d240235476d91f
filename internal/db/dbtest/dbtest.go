// Package dbtest opens migrated in-memory sqlite databases for tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"streamhouse/api/internal/db"
	gormModels "streamhouse/api/internal/models/gorm"
)

// Open returns a fresh schema with the fixed roles seeded.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// every connection to :memory: is its own database
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if err := db.SeedRoles(context.Background(), gdb); err != nil {
		t.Fatalf("Failed to seed roles: %v", err)
	}
	return gdb
}

// Sqlx wraps the gorm connection for sqlx-backed repositories.
func Sqlx(t testing.TB, gdb *gorm.DB) *sqlx.DB {
	t.Helper()

	sx, err := db.SqlxFromGorm(gdb, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap sqlx: %v", err)
	}
	return sx
}

// CreateUser inserts an active user with the given role.
func CreateUser(t testing.TB, gdb *gorm.DB, email, roleID string) *gormModels.User {
	t.Helper()

	user := &gormModels.User{
		Username: email,
		Email:    email,
		Phone:    email,
		Password: "x",
		RoleID:   roleID,
		IsActive: true,
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}
