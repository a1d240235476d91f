package db

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/logging"
	gormModels "streamhouse/api/internal/models/gorm"
)

// DefaultSeedPassword is the password given to every seeded account.
const DefaultSeedPassword = "Basecamp123"

var seedRoles = []gormModels.Role{
	{ID: constants.RoleIDAdmin, Name: constants.RoleAdmin.String()},
	{ID: constants.RoleIDHost, Name: constants.RoleHost.String()},
	{ID: constants.RoleIDUser, Name: constants.RoleUser.String()},
}

var seedUsers = []gormModels.User{
	{Username: "Admin", Email: "super.admin@mail.com", RoleID: constants.RoleIDAdmin, Phone: "08123456789"},
	{Username: "Test Host", Email: "test.host@mail.com", RoleID: constants.RoleIDHost, Phone: "08987654321"},
	{Username: "Test User", Email: "test.user@mail.com", RoleID: constants.RoleIDUser, Phone: "08123412345"},
}

// SeedRoles inserts the fixed roles; existing rows are left untouched.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	roles := make([]gormModels.Role, len(seedRoles))
	copy(roles, seedRoles)

	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}

// RunSeeds inserts roles and the default admin/host/user accounts.
func RunSeeds(ctx context.Context, db *gorm.DB) error {
	if err := SeedRoles(ctx, db); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed users: hash password: %w", err)
	}

	logging.Info("Seed - default password", "password", DefaultSeedPassword)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUsers {
			user := u
			user.Password = string(hash)
			user.IsActive = true

			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
			if res.Error != nil {
				return fmt.Errorf("seed user %s: %w", user.Email, res.Error)
			}
			if res.RowsAffected == 0 {
				logging.Info("Seed - user already present", "email", user.Email)
			}
		}
		return nil
	})
}
