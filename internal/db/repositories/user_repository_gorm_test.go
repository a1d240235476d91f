package repositories

import (
	"context"
	"testing"
	"time"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/dbtest"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
)

func TestUserRepositoryGORM_TakenIncludesDeleted(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	repo := NewUserRepositoryGORM(gdb)

	u := dbtest.CreateUser(t, gdb, "a@mail.com", constants.RoleIDUser)
	repo.SoftDelete(ctx, []string{u.ID})

	emailTaken, phoneTaken, err := repo.Taken(ctx, "a@mail.com", "0800", "")
	if err != nil {
		t.Fatalf("Taken: %v", err)
	}
	if !emailTaken || phoneTaken {
		t.Errorf("Expected email taken only, got %v %v", emailTaken, phoneTaken)
	}

	emailTaken, _, _ = repo.Taken(ctx, "a@mail.com", "", u.ID)
	if emailTaken {
		t.Error("Expected own email not to count")
	}
}

func TestUserRepositoryGORM_OTPLifecycle(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	repo := NewUserRepositoryGORM(gdb)

	u := &gormModels.User{Username: "u", Email: "u@mail.com", Phone: "0811", Password: "x", RoleID: constants.RoleIDUser}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.SetOTP(ctx, u.ID, "hash", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("SetOTP: %v", err)
	}
	got, _ := repo.GetByEmail(ctx, "u@mail.com")
	if got == nil || got.OTP == nil || *got.OTP != "hash" {
		t.Fatalf("Expected stored otp, got %+v", got)
	}
	if got.Role == nil || got.Role.Name != "user" {
		t.Error("Expected role preloaded")
	}

	if err := repo.Activate(ctx, u.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	got, _ = repo.GetByID(ctx, u.ID, false)
	if !got.IsActive || got.OTP != nil || got.OTPExpiredDate != nil {
		t.Errorf("Expected active user without otp, got %+v", got)
	}
}

func TestUserRepositoryGORM_ForceDeleteCascades(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	repo := NewUserRepositoryGORM(gdb)

	host := dbtest.CreateUser(t, gdb, "host@mail.com", constants.RoleIDHost)
	viewer := dbtest.CreateUser(t, gdb, "viewer@mail.com", constants.RoleIDUser)
	live := &gormModels.Live{HostID: host.ID, IsLive: true}
	NewLiveRepository(gdb).Create(ctx, live)
	NewLiveSessionRepository(gdb).Upsert(ctx, viewer.ID, live.ID)
	NewSessionRepository(gdb).Create(ctx, &gormModels.Session{UserID: host.ID, Token: "t", ExpiresAt: time.Now()})

	if n, err := repo.ForceDelete(ctx, []string{host.ID}); err != nil || n != 1 {
		t.Fatalf("ForceDelete = %d, %v", n, err)
	}

	var lives, viewers, sessions int64
	gdb.Unscoped().Model(&gormModels.Live{}).Count(&lives)
	gdb.Model(&gormModels.LiveSession{}).Count(&viewers)
	gdb.Model(&gormModels.Session{}).Count(&sessions)
	if lives != 0 || viewers != 0 || sessions != 0 {
		t.Errorf("Expected cascade, got lives=%d viewers=%d sessions=%d", lives, viewers, sessions)
	}

	users, total, err := repo.List(ctx, query.Params{Page: 1, PageSize: 10})
	if err != nil || total != 1 || len(users) != 1 || users[0].ID != viewer.ID {
		t.Errorf("Expected only viewer left, got %d users (%v)", total, err)
	}
}

func TestUserRepositoryGORM_SoftDeleteHidesHostedLives(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	repo := NewUserRepositoryGORM(gdb)
	lives := NewLiveRepository(gdb)

	host := dbtest.CreateUser(t, gdb, "host@mail.com", constants.RoleIDHost)
	other := dbtest.CreateUser(t, gdb, "other@mail.com", constants.RoleIDHost)
	hosted := &gormModels.Live{HostID: host.ID}
	kept := &gormModels.Live{HostID: other.ID}
	lives.Create(ctx, hosted)
	lives.Create(ctx, kept)

	if n, _ := repo.HostedLives(ctx, host.ID); n != 1 {
		t.Fatalf("HostedLives = %d, want 1", n)
	}
	if n, err := repo.SoftDelete(ctx, []string{host.ID}); err != nil || n != 1 {
		t.Fatalf("SoftDelete = %d, %v", n, err)
	}
	if got, _ := lives.GetByID(ctx, hosted.ID, false); got != nil {
		t.Error("Expected hosted room hidden")
	}
	if got, _ := lives.GetByID(ctx, kept.ID, false); got == nil {
		t.Error("Expected other host's room untouched")
	}

	if n, err := repo.Restore(ctx, []string{host.ID}); err != nil || n != 1 {
		t.Fatalf("Restore = %d, %v", n, err)
	}
	if got, _ := lives.GetByID(ctx, hosted.ID, false); got == nil || got.Host == nil {
		t.Errorf("Expected hosted room restored with its host, got %+v", got)
	}
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	u := dbtest.CreateUser(t, gdb, "a@mail.com", constants.RoleIDUser)
	repo := NewSessionRepository(gdb)

	now := time.Now().UTC()
	repo.Create(ctx, &gormModels.Session{UserID: u.ID, Token: "old", ExpiresAt: now.Add(-time.Hour)})
	repo.Create(ctx, &gormModels.Session{UserID: u.ID, Token: "new", ExpiresAt: now.Add(time.Hour)})

	n, err := repo.DeleteExpired(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpired = %d, %v", n, err)
	}
	if s, _ := repo.GetByUserToken(ctx, u.ID, "new"); s == nil {
		t.Error("Expected unexpired session kept")
	}
	if s, _ := repo.GetByUserToken(ctx, u.ID, "old"); s != nil {
		t.Error("Expected expired session pruned")
	}
}
