package services

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/models/dtos"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
)

func TestUserService_CreateUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Create(ctx, &dtos.CreateUserReq{
		Username: "Test Host",
		Email:    "host@mail.com",
		Phone:    "081111111111",
		Password: "Basecamp123",
		RoleID:   constants.RoleIDHost,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !user.IsActive || user.Role == nil || user.Role.Name != string(constants.RoleHost) {
		t.Errorf("Expected active host, got %+v", user)
	}

	_, err = f.users.Create(ctx, &dtos.CreateUserReq{
		Username: "Dup",
		Email:    "dup@mail.com",
		Phone:    "081111111111",
		Password: "Basecamp123",
		RoleID:   constants.RoleIDUser,
	})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.users.Create(ctx, &dtos.CreateUserReq{
		Username: "Ghost",
		Email:    "ghost@mail.com",
		Phone:    "082222222222",
		Password: "Basecamp123",
		RoleID:   "7f1a7b3e-4c1d-4a56-9a7e-5c0e7b6fbd99",
	})
	assertStatus(t, err, http.StatusNotFound)

	blocked := true
	name := "Renamed Host"
	updated, err := f.users.Update(ctx, user.ID, &dtos.UpdateUserReq{Username: &name, IsBlocked: &blocked})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Username != name || !updated.IsBlocked {
		t.Errorf("Expected update applied, got %+v", updated)
	}

	_, err = f.users.Update(ctx, "bad-id", &dtos.UpdateUserReq{Username: &name})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestUserService_DeleteLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.users.Create(ctx, &dtos.CreateUserReq{
		Username: "Test User",
		Email:    "user@mail.com",
		Phone:    "081111111111",
		Password: "Basecamp123",
		RoleID:   constants.RoleIDUser,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.users.SoftDelete(ctx, user.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	_, err = f.users.FindByID(ctx, user.ID, false)
	assertStatus(t, err, http.StatusNotFound)
	if _, err := f.users.FindByID(ctx, user.ID, true); err != nil {
		t.Fatalf("FindByID with deleted: %v", err)
	}

	if err := f.users.Restore(ctx, user.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := f.users.Restore(ctx, user.ID); err != nil {
		t.Fatalf("Restore of a live row should be a no-op, got %v", err)
	}

	if err := f.users.ForceDelete(ctx, user.ID); err != nil {
		t.Fatalf("ForceDelete: %v", err)
	}
	err = f.users.ForceDelete(ctx, user.ID)
	assertStatus(t, err, http.StatusNotFound)
}

func TestUserService_HostWithRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host, err := f.users.Create(ctx, &dtos.CreateUserReq{
		Username: "Test Host",
		Email:    "host@mail.com",
		Phone:    "081111111111",
		Password: "Basecamp123",
		RoleID:   constants.RoleIDHost,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	earlier := createLive(t, f, host.ID)
	current := createLive(t, f, host.ID)
	if err := f.lives.SoftDelete(ctx, earlier.ID); err != nil {
		t.Fatalf("SoftDelete live: %v", err)
	}

	demote := constants.RoleIDUser
	_, err = f.users.Update(ctx, host.ID, &dtos.UpdateUserReq{RoleID: &demote})
	assertStatus(t, err, http.StatusBadRequest)
	if got, _ := f.users.FindByID(ctx, host.ID, false); got.RoleID != constants.RoleIDHost {
		t.Errorf("Expected role unchanged, got %s", got.RoleID)
	}

	promote := constants.RoleIDAdmin
	if _, err := f.users.Update(ctx, host.ID, &dtos.UpdateUserReq{RoleID: &promote}); err != nil {
		t.Fatalf("Expected promotion to admin allowed, got %v", err)
	}

	if err := f.users.SoftDelete(ctx, host.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, total, _ := f.lives.FindAll(ctx, query.Params{Page: 1, PageSize: 10}); total != 0 {
		t.Errorf("Expected hosted rooms hidden with their host, got %d", total)
	}

	if err := f.users.Restore(ctx, host.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	lives, total, err := f.lives.FindAll(ctx, query.Params{Page: 1, PageSize: 10})
	if err != nil || total != 1 || lives[0].ID != current.ID {
		t.Fatalf("Expected only the cascaded room restored, got %d (%v)", total, err)
	}
	if lives[0].Host == nil || lives[0].Host.ID != host.ID {
		t.Errorf("Expected restored room to load its host, got %+v", lives[0].Host)
	}

	// demoting is allowed once no room is hosted
	if err := f.lives.ForceDelete(ctx, current.ID); err != nil {
		t.Fatalf("ForceDelete live: %v", err)
	}
	if _, err := f.users.Update(ctx, host.ID, &dtos.UpdateUserReq{RoleID: &demote}); err != nil {
		t.Errorf("Expected demotion without rooms, got %v", err)
	}
}

func TestUserService_FindAllAndRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accounts := map[string]string{
		"a@mail.com":  "081000000001",
		"b@mail.com":  "081000000002",
		"c@other.com": "081000000003",
	}
	for email, phone := range accounts {
		if _, err := f.users.Create(ctx, &dtos.CreateUserReq{
			Username: email,
			Email:    email,
			Phone:    phone,
			Password: "Basecamp123",
			RoleID:   constants.RoleIDUser,
		}); err != nil {
			t.Fatalf("Create %s: %v", email, err)
		}
	}

	users, total, err := f.users.FindAll(ctx, query.Parse(url.Values{
		"filtered": {`[{"id":"email","value":"MAIL.COM"}]`},
	}))
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("Expected 2 users, got %d (total %d)", len(users), total)
	}

	roles, err := f.roles.FindAll(ctx)
	if err != nil || len(roles) != 3 {
		t.Fatalf("Expected 3 roles, got %d, %v", len(roles), err)
	}

	var cached []gormModels.Role
	if err := f.cache.Get(ctx, string(constants.CachePrefixRoles), &cached); err != nil || len(cached) != 3 {
		t.Fatalf("Expected roles cached, got %d, %v", len(cached), err)
	}
	// served from cache once loaded
	if err := f.db.Exec(`DELETE FROM role WHERE id NOT IN (SELECT role_id FROM "user")`).Error; err != nil {
		t.Fatalf("delete roles: %v", err)
	}
	if roles, _ := f.roles.FindAll(ctx); len(roles) != 3 {
		t.Errorf("Expected cached roles, got %d", len(roles))
	}
}
