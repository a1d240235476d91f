package repositories

import (
	"context"
	"net/url"
	"testing"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/dbtest"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
)

func TestLiveRepository_SoftDeleteRestore(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	host := dbtest.CreateUser(t, gdb, "host@mail.com", constants.RoleIDHost)

	repo := NewLiveRepository(gdb)
	live := &gormModels.Live{HostID: host.ID, Price: 10}
	if err := repo.Create(ctx, live); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n, err := repo.SoftDelete(ctx, []string{live.ID}); err != nil || n != 1 {
		t.Fatalf("SoftDelete = %d, %v", n, err)
	}
	if got, _ := repo.GetByID(ctx, live.ID, false); got != nil {
		t.Error("Expected soft-deleted live to be hidden")
	}
	if got, _ := repo.GetByID(ctx, live.ID, true); got == nil || !got.DeletedAt.Valid {
		t.Error("Expected soft-deleted live visible with deleted rows")
	}

	if n, err := repo.Restore(ctx, []string{live.ID}); err != nil || n != 1 {
		t.Fatalf("Restore = %d, %v", n, err)
	}
	got, err := repo.GetByID(ctx, live.ID, false)
	if err != nil || got == nil {
		t.Fatalf("Expected restored live, got %v, %v", got, err)
	}
	if got.Host == nil || got.Host.ID != host.ID {
		t.Error("Expected host preloaded")
	}
}

func TestLiveRepository_ForceDeleteRemovesViewers(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	host := dbtest.CreateUser(t, gdb, "host@mail.com", constants.RoleIDHost)
	viewer := dbtest.CreateUser(t, gdb, "viewer@mail.com", constants.RoleIDUser)

	repo := NewLiveRepository(gdb)
	live := &gormModels.Live{HostID: host.ID, IsLive: true}
	repo.Create(ctx, live)
	NewLiveSessionRepository(gdb).Upsert(ctx, viewer.ID, live.ID)

	if n, err := repo.ForceDelete(ctx, []string{live.ID}); err != nil || n != 1 {
		t.Fatalf("ForceDelete = %d, %v", n, err)
	}
	if n, _ := repo.CountWithDeleted(ctx, []string{live.ID}); n != 0 {
		t.Errorf("Expected live gone, %d left", n)
	}
	var viewers int64
	gdb.Model(&gormModels.LiveSession{}).Count(&viewers)
	if viewers != 0 {
		t.Errorf("Expected viewer rows gone, %d left", viewers)
	}
}

func TestLiveRepository_ListFiltersAndPaginates(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	host := dbtest.CreateUser(t, gdb, "host@mail.com", constants.RoleIDHost)

	repo := NewLiveRepository(gdb)
	for i := 0; i < 5; i++ {
		repo.Create(ctx, &gormModels.Live{HostID: host.ID, Price: i, IsPrivate: i%2 == 0})
	}

	q := query.Parse(url.Values{
		"page":     {"1"},
		"pageSize": {"2"},
		"filtered": {`[{"id":"is_private","value":"true"}]`},
		"sorted":   {`[{"id":"price","desc":true}]`},
	})
	lives, total, err := repo.List(ctx, q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(lives) != 2 {
		t.Fatalf("Expected 2 lives on page, got %d", len(lives))
	}
	if lives[0].Price != 4 || lives[1].Price != 2 {
		t.Errorf("Expected prices 4,2 got %d,%d", lives[0].Price, lives[1].Price)
	}
}

func TestLiveStatsRepository_Stats(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	host := dbtest.CreateUser(t, gdb, "host@mail.com", constants.RoleIDHost)
	a := dbtest.CreateUser(t, gdb, "a@mail.com", constants.RoleIDUser)
	b := dbtest.CreateUser(t, gdb, "b@mail.com", constants.RoleIDUser)

	live := &gormModels.Live{HostID: host.ID, IsLive: true}
	NewLiveRepository(gdb).Create(ctx, live)
	sessions := NewLiveSessionRepository(gdb)
	sessions.Upsert(ctx, a.ID, live.ID)
	sessions.Upsert(ctx, b.ID, live.ID)
	sessions.MarkLeft(ctx, b.ID, live.ID, live.CreatedAt)

	stats, err := NewLiveStatsRepository(dbtest.Sqlx(t, gdb)).Stats(ctx, live.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats == nil {
		t.Fatal("Expected stats")
	}
	if stats.TotalViewers != 2 || stats.ActiveViewers != 1 || !stats.IsLive {
		t.Errorf("Unexpected stats %+v", stats)
	}

	missing, err := NewLiveStatsRepository(dbtest.Sqlx(t, gdb)).Stats(ctx, "00000000-0000-0000-0000-000000000000")
	if err != nil || missing != nil {
		t.Errorf("Expected nil stats for unknown live, got %+v, %v", missing, err)
	}
}
