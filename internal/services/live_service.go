package services

import (
	"context"
	"errors"
	"time"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/repositories"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/models/dtos"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
	"streamhouse/api/internal/validation"
)

// LiveService manages live rooms and their viewers
type LiveService struct {
	lives   *repositories.LiveRepository
	viewers *repositories.LiveSessionRepository
	stats   *repositories.LiveStatsRepository
	users   *repositories.UserRepositoryGORM
	metrics *metrics.MetricsRegistry
	now     func() time.Time
}

func NewLiveService(
	lives *repositories.LiveRepository,
	viewers *repositories.LiveSessionRepository,
	stats *repositories.LiveStatsRepository,
	users *repositories.UserRepositoryGORM,
	m *metrics.MetricsRegistry,
) *LiveService {
	return &LiveService{
		lives:   lives,
		viewers: viewers,
		stats:   stats,
		users:   users,
		metrics: m,
		now:     time.Now,
	}
}

// FindAll lists non-deleted rooms.
func (s *LiveService) FindAll(ctx context.Context, q query.Params) ([]gormModels.Live, int64, error) {
	return s.lives.List(ctx, q)
}

// FindByID returns a room. With paranoid=false soft-deleted rooms are
// included.
func (s *LiveService) FindByID(ctx context.Context, id string, paranoid bool) (*gormModels.Live, error) {
	if err := checkID(ctx, id); err != nil {
		return nil, err
	}
	live, err := s.lives.GetByID(ctx, id, !paranoid)
	if err != nil {
		return nil, err
	}
	if live == nil {
		return nil, notFound(ctx, constants.EntityLive)
	}
	return live, nil
}

// Create opens a live room owned by hostID.
func (s *LiveService) Create(ctx context.Context, req *dtos.LiveReq, hostID string) (*gormModels.Live, error) {
	if err := validation.Struct(ctx, req); err != nil {
		return nil, err
	}

	host, err := s.users.GetByID(ctx, hostID, false)
	if err != nil {
		return nil, err
	}
	if host == nil || !constants.CanHost(host.RoleID) {
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.invalid_host"))
	}

	live := &gormModels.Live{
		HostID:    host.ID,
		Price:     *req.Price,
		IsPrivate: *req.IsPrivate,
		IsLive:    true,
	}
	if err := s.lives.Create(ctx, live); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.LiveRoomsCreated.Inc()
	}

	logging.Info("Live room created", "live_id", live.ID, "host_id", host.ID)
	return s.lives.GetByID(ctx, live.ID, false)
}

// Update merges the provided fields onto the stored room, then validates.
func (s *LiveService) Update(ctx context.Context, id string, req *dtos.LiveReq, actor Actor) (*gormModels.Live, error) {
	live, err := s.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, live, actor); err != nil {
		return nil, err
	}

	merged := dtos.LiveReq{Price: &live.Price, IsPrivate: &live.IsPrivate}
	if req.Price != nil {
		merged.Price = req.Price
	}
	if req.IsPrivate != nil {
		merged.IsPrivate = req.IsPrivate
	}
	if err := validation.Struct(ctx, &merged); err != nil {
		return nil, err
	}

	err = s.lives.Update(ctx, id, map[string]interface{}{
		"price":      *merged.Price,
		"is_private": *merged.IsPrivate,
	})
	if err != nil {
		return nil, err
	}
	return s.lives.GetByID(ctx, id, false)
}

// Restore undeletes a room. Restoring a room that is not deleted is a no-op.
func (s *LiveService) Restore(ctx context.Context, id string) error {
	_, err := s.MultipleRestore(ctx, []string{id})
	return err
}

func (s *LiveService) SoftDelete(ctx context.Context, id string) error {
	_, err := s.MultipleSoftDelete(ctx, []string{id})
	return err
}

func (s *LiveService) ForceDelete(ctx context.Context, id string) error {
	_, err := s.MultipleForceDelete(ctx, []string{id})
	return err
}

func (s *LiveService) MultipleRestore(ctx context.Context, ids []string) (int64, error) {
	if err := s.checkExisting(ctx, ids); err != nil {
		return 0, err
	}
	return s.lives.Restore(ctx, ids)
}

func (s *LiveService) MultipleSoftDelete(ctx context.Context, ids []string) (int64, error) {
	if err := checkIDs(ctx, ids); err != nil {
		return 0, err
	}
	n, err := s.lives.SoftDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, notFound(ctx, constants.EntityLive)
	}
	return n, nil
}

func (s *LiveService) MultipleForceDelete(ctx context.Context, ids []string) (int64, error) {
	if err := s.checkExisting(ctx, ids); err != nil {
		return 0, err
	}
	return s.lives.ForceDelete(ctx, ids)
}

// Join records userID as a viewer. Rejoining reopens the same record.
func (s *LiveService) Join(ctx context.Context, id, userID string) (*gormModels.LiveSession, error) {
	live, err := s.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !live.IsLive {
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.live_ended"))
	}

	viewer, err := s.viewers.Upsert(ctx, userID, live.ID)
	if errors.Is(err, repositories.ErrLiveEnded) {
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.live_ended"))
	}
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.LiveJoinsTotal.Inc()
	}
	return viewer, nil
}

// Leave marks the caller's viewer record as left.
func (s *LiveService) Leave(ctx context.Context, id, userID string) (*gormModels.LiveSession, error) {
	if err := checkID(ctx, id); err != nil {
		return nil, err
	}

	viewer, err := s.viewers.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, notFound(ctx, constants.EntityViewer)
	}

	if _, err := s.viewers.MarkLeft(ctx, userID, id, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.viewers.Get(ctx, userID, id)
}

// Stop ends the broadcast and closes every open viewer record.
func (s *LiveService) Stop(ctx context.Context, id string, actor Actor) (*gormModels.Live, error) {
	live, err := s.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, live, actor); err != nil {
		return nil, err
	}

	closed, err := s.lives.Stop(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	logging.Info("Live room stopped", "live_id", id, "by", actor.UserID, "viewers_closed", closed)
	return s.lives.GetByID(ctx, id, false)
}

// Stats returns viewer counters for a room.
func (s *LiveService) Stats(ctx context.Context, id string) (*dtos.LiveStats, error) {
	if err := checkID(ctx, id); err != nil {
		return nil, err
	}
	stats, err := s.stats.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, notFound(ctx, constants.EntityLive)
	}
	return stats, nil
}

// Viewers lists a room's viewer records.
func (s *LiveService) Viewers(ctx context.Context, id string, activeOnly bool) ([]gormModels.LiveSession, error) {
	if _, err := s.FindByID(ctx, id, true); err != nil {
		return nil, err
	}
	return s.viewers.Viewers(ctx, id, activeOnly)
}

func (s *LiveService) checkOwner(ctx context.Context, live *gormModels.Live, actor Actor) error {
	if actor.IsAdmin() || live.HostID == actor.UserID {
		return nil
	}
	return errs.Forbidden(i18n.Tc(ctx, "errors.not_room_owner"))
}

// checkExisting validates ids and requires at least one row, deleted or not.
func (s *LiveService) checkExisting(ctx context.Context, ids []string) error {
	if err := checkIDs(ctx, ids); err != nil {
		return err
	}
	n, err := s.lives.CountWithDeleted(ctx, ids)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(ctx, constants.EntityLive)
	}
	return nil
}
