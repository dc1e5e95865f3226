package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/ports"
)

// ActivityServiceOptions groups dependencies for ActivityService.
type ActivityServiceOptions struct {
	Repo   ports.ActivityRepository // Required: persistence
	Logger *slog.Logger             // Optional: structured logger
}

// ActivityService records portal-side bookkeeping for write operations
// proxied through the console, and serves the activity feed. It is distinct
// from the backend audit logs: those describe tenant activity, this describes
// operator activity in the portal itself.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewActivityService creates an ActivityService. Repo is required.
func NewActivityService(opts ActivityServiceOptions) *ActivityService {
	if opts.Repo == nil {
		panic("ActivityService requires an ActivityRepository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{repo: opts.Repo, logger: logger, now: time.Now}
}

// Record persists one activity event. Failures are logged and swallowed so
// bookkeeping can never fail the proxied operation. Safe to call on a nil
// receiver, which makes recording strictly optional for callers.
func (s *ActivityService) Record(ctx context.Context, sess *auth.SessionContext, action, target, tenantID string) {
	if s == nil {
		return
	}
	ev := &model.ActivityEvent{
		ID:        uuid.NewString(),
		ActorID:   sess.UserID,
		ActorName: sess.Name,
		Action:    action,
		Target:    target,
		TenantID:  tenantID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, ev); err != nil {
		s.logger.Error("record portal activity failed",
			"action", action,
			"actor_id", sess.UserID,
			"error", err)
	}
}

// List returns a page of activity events, newest first.
func (s *ActivityService) List(ctx context.Context, page, limit int) (model.Page[model.ActivityEvent], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	events, total, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return model.Page[model.ActivityEvent]{}, err
	}
	if events == nil {
		events = []model.ActivityEvent{}
	}
	return model.Page[model.ActivityEvent]{
		Data:       events,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
