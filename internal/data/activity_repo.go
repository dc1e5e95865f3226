package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/ports"
)

// activityColumns is the column list for portal_activity SELECT queries.
const activityColumns = `id, actor_id, actor_name, action, target, tenant_id, created_at`

// ActivityRepo persists portal activity events in Postgres.
type ActivityRepo struct {
	DB *sql.DB
}

var _ ports.ActivityRepository = (*ActivityRepo)(nil)

// NewActivityRepo creates an ActivityRepo backed by the given connection.
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{DB: db}
}

// Insert persists one activity event.
func (r *ActivityRepo) Insert(ctx context.Context, ev *model.ActivityEvent) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO portal_activity (id, actor_id, actor_name, action, target, tenant_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.ID, ev.ActorID, ev.ActorName, ev.Action, ev.Target, ev.TenantID, ev.CreatedAt,
	)
	if err != nil {
		return apperrors.MapDBError(fmt.Errorf("insert activity event: %w", err))
	}
	return nil
}

// List returns events newest-first plus the total row count.
func (r *ActivityRepo) List(ctx context.Context, limit, offset int) ([]model.ActivityEvent, int, error) {
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM portal_activity`).Scan(&total); err != nil {
		return nil, 0, apperrors.MapDBError(fmt.Errorf("count activity events: %w", err))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+activityColumns+`
		FROM portal_activity
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, apperrors.MapDBError(fmt.Errorf("list activity events: %w", err))
	}
	defer func() { _ = rows.Close() }()

	events := make([]model.ActivityEvent, 0, limit)
	for rows.Next() {
		var ev model.ActivityEvent
		if err := rows.Scan(&ev.ID, &ev.ActorID, &ev.ActorName, &ev.Action, &ev.Target, &ev.TenantID, &ev.CreatedAt); err != nil {
			return nil, 0, apperrors.MapDBError(fmt.Errorf("scan activity event: %w", err))
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.MapDBError(fmt.Errorf("iterate activity events: %w", err))
	}
	return events, total, nil
}
