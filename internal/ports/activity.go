package ports

import (
	"context"

	"github.com/orbitalhq/console-api/internal/domain/model"
)

// ActivityRepository persists and lists portal activity events.
type ActivityRepository interface {
	Insert(ctx context.Context, ev *model.ActivityEvent) error

	// List returns events newest-first plus the total row count.
	List(ctx context.Context, limit, offset int) ([]model.ActivityEvent, int, error)
}
