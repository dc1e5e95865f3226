package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalhq/console-api/internal/domain/model"
)

func TestActivityRecord(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(ActivityServiceOptions{Repo: repo})

	svc.Record(context.Background(), platformAdminSession(), model.ActivityTenantCreated, "Acme", "t-1")

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "user-1", ev.ActorID)
	assert.Equal(t, "Platform Admin", ev.ActorName)
	assert.Equal(t, model.ActivityTenantCreated, ev.Action)
	assert.Equal(t, "t-1", ev.TenantID)
	assert.False(t, ev.CreatedAt.IsZero())
}

func TestActivityRecordSwallowsRepoFailure(t *testing.T) {
	repo := &stubActivityRepo{err: errors.New("db down")}
	svc := NewActivityService(ActivityServiceOptions{Repo: repo})

	// Must not panic or surface the error.
	svc.Record(context.Background(), platformAdminSession(), model.ActivityTenantDeleted, "t-1", "t-1")
}

func TestActivityRecordNilReceiver(t *testing.T) {
	var svc *ActivityService
	svc.Record(context.Background(), platformAdminSession(), model.ActivityTicketCreated, "x", "")
}

func TestActivityList(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(ActivityServiceOptions{Repo: repo})
	for range 5 {
		svc.Record(context.Background(), platformAdminSession(), model.ActivityTicketCreated, "x", "t-1")
	}

	page, err := svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 2)
}

func TestActivityListEmpty(t *testing.T) {
	svc := NewActivityService(ActivityServiceOptions{Repo: &stubActivityRepo{}})

	page, err := svc.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Zero(t, page.Total)
}
