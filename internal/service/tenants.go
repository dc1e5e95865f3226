package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/orbitalhq/console-api/config"
	"github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/ports"
)

// TenantServiceOptions groups dependencies for TenantService.
type TenantServiceOptions struct {
	Gateway  ports.Gateway    // Required: backend access
	Activity *ActivityService // Optional: portal activity recording
	Config   TenantServiceConfig
	Logger   *slog.Logger
}

// TenantServiceConfig holds tunables for tenant enumeration.
type TenantServiceConfig struct {
	// PageSize bounds the membership listing used for enumeration.
	PageSize int
}

// TenantService lists tenants through the tenant-service membership endpoint
// and proxies tenant create/delete. The console never owns tenant records.
// It also implements ports.TenantDirectory for the cross-tenant aggregator.
type TenantService struct {
	gateway  ports.Gateway
	activity *ActivityService
	pageSize int
	logger   *slog.Logger
}

var _ ports.TenantDirectory = (*TenantService)(nil)

// NewTenantService creates a TenantService. Gateway is required.
func NewTenantService(opts TenantServiceOptions) *TenantService {
	if opts.Gateway == nil {
		panic("TenantService requires a Gateway")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := opts.Config.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 100
	}
	return &TenantService{
		gateway:  opts.Gateway,
		activity: opts.Activity,
		pageSize: pageSize,
		logger:   logger,
	}
}

// tenantListResponse is the membership listing payload from tenant-service.
type tenantListResponse struct {
	Data  []model.Record `json:"data"`
	Total int            `json:"total"`
}

// List enumerates the tenants visible to the session, normalized into domain
// tenants. An enumeration failure carries the upstream status so aggregation
// callers propagate it verbatim.
func (s *TenantService) List(ctx context.Context, session string) ([]model.Tenant, error) {
	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service: config.ServiceTenants,
		Path:    "/tenants",
		Query:   url.Values{"limit": {strconv.Itoa(s.pageSize)}},
		Session: session,
	})
	if err != nil {
		return nil, apperrors.BadGateway("Failed to list tenants", err)
	}
	if !resp.OK() {
		return nil, apperrors.Upstream(resp.Status, "Failed to list tenants")
	}

	var body tenantListResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, apperrors.BadGateway("Invalid tenant listing payload", err)
	}

	tenants := make([]model.Tenant, 0, len(body.Data))
	for _, rec := range body.Data {
		rec = normalizeTenantRecord(rec)
		tenants = append(tenants, model.Tenant{
			ID:     rec.String("id"),
			Name:   rec.String("name"),
			Slug:   rec.String("slug"),
			Status: rec.String("status"),
		})
	}
	return tenants, nil
}

// ListRecords returns the normalized raw tenant records for the API listing.
func (s *TenantService) ListRecords(ctx context.Context, session string) ([]model.Record, error) {
	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service: config.ServiceTenants,
		Path:    "/tenants",
		Query:   url.Values{"limit": {strconv.Itoa(s.pageSize)}},
		Session: session,
	})
	if err != nil {
		return nil, apperrors.BadGateway("Failed to list tenants", err)
	}
	if !resp.OK() {
		return nil, apperrors.Upstream(resp.Status, "Failed to list tenants")
	}

	var body tenantListResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, apperrors.BadGateway("Invalid tenant listing payload", err)
	}
	return normalizeAll(body.Data, normalizeTenantRecord), nil
}

// Create proxies tenant creation. The name field is validated before any
// network call.
func (s *TenantService) Create(ctx context.Context, sess *auth.SessionContext, input model.Record) (model.Record, error) {
	if strings.TrimSpace(input.String("name")) == "" {
		return nil, apperrors.Validation("name", "Tenant name is required")
	}

	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service: config.ServiceTenants,
		Method:  http.MethodPost,
		Path:    "/tenants",
		Body:    input,
		Session: sess.Session,
	})
	if err != nil {
		return nil, apperrors.BadGateway("Failed to create tenant", err)
	}
	if !resp.OK() {
		return nil, apperrors.Upstream(resp.Status, "Failed to create tenant")
	}

	var created model.Record
	if err := resp.DecodeJSON(&created); err != nil {
		return nil, apperrors.BadGateway("Invalid tenant payload", err)
	}
	created = normalizeTenantRecord(created)

	s.activity.Record(ctx, sess, model.ActivityTenantCreated, created.String("name"), created.String("id"))
	return created, nil
}

// Delete proxies tenant deletion. A backend 404 is propagated as not found.
func (s *TenantService) Delete(ctx context.Context, sess *auth.SessionContext, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Validation("id", "Tenant id is required")
	}

	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service: config.ServiceTenants,
		Method:  http.MethodDelete,
		Path:    fmt.Sprintf("/tenants/%s", url.PathEscape(id)),
		Session: sess.Session,
	})
	if err != nil {
		return apperrors.BadGateway("Failed to delete tenant", err)
	}
	if resp.Status == http.StatusNotFound {
		return apperrors.NotFound("Tenant not found")
	}
	if !resp.OK() {
		return apperrors.Upstream(resp.Status, "Failed to delete tenant")
	}

	s.activity.Record(ctx, sess, model.ActivityTenantDeleted, id, id)
	return nil
}
