package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	domainauth "github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/ports"
)

// stubGateway is a scriptable ports.Gateway. Responses are keyed by
// "SERVICE METHOD PATH"; unkeyed calls fall back to the Default response.
type stubGateway struct {
	mu        sync.Mutex
	responses map[string]*ports.BackendResponse
	errs      map[string]error
	byTenant  map[string]*ports.BackendResponse
	calls     []ports.BackendCall

	Default *ports.BackendResponse
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		responses: map[string]*ports.BackendResponse{},
		errs:      map[string]error{},
		byTenant:  map[string]*ports.BackendResponse{},
	}
}

func callKey(service, method, path string) string {
	if method == "" {
		method = http.MethodGet
	}
	return service + " " + method + " " + path
}

func (g *stubGateway) respondJSON(t *testing.T, service, method, path string, status int, body any) {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal stub response: %v", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[callKey(service, method, path)] = &ports.BackendResponse{Status: status, Body: encoded}
}

// respondForTenant scripts a response for one tenant's fan-out call.
func (g *stubGateway) respondForTenant(t *testing.T, tenantID string, status int, body any) {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal stub response: %v", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byTenant[tenantID] = &ports.BackendResponse{Status: status, Body: encoded}
}

func (g *stubGateway) failWith(service, method, path string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[callKey(service, method, path)] = err
}

func (g *stubGateway) Do(_ context.Context, call ports.BackendCall) (*ports.BackendResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)

	key := callKey(call.Service, call.Method, call.Path)
	if err, ok := g.errs[key]; ok {
		return nil, err
	}
	if call.TenantID != "" {
		if resp, ok := g.byTenant[call.TenantID]; ok {
			return resp, nil
		}
	}
	if resp, ok := g.responses[key]; ok {
		return resp, nil
	}
	if g.Default != nil {
		return g.Default, nil
	}
	return &ports.BackendResponse{Status: http.StatusOK, Body: []byte(`{"data":[],"total":0}`)}, nil
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *stubGateway) lastCall() ports.BackendCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[len(g.calls)-1]
}

// stubDirectory is a canned ports.TenantDirectory.
type stubDirectory struct {
	tenants []model.Tenant
	err     error
}

func (d *stubDirectory) List(context.Context, string) ([]model.Tenant, error) {
	return d.tenants, d.err
}

// stubActivityRepo is an in-memory ports.ActivityRepository.
type stubActivityRepo struct {
	mu     sync.Mutex
	events []model.ActivityEvent
	err    error
}

func (r *stubActivityRepo) Insert(_ context.Context, ev *model.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *ev)
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, limit, offset int) ([]model.ActivityEvent, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	total := len(r.events)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return r.events[offset:end], total, nil
}

func platformAdminSession() *domainauth.SessionContext {
	return &domainauth.SessionContext{
		UserID:  "user-1",
		Email:   "admin@example.com",
		Name:    "Platform Admin",
		Roles:   []domainauth.Role{domainauth.RolePlatformAdmin},
		Session: "sess-abc",
	}
}

func tenantSession(tenantID string) *domainauth.SessionContext {
	return &domainauth.SessionContext{
		UserID:   "user-2",
		TenantID: tenantID,
		Roles:    []domainauth.Role{domainauth.RoleTenantAdmin},
		Session:  "sess-def",
	}
}
