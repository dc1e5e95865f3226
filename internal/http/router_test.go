package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	domainauth "github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/ports"
	"github.com/orbitalhq/console-api/internal/service"
)

const testCookie = "portal_session"

// fakeBridge resolves every session to a fixed platform-admin identity.
type fakeBridge struct {
	tenantID string
	fail     bool
}

func (b *fakeBridge) Exchange(_ context.Context, session string) (*domainauth.AccessToken, error) {
	if b.fail || session == "" {
		return nil, ports.ErrUnauthenticated
	}
	return &domainauth.AccessToken{
		AccessToken: "jwt",
		UserID:      "user-1",
		TenantID:    b.tenantID,
	}, nil
}

func (b *fakeBridge) SessionDetail(context.Context, string) (*ports.SessionDetail, error) {
	if b.fail {
		return nil, ports.ErrUnauthenticated
	}
	roles := []domainauth.Role{domainauth.RolePlatformAdmin}
	if b.tenantID != "" {
		roles = []domainauth.Role{domainauth.RoleTenantAdmin}
	}
	return &ports.SessionDetail{Email: "jo@example.com", Name: "Jo", Roles: roles}, nil
}

// fakeGateway returns canned responses keyed by "METHOD PATH".
type fakeGateway struct {
	responses map[string]*ports.BackendResponse
}

func (g *fakeGateway) stub(method, path string, status int, body any) {
	if g.responses == nil {
		g.responses = map[string]*ports.BackendResponse{}
	}
	encoded, _ := json.Marshal(body)
	if method == "" {
		method = http.MethodGet
	}
	g.responses[method+" "+path] = &ports.BackendResponse{Status: status, Body: encoded}
}

func (g *fakeGateway) Do(_ context.Context, call ports.BackendCall) (*ports.BackendResponse, error) {
	method := call.Method
	if method == "" {
		method = http.MethodGet
	}
	if resp, ok := g.responses[method+" "+call.Path]; ok {
		return resp, nil
	}
	return &ports.BackendResponse{Status: http.StatusOK, Body: []byte(`{"data":[],"total":0}`)}, nil
}

type fakeActivityRepo struct {
	events []model.ActivityEvent
}

func (r *fakeActivityRepo) Insert(_ context.Context, ev *model.ActivityEvent) error {
	r.events = append(r.events, *ev)
	return nil
}

func (r *fakeActivityRepo) List(context.Context, int, int) ([]model.ActivityEvent, int, error) {
	return r.events, len(r.events), nil
}

type testEnv struct {
	router  http.Handler
	gateway *fakeGateway
	repo    *fakeActivityRepo
}

func newTestEnv(t *testing.T, bridge *fakeBridge) *testEnv {
	t.Helper()

	gw := &fakeGateway{}
	repo := &fakeActivityRepo{}
	activity := service.NewActivityService(service.ActivityServiceOptions{Repo: repo})
	tenants := service.NewTenantService(service.TenantServiceOptions{Gateway: gw, Activity: activity})
	agg := service.NewAggregator(service.AggregatorOptions{Tenants: tenants})

	router := NewRouter(RouterServices{
		Sessions:      service.NewSessionService(service.SessionServiceOptions{Bridge: bridge}),
		Tenants:       tenants,
		Tickets:       service.NewTicketService(service.TicketServiceOptions{Gateway: gw, Aggregator: agg, Activity: activity}),
		Audit:         service.NewAuditService(service.AuditServiceOptions{Gateway: gw, Aggregator: agg}),
		Activity:      activity,
		SessionCookie: testCookie,
	})
	return &testEnv{router: router, gateway: gw, repo: repo}
}

func (e *testEnv) request(t *testing.T, method, target, session string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: session})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
