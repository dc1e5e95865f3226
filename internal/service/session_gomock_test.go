package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/mocks"
	"github.com/orbitalhq/console-api/internal/ports"
	"github.com/orbitalhq/console-api/internal/service"
)

func TestSessionServiceResolve_BridgeCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	bridge := mocks.NewMockAuthBridge(ctrl)

	exchange := bridge.EXPECT().
		Exchange(gomock.Any(), "sess-abc").
		Return(&domainauth.AccessToken{AccessToken: "jwt", UserID: "u-1"}, nil)
	bridge.EXPECT().
		SessionDetail(gomock.Any(), "sess-abc").
		After(exchange).
		Return(&ports.SessionDetail{Email: "jo@example.com"}, nil)

	svc := service.NewSessionService(service.SessionServiceOptions{Bridge: bridge})
	sess, err := svc.Resolve(context.Background(), "sess-abc")
	require.NoError(t, err)
	assert.Equal(t, "u-1", sess.UserID)
}

func TestSessionServiceResolve_NoDetailCallAfterFailedExchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	bridge := mocks.NewMockAuthBridge(ctrl)

	bridge.EXPECT().
		Exchange(gomock.Any(), "stale").
		Return(nil, ports.ErrUnauthenticated)
	// No SessionDetail expectation: a call would fail the test.

	svc := service.NewSessionService(service.SessionServiceOptions{Bridge: bridge})
	_, err := svc.Resolve(context.Background(), "stale")
	assert.ErrorIs(t, err, ports.ErrUnauthenticated)
}
