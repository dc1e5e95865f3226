package httpx

import (
	"net/http"

	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/service"
)

// ReleaseHandlers serves the release/CI status page. Svc is nil when no
// GitHub token or repositories are configured.
type ReleaseHandlers struct {
	Svc *service.ReleaseService
}

// List returns release/CI status for every configured repository. With no
// GitHub integration configured the page is simply empty.
func (h *ReleaseHandlers) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"data": []model.RepoStatus{}})
		return
	}

	statuses, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"data": statuses})
}
