package httpx

import (
	"net/http"

	"github.com/orbitalhq/console-api/internal/service"
)

// ActivityHandlers serves the portal activity feed.
type ActivityHandlers struct {
	Svc      *service.ActivityService
	PageSize PageSizeConfig
}

// List returns a page of portal activity events, newest first.
func (h *ActivityHandlers) List(w http.ResponseWriter, r *http.Request) {
	sizes := h.PageSize.orDefaults()
	page, limit := ParsePageLimit(r, sizes.Default, sizes.Max)

	result, err := h.Svc.List(r.Context(), page, limit)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
