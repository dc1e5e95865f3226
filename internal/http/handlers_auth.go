package httpx

import "net/http"

// AuthHandlers serves the caller's resolved identity.
type AuthHandlers struct{}

// Me returns the SessionContext resolved by the session middleware.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	WriteJSON(w, http.StatusOK, sess)
}
