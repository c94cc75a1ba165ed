package handlers

import (
	"net/http"

	"github.com/mstepanov-dev/recipebox/internal/middlewares"
)

// NewCurrentUserHandler returns an HTTP handler that echoes the public
// profile of the authenticated user. No mutation.
// @Summary Get current user
// @Description Returns the public profile of the user resolved from the access token
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse "Public profile"
// @Failure 401 {object} models.APIErrorResponse "Unauthorized"
// @Router /auth/current-user [get]
// @Security BearerAuth
func NewCurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		writeSuccess(w, http.StatusOK, user.ToResponse(), "Current user fetched successfully")
	}
}
