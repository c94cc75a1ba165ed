package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler that ends the session for the
// authenticated user. Idempotent: logging out twice succeeds both times.
// @Summary Log out
// @Description Clears the stored refresh token and expires the refresh token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse "Logged out"
// @Failure 401 {object} models.APIErrorResponse "Unauthorized"
// @Router /auth/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := svc.Logout(r.Context(), user.UserID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		clearRefreshTokenCookie(w)
		writeSuccess(w, http.StatusOK, struct{}{}, "User logged out successfully")
	}
}
