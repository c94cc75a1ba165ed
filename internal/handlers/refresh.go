package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mstepanov-dev/recipebox/internal/jwt"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/services"
)

// Refresher defines the interface that the refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (newAccess, newRefresh string, err error)
}

// RefreshData is the payload of a successful refresh response.
type RefreshData struct {
	AccessToken string `json:"accessToken"`
}

// NewRefreshTokenHandler returns an HTTP handler that rotates the token pair.
// The refresh token is read only from its cookie, never from the body.
// @Summary Refresh access token
// @Description Verifies the refresh token cookie, rotates the pair and returns a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse "New access token"
// @Failure 401 {object} models.APIErrorResponse "Missing, invalid or superseded refresh token"
// @Router /auth/refresh-token [post]
func NewRefreshTokenHandler(svc Refresher, refreshExp time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(jwt.RefreshTokenCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "Refresh token is missing")
			return
		}

		accessToken, refreshToken, err := svc.Refresh(r.Context(), cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRefreshToken):
				writeError(w, http.StatusUnauthorized, "Invalid refresh token")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setRefreshTokenCookie(w, refreshToken, refreshExp)
		writeSuccess(w, http.StatusOK, RefreshData{
			AccessToken: accessToken,
		}, "Access token refreshed successfully")
	}
}
