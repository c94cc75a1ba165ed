package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
	"github.com/mstepanov-dev/recipebox/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *models.UserResponse, err error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email
	// required: true
	// default: john_doe
	Identifier string `json:"identifier"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginData is the payload of a successful login response.
// The refresh token travels only in the http-only cookie.
type LoginData struct {
	AccessToken string               `json:"accessToken"`
	User        *models.UserResponse `json:"user"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates by username or email, returns an access token and sets the refresh token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} models.APIResponse "Access token and public profile"
// @Failure 400 {object} models.APIErrorResponse "Invalid request body"
// @Failure 401 {object} models.APIErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer, refreshExp time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		accessToken, refreshToken, user, err := svc.Login(r.Context(), req.Identifier, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setRefreshTokenCookie(w, refreshToken, refreshExp)
		writeSuccess(w, http.StatusOK, LoginData{
			AccessToken: accessToken,
			User:        user,
		}, "User logged in successfully")
	}
}
