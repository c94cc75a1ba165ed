package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mstepanov-dev/recipebox/internal/jwt"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

// writeSuccess writes the success envelope with the given status.
func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeError writes the error envelope with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIErrorResponse{
		Success: false,
		Message: message,
	})
}

// setRefreshTokenCookie hands the refresh token to the client as an
// http-only cookie, never in the response body.
func setRefreshTokenCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshTokenCookie expires the refresh token cookie on the client.
func clearRefreshTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
