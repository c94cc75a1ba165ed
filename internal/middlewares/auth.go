package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

// Tokener defines the minimal token interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	ParseAccessToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// UserResolver resolves a user id against the credential store.
type UserResolver interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// userContextKey is an unexported type for keys in context
type userContextKey struct{}

var userKey = userContextKey{}

// SetUserToContext stores the resolved user in the context.
func SetUserToContext(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
// Returns nil outside of AuthMiddleware-protected routes.
func GetUserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey).(*models.UserDB)
	return user
}

// writeError writes the error envelope with the given status, so rejections
// made before any handler runs carry the same body shape as handler errors.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIErrorResponse{
		Success: false,
		Message: message,
	})
}

// AuthMiddleware returns a middleware that verifies the access token and
// attaches the resolved user to the request context. The request is rejected
// with 401 when the token is absent, invalid, expired, or the embedded user
// no longer exists. No token refresh happens here.
func AuthMiddleware(tokener Tokener, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed: no token", "err", err)
				writeError(w, http.StatusUnauthorized, "Authorization token is missing")
				return
			}

			userID, err := tokener.ParseAccessToken(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed: invalid token", "err", err)
				writeError(w, http.StatusUnauthorized, "Invalid or expired access token")
				return
			}

			user, err := resolver.GetByID(ctx, userID)
			if err != nil {
				logger.Log.Errorw("authorization failed: resolver error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				logger.Log.Errorw("authorization failed: user no longer exists", "user_id", userID)
				writeError(w, http.StatusUnauthorized, "Invalid or expired access token")
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(ctx, user)))
		})
	}
}
