package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

// UserRecipeLister defines the interface that the service must implement.
type UserRecipeLister interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.RecipeResponse, error)
}

// NewUserRecipesHandler returns an HTTP handler listing the caller's own
// recipes newest-first.
// @Summary List own recipes
// @Description Returns the authenticated user's recipes newest-first
// @Tags recipes
// @Produce json
// @Success 200 {object} models.APIResponse "Recipes"
// @Failure 401 {object} models.APIErrorResponse "Unauthorized"
// @Router /recipes/user-recipes [get]
// @Security BearerAuth
func NewUserRecipesHandler(svc UserRecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		recipes, err := svc.ListByOwner(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, RecipesData{Recipes: recipes}, "User recipes fetched successfully")
	}
}
