package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mstepanov-dev/recipebox/internal/logger"
	"github.com/mstepanov-dev/recipebox/internal/middlewares"
	"github.com/mstepanov-dev/recipebox/internal/models"
)

// FavoriteLister defines the interface that the service must implement.
type FavoriteLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.RecipeResponse, error)
}

// NewListFavoritesHandler returns an HTTP handler listing the caller's
// favorite recipes newest-first. Dangling references are omitted.
// @Summary List favorites
// @Description Returns the caller's favorite recipes resolved to their current data
// @Tags favorites
// @Produce json
// @Success 200 {object} models.APIResponse "Favorite recipes"
// @Failure 401 {object} models.APIErrorResponse "Unauthorized"
// @Router /recipes/favorites [get]
// @Security BearerAuth
func NewListFavoritesHandler(svc FavoriteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		recipes, err := svc.List(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, RecipesData{Recipes: recipes}, "Favorite recipes fetched successfully")
	}
}
